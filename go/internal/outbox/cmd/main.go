package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/config"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/dbconfig"
	"github.com/mcdev12/leaguefc/go/internal/outbox"
)

func main() {
	// load .env
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// configure zerolog console output and level
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	// DB config
	dbCfg := dbconfig.NewConfigFromEnv()
	dsn := dbCfg.DSN()
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}
	log.Info().
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")

	// JetStream publisher
	jsCfg := outbox.DefaultJetStreamConfig()
	jsCfg.URL = cfg.NATS.URL
	jsCfg.StreamName = cfg.NATS.StreamName
	jsCfg.SubjectPrefix = cfg.NATS.SubjectPrefix
	publisher, err := outbox.NewJetStreamPublisher(jsCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create JetStream publisher")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("close publisher")
		}
	}()

	// Listener config
	ltCfg := outbox.DefaultListenerConfig()
	ltCfg.DatabaseURL = dsn
	if iv := os.Getenv("FALLBACK_INTERVAL"); iv != "" {
		if d, err := time.ParseDuration(iv); err == nil {
			ltCfg.FallbackInterval = d
		}
	}

	// Database layer → Repository layer → App layer → Listener
	repo := outbox.NewRepository(db.New(database))
	app := outbox.NewApp(repo)

	listener, err := outbox.NewListener(app, publisher, ltCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("create outbox listener")
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msg("starting outbox relay")
		errCh <- listener.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
		if err := <-errCh; err != nil {
			log.Error().Err(err).Msg("listener stopped with error")
		}
		log.Info().Msg("graceful shutdown complete")
	case err := <-errCh:
		log.Error().Err(err).Msg("listener exited unexpectedly")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
