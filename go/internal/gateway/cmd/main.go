package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/auth"
	"github.com/mcdev12/leaguefc/go/internal/config"
	"github.com/mcdev12/leaguefc/go/internal/db"
	"github.com/mcdev12/leaguefc/go/internal/dbconfig"
	"github.com/mcdev12/leaguefc/go/internal/gateway"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(getEnv("CONFIG_PATH", "config.yaml"))
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	dbCfg := dbconfig.NewConfigFromEnv()
	database, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close()
	if err := database.Ping(); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("database", dbCfg.Database).
		Str("nats_url", cfg.NATS.URL).
		Int("port", cfg.Gateway.Port).
		Msg("starting league gateway")

	queries := db.New(database)

	gatewayConfig := gateway.DefaultConfig()
	gatewayConfig.JetStreamConfig.URL = cfg.NATS.URL
	gatewayConfig.JetStreamConfig.StreamName = cfg.NATS.StreamName
	gatewayConfig.JetStreamConfig.SubjectFilter = cfg.NATS.SubjectPrefix + ".>"
	gatewayConfig.JetStreamConfig.ConsumerName = cfg.Gateway.ConsumerName

	gatewayService, err := gateway.NewService(gatewayConfig, auth.New(queries), gateway.NewRepository(queries))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create gateway service")
	}

	mux := http.NewServeMux()
	gatewayService.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Gateway.Port),
		Handler:     corsHandler.Handler(mux),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := gatewayService.Start(ctx); err != nil {
			log.Error().Err(err).Msg("gateway service failed")
			stop()
		}
	}()

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	log.Info().Msg("league gateway shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
