package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/dbconfig"
)

func setupDatabase() (*sql.DB, error) {
	dbConfig := dbconfig.NewConfigFromEnv()

	database, err := sql.Open("postgres", dbConfig.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info().
		Str("user", dbConfig.User).
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("connected to database")
	return database, nil
}
