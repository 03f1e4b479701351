package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/leaguefc/go/internal/config"
	"github.com/mcdev12/leaguefc/go/internal/freeagency"
	"github.com/mcdev12/leaguefc/go/internal/packs"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func setupLogging(cfg *config.Config) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func freeAgencyRules(econ config.EconomyConfig) freeagency.Rules {
	return freeagency.Rules{
		RosterCap:            econ.RosterCap,
		AntiSnipeWindow:      econ.AntiSnipeWindow,
		DefaultContractYears: econ.DefaultContractYears,
	}
}

func packRules(econ config.EconomyConfig) packs.Rules {
	rules := packs.DefaultRules()
	rules.RosterLimit = econ.PackRosterLimit
	rules.ContractYears = econ.DefaultContractYears
	rules.WageDiscountPercent = econ.PackWageDiscount
	return rules
}
