package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the service configuration read from config.yaml with env overrides
type Config struct {
	LogLevel string        `yaml:"log_level"`
	Server   ServerConfig  `yaml:"server"`
	Economy  EconomyConfig `yaml:"economy"`
	NATS     NATSConfig    `yaml:"nats"`
	Gateway  GatewayConfig `yaml:"gateway"`
}

type ServerConfig struct {
	Port           int           `yaml:"port"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// EconomyConfig holds the league economy rules
type EconomyConfig struct {
	RosterCap            int           `yaml:"roster_cap"`
	PackRosterLimit      int           `yaml:"pack_roster_limit"`
	AntiSnipeWindow      time.Duration `yaml:"anti_snipe_window"`
	DefaultContractYears int           `yaml:"default_contract_years"`
	PackWageDiscount     int           `yaml:"pack_wage_discount"`
}

type NATSConfig struct {
	URL           string `yaml:"url"`
	StreamName    string `yaml:"stream_name"`
	SubjectPrefix string `yaml:"subject_prefix"`
}

type GatewayConfig struct {
	Port         int    `yaml:"port"`
	ConsumerName string `yaml:"consumer_name"`
}

// Default returns the configuration used when no file is present
func Default() Config {
	return Config{
		LogLevel: "info",
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"*"},
			RequestTimeout: 30 * time.Second,
		},
		Economy: EconomyConfig{
			RosterCap:            23,
			PackRosterLimit:      20,
			AntiSnipeWindow:      60 * time.Second,
			DefaultContractYears: 3,
			PackWageDiscount:     20,
		},
		NATS: NATSConfig{
			URL:           "nats://127.0.0.1:4222",
			StreamName:    "LEAGUE_EVENTS",
			SubjectPrefix: "league.events",
		},
		Gateway: GatewayConfig{
			Port:         8081,
			ConsumerName: "league-gateway",
		},
	}
}

// Load reads the yaml file at path on top of the defaults, then applies env
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Server.Port = getEnvAsInt("PORT", c.Server.Port)
	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.Gateway.Port = getEnvAsInt("GATEWAY_PORT", c.Gateway.Port)
}

// Validate rejects rule sets the economy engine cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	if c.Economy.RosterCap <= 0 {
		return fmt.Errorf("economy.roster_cap must be positive")
	}
	if c.Economy.PackRosterLimit <= 0 || c.Economy.PackRosterLimit > c.Economy.RosterCap {
		return fmt.Errorf("economy.pack_roster_limit must be between 1 and roster_cap")
	}
	if c.Economy.AntiSnipeWindow < 0 {
		return fmt.Errorf("economy.anti_snipe_window cannot be negative")
	}
	if c.Economy.DefaultContractYears <= 0 {
		return fmt.Errorf("economy.default_contract_years must be positive")
	}
	if c.Economy.PackWageDiscount < 0 || c.Economy.PackWageDiscount > 100 {
		return fmt.Errorf("economy.pack_wage_discount must be between 0 and 100")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
