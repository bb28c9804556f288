package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Security SecurityConfig
	Logging  LoggingConfig
	SeedDemo bool
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// Addr is the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// SecurityConfig holds the form token settings.
type SecurityConfig struct {
	SecretKey string
	TokenTTL  time.Duration
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")
	return configFromEnv(os.Getenv)
}

// configFromEnv builds a Config from getenv and validates it. Every problem
// is reported together.
func configFromEnv(getenv func(string) string) (Config, error) {
	var cfg Config
	var problems []string

	cfg.Database.URL = getenv("DATABASE_URL")
	if cfg.Database.URL == "" {
		cfg.Database.Host = envOrDefault(getenv, "DB_HOST", "localhost")
		cfg.Database.User = getenv("DB_USER")
		cfg.Database.Password = getenv("DB_PASSWORD")
		cfg.Database.Name = getenv("DB_NAME")
		cfg.Database.SSLMode = envOrDefault(getenv, "DB_SSLMODE", "disable")

		port, err := strconv.Atoi(envOrDefault(getenv, "DB_PORT", "5432"))
		if err != nil {
			problems = append(problems, "DB_PORT must be a number")
		}
		cfg.Database.Port = port

		if cfg.Database.User != "" && cfg.Database.Name != "" {
			cfg.Database.URL = fmt.Sprintf(
				"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
				cfg.Database.User,
				cfg.Database.Password,
				cfg.Database.Host,
				cfg.Database.Port,
				cfg.Database.Name,
				cfg.Database.SSLMode,
			)
		}
	}

	port, err := strconv.Atoi(envOrDefault(getenv, "PORT", "5000"))
	if err != nil {
		problems = append(problems, "PORT must be a number")
	}
	cfg.Server.Port = port

	cfg.Security.SecretKey = getenv("SECRET_KEY")
	cfg.Security.TokenTTL = time.Hour
	if raw := getenv("CSRF_TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			problems = append(problems, "CSRF_TOKEN_TTL must be a positive duration such as 1h")
		} else {
			cfg.Security.TokenTTL = ttl
		}
	}

	cfg.Logging.Level = strings.ToLower(envOrDefault(getenv, "LOG_LEVEL", "info"))
	cfg.Logging.Format = strings.ToLower(envOrDefault(getenv, "LOG_FORMAT", "json"))

	if raw := getenv("SEED_DEMO_DATA"); raw != "" {
		seed, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, "SEED_DEMO_DATA must be true or false")
		}
		cfg.SeedDemo = seed
	}

	problems = append(problems, cfg.validate()...)
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return cfg, nil
}

func (c Config) validate() []string {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_USER and DB_NAME)")
	}
	if c.Security.SecretKey == "" {
		problems = append(problems, "SECRET_KEY is required")
	} else if len(c.Security.SecretKey) < 16 {
		problems = append(problems, "SECRET_KEY must be at least 16 characters")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	return problems
}

func envOrDefault(getenv func(string) string, key, fallback string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return fallback
}
