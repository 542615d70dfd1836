package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config groups all runtime settings. Values come from the environment
// (a .env file is loaded when present) with safe local defaults.
type Config struct {
	ServiceName string

	Database struct {
		Host     string
		Port     int
		User     string
		Password string
		Name     string
	}
	RabbitMQ struct {
		Host     string
		Port     int
		User     string
		Password string
	}
	Services struct {
		APIPort          int
		NotificationPort int
	}
	JWT struct {
		SecretKey string
	}
	MigrationsPath string
}

// Load reads the environment, applies defaults, and validates required fields.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	cfg.ServiceName = cast.ToString(getOrDefault("SERVICE_NAME", "move-market"))

	cfg.Database.Host = cast.ToString(getOrDefault("POSTGRES_HOST", "localhost"))
	cfg.Database.Port = cast.ToInt(getOrDefault("POSTGRES_PORT", 5432))
	cfg.Database.User = cast.ToString(getOrDefault("POSTGRES_USER", "postgres"))
	cfg.Database.Password = cast.ToString(getOrDefault("POSTGRES_PASSWORD", "postgres"))
	cfg.Database.Name = cast.ToString(getOrDefault("POSTGRES_DB", "movemarket"))

	cfg.RabbitMQ.Host = cast.ToString(getOrDefault("RABBITMQ_HOST", "localhost"))
	cfg.RabbitMQ.Port = cast.ToInt(getOrDefault("RABBITMQ_PORT", 5672))
	cfg.RabbitMQ.User = cast.ToString(getOrDefault("RABBITMQ_USER", "guest"))
	cfg.RabbitMQ.Password = cast.ToString(getOrDefault("RABBITMQ_PASSWORD", "guest"))

	cfg.Services.APIPort = cast.ToInt(getOrDefault("API_PORT", 3000))
	cfg.Services.NotificationPort = cast.ToInt(getOrDefault("NOTIFICATION_PORT", 3001))

	cfg.JWT.SecretKey = cast.ToString(getOrDefault("JWT_SECRET_KEY", ""))
	cfg.MigrationsPath = cast.ToString(getOrDefault("MIGRATIONS_PATH", "migrations"))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks required fields and basic ranges.
func (c *Config) validate() error {
	var problems []string

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		problems = append(problems, "POSTGRES_PORT must be in 1..65535")
	}
	if c.Database.User == "" {
		problems = append(problems, "POSTGRES_USER is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "POSTGRES_DB is required")
	}

	if c.RabbitMQ.Port <= 0 || c.RabbitMQ.Port > 65535 {
		problems = append(problems, "RABBITMQ_PORT must be in 1..65535")
	}

	if c.Services.APIPort <= 0 || c.Services.APIPort > 65535 {
		problems = append(problems, "API_PORT must be in 1..65535")
	}
	if c.Services.NotificationPort <= 0 || c.Services.NotificationPort > 65535 {
		problems = append(problems, "NOTIFICATION_PORT must be in 1..65535")
	}

	if strings.TrimSpace(c.JWT.SecretKey) == "" {
		problems = append(problems, "JWT_SECRET_KEY is required")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

func getOrDefault(key string, defaultValue any) any {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
