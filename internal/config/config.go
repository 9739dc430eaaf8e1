package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type LoggerConfig struct {
	LogLevel string
}

type PreviewConfig struct {
	Timeout        time.Duration
	OEmbedEndpoint string
	AvatarEndpoint string
}

type AppConfig struct {
	Environment string
	Domain      string
	PSQL        PostgresConfig
	CSRF        struct {
		Key    string
		Secure bool
	}
	Server struct {
		Address string
	}
	Logging LoggerConfig
	Preview PreviewConfig
}

func LoadEnvConfig(envFiles ...string) (*AppConfig, error) {
	var cfg AppConfig
	err := godotenv.Load(envFiles...)
	if err != nil {
		return nil, fmt.Errorf("loading .env file: %w", err)
	}

	cfg.Domain = GetEnvOrDie("DOMAIN")
	cfg.Environment = GetEnvOrDie("ENVIRONMENT")

	// DB
	cfg.PSQL = DefaultPostgresConfig()

	// CSRF
	cfg.CSRF.Key = GetEnvOrDie("CSRF_TOKEN")
	cfg.CSRF.Secure = GetEnvOrDie("CSRF_SECURE") == "true"

	// Server
	cfg.Server.Address = GetEnvOrDie("SERVER_ADDRESS")

	cfg.Logging = LoggerConfig{
		LogLevel: GetEnvWithDefault("LOG_LEVEL", "info"),
	}

	timeoutSecs, err := strconv.Atoi(GetEnvWithDefault("PREVIEW_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, fmt.Errorf("parsing PREVIEW_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Preview = PreviewConfig{
		Timeout:        time.Duration(timeoutSecs) * time.Second,
		OEmbedEndpoint: GetEnvWithDefault("PREVIEW_OEMBED_ENDPOINT", "https://publish.twitter.com/oembed"),
		AvatarEndpoint: GetEnvWithDefault("PREVIEW_AVATAR_ENDPOINT", "https://unavatar.io/twitter"),
	}

	return &cfg, nil
}

func GetEnvWithDefault(envName, defaultValue string) string {
	if value := os.Getenv(envName); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvOrDie(envName string) string {
	value := os.Getenv(envName)
	if value == "" {
		panic("Environment variable " + envName + " is not set")
	}
	return value
}
