// Package config reads the sales API settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	// StockName and DirectoryName override the names given by the seed.
	StockName       string
	DirectoryName   string
	SeedFile        string
	RedisAddr       string
	KafkaBrokers    []string
	KafkaTopic      string
	OTelEnabled     bool
	OTelEndpoint    string
	OTelEnvironment string
	LogLevel        string
	ShutdownTimeout time.Duration
	CacheTimeout    time.Duration
}

// Load builds a Config from environment variables, applying defaults for
// unset keys. Malformed booleans and durations are reported as errors.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		StockName:       os.Getenv("STOCK_NAME"),
		DirectoryName:   os.Getenv("DIRECTORY_NAME"),
		SeedFile:        os.Getenv("SEED_FILE"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaBrokers:    splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "orders.closed"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelEnvironment: getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	enabled, err := strconv.ParseBool(getEnv("OTEL_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("config: OTEL_ENABLED: %w", err)
	}
	cfg.OTelEnabled = enabled

	if cfg.ShutdownTimeout, err = positiveDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.CacheTimeout, err = positiveDuration("CACHE_TIMEOUT", "500ms"); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func positiveDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
