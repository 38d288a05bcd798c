package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	QueueRedis  = "redis"
	QueueMemory = "memory"
)

var ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")

type Config struct {
	DatabaseURL    string
	RedisURL       string
	Port           string
	Env            string
	Workers        int
	BatchSize      int
	Queue          string
	StorageDir     string
	ResultTTL      time.Duration
	ActiveTTL      time.Duration
	WebhookTimeout time.Duration
	UploadMaxBytes int64
	MigrationsDir  string
}

// Load reads the process environment, after merging an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       getEnv("REDIS_URL", "redis://localhost:6379/0"),
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "development"),
		Workers:        clampWorkers(parseIntEnv("IMPORT_WORKERS", 4)),
		BatchSize:      parseIntEnv("IMPORT_BATCH_SIZE", 1000),
		Queue:          strings.ToLower(getEnv("IMPORT_QUEUE", QueueRedis)),
		StorageDir:     getEnv("IMPORT_STORAGE_DIR", "./data/imports"),
		ResultTTL:      parseDurationEnv("IMPORT_RESULT_TTL", time.Hour),
		ActiveTTL:      parseDurationEnv("IMPORT_ACTIVE_TTL", 24*time.Hour),
		WebhookTimeout: parseDurationEnv("WEBHOOK_TIMEOUT", 5*time.Second),
		UploadMaxBytes: int64(parseIntEnv("UPLOAD_MAX_BYTES", 50<<20)),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "db/migrations"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 1000
	}
	if cfg.Queue != QueueMemory {
		cfg.Queue = QueueRedis
	}

	return cfg, nil
}

func clampWorkers(workers int) int {
	if workers <= 0 {
		return 1
	}
	if workers > 10 {
		return 10
	}
	return workers
}

func parseIntEnv(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
