package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	GoogleAPIKey string `env:"GOOGLE_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	HTTPPort     string `env:"HTTP_PORT" envDefault:"5000"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"INFO"`

	// Storage
	DataDir         string `env:"DATA_DIR" envDefault:"data"`
	FeedbackBackend string `env:"FEEDBACK_BACKEND" envDefault:"json"`
	FeedbackFile    string `env:"FEEDBACK_FILE" envDefault:"data/feedback_log.json"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:"data/feedback.db"`
	RedisURL        string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`

	// Event logs
	EventLogFile string `env:"EVENT_LOG_FILE" envDefault:"data/logs.txt"`
	ErrorLogFile string `env:"ERROR_LOG_FILE" envDefault:"data/errors.log"`
}

var AppConfig Config

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatalf("Failed to parse config: %v", err)
	}
	AppConfig = cfg
}

// Parse reads the configuration from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.FeedbackBackend = strings.ToLower(strings.TrimSpace(cfg.FeedbackBackend))
	switch cfg.FeedbackBackend {
	case "":
		cfg.FeedbackBackend = BackendJSON
	case BackendJSON, BackendSQLite, BackendMemory, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown FEEDBACK_BACKEND %q", cfg.FeedbackBackend)
	}
	return cfg, nil
}

// HasAPIKey reports whether a provider credential was supplied.
func (c Config) HasAPIKey() bool {
	return c.GoogleAPIKey != ""
}
