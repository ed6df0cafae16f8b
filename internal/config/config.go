package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort int
	DataDir    string

	StoreDriver  string // "json" or "sqlite"
	DatabasePath string

	InferenceProvider string // "ollama" or "openai"
	OllamaURL         string
	InferenceModel    string
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	InferenceTimeout  time.Duration

	StripeSecretKey      string
	StripePublishableKey string
	PaymentCurrency      string

	JWTSecret      string
	AllowedOrigins []string

	LogLevel  string
	LogFormat string

	BackupPath      string
	BackupSchedule  string // cron spec; empty disables scheduled backups
	BackupRetention int
}

// UsersFile is the path of the users document for the JSON store.
func (c *Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// QuizHistoryFile is the path of the quiz history document for the JSON store.
func (c *Config) QuizHistoryFile() string {
	return filepath.Join(c.DataDir, "quiz_history.json")
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory, if present, is loaded first; values
// already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "5002"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("INFERENCE_TIMEOUT", "120s"))
	if err != nil {
		return nil, fmt.Errorf("invalid INFERENCE_TIMEOUT: %w", err)
	}

	retention, err := strconv.Atoi(getEnv("BACKUP_RETENTION", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKUP_RETENTION: %w", err)
	}

	cfg := &Config{
		ServerPort:           port,
		DataDir:              getEnv("DATA_DIR", "."),
		StoreDriver:          strings.ToLower(getEnv("STORE_DRIVER", "json")),
		DatabasePath:         getEnv("DATABASE_PATH", "./quiz.db"),
		InferenceProvider:    strings.ToLower(getEnv("INFERENCE_PROVIDER", "ollama")),
		OllamaURL:            getEnv("OLLAMA_URL", "http://localhost:11434"),
		InferenceModel:       getEnv("INFERENCE_MODEL", "gemma:2b"),
		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", ""),
		InferenceTimeout:     timeout,
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		PaymentCurrency:      strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		AllowedOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "console"),
		BackupPath:           getEnv("BACKUP_PATH", "./backups"),
		BackupSchedule:       getEnv("BACKUP_SCHEDULE", "@hourly"),
		BackupRetention:      retention,
	}

	switch cfg.StoreDriver {
	case "json", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.InferenceProvider {
	case "ollama", "openai":
	default:
		return nil, fmt.Errorf("unsupported INFERENCE_PROVIDER %q", cfg.InferenceProvider)
	}

	return cfg, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
