package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultEndpoint is the homework status API polled each cycle.
	DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

	defaultPollInterval = 600 * time.Second
	defaultHTTPTimeout  = 30 * time.Second
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64
	Endpoint       string
	PollInterval   time.Duration
	HTTPTimeout    time.Duration
	LogLevel       string
	LogFile        string
	Environment    string
	MetricsAddr    string // empty disables the ops HTTP server
	CronSpecDigest string // empty disables the daily digest job
}

// Load reads configuration from environment variables and .env file (if present).
// The three credentials are required; a missing one is the only fatal,
// non-retried failure in the whole process.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.PracticumToken = os.Getenv("PRACTICUM_TOKEN")
	if cfg.PracticumToken == "" {
		return nil, fmt.Errorf("PRACTICUM_TOKEN is not set")
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if chatIDStr == "" {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}
	cfg.TelegramChatID = chatID

	cfg.Endpoint = os.Getenv("ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}

	cfg.PollInterval = defaultPollInterval
	if intervalStr := os.Getenv("POLL_INTERVAL"); intervalStr != "" {
		seconds, err := strconv.Atoi(intervalStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL: %q (want positive seconds)", intervalStr)
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}

	cfg.HTTPTimeout = defaultHTTPTimeout
	if timeoutStr := os.Getenv("HTTP_TIMEOUT"); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %q (want positive seconds)", timeoutStr)
		}
		cfg.HTTPTimeout = time.Duration(seconds) * time.Second
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.LogFile = os.Getenv("LOG_FILE")

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.MetricsAddr = os.Getenv("METRICS_LISTEN_ADDR")

	cfg.CronSpecDigest = os.Getenv("CRON_SPEC_DAILY_DIGEST")

	return cfg, nil
}
