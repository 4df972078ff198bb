package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds all configuration for the video bot
type Config struct {
	Telegram  TelegramConfig
	Storage   StorageConfig
	Transcode TranscodeConfig
	Logging   LoggingConfig
	Metrics   MetricsConfig
	Service   ServiceConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string
}

// StorageConfig holds temporary file storage configuration
type StorageConfig struct {
	TempDir string
}

// TranscodeConfig holds ffmpeg transcoding configuration
type TranscodeConfig struct {
	FFmpegPath string
	Workers    int
	QueueSize  int
	Timeout    time.Duration
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string
}

// MetricsConfig holds metrics server configuration.
// An empty Port disables the metrics HTTP server.
type MetricsConfig struct {
	Port string
}

// ServiceConfig holds service configuration
type ServiceConfig struct {
	Name string
}

// Result provides config parts for fx dependency injection using fx.Out pattern
type Result struct {
	fx.Out

	Config    *Config
	Telegram  *TelegramConfig
	Storage   *StorageConfig
	Transcode *TranscodeConfig
	Logging   *LoggingConfig
	Metrics   *MetricsConfig
	Service   *ServiceConfig
}

// Out loads configuration and returns Result for fx injection
func Out() (Result, error) {
	cfg, err := Load()
	if err != nil {
		return Result{}, err
	}

	return Result{
		Config:    cfg,
		Telegram:  &cfg.Telegram,
		Storage:   &cfg.Storage,
		Transcode: &cfg.Transcode,
		Logging:   &cfg.Logging,
		Metrics:   &cfg.Metrics,
		Service:   &cfg.Service,
	}, nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfg := &Config{
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		},
		Storage: StorageConfig{
			TempDir: getEnv("TEMP_DIR", os.TempDir()),
		},
		Transcode: TranscodeConfig{
			FFmpegPath: getEnv("FFMPEG_PATH", "ffmpeg"),
			Workers:    getEnvInt("TRANSCODE_WORKERS", 2),
			QueueSize:  getEnvInt("TRANSCODE_QUEUE_SIZE", 16),
			Timeout:    getEnvDuration("TRANSCODE_TIMEOUT", 10*time.Minute),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Port: getEnv("METRICS_PORT", "9090"),
		},
		Service: ServiceConfig{
			Name: getEnv("SERVICE_NAME", "video-bot"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	if c.Transcode.Workers < 1 {
		return fmt.Errorf("TRANSCODE_WORKERS must be at least 1")
	}

	if c.Transcode.QueueSize < 1 {
		return fmt.Errorf("TRANSCODE_QUEUE_SIZE must be at least 1")
	}

	return nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt gets integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration gets duration environment variable with default value.
// A zero duration disables the corresponding timeout.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
