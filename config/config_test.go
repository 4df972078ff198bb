package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_MissingToken(t *testing.T) {
	os.Unsetenv("TELEGRAM_BOT_TOKEN")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when TELEGRAM_BOT_TOKEN is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	defer os.Unsetenv("TELEGRAM_BOT_TOKEN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Transcode.FFmpegPath != "ffmpeg" {
		t.Errorf("Expected default FFmpegPath=ffmpeg, got %s", cfg.Transcode.FFmpegPath)
	}

	if cfg.Transcode.Workers != 2 {
		t.Errorf("Expected default Workers=2, got %d", cfg.Transcode.Workers)
	}

	if cfg.Transcode.Timeout != 10*time.Minute {
		t.Errorf("Expected default Timeout=10m, got %v", cfg.Transcode.Timeout)
	}

	if cfg.Storage.TempDir == "" {
		t.Error("Expected TempDir to default to the OS temp dir")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
}

func TestLoad_Overrides(t *testing.T) {
	os.Setenv("TELEGRAM_BOT_TOKEN", "test-token-123")
	os.Setenv("TRANSCODE_WORKERS", "4")
	os.Setenv("TRANSCODE_TIMEOUT", "30s")
	os.Setenv("FFMPEG_PATH", "/usr/local/bin/ffmpeg")
	defer func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("TRANSCODE_WORKERS")
		os.Unsetenv("TRANSCODE_TIMEOUT")
		os.Unsetenv("FFMPEG_PATH")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Transcode.Workers != 4 {
		t.Errorf("Expected Workers=4, got %d", cfg.Transcode.Workers)
	}

	if cfg.Transcode.Timeout != 30*time.Second {
		t.Errorf("Expected Timeout=30s, got %v", cfg.Transcode.Timeout)
	}

	if cfg.Transcode.FFmpegPath != "/usr/local/bin/ffmpeg" {
		t.Errorf("Expected overridden FFmpegPath, got %s", cfg.Transcode.FFmpegPath)
	}
}

func TestValidate_InvalidWorkers(t *testing.T) {
	cfg := &Config{
		Telegram:  TelegramConfig{BotToken: "token"},
		Transcode: TranscodeConfig{Workers: 0, QueueSize: 16},
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for zero workers")
	}
}
