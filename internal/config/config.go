package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	OpenAIAPIKey   string
	Model          string
	MaxTokens      int
	FeedsFile      string
	OutputDir      string
	TelegramToken  string
	TelegramChatID int64
}

var ErrMissingAPIKey = errors.New("OPENAI_API_KEY not set")

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		MaxTokens:      getEnvAsInt("MAX_TOKENS", 4000),
		FeedsFile:      getEnv("RSS_FEEDS_FILE", "rss_feeds.json"),
		OutputDir:      getEnv("OUTPUT_DIR", "output"),
		TelegramToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID: getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
	}

	if cfg.OpenAIAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
