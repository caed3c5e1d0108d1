package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/config"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/delivery"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/fetch"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/notes"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/registry"
	"github.com/Asi0Flammeus/rss-2-podcast-note/internal/session"
)

func main() {
	fmt.Println("=== RSS Podcast Note Generator ===")

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			fmt.Println("Error: OPENAI_API_KEY not found in environment or .env file")
		} else {
			fmt.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	feeds := registry.Load(cfg.FeedsFile)
	fetcher := fetch.NewFetcher()
	generator := notes.NewGenerator(cfg.OpenAIAPIKey, cfg.Model, cfg.MaxTokens)

	driver := session.NewDriver(feeds, fetcher, generator, cfg.OutputDir, os.Stdin, os.Stdout)

	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err := delivery.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram delivery disabled: %v", err)
		} else {
			driver.WithNotifier(notifier)
		}
	}

	if err := driver.Run(ctx); err != nil && !errors.Is(err, io.EOF) {
		log.Fatalf("Session error: %v", err)
	}
}
