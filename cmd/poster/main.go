package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prolixy/prolixy/config"
	"github.com/prolixy/prolixy/internal/poster"
	"github.com/prolixy/prolixy/internal/storage"
	"github.com/prolixy/prolixy/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Poster failed: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Poster.BotToken == "" || cfg.Poster.ChannelID == "" {
		return fmt.Errorf("poster.bottoken and poster.channelid are required")
	}

	logger, err := utils.NewJobLogger("poster")
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database tables: %w", err)
	}

	channel := poster.NewTelegramChannel(cfg.Poster.BotToken, cfg.Poster.ChannelID)
	p := poster.NewPoster(store, channel, cfg.Poster.BatchSize)

	report, err := p.Run(context.Background())
	if err != nil {
		logger.LogError("Poster run failed after attempting %d article(s): %v", report.Attempted, err)
		return err
	}

	logger.LogInfo("Poster completed. Attempted %d, published %d article(s)", report.Attempted, report.Published)
	return nil
}
