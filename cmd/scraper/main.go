package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prolixy/prolixy/config"
	"github.com/prolixy/prolixy/internal/scraper"
	"github.com/prolixy/prolixy/internal/storage"
	"github.com/prolixy/prolixy/internal/utils"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Scraper failed: %v", err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Scraper.SourceURL == "" {
		return fmt.Errorf("scraper.sourceurl is required")
	}

	logger, err := utils.NewJobLogger("scraper")
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

	logger.LogInfo("Scraping %s", cfg.Scraper.SourceURL)

	s := scraper.NewScraper(store, &scraper.Config{
		SourceURL: cfg.Scraper.SourceURL,
		UserAgent: cfg.Scraper.UserAgent,
	})

	if err := s.Run(context.Background()); err != nil {
		logger.LogError("Scraper run failed: %v", err)
		return err
	}

	logger.LogInfo("Scraper completed successfully")
	return nil
}
