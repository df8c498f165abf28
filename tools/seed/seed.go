// Seeds the database with an initial article so fresh deployments have
// content to render before the first scraper run.
package main

import (
	"context"
	"log"

	"github.com/prolixy/prolixy/config"
	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.NewStore(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	if err := store.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database tables: %v", err)
	}

	summary := "Initial seeded article."
	article := models.NewArticle("Welcome to Prolixy", "https://example.com/prolixy", &summary)

	if err := store.UpsertArticle(context.Background(), article); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	log.Println("Seed completed")
}
