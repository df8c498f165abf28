package scraper

import (
	"context"
	"fmt"

	"github.com/gocolly/colly/v2"
	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

type Config struct {
	SourceURL string
	UserAgent string
}

// Scraper discovers one content item per run and records it keyed by its
// source URL, so re-runs refresh the same row instead of duplicating it.
type Scraper struct {
	store  storage.Store
	config *Config
}

func NewScraper(store storage.Store, config *Config) *Scraper {
	return &Scraper{
		store:  store,
		config: config,
	}
}

// Run fetches the configured source page, extracts title and summary and
// upserts the article. The publication state of an existing row is untouched.
func (s *Scraper) Run(ctx context.Context) error {
	body, err := s.fetch()
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", s.config.SourceURL, err)
	}

	parsed, err := ParsePage(body)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.config.SourceURL, err)
	}

	if parsed.Title == "" {
		return fmt.Errorf("no title found at %s", s.config.SourceURL)
	}

	article := models.NewArticle(parsed.Title, s.config.SourceURL, parsed.Summary)
	if err := s.store.UpsertArticle(ctx, article); err != nil {
		return fmt.Errorf("failed to store article: %w", err)
	}

	return nil
}

func (s *Scraper) fetch() ([]byte, error) {
	c := colly.NewCollector(
		colly.UserAgent(s.config.UserAgent),
		colly.MaxDepth(1),
	)

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var visitErr error
	c.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	if err := c.Visit(s.config.SourceURL); err != nil {
		return nil, err
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("empty response from %s", s.config.SourceURL)
	}

	return body, nil
}
