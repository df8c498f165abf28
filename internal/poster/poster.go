package poster

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prolixy/prolixy/internal/models"
	"github.com/prolixy/prolixy/internal/storage"
)

// Channel delivers one article to the external publication target.
type Channel interface {
	Publish(ctx context.Context, article *models.Article) error
}

// Report summarizes one poster run.
type Report struct {
	Attempted int
	Published int
}

// Poster delivers a bounded batch of unpublished articles, oldest first, and
// stamps each one published immediately after delivery. A crash mid-batch
// therefore never re-delivers items that already went out.
type Poster struct {
	store     storage.Store
	channel   Channel
	batchSize int
}

func NewPoster(store storage.Store, channel Channel, batchSize int) *Poster {
	return &Poster{
		store:     store,
		channel:   channel,
		batchSize: batchSize,
	}
}

// Run processes one batch. Delivery failures are skipped so the article stays
// unpublished and is retried on the next run; storage failures abort the run.
func (p *Poster) Run(ctx context.Context) (Report, error) {
	var report Report

	articles, err := p.store.ListUnpublishedArticles(ctx, p.batchSize)
	if err != nil {
		return report, fmt.Errorf("failed to select unpublished articles: %w", err)
	}

	for _, article := range articles {
		report.Attempted++

		if err := p.channel.Publish(ctx, article); err != nil {
			log.Printf("Delivery failed for %s: %v", article.SourceURL, err)
			continue
		}

		published, err := p.store.MarkArticlePublished(ctx, article.ID, time.Now())
		if err != nil {
			return report, fmt.Errorf("failed to mark article %s published: %w", article.ID, err)
		}
		if !published {
			// A concurrent run won the conditional update.
			log.Printf("Article %s was already published, skipping", article.ID)
			continue
		}

		report.Published++
	}

	return report, nil
}
