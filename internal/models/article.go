package models

import (
	"time"

	"github.com/google/uuid"
)

// NewArticle creates a new unpublished article with generated UUID and timestamps
func NewArticle(title, sourceURL string, summary *string) *Article {
	now := time.Now()
	return &Article{
		ID:        uuid.New(),
		Title:     title,
		SourceURL: sourceURL,
		Summary:   summary,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsPublished returns true once the article has been delivered to the channel
func (a *Article) IsPublished() bool {
	return a.PostedAt != nil
}
