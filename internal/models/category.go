package models

import (
	"time"

	"github.com/google/uuid"
)

// NewCategory creates a new category with generated UUID and timestamps
func NewCategory(name string) *Category {
	now := time.Now()
	return &Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
