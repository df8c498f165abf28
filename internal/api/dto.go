package api

import (
	"time"

	"github.com/prolixy/prolixy/internal/models"
)

type articleDTO struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	SourceURL string  `json:"sourceUrl"`
	Summary   *string `json:"summary"`
	PostedAt  *string `json:"postedAt"`
}

type categoryDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type articleListResponse struct {
	Items []articleDTO `json:"items"`
}

type categoryListResponse struct {
	Items []categoryDTO `json:"items"`
}

type categoryItemResponse struct {
	Item categoryDTO `json:"item"`
}

type categoryRequest struct {
	Name string `json:"name"`
}

type deleteCategoryResponse struct {
	ID string `json:"id"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// ErrorResponse is the structured body returned alongside every error status.
type ErrorResponse struct {
	Message string `json:"message"`
}

func toArticleDTO(article *models.Article) articleDTO {
	dto := articleDTO{
		ID:        article.ID.String(),
		Title:     article.Title,
		SourceURL: article.SourceURL,
		Summary:   article.Summary,
	}

	if article.PostedAt != nil {
		postedAt := article.PostedAt.UTC().Format(time.RFC3339)
		dto.PostedAt = &postedAt
	}

	return dto
}

func toArticleDTOs(articles []*models.Article) []articleDTO {
	dtos := make([]articleDTO, 0, len(articles))
	for _, article := range articles {
		dtos = append(dtos, toArticleDTO(article))
	}
	return dtos
}

func toCategoryDTO(category *models.Category) categoryDTO {
	return categoryDTO{
		ID:        category.ID.String(),
		Name:      category.Name,
		CreatedAt: category.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toCategoryDTOs(categories []*models.Category) []categoryDTO {
	dtos := make([]categoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, toCategoryDTO(category))
	}
	return dtos
}
