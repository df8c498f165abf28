package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prolixy/prolixy/internal/apperr"
	"github.com/prolixy/prolixy/internal/service"
)

const serviceName = "api"

type Handler struct {
	articles   *service.ArticleService
	categories *service.CategoryService
}

func NewHandler(articles *service.ArticleService, categories *service.CategoryService) *Handler {
	return &Handler{
		articles:   articles,
		categories: categories,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Service:   serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) ListArticles(c *gin.Context) {
	articles, err := h.articles.GetLatest(c.Request.Context(), c.Query("limit"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, articleListResponse{Items: toArticleDTOs(articles)})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryListResponse{Items: toCategoryDTOs(categories)})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid category payload."})
		return
	}

	category, err := h.categories.Create(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, categoryItemResponse{Item: toCategoryDTO(category)})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid category id."})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid category payload."})
		return
	}

	category, err := h.categories.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categoryItemResponse{Item: toCategoryDTO(category)})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid category id."})
		return
	}

	deletedID, err := h.categories.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, deleteCategoryResponse{ID: deletedID.String()})
}

// respondError maps the service error kinds onto HTTP statuses. Anything
// outside the closed set is logged and reported as a 500.
func respondError(c *gin.Context, err error) {
	var validationErr *apperr.ValidationError
	var notFoundErr *apperr.NotFoundError
	var conflictErr *apperr.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: notFoundErr.Message})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, ErrorResponse{Message: conflictErr.Message})
	default:
		log.Printf("Unhandled API error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
