package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/service"
)

// CategoryReader чтение дерева категорий.
type CategoryReader interface {
	CategoryForest(ctx context.Context) ([]models.Category, error)
	CategoryDetail(ctx context.Context, slug string) (*service.CategoryDetail, error)
}

type CategoryHandler struct {
	catalog CategoryReader
}

func NewCategoryHandler(catalog CategoryReader) *CategoryHandler {
	return &CategoryHandler{catalog: catalog}
}

// ListCategories GET /api/categories/
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalog.CategoryForest(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory GET /api/categories/:slug/
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	detail, err := h.catalog.CategoryDetail(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
