package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/dto"
	"github.com/ignatzorin/skills-backend/internal/service"
)

// CatalogSeeder загружает демонстрационный каталог.
type CatalogSeeder interface {
	SeedCatalog(ctx context.Context) (service.SeedSummary, error)
}

// SeedHandler обрабатывает запросы для загрузки демо-данных.
type SeedHandler struct {
	seeder CatalogSeeder
}

// NewSeedHandler создаёт новый seed handler.
func NewSeedHandler(seeder CatalogSeeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed загружает демо-каталог.
// POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	summary, err := h.seeder.SeedCatalog(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.SeedResponse{
		Message:    "Seed data generated successfully",
		Categories: summary.Categories,
		Skills:     summary.Skills,
	})
}
