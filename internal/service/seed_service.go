package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/repository"
	"github.com/ignatzorin/skills-backend/internal/repository/common"
)

// CatalogWriter сохраняет категории и навыки (upsert по slug).
type CatalogWriter interface {
	SaveCategory(ctx context.Context, category *models.Category) error
	SaveSkill(ctx context.Context, skill *models.Skill) error
}

// SeedSummary сколько записей загружено.
type SeedSummary struct {
	Categories int `json:"categories"`
	Skills     int `json:"skills"`
}

type seedCategory struct {
	Slug        string
	Name        string
	Description string
	Parent      string
}

type seedSkill struct {
	Name        string
	Description string
	Category    string
	Difficulty  int
	Hours       float64
}

// Родители идут раньше детей.
var demoCategories = []seedCategory{
	{Slug: "programming", Name: "Programming", Description: "Software development"},
	{Slug: "frontend", Name: "Frontend", Description: "Browser and UI development", Parent: "programming"},
	{Slug: "backend", Name: "Backend", Description: "Servers, APIs and data", Parent: "programming"},
}

var demoSkills = []seedSkill{
	{Name: "Python", Description: "General-purpose language", Category: "backend", Difficulty: 2, Hours: 40},
	{Name: "Django", Description: "Python web framework", Category: "backend", Difficulty: 3, Hours: 60},
	{Name: "React", Description: "UI component library", Category: "frontend", Difficulty: 3, Hours: 50},
	{Name: "Game Development", Description: "Engines, loops and rendering", Category: "programming", Difficulty: 4, Hours: 120},
}

// SeedService загружает демонстрационный каталог.
type SeedService struct {
	db      *sqlx.DB
	catalog *repository.CatalogRepository
	trees   *CategoryTreeStore
}

// NewSeedService создаёт новый сервис для загрузки данных.
func NewSeedService(db *sqlx.DB, catalog *repository.CatalogRepository, trees *CategoryTreeStore) *SeedService {
	return &SeedService{db: db, catalog: catalog, trees: trees}
}

// SeedCatalog загружает демо-каталог одной транзакцией и сбрасывает кэш дерева.
func (s *SeedService) SeedCatalog(ctx context.Context) (SeedSummary, error) {
	var summary SeedSummary
	err := common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		summary, err = seedCatalog(ctx, s.catalog.WithTx(tx))
		return err
	})
	if err != nil {
		return SeedSummary{}, fmt.Errorf("seed service: %w", err)
	}

	if err := s.trees.Invalidate(ctx); err != nil {
		logger.Log.WithError(err).Warn("seed service: failed to invalidate category cache")
	}

	logger.Log.WithFields(logrus.Fields{
		"categories": summary.Categories,
		"skills":     summary.Skills,
	}).Info("demo catalog seeded")

	return summary, nil
}

func seedCatalog(ctx context.Context, w CatalogWriter) (SeedSummary, error) {
	var summary SeedSummary
	ids := make(map[string]int64, len(demoCategories))

	for _, c := range demoCategories {
		category := models.Category{
			Slug:        c.Slug,
			Name:        c.Name,
			Description: c.Description,
			IsActive:    true,
		}
		if c.Parent != "" {
			parentID, ok := ids[c.Parent]
			if !ok {
				return SeedSummary{}, fmt.Errorf("category %s: parent %s is not seeded yet", c.Slug, c.Parent)
			}
			category.ParentID = &parentID
		}
		if err := w.SaveCategory(ctx, &category); err != nil {
			return SeedSummary{}, err
		}
		ids[c.Slug] = category.ID
		summary.Categories++
	}

	for _, sk := range demoSkills {
		categoryID, ok := ids[sk.Category]
		if !ok {
			return SeedSummary{}, fmt.Errorf("skill %s: unknown category %s", sk.Name, sk.Category)
		}
		hours := sk.Hours
		skill := models.Skill{
			Name:               sk.Name,
			Description:        sk.Description,
			Difficulty:         sk.Difficulty,
			EstimatedTimeHours: &hours,
			IsActive:           true,
			CategoryID:         categoryID,
		}
		if err := w.SaveSkill(ctx, &skill); err != nil {
			return SeedSummary{}, err
		}
		summary.Skills++
	}

	return summary, nil
}
