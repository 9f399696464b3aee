package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/pkg/slug"
	"github.com/ignatzorin/skills-backend/internal/repository/common"
)

var (
	ErrSkillNotFound    = fmt.Errorf("skill: %w", common.ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category: %w", common.ErrNotFound)
	ErrEmptySlug        = fmt.Errorf("slug: %w", common.ErrInvalidInput)
)

const categoryColumns = `id, slug, name, description, parent_id, is_active`

// skillSelect выбирает навык вместе с его категорией (вложенная структура sqlx).
const skillSelect = `
	SELECT s.id, s.slug, s.name, s.description, s.difficulty, s.estimated_time_hours,
	       s.is_active, s.category_id, s.created_at, s.updated_at,
	       c.id AS "category.id", c.slug AS "category.slug", c.name AS "category.name",
	       c.description AS "category.description", c.parent_id AS "category.parent_id",
	       c.is_active AS "category.is_active"
	FROM skills s
	JOIN skill_categories c ON c.id = s.category_id`

type CatalogRepository struct {
	db sqlx.ExtContext
}

func NewCatalogRepository(db sqlx.ExtContext) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции.
func (r *CatalogRepository) WithTx(tx *sqlx.Tx) *CatalogRepository {
	return &CatalogRepository{db: tx}
}

// ListCategories возвращает все категории, включая неактивные: дерево строится по полному набору связей.
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := sqlx.SelectContext(ctx, r.db, &categories, `
		SELECT `+categoryColumns+`
		FROM skill_categories ORDER BY name, id
	`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// SaveCategory вставляет категорию или обновляет существующую с тем же slug.
// Пустой slug выводится из имени.
func (r *CatalogRepository) SaveCategory(ctx context.Context, category *models.Category) error {
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	if category.Slug == "" {
		return ErrEmptySlug
	}

	err := sqlx.GetContext(ctx, r.db, &category.ID, `
		INSERT INTO skill_categories (slug, name, description, parent_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description,
		    parent_id = EXCLUDED.parent_id, is_active = EXCLUDED.is_active
		RETURNING id
	`, category.Slug, category.Name, category.Description, category.ParentID, category.IsActive)
	if err != nil {
		return fmt.Errorf("save category %s: %w", category.Slug, err)
	}
	return nil
}

// SaveSkill вставляет навык или обновляет существующий с тем же slug. Slug после создания не меняется.
func (r *CatalogRepository) SaveSkill(ctx context.Context, skill *models.Skill) error {
	if skill.Slug == "" {
		skill.Slug = slug.Make(skill.Name)
	}
	if skill.Slug == "" {
		return ErrEmptySlug
	}

	row := r.db.QueryRowxContext(ctx, `
		INSERT INTO skills (slug, name, description, difficulty, estimated_time_hours, is_active, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (slug) DO UPDATE
		SET name = EXCLUDED.name, description = EXCLUDED.description, difficulty = EXCLUDED.difficulty,
		    estimated_time_hours = EXCLUDED.estimated_time_hours, is_active = EXCLUDED.is_active,
		    category_id = EXCLUDED.category_id, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, skill.Slug, skill.Name, skill.Description, skill.Difficulty, skill.EstimatedTimeHours, skill.IsActive, skill.CategoryID)
	if err := row.Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt); err != nil {
		if common.IsForeignKeyViolation(err) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("save skill %s: %w", skill.Slug, err)
	}
	return nil
}

// ListActiveSkills возвращает активные навыки в порядке: имя категории, сложность, имя.
func (r *CatalogRepository) ListActiveSkills(ctx context.Context) ([]models.Skill, error) {
	var skills []models.Skill
	err := sqlx.SelectContext(ctx, r.db, &skills, skillSelect+`
		WHERE s.is_active = TRUE
		ORDER BY c.name, s.difficulty, s.name, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list active skills: %w", err)
	}
	return skills, nil
}

// ListActiveSkillsByCategories возвращает активные навыки из указанных категорий. Порядок не гарантируется.
func (r *CatalogRepository) ListActiveSkillsByCategories(ctx context.Context, categoryIDs []int64) ([]models.Skill, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	var skills []models.Skill
	err := sqlx.SelectContext(ctx, r.db, &skills, skillSelect+`
		WHERE s.is_active = TRUE AND s.category_id = ANY($1)
	`, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("list skills by categories: %w", err)
	}
	return skills, nil
}

// GetActiveSkillBySlug возвращает активный навык по slug.
func (r *CatalogRepository) GetActiveSkillBySlug(ctx context.Context, skillSlug string) (*models.Skill, error) {
	return r.getSkill(ctx, skillSelect+` WHERE s.slug = $1 AND s.is_active = TRUE`, skillSlug)
}

// GetSkillByID возвращает навык по ID независимо от флага активности.
func (r *CatalogRepository) GetSkillByID(ctx context.Context, id int64) (*models.Skill, error) {
	return r.getSkill(ctx, skillSelect+` WHERE s.id = $1`, id)
}

func (r *CatalogRepository) getSkill(ctx context.Context, query string, arg interface{}) (*models.Skill, error) {
	var skill models.Skill
	if err := sqlx.GetContext(ctx, r.db, &skill, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSkillNotFound
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &skill, nil
}
