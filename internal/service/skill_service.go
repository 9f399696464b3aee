package service

import (
	"context"
	"errors"

	"github.com/ignatzorin/skills-backend/internal/catalog"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skills-backend/internal/repository"
)

// SkillCatalog операции чтения каталога навыков.
type SkillCatalog interface {
	ListActiveSkills(ctx context.Context) ([]models.Skill, error)
	ListActiveSkillsByCategories(ctx context.Context, categoryIDs []int64) ([]models.Skill, error)
	GetActiveSkillBySlug(ctx context.Context, slug string) (*models.Skill, error)
	GetSkillByID(ctx context.Context, id int64) (*models.Skill, error)
}

// CategoryDetail категория с прямыми потомками и её активными навыками.
type CategoryDetail struct {
	Category models.Category `json:"category"`
	Skills   []models.Skill  `json:"skills"`
}

type SkillService struct {
	skills SkillCatalog
	trees  *CategoryTreeStore
}

func NewSkillService(skills SkillCatalog, trees *CategoryTreeStore) *SkillService {
	return &SkillService{skills: skills, trees: trees}
}

// ListActive возвращает активные навыки (порядок: категория, сложность, имя).
func (s *SkillService) ListActive(ctx context.Context) ([]models.Skill, error) {
	skills, err := s.skills.ListActiveSkills(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навыки")
	}
	if skills == nil {
		skills = []models.Skill{}
	}
	return skills, nil
}

// GetActiveBySlug возвращает активный навык по slug.
func (s *SkillService) GetActiveBySlug(ctx context.Context, slug string) (*models.Skill, error) {
	skill, err := s.skills.GetActiveSkillBySlug(ctx, slug)
	if errors.Is(err, repository.ErrSkillNotFound) {
		return nil, apperror.ErrSkillNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навык")
	}
	return skill, nil
}

// CategoryForest возвращает дерево категорий с вложенными подкатегориями.
func (s *SkillService) CategoryForest(ctx context.Context) ([]models.Category, error) {
	tree, err := s.trees.Load(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категории")
	}
	forest, err := tree.Forest()
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryCycle) {
			logger.Log.WithError(err).Error("category forest: category tree contains a cycle")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "дерево категорий повреждено")
	}
	return forest, nil
}

// CategoryDetail возвращает категорию по slug с прямыми потомками и её навыками.
func (s *SkillService) CategoryDetail(ctx context.Context, slug string) (*CategoryDetail, error) {
	tree, err := s.trees.Load(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категории")
	}

	category, err := tree.Resolve(slug)
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		return nil, apperror.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось найти категорию")
	}

	for _, childID := range tree.ChildIDs(category.ID) {
		if child, ok := tree.Get(childID); ok {
			category.Children = append(category.Children, child)
		}
	}

	skills, err := s.skills.ListActiveSkillsByCategories(ctx, []int64{category.ID})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навыки категории")
	}
	sortByDifficulty(skills)
	if skills == nil {
		skills = []models.Skill{}
	}

	return &CategoryDetail{Category: category, Skills: skills}, nil
}
