package service

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skills-backend/internal/catalog"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
)

// MaxRecommendations сколько навыков максимум возвращает рекомендация.
const MaxRecommendations = 3

// LearnedSkills отдаёт множество уже записанных за пользователем навыков.
type LearnedSkills interface {
	LearnedSkillIDs(ctx context.Context, userID int64) ([]int64, error)
}

// RecommendationQuery проверенные параметры запроса рекомендаций.
type RecommendationQuery struct {
	CategorySlug string
	UserID       int64
}

// ParseRecommendationQuery проверяет сырые параметры запроса.
// Оба параметра обязательны, user_id должен быть целым числом.
func ParseRecommendationQuery(categorySlug, rawUserID string) (RecommendationQuery, error) {
	categorySlug = strings.TrimSpace(categorySlug)
	rawUserID = strings.TrimSpace(rawUserID)

	if categorySlug == "" || rawUserID == "" {
		err := apperror.New(apperror.ErrCodeInvalidRequest, "Both category and user_id are required.")
		if categorySlug == "" {
			err.WithField("category", "This parameter is required.")
		}
		if rawUserID == "" {
			err.WithField("user_id", "This parameter is required.")
		}
		return RecommendationQuery{}, err
	}

	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		return RecommendationQuery{}, apperror.InvalidRequest("user_id", "Must be a valid integer.")
	}

	return RecommendationQuery{CategorySlug: categorySlug, UserID: userID}, nil
}

type RecommendationService struct {
	trees   *CategoryTreeStore
	skills  SkillCatalog
	learned LearnedSkills
}

func NewRecommendationService(trees *CategoryTreeStore, skills SkillCatalog, learned LearnedSkills) *RecommendationService {
	return &RecommendationService{trees: trees, skills: skills, learned: learned}
}

// Recommend подбирает до MaxRecommendations неосвоенных навыков из области категории.
// Область: сама категория, её сиблинги (если есть родитель) и все потомки.
// Результат отсортирован по возрастанию сложности, при равенстве по ID.
func (s *RecommendationService) Recommend(ctx context.Context, q RecommendationQuery) ([]models.Skill, error) {
	if q.CategorySlug == "" {
		return nil, apperror.InvalidRequest("category", "This parameter is required.")
	}

	tree, err := s.trees.Load(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить категории")
	}

	category, err := tree.Resolve(q.CategorySlug)
	if errors.Is(err, catalog.ErrCategoryNotFound) {
		return nil, apperror.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось найти категорию")
	}

	scope, err := tree.Scope(category.ID)
	if err != nil {
		if errors.Is(err, catalog.ErrCategoryCycle) {
			logger.Log.WithFields(logrus.Fields{
				"category": category.Slug,
				"error":    err.Error(),
			}).Error("recommendation: category tree contains a cycle")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "дерево категорий повреждено")
	}

	learnedIDs, err := s.learned.LearnedSkillIDs(ctx, q.UserID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навыки пользователя")
	}

	candidates, err := s.skills.ListActiveSkillsByCategories(ctx, scope)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навыки")
	}

	result := rankRecommendations(candidates, learnedIDs, MaxRecommendations)

	logger.Log.WithFields(logrus.Fields{
		"category":   category.Slug,
		"user_id":    q.UserID,
		"scope":      len(scope),
		"candidates": len(candidates),
		"returned":   len(result),
	}).Debug("recommendation computed")

	return result, nil
}

// rankRecommendations убирает освоенные навыки, сортирует по сложности и обрезает до limit.
func rankRecommendations(candidates []models.Skill, learnedIDs []int64, limit int) []models.Skill {
	learned := make(map[int64]struct{}, len(learnedIDs))
	for _, id := range learnedIDs {
		learned[id] = struct{}{}
	}

	out := make([]models.Skill, 0, len(candidates))
	for _, skill := range candidates {
		if !skill.IsActive {
			continue
		}
		if _, ok := learned[skill.ID]; ok {
			continue
		}
		out = append(out, skill)
	}

	sortByDifficulty(out)

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortByDifficulty(skills []models.Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		if skills[i].Difficulty != skills[j].Difficulty {
			return skills[i].Difficulty < skills[j].Difficulty
		}
		return skills[i].ID < skills[j].ID
	})
}
