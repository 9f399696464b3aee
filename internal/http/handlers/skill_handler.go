package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/dto"
	"github.com/ignatzorin/skills-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/service"
)

// SkillReader чтение активных навыков.
type SkillReader interface {
	ListActive(ctx context.Context) ([]models.Skill, error)
	GetActiveBySlug(ctx context.Context, slug string) (*models.Skill, error)
}

// Recommender подбирает навыки для пользователя.
type Recommender interface {
	Recommend(ctx context.Context, q service.RecommendationQuery) ([]models.Skill, error)
}

type SkillHandler struct {
	skills      SkillReader
	recommender Recommender
}

func NewSkillHandler(skills SkillReader, recommender Recommender) *SkillHandler {
	return &SkillHandler{skills: skills, recommender: recommender}
}

// ListSkills GET /api/skills/
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skills.ListActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, skills)
}

// GetSkill GET /api/skills/:slug/
func (h *SkillHandler) GetSkill(c *gin.Context) {
	skill, err := h.skills.GetActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, skill)
}

// Recommend GET /api/skills/recommend/?category=<slug>&user_id=<int>
func (h *SkillHandler) Recommend(c *gin.Context) {
	var req dto.RecommendationQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		_ = c.Error(err)
		return
	}

	query, err := service.ParseRecommendationQuery(req.Category, req.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	skills, err := h.recommender.Recommend(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, skills)
}
