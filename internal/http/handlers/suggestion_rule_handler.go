package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/models"
)

// SuggestionRuleLister отдаёт сохранённые правила подсказок.
type SuggestionRuleLister interface {
	List(ctx context.Context) ([]models.SuggestionRule, error)
}

// SuggestionRuleHandler отдаёт правила только для чтения; в рекомендациях они не используются.
type SuggestionRuleHandler struct {
	rules SuggestionRuleLister
}

func NewSuggestionRuleHandler(rules SuggestionRuleLister) *SuggestionRuleHandler {
	return &SuggestionRuleHandler{rules: rules}
}

// ListRules GET /api/suggestion-rules/
func (h *SuggestionRuleHandler) ListRules(c *gin.Context) {
	rules, err := h.rules.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	if rules == nil {
		rules = []models.SuggestionRule{}
	}
	c.JSON(http.StatusOK, rules)
}
