package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ignatzorin/skills-backend/internal/models"
)

type SuggestionRuleRepository struct {
	db sqlx.ExtContext
}

func NewSuggestionRuleRepository(db sqlx.ExtContext) *SuggestionRuleRepository {
	return &SuggestionRuleRepository{db: db}
}

type suggestionRuleRow struct {
	models.SuggestionRule
	RequiredAllIDs pq.Int64Array `db:"required_all"`
	RequiredAnyIDs pq.Int64Array `db:"required_any"`
}

// List возвращает все правила вместе с наборами обязательных категорий.
func (r *SuggestionRuleRepository) List(ctx context.Context) ([]models.SuggestionRule, error) {
	var rows []suggestionRuleRow
	err := sqlx.SelectContext(ctx, r.db, &rows, `
		SELECT r.id, r.name, r.description, r.recommended_skill_id, r.recommended_category_id,
		       COALESCE((SELECT array_agg(a.category_id ORDER BY a.category_id)
		                 FROM suggestion_rule_required_all a WHERE a.rule_id = r.id), '{}') AS required_all,
		       COALESCE((SELECT array_agg(a.category_id ORDER BY a.category_id)
		                 FROM suggestion_rule_required_any a WHERE a.rule_id = r.id), '{}') AS required_any
		FROM suggestion_rules r
		ORDER BY r.id
	`)
	if err != nil {
		return nil, fmt.Errorf("list suggestion rules: %w", err)
	}

	rules := make([]models.SuggestionRule, 0, len(rows))
	for _, row := range rows {
		rule := row.SuggestionRule
		rule.RequiredAll = append([]int64{}, row.RequiredAllIDs...)
		rule.RequiredAny = append([]int64{}, row.RequiredAnyIDs...)
		rules = append(rules, rule)
	}
	return rules, nil
}
