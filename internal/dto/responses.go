package dto

import (
	"time"

	"github.com/ignatzorin/skills-backend/internal/models"
)

// DateLayout задаёт формат даты learned_at.
const DateLayout = "2006-01-02"

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code,omitempty"`
	Fields map[string][]string `json:"fields,omitempty"`
}

// UserSkillResponse описывает запись о навыке пользователя.
type UserSkillResponse struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"user_id"`
	Skill            int64         `json:"skill"`
	SkillDetail      *models.Skill `json:"skill_detail,omitempty"`
	Proficiency      int           `json:"proficiency"`
	ProficiencyLabel string        `json:"proficiency_label"`
	LearnedAt        *string       `json:"learned_at"`
	Notes            string        `json:"notes"`
	IsVerified       bool          `json:"is_verified"`
	CreatedAt        time.Time     `json:"created_at"`
}

// NewUserSkillResponse собирает ответ; skill может быть nil.
func NewUserSkillResponse(us models.UserSkill, skill *models.Skill) UserSkillResponse {
	resp := UserSkillResponse{
		ID:               us.ID,
		UserID:           us.UserID,
		Skill:            us.SkillID,
		SkillDetail:      skill,
		Proficiency:      int(us.Proficiency),
		ProficiencyLabel: us.Proficiency.Label(),
		Notes:            us.Notes,
		IsVerified:       us.IsVerified,
		CreatedAt:        us.CreatedAt,
	}
	if us.LearnedAt != nil {
		date := us.LearnedAt.Format(DateLayout)
		resp.LearnedAt = &date
	}
	return resp
}

// SeedResponse содержит итог загрузки демо-каталога.
type SeedResponse struct {
	Message    string `json:"message"`
	Categories int    `json:"categories"`
	Skills     int    `json:"skills"`
}
