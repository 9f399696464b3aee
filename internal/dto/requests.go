package dto

// CreateUserSkillRequest описывает тело POST /api/user-skills/.
// Указатели отличают отсутствующее поле от нулевого значения.
type CreateUserSkillRequest struct {
	UserID      *int64  `json:"user_id" binding:"required,gte=0"`
	Skill       *int64  `json:"skill" binding:"required"`
	Proficiency *int    `json:"proficiency" binding:"required"`
	LearnedAt   *string `json:"learned_at" binding:"omitempty,datetime=2006-01-02"`
	Notes       string  `json:"notes" binding:"max=2000"`
	IsVerified  bool    `json:"is_verified"`
}

// RecommendationQuery описывает параметры GET /api/skills/recommend/.
// Проверяются вручную: user_id должен приходить строкой, чтобы отличить "abc" от пустого значения.
type RecommendationQuery struct {
	Category string `form:"category"`
	UserID   string `form:"user_id"`
}
