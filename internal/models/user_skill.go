package models

import "time"

// Proficiency уровень владения навыком от 1 до 5.
type Proficiency int

const (
	ProficiencyBeginner     Proficiency = 1
	ProficiencyIntermediate Proficiency = 2
	ProficiencyAdvanced     Proficiency = 3
	ProficiencyExpert       Proficiency = 4
	ProficiencyMastered     Proficiency = 5
)

// MinVerifiedProficiency минимальный уровень, с которым навык можно подтвердить.
const MinVerifiedProficiency = ProficiencyAdvanced

var proficiencyLabels = map[Proficiency]string{
	ProficiencyBeginner:     "Beginner",
	ProficiencyIntermediate: "Intermediate",
	ProficiencyAdvanced:     "Advanced",
	ProficiencyExpert:       "Expert",
	ProficiencyMastered:     "Mastered",
}

// Valid проверяет, что уровень входит в диапазон 1..5.
func (p Proficiency) Valid() bool {
	_, ok := proficiencyLabels[p]
	return ok
}

// Label возвращает человекочитаемое название уровня.
func (p Proficiency) Label() string {
	return proficiencyLabels[p]
}

// UserSkill запись о том, что пользователь освоил навык.
type UserSkill struct {
	ID          int64       `db:"id" json:"id"`
	UserID      int64       `db:"user_id" json:"user_id"`
	SkillID     int64       `db:"skill_id" json:"skill"`
	Proficiency Proficiency `db:"proficiency" json:"proficiency"`
	LearnedAt   *time.Time  `db:"learned_at" json:"learned_at"`
	Notes       string      `db:"notes" json:"notes"`
	IsVerified  bool        `db:"is_verified" json:"is_verified"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// SuggestionRule конфигурация правил подсказок.
// Хранится и отдаётся как есть, в ранжировании рекомендаций не участвует.
type SuggestionRule struct {
	ID                    int64   `db:"id" json:"id"`
	Name                  string  `db:"name" json:"name"`
	Description           string  `db:"description" json:"description"`
	RecommendedSkillID    *int64  `db:"recommended_skill_id" json:"recommended_skill"`
	RecommendedCategoryID *int64  `db:"recommended_category_id" json:"recommended_category"`
	RequiredAll           []int64 `db:"-" json:"required_all"`
	RequiredAny           []int64 `db:"-" json:"required_any"`
}
