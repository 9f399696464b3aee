package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/repository/common"
)

var ErrUserSkillExists = fmt.Errorf("user skill: %w", common.ErrAlreadyExists)

const userSkillColumns = `id, user_id, skill_id, proficiency, learned_at, notes, is_verified, created_at`

// UserSkillRepository журнал освоенных пользователями навыков.
// Уникальность пары (user_id, skill_id) обеспечивает ограничение в БД.
type UserSkillRepository struct {
	db sqlx.ExtContext
}

func NewUserSkillRepository(db sqlx.ExtContext) *UserSkillRepository {
	return &UserSkillRepository{db: db}
}

// LearnedSkillIDs возвращает ID всех навыков, записанных за пользователем.
func (r *UserSkillRepository) LearnedSkillIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	err := sqlx.SelectContext(ctx, r.db, &ids, `
		SELECT skill_id FROM user_skills WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("learned skill ids: %w", err)
	}
	return ids, nil
}

// Exists сообщает, записан ли уже навык за пользователем.
func (r *UserSkillRepository) Exists(ctx context.Context, userID, skillID int64) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, r.db, &exists, `
		SELECT EXISTS (SELECT 1 FROM user_skills WHERE user_id = $1 AND skill_id = $2)
	`, userID, skillID)
	if err != nil {
		return false, fmt.Errorf("user skill exists: %w", err)
	}
	return exists, nil
}

// Create сохраняет запись и заполняет ID и created_at.
func (r *UserSkillRepository) Create(ctx context.Context, us *models.UserSkill) error {
	row := r.db.QueryRowxContext(ctx, `
		INSERT INTO user_skills (user_id, skill_id, proficiency, learned_at, notes, is_verified)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, us.UserID, us.SkillID, int(us.Proficiency), us.LearnedAt, us.Notes, us.IsVerified)

	if err := row.Scan(&us.ID, &us.CreatedAt); err != nil {
		switch {
		case common.IsUniqueViolation(err):
			return ErrUserSkillExists
		case common.IsForeignKeyViolation(err):
			return ErrSkillNotFound
		}
		return fmt.Errorf("create user skill: %w", err)
	}
	return nil
}

// ListByUser возвращает записи пользователя, новые первыми.
func (r *UserSkillRepository) ListByUser(ctx context.Context, userID int64) ([]models.UserSkill, error) {
	var records []models.UserSkill
	err := sqlx.SelectContext(ctx, r.db, &records, `
		SELECT `+userSkillColumns+`
		FROM user_skills WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user skills: %w", err)
	}
	return records, nil
}
