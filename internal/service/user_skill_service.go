package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skills-backend/internal/repository"
	"github.com/ignatzorin/skills-backend/internal/validation"
)

// UserSkillLedger хранилище записей об освоенных навыках.
type UserSkillLedger interface {
	Exists(ctx context.Context, userID, skillID int64) (bool, error)
	Create(ctx context.Context, us *models.UserSkill) error
	ListByUser(ctx context.Context, userID int64) ([]models.UserSkill, error)
}

// SkillLookup ищет навык по ID.
type SkillLookup interface {
	GetSkillByID(ctx context.Context, id int64) (*models.Skill, error)
}

// CreateUserSkillInput данные для новой записи.
type CreateUserSkillInput struct {
	UserID      int64
	SkillID     int64
	Proficiency int
	LearnedAt   *time.Time
	Notes       string
	IsVerified  bool
}

// UserSkillDetail запись вместе с данными навыка.
type UserSkillDetail struct {
	models.UserSkill
	Skill models.Skill
}

type UserSkillService struct {
	ledger UserSkillLedger
	skills SkillLookup
}

func NewUserSkillService(ledger UserSkillLedger, skills SkillLookup) *UserSkillService {
	return &UserSkillService{ledger: ledger, skills: skills}
}

// Create проверяет запись и сохраняет её.
// Порядок проверок: поля, существование навыка, повтор пары (user_id, skill), затем
// правило подтверждения. Повтор всегда даёт DUPLICATE_RECORD, даже при других ошибках.
// Гонку между проверкой и вставкой закрывает уникальное ограничение в БД.
func (s *UserSkillService) Create(ctx context.Context, in CreateUserSkillInput) (*UserSkillDetail, error) {
	if err := validateUserSkillFields(in); err != nil {
		return nil, err
	}

	skill, err := s.skills.GetSkillByID(ctx, in.SkillID)
	if errors.Is(err, repository.ErrSkillNotFound) {
		return nil, unknownSkillError(in.SkillID)
	}
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить навык")
	}

	exists, err := s.ledger.Exists(ctx, in.UserID, in.SkillID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить навык пользователя")
	}
	if exists {
		return nil, apperror.ErrDuplicateUserSkill(repository.ErrUserSkillExists)
	}

	if err := validation.ValidateVerified(in.IsVerified, in.Proficiency); err != nil {
		return nil, apperror.Validation(apperror.NonFieldErrors, err.Error())
	}

	record := models.UserSkill{
		UserID:      in.UserID,
		SkillID:     in.SkillID,
		Proficiency: models.Proficiency(in.Proficiency),
		LearnedAt:   in.LearnedAt,
		Notes:       in.Notes,
		IsVerified:  in.IsVerified,
	}

	if err := s.ledger.Create(ctx, &record); err != nil {
		switch {
		case errors.Is(err, repository.ErrUserSkillExists):
			return nil, apperror.ErrDuplicateUserSkill(err)
		case errors.Is(err, repository.ErrSkillNotFound):
			// навык удалили между проверкой и вставкой
			return nil, unknownSkillError(in.SkillID)
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить навык пользователя")
	}

	logger.Log.WithFields(logrus.Fields{
		"user_id":     record.UserID,
		"skill_id":    record.SkillID,
		"proficiency": int(record.Proficiency),
		"verified":    record.IsVerified,
	}).Info("user skill recorded")

	return &UserSkillDetail{UserSkill: record, Skill: *skill}, nil
}

// ListByUser возвращает записи пользователя, новые первыми.
func (s *UserSkillService) ListByUser(ctx context.Context, userID int64) ([]models.UserSkill, error) {
	records, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось получить навыки пользователя")
	}
	if records == nil {
		records = []models.UserSkill{}
	}
	return records, nil
}

func validateUserSkillFields(in CreateUserSkillInput) error {
	if in.UserID < 0 {
		return apperror.Validation("user_id", "Ensure this value is greater than or equal to 0.")
	}
	if err := validation.ValidateProficiency(in.Proficiency); err != nil {
		return apperror.Validation("proficiency", err.Error())
	}
	if err := validation.ValidateNotes(in.Notes); err != nil {
		return apperror.Validation("notes", err.Error())
	}
	return nil
}

func unknownSkillError(id int64) *apperror.AppError {
	return apperror.Validation("skill", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
}
