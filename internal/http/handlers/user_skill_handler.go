package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/dto"
	"github.com/ignatzorin/skills-backend/internal/http/handlers/common"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/pkg/apperror"
	"github.com/ignatzorin/skills-backend/internal/service"
)

// UserSkillRecorder запись и чтение освоенных навыков.
type UserSkillRecorder interface {
	Create(ctx context.Context, in service.CreateUserSkillInput) (*service.UserSkillDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]models.UserSkill, error)
}

type UserSkillHandler struct {
	userSkills UserSkillRecorder
}

func NewUserSkillHandler(userSkills UserSkillRecorder) *UserSkillHandler {
	return &UserSkillHandler{userSkills: userSkills}
}

// CreateUserSkill POST /api/user-skills/
func (h *UserSkillHandler) CreateUserSkill(c *gin.Context) {
	var req dto.CreateUserSkillRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	in := service.CreateUserSkillInput{
		UserID:      *req.UserID,
		SkillID:     *req.Skill,
		Proficiency: *req.Proficiency,
		Notes:       req.Notes,
		IsVerified:  req.IsVerified,
	}
	if req.LearnedAt != nil {
		learnedAt, err := time.Parse(dto.DateLayout, *req.LearnedAt)
		if err != nil {
			_ = c.Error(apperror.Validation("learned_at", "Date has wrong format. Use YYYY-MM-DD."))
			return
		}
		in.LearnedAt = &learnedAt
	}

	detail, err := h.userSkills.Create(c.Request.Context(), in)
	if err != nil {
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, dto.NewUserSkillResponse(detail.UserSkill, &detail.Skill))
}

// ListUserSkills GET /api/user-skills/?user_id=<int>
func (h *UserSkillHandler) ListUserSkills(c *gin.Context) {
	userID, err := common.RequiredInt64Query(c, "user_id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	records, err := h.userSkills.ListByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := make([]dto.UserSkillResponse, 0, len(records))
	for _, us := range records {
		resp = append(resp, dto.NewUserSkillResponse(us, nil))
	}
	common.RespondJSON(c, http.StatusOK, resp)
}
