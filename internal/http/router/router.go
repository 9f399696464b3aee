package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/skills-backend/internal/config"
	"github.com/ignatzorin/skills-backend/internal/http/handlers"
	"github.com/ignatzorin/skills-backend/internal/http/middleware"
	"github.com/ignatzorin/skills-backend/internal/validation"
)

// Handlers собирает набор обработчиков, которые подключает роутер.
// SeedHandler необязателен и регистрируется только в development.
type Handlers struct {
	Health          *handlers.HealthHandler
	Skills          *handlers.SkillHandler
	Categories      *handlers.CategoryHandler
	UserSkills      *handlers.UserSkillHandler
	SuggestionRules *handlers.SuggestionRuleHandler
	Seed            *handlers.SeedHandler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validation.RegisterJSONTagNames()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	if h.Health != nil {
		r.GET("/health", h.Health.Health)
	}

	api := r.Group("/api")

	if h.Seed != nil && cfg.IsDevelopment() {
		api.POST("/seed", h.Seed.Seed)
	}

	// Каталог (публичный)
	api.GET("/skills/", h.Skills.ListSkills)
	api.GET("/skills/recommend/", h.Skills.Recommend)
	api.GET("/skills/:slug/", h.Skills.GetSkill)

	if h.Categories != nil {
		api.GET("/categories/", h.Categories.ListCategories)
		api.GET("/categories/:slug/", h.Categories.GetCategory)
	}

	if h.SuggestionRules != nil {
		api.GET("/suggestion-rules/", h.SuggestionRules.ListRules)
	}

	// Журнал навыков: запись ограничена по частоте
	writeRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.GET("/user-skills/", h.UserSkills.ListUserSkills)
	api.POST("/user-skills/", writeRateLimit, h.UserSkills.CreateUserSkill)

	return r
}
