package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skills-backend/internal/dto"
	"github.com/ignatzorin/skills-backend/internal/http/middleware"
	"github.com/ignatzorin/skills-backend/internal/logger"
	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/repository"
	"github.com/ignatzorin/skills-backend/internal/service"
	"github.com/ignatzorin/skills-backend/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Discard()
	validation.RegisterJSONTagNames()
}

// memStore каталог и журнал навыков в памяти.
type memStore struct {
	categories []models.Category
	skills     []models.Skill

	mu      sync.Mutex
	records []models.UserSkill
	nextID  int64
}

func newMemStore() *memStore {
	programming := int64(1)
	categories := []models.Category{
		{ID: 1, Slug: "programming", Name: "Programming", IsActive: true},
		{ID: 2, Slug: "frontend", Name: "Frontend", ParentID: &programming, IsActive: true},
		{ID: 3, Slug: "backend", Name: "Backend", ParentID: &programming, IsActive: true},
	}
	skills := []models.Skill{
		{ID: 10, Slug: "python", Name: "Python", Difficulty: 2, IsActive: true, CategoryID: 3, Category: categories[2]},
		{ID: 11, Slug: "react", Name: "React", Difficulty: 3, IsActive: true, CategoryID: 2, Category: categories[1]},
		{ID: 12, Slug: "django", Name: "Django", Difficulty: 3, IsActive: true, CategoryID: 3, Category: categories[2]},
		{ID: 13, Slug: "game-development", Name: "Game Development", Difficulty: 4, IsActive: true, CategoryID: 1, Category: categories[0]},
		{ID: 14, Slug: "flash", Name: "Flash", Difficulty: 1, IsActive: false, CategoryID: 2, Category: categories[1]},
	}
	return &memStore{categories: categories, skills: skills, nextID: 1}
}

func (m *memStore) ListCategories(context.Context) ([]models.Category, error) {
	return m.categories, nil
}

func (m *memStore) ListActiveSkills(context.Context) ([]models.Skill, error) {
	var out []models.Skill
	for _, s := range m.skills {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) ListActiveSkillsByCategories(_ context.Context, ids []int64) ([]models.Skill, error) {
	in := make(map[int64]bool)
	for _, id := range ids {
		in[id] = true
	}
	var out []models.Skill
	for _, s := range m.skills {
		if s.IsActive && in[s.CategoryID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memStore) GetActiveSkillBySlug(_ context.Context, slug string) (*models.Skill, error) {
	for _, s := range m.skills {
		if s.Slug == slug && s.IsActive {
			skill := s
			return &skill, nil
		}
	}
	return nil, repository.ErrSkillNotFound
}

func (m *memStore) GetSkillByID(_ context.Context, id int64) (*models.Skill, error) {
	for _, s := range m.skills {
		if s.ID == id {
			skill := s
			return &skill, nil
		}
	}
	return nil, repository.ErrSkillNotFound
}

func (m *memStore) LearnedSkillIDs(_ context.Context, userID int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []int64
	for _, r := range m.records {
		if r.UserID == userID {
			ids = append(ids, r.SkillID)
		}
	}
	return ids, nil
}

func (m *memStore) Exists(_ context.Context, userID, skillID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == userID && r.SkillID == skillID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, us *models.UserSkill) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.UserID == us.UserID && r.SkillID == us.SkillID {
			return repository.ErrUserSkillExists
		}
	}
	us.ID = m.nextID
	us.CreatedAt = time.Now().Add(time.Duration(m.nextID) * time.Second)
	m.nextID++
	m.records = append(m.records, *us)
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID int64) ([]models.UserSkill, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.UserSkill
	for _, r := range m.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func newTestRouter(store *memStore) *gin.Engine {
	trees := service.NewCategoryTreeStore(store, nil, 0)
	skillSvc := service.NewSkillService(store, trees)
	recommendSvc := service.NewRecommendationService(trees, store, store)
	userSkillSvc := service.NewUserSkillService(store, store)

	skillHandler := NewSkillHandler(skillSvc, recommendSvc)
	categoryHandler := NewCategoryHandler(skillSvc)
	userSkillHandler := NewUserSkillHandler(userSkillSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	api := r.Group("/api")
	api.GET("/skills/", skillHandler.ListSkills)
	api.GET("/skills/recommend/", skillHandler.Recommend)
	api.GET("/skills/:slug/", skillHandler.GetSkill)
	api.GET("/categories/", categoryHandler.ListCategories)
	api.GET("/categories/:slug/", categoryHandler.GetCategory)
	api.POST("/user-skills/", userSkillHandler.CreateUserSkill)
	api.GET("/user-skills/", userSkillHandler.ListUserSkills)
	return r
}

func doRequest(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func decodeSkillNames(t *testing.T, w *httptest.ResponseRecorder) []string {
	t.Helper()
	var skills []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &skills), w.Body.String())
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}

func seedUserSkill(t *testing.T, store *memStore, userID, skillID int64) {
	t.Helper()
	require.NoError(t, store.Create(context.Background(), &models.UserSkill{
		UserID: userID, SkillID: skillID, Proficiency: models.ProficiencyBeginner,
	}))
}
