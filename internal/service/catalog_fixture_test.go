package service

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/skills-backend/internal/models"
	"github.com/ignatzorin/skills-backend/internal/repository"
)

// Programming(1) -> {Frontend(2), Backend(3)}.
func fixtureCategories() []models.Category {
	programming := int64(1)
	return []models.Category{
		{ID: 1, Slug: "programming", Name: "Programming", IsActive: true},
		{ID: 2, Slug: "frontend", Name: "Frontend", ParentID: &programming, IsActive: true},
		{ID: 3, Slug: "backend", Name: "Backend", ParentID: &programming, IsActive: true},
	}
}

const (
	pythonID  int64 = 10
	reactID   int64 = 11
	djangoID  int64 = 12
	gameDevID int64 = 13
)

func fixtureSkills() []models.Skill {
	cats := fixtureCategories()
	return []models.Skill{
		{ID: pythonID, Slug: "python", Name: "Python", Difficulty: 2, IsActive: true, CategoryID: 3, Category: cats[2]},
		{ID: reactID, Slug: "react", Name: "React", Difficulty: 3, IsActive: true, CategoryID: 2, Category: cats[1]},
		{ID: djangoID, Slug: "django", Name: "Django", Difficulty: 3, IsActive: true, CategoryID: 3, Category: cats[2]},
		{ID: gameDevID, Slug: "game-development", Name: "Game Development", Difficulty: 4, IsActive: true, CategoryID: 1, Category: cats[0]},
	}
}

// fakeCatalog каталог в памяти с той же семантикой фильтрации, что и репозиторий.
type fakeCatalog struct {
	skills []models.Skill
	err    error

	mu         sync.Mutex
	scopeCalls [][]int64
}

func (f *fakeCatalog) ListActiveSkills(_ context.Context) ([]models.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Skill
	for _, s := range f.skills {
		if s.IsActive {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ListActiveSkillsByCategories(_ context.Context, categoryIDs []int64) ([]models.Skill, error) {
	f.mu.Lock()
	f.scopeCalls = append(f.scopeCalls, append([]int64(nil), categoryIDs...))
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	in := make(map[int64]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		in[id] = true
	}
	var out []models.Skill
	for _, s := range f.skills {
		if s.IsActive && in[s.CategoryID] {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeCatalog) GetActiveSkillBySlug(_ context.Context, slug string) (*models.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.skills {
		if s.Slug == slug && s.IsActive {
			skill := s
			return &skill, nil
		}
	}
	return nil, repository.ErrSkillNotFound
}

func (f *fakeCatalog) GetSkillByID(_ context.Context, id int64) (*models.Skill, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.skills {
		if s.ID == id {
			skill := s
			return &skill, nil
		}
	}
	return nil, repository.ErrSkillNotFound
}

type mockCategoryLister struct {
	mock.Mock
}

func (m *mockCategoryLister) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Category), args.Error(1)
}

type mockLearnedSkills struct {
	mock.Mock
}

func (m *mockLearnedSkills) LearnedSkillIDs(ctx context.Context, userID int64) ([]int64, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func treeStoreWith(categories []models.Category) *CategoryTreeStore {
	lister := new(mockCategoryLister)
	lister.On("ListCategories", mock.Anything).Return(categories, nil)
	return NewCategoryTreeStore(lister, nil, time.Minute)
}

func skillNames(skills []models.Skill) []string {
	names := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, s.Name)
	}
	return names
}
