package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/skills-backend/internal/models"
)

func ptr(v int64) *int64 { return &v }

// Programming(1) -> Frontend(2), Backend(3) -> APIs(4); Design(5) и Music(6) корневые.
func sampleTree() *Tree {
	return NewTree([]models.Category{
		{ID: 1, Slug: "programming", Name: "Programming"},
		{ID: 2, Slug: "frontend", Name: "Frontend", ParentID: ptr(1)},
		{ID: 3, Slug: "backend", Name: "Backend", ParentID: ptr(1)},
		{ID: 4, Slug: "apis", Name: "APIs", ParentID: ptr(3)},
		{ID: 5, Slug: "design", Name: "Design"},
		{ID: 6, Slug: "music", Name: "Music"},
	})
}

func TestTree_Resolve(t *testing.T) {
	tree := sampleTree()

	c, err := tree.Resolve("backend")
	require.NoError(t, err)
	assert.Equal(t, int64(3), c.ID)

	_, err = tree.Resolve("unknown-slug")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestTree_DescendantIDs(t *testing.T) {
	tree := sampleTree()

	ids, err := tree.DescendantIDs(1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3, 4}, ids)

	ids, err = tree.DescendantIDs(4)
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = tree.DescendantIDs(99)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestTree_SiblingIDs(t *testing.T) {
	tree := sampleTree()

	ids, err := tree.SiblingIDs(2)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, ids)

	ids, err = tree.SiblingIDs(5)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 6}, ids, "корни считаются сиблингами друг друга")

	ids, err = tree.SiblingIDs(4)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTree_Scope(t *testing.T) {
	tree := sampleTree()

	t.Run("root with children", func(t *testing.T) {
		ids, err := tree.Scope(1)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4}, ids)
	})

	t.Run("isolated root is alone", func(t *testing.T) {
		ids, err := tree.Scope(6)
		require.NoError(t, err)
		assert.Equal(t, []int64{6}, ids)
	})

	t.Run("child includes siblings and descendants but not parent", func(t *testing.T) {
		ids, err := tree.Scope(3)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3, 4}, ids)
		assert.NotContains(t, ids, int64(1))
	})

	t.Run("leaf includes siblings but not their descendants", func(t *testing.T) {
		ids, err := tree.Scope(2)
		require.NoError(t, err)
		assert.Equal(t, []int64{2, 3}, ids)
		assert.NotContains(t, ids, int64(4), "потомок сиблинга Backend")
	})

	t.Run("third level leaf excludes all ancestors", func(t *testing.T) {
		ids, err := tree.Scope(4)
		require.NoError(t, err)
		assert.Equal(t, []int64{4}, ids)
		assert.NotContains(t, ids, int64(3))
		assert.NotContains(t, ids, int64(1))
	})
}

func TestTree_CycleIsDetected(t *testing.T) {
	// a -> b -> c -> a
	tree := NewTree([]models.Category{
		{ID: 1, Slug: "a", Name: "A", ParentID: ptr(3)},
		{ID: 2, Slug: "b", Name: "B", ParentID: ptr(1)},
		{ID: 3, Slug: "c", Name: "C", ParentID: ptr(2)},
	})

	_, err := tree.DescendantIDs(1)
	assert.ErrorIs(t, err, ErrCategoryCycle)

	_, err = tree.Scope(2)
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestTree_SelfParentIsCycle(t *testing.T) {
	tree := NewTree([]models.Category{{ID: 7, Slug: "self", Name: "Self", ParentID: ptr(7)}})

	_, err := tree.DescendantIDs(7)
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestTree_DeepChainDoesNotRecurse(t *testing.T) {
	const depth = 50000
	categories := make([]models.Category, 0, depth)
	categories = append(categories, models.Category{ID: 1, Slug: "n1", Name: "n1"})
	for i := int64(2); i <= depth; i++ {
		categories = append(categories, models.Category{ID: i, Slug: "n", Name: "n", ParentID: ptr(i - 1)})
	}
	tree := NewTree(categories)

	ids, err := tree.DescendantIDs(1)
	require.NoError(t, err)
	assert.Len(t, ids, depth-1)
}

func TestTree_Forest(t *testing.T) {
	forest, err := sampleTree().Forest()
	require.NoError(t, err)

	require.Len(t, forest, 3)
	assert.Equal(t, "Design", forest[0].Name)
	assert.Equal(t, "Programming", forest[2].Name)
	require.Len(t, forest[2].Children, 2)
	assert.Equal(t, "Backend", forest[2].Children[0].Name)
	require.Len(t, forest[2].Children[0].Children, 1)
	assert.Equal(t, "APIs", forest[2].Children[0].Children[0].Name)
}

func TestTree_ForestReportsDetachedCycle(t *testing.T) {
	// Root отдельно, A и B ссылаются друг на друга
	tree := NewTree([]models.Category{
		{ID: 1, Slug: "root", Name: "Root"},
		{ID: 2, Slug: "a", Name: "A", ParentID: ptr(3)},
		{ID: 3, Slug: "b", Name: "B", ParentID: ptr(2)},
	})

	forest, err := tree.Forest()

	assert.ErrorIs(t, err, ErrCategoryCycle)
	assert.Contains(t, err.Error(), "[2 3]")
	assert.Nil(t, forest)
}
