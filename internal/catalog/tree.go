package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ignatzorin/skills-backend/internal/models"
)

var (
	// ErrCategoryNotFound возвращается, когда категории нет в дереве.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryCycle возвращается, когда связи parent образуют цикл.
	ErrCategoryCycle = errors.New("category tree contains a cycle")
)

// Tree хранит неизменяемый снимок леса категорий.
// Узлы лежат в плоской таблице по ID, родитель хранится как необязательный ключ.
type Tree struct {
	byID     map[int64]*models.Category
	bySlug   map[string]int64
	children map[int64][]int64
	roots    []int64
	order    []int64
}

// NewTree строит дерево из плоского списка категорий.
// Дочерние узлы и корни упорядочены по имени, затем по ID.
func NewTree(categories []models.Category) *Tree {
	t := &Tree{
		byID:     make(map[int64]*models.Category, len(categories)),
		bySlug:   make(map[string]int64, len(categories)),
		children: make(map[int64][]int64),
	}

	sorted := make([]models.Category, len(categories))
	copy(sorted, categories)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	for i := range sorted {
		c := sorted[i]
		c.Children = nil
		t.byID[c.ID] = &c
		t.bySlug[c.Slug] = c.ID
		t.order = append(t.order, c.ID)
		if c.ParentID == nil {
			t.roots = append(t.roots, c.ID)
		} else {
			t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
		}
	}

	return t
}

// Len возвращает количество категорий в снимке.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Categories возвращает все категории в порядке имени.
func (t *Tree) Categories() []models.Category {
	out := make([]models.Category, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.byID[id])
	}
	return out
}

// Get возвращает категорию по ID.
func (t *Tree) Get(id int64) (models.Category, bool) {
	c, ok := t.byID[id]
	if !ok {
		return models.Category{}, false
	}
	return *c, true
}

// Resolve находит категорию по slug.
func (t *Tree) Resolve(slug string) (models.Category, error) {
	id, ok := t.bySlug[slug]
	if !ok {
		return models.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, slug)
	}
	return *t.byID[id], nil
}

// ChildIDs возвращает прямых потомков категории.
func (t *Tree) ChildIDs(id int64) []int64 {
	return append([]int64(nil), t.children[id]...)
}

// DescendantIDs обходит поддерево от прямых потомков категории, сам узел не включается.
// Обход идёт по явному стеку; повторное посещение узла означает цикл.
func (t *Tree) DescendantIDs(id int64) ([]int64, error) {
	if _, ok := t.byID[id]; !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrCategoryNotFound, id)
	}

	visited := map[int64]bool{id: true}
	var out []int64

	stack := append([]int64(nil), t.children[id]...)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[current] {
			return nil, fmt.Errorf("%w: category %d reached twice from %d", ErrCategoryCycle, current, id)
		}
		visited[current] = true
		out = append(out, current)

		stack = append(stack, t.children[current]...)
	}

	sortIDs(out)
	return out, nil
}

// SiblingIDs возвращает категории с тем же родителем (у корня это остальные корни), без самой категории.
func (t *Tree) SiblingIDs(id int64) ([]int64, error) {
	c, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrCategoryNotFound, id)
	}

	candidates := t.roots
	if c.ParentID != nil {
		candidates = t.children[*c.ParentID]
	}

	out := make([]int64, 0, len(candidates))
	for _, sibling := range candidates {
		if sibling != id {
			out = append(out, sibling)
		}
	}

	sortIDs(out)
	return out, nil
}

// Scope собирает множество категорий, релевантных запросу рекомендаций:
// сама категория, её сиблинги (только если есть родитель) и все потомки.
func (t *Tree) Scope(id int64) ([]int64, error) {
	c, ok := t.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id=%d", ErrCategoryNotFound, id)
	}

	set := map[int64]struct{}{id: {}}

	if c.ParentID != nil {
		siblings, err := t.SiblingIDs(id)
		if err != nil {
			return nil, err
		}
		for _, s := range siblings {
			set[s] = struct{}{}
		}
	}

	descendants, err := t.DescendantIDs(id)
	if err != nil {
		return nil, err
	}
	for _, d := range descendants {
		set[d] = struct{}{}
	}

	out := make([]int64, 0, len(set))
	for scopeID := range set {
		out = append(out, scopeID)
	}
	sortIDs(out)
	return out, nil
}

// Forest возвращает корневые категории с вложенными потомками.
// Узлы, недостижимые ни из одного корня, лежат на цикле: это ошибка, а не пропуск.
func (t *Tree) Forest() ([]models.Category, error) {
	visited := make(map[int64]bool, len(t.byID))
	out := make([]models.Category, 0, len(t.roots))
	for _, rootID := range t.roots {
		node, err := t.subtree(rootID, visited)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}

	if len(visited) != len(t.byID) {
		var unreached []int64
		for _, id := range t.order {
			if !visited[id] {
				unreached = append(unreached, id)
			}
		}
		sortIDs(unreached)
		return nil, fmt.Errorf("%w: categories %v are not reachable from any root", ErrCategoryCycle, unreached)
	}
	return out, nil
}

func (t *Tree) subtree(id int64, visited map[int64]bool) (models.Category, error) {
	if visited[id] {
		return models.Category{}, fmt.Errorf("%w: category %d", ErrCategoryCycle, id)
	}
	visited[id] = true

	node := *t.byID[id]
	for _, childID := range t.children[id] {
		child, err := t.subtree(childID, visited)
		if err != nil {
			return models.Category{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func sortIDs(ids []int64) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
