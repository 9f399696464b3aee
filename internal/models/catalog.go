package models

import (
	"time"
)

// Category представляет узел дерева категорий навыков.
type Category struct {
	ID          int64      `db:"id" json:"id"`
	Slug        string     `db:"slug" json:"slug"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	ParentID    *int64     `db:"parent_id" json:"parent"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	Children    []Category `db:"-" json:"children,omitempty"`
}

// IsRoot сообщает, что у категории нет родителя.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}

// Skill представляет навык каталога. Category заполняется JOIN-ом в репозитории.
type Skill struct {
	ID                 int64     `db:"id" json:"id"`
	Slug               string    `db:"slug" json:"slug"`
	Name               string    `db:"name" json:"name"`
	Description        string    `db:"description" json:"description"`
	Difficulty         int       `db:"difficulty" json:"difficulty"`
	EstimatedTimeHours *float64  `db:"estimated_time_hours" json:"estimated_time_hours"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	CategoryID         int64     `db:"category_id" json:"-"`
	Category           Category  `db:"category" json:"category"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
