package catalog

import (
	"github.com/isms/backend/internal/domain/shared"
)

// Category groups products for navigation and reporting
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"uniqueIndex;not null"`
	Description string
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Rename updates the category name and description
func (c *Category) Rename(name, description string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CATEGORY_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.Description = description
	c.Touch()
	return nil
}

// TableName returns the database table name
func (Category) TableName() string {
	return "categories"
}
