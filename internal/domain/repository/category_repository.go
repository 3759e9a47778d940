// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// ErrCategoryNotFound is a domain-specific error returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its identifier.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)

	// List retrieves all categories ordered by name.
	List(ctx context.Context) ([]*entity.Category, error)

	// ExistsByID reports whether a category with the given identifier exists.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// ExistsByName reports whether a category with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Create persists a new category.
	Create(ctx context.Context, category *entity.Category) error

	// Update modifies an existing category.
	Update(ctx context.Context, category *entity.Category) error

	// Delete removes a category by its identifier.
	Delete(ctx context.Context, id int64) error
}
