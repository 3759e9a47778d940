package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// CreateCategoryInput defines the data required to create a new category.
type CreateCategoryInput struct {
	Name string
}

// UpdateCategoryInput defines the data required to rename a category.
type UpdateCategoryInput struct {
	ID   int64
	Name string
}

// CategoryUsecase defines the interface for category management operations.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*entity.Category, error)
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
