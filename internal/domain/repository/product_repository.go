// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"
)

// Domain-specific errors for product persistence.
var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrStockConflict is returned when a compare-and-swap stock update lost
	// the race against a concurrent writer and must be retried.
	ErrStockConflict = errors.New("stock update conflict")
)

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product, including its category.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// FindByName retrieves the unique product whose normalized name matches.
	FindByName(ctx context.Context, normalizedName string) (*entity.Product, error)

	// List retrieves all products ordered by name.
	List(ctx context.Context) ([]*entity.Product, error)

	// ListByCategoryID retrieves all products in a category, ordered by name.
	ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error)

	// Search retrieves products whose name or description contains the term.
	Search(ctx context.Context, term string) ([]*entity.Product, error)

	// ExistsByName reports whether a product with the normalized name exists.
	ExistsByName(ctx context.Context, normalizedName string) (bool, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update modifies an existing product. Stock is not written through this
	// path; the compare-and-swap UpdateStock owns all stock mutations.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes a product by its identifier.
	Delete(ctx context.Context, id int64) error

	// UpdateStock atomically sets the product's stock to newStock, but only if
	// the current stored value still equals expectedStock. A concurrent change
	// in between surfaces as ErrStockConflict and nothing is written.
	UpdateStock(ctx context.Context, id int64, newStock, expectedStock int) error
}
