package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// --- Input DTOs ---

// CreateProductInput defines the data required to create a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	ImgURL      string
	SKU         string
	Stock       int
	CategoryID  int64
}

// UpdateProductInput defines the complete desired state of an existing product.
type UpdateProductInput struct {
	ID          int64
	Name        string
	Description string
	Price       float64
	ImgURL      string
	SKU         string
	Stock       int
	CategoryID  int64
}

// PurchaseInput identifies the product to buy by name along with the
// requested quantity.
type PurchaseInput struct {
	ProductName string
	Quantity    int
}

// ProductUsecase defines the interface for catalog and inventory operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	SearchProducts(ctx context.Context, term string) ([]*entity.Product, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	Purchase(ctx context.Context, input PurchaseInput) (*entity.Receipt, error)
}
