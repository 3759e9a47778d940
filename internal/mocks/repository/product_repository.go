package repository

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

// NewMockProductRepository creates a mock whose expectations are asserted on
// test cleanup.
func NewMockProductRepository(t *testing.T) *MockProductRepository {
	m := &MockProductRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	args := m.Called(ctx, id)

	var product *entity.Product
	if v := args.Get(0); v != nil {
		product = v.(*entity.Product)
	}

	return product, args.Error(1)
}

func (m *MockProductRepository) FindByName(ctx context.Context, normalizedName string) (*entity.Product, error) {
	args := m.Called(ctx, normalizedName)

	var product *entity.Product
	if v := args.Get(0); v != nil {
		product = v.(*entity.Product)
	}

	return product, args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)

	var products []*entity.Product
	if v := args.Get(0); v != nil {
		products = v.([]*entity.Product)
	}

	return products, args.Error(1)
}

func (m *MockProductRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	args := m.Called(ctx, categoryID)

	var products []*entity.Product
	if v := args.Get(0); v != nil {
		products = v.([]*entity.Product)
	}

	return products, args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	args := m.Called(ctx, term)

	var products []*entity.Product
	if v := args.Get(0); v != nil {
		products = v.([]*entity.Product)
	}

	return products, args.Error(1)
}

func (m *MockProductRepository) ExistsByName(ctx context.Context, normalizedName string) (bool, error) {
	args := m.Called(ctx, normalizedName)

	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *entity.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, id int64, newStock, expectedStock int) error {
	args := m.Called(ctx, id, newStock, expectedStock)

	return args.Error(0)
}
