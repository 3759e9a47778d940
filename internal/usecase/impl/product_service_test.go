package impl

import (
	"context"
	"sync"
	"testing"

	"storefront/config"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service      usecase.ProductUsecase
	productRepo  *mockRepo.MockProductRepository
	categoryRepo *mockRepo.MockCategoryRepository
}

func createTestProductService(t *testing.T) productServiceFixtures {
	productRepo := mockRepo.NewMockProductRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)

	txManager := &stubTxManager{factory: &stubRepoFactory{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}}

	service := NewProductService(ProductServiceParams{
		TxManager:    txManager,
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return productServiceFixtures{
		service:      service,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.categoryRepo.On("ExistsByID", ctx, int64(3)).Return(true, nil)
	fx.productRepo.On("ExistsByName", ctx, "widget").Return(false, nil)
	fx.productRepo.On("Create", ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(args mock.Arguments) {
			product := args.Get(1).(*entity.Product)
			product.ID = 42
		}).
		Return(nil)

	product, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:       "Widget",
		Price:      9.99,
		Stock:      10,
		CategoryID: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), product.ID)
	assert.Equal(t, "Widget", product.Name)
}

func TestProductService_CreateProduct_MissingCategory(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.categoryRepo.On("ExistsByID", ctx, int64(99)).Return(false, nil)

	_, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:       "Widget",
		Price:      9.99,
		CategoryID: 99,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
	fx.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct_DuplicateName(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.categoryRepo.On("ExistsByID", ctx, int64(3)).Return(true, nil)
	fx.productRepo.On("ExistsByName", ctx, "widget").Return(true, nil)

	_, err := fx.service.CreateProduct(ctx, usecase.CreateProductInput{
		Name:       " Widget ",
		Price:      9.99,
		CategoryID: 3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductAlreadyExists)
}

func TestProductService_CreateProduct_InvalidInput(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input usecase.CreateProductInput
	}{
		{"empty name", usecase.CreateProductInput{Name: "  ", Price: 1, CategoryID: 1}},
		{"negative price", usecase.CreateProductInput{Name: "Widget", Price: -1, CategoryID: 1}},
		{"negative stock", usecase.CreateProductInput{Name: "Widget", Price: 1, Stock: -5, CategoryID: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.CreateProduct(ctx, tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}

	fx.productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_ListProductsByCategory_MissingCategory(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.categoryRepo.On("ExistsByID", ctx, int64(8)).Return(false, nil)

	_, err := fx.service.ListProductsByCategory(ctx, 8)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestProductService_Purchase_InvalidQuantity(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	for _, quantity := range []int{0, -1} {
		_, err := fx.service.Purchase(ctx, usecase.PurchaseInput{
			ProductName: "widget",
			Quantity:    quantity,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	}

	// Invalid quantities must be rejected before any storage access.
	fx.productRepo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
}

func TestProductService_Purchase_ProductNotFound(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByName", ctx, "ghost").
		Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.Purchase(ctx, usecase.PurchaseInput{
		ProductName: "Ghost",
		Quantity:    1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_Purchase_InsufficientStock(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByName", ctx, "widget").
		Return(&entity.Product{ID: 1, Name: "Widget", Stock: 2}, nil)

	_, err := fx.service.Purchase(ctx, usecase.PurchaseInput{
		ProductName: "widget",
		Quantity:    3,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
	fx.productRepo.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_Purchase_ExactStock(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	fx.productRepo.On("FindByName", ctx, "widget").
		Return(&entity.Product{ID: 1, Name: "Widget", Stock: 3}, nil)
	fx.productRepo.On("UpdateStock", ctx, int64(1), 0, 3).Return(nil)

	receipt, err := fx.service.Purchase(ctx, usecase.PurchaseInput{
		ProductName: "widget",
		Quantity:    3,
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget", receipt.ProductName)
	assert.Equal(t, 3, receipt.Quantity)
	assert.Equal(t, 0, receipt.RemainingStock)
}

func TestProductService_Purchase_RetryAfterConflict(t *testing.T) {
	fx := createTestProductService(t)
	ctx := context.Background()

	// First read sees stock 5, but the swap loses the race. The second read
	// sees stock 4 and succeeds.
	fx.productRepo.On("FindByName", ctx, "widget").
		Return(&entity.Product{ID: 1, Name: "Widget", Stock: 5}, nil).Once()
	fx.productRepo.On("UpdateStock", ctx, int64(1), 3, 5).
		Return(repository.ErrStockConflict).Once()
	fx.productRepo.On("FindByName", ctx, "widget").
		Return(&entity.Product{ID: 1, Name: "Widget", Stock: 4}, nil).Once()
	fx.productRepo.On("UpdateStock", ctx, int64(1), 2, 4).Return(nil).Once()

	receipt, err := fx.service.Purchase(ctx, usecase.PurchaseInput{
		ProductName: "widget",
		Quantity:    2,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.RemainingStock)
}

func TestProductService_Purchase_RetriesExhausted(t *testing.T) {
	productRepo := mockRepo.NewMockProductRepository(t)
	categoryRepo := mockRepo.NewMockCategoryRepository(t)

	service := NewProductService(ProductServiceParams{
		TxManager:    &stubTxManager{factory: &stubRepoFactory{productRepo: productRepo, categoryRepo: categoryRepo}},
		ProductRepo:  productRepo,
		CategoryRepo: categoryRepo,
		Config:       &config.Config{Inventory: &config.InventoryConfig{PurchaseMaxRetries: 2}},
		Logger:       newDiscardLogger(),
	})

	ctx := context.Background()
	productRepo.On("FindByName", ctx, "widget").
		Return(&entity.Product{ID: 1, Name: "Widget", Stock: 5}, nil).Times(2)
	productRepo.On("UpdateStock", ctx, int64(1), 4, 5).
		Return(repository.ErrStockConflict).Times(2)

	_, err := service.Purchase(ctx, usecase.PurchaseInput{
		ProductName: "widget",
		Quantity:    1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrStockConflict)
}

// TestProductService_Purchase_ConcurrentLastUnit races two buyers for the
// final unit of stock against a compare-and-swap backed store. Exactly one
// purchase may succeed; the loser re-reads, sees zero stock and is rejected.
func TestProductService_Purchase_ConcurrentLastUnit(t *testing.T) {
	inventory := newFakeInventoryRepo(entity.Product{ID: 1, Name: "Widget", Stock: 1})
	categoryRepo := mockRepo.NewMockCategoryRepository(t)

	service := NewProductService(ProductServiceParams{
		TxManager:    &stubTxManager{factory: &stubRepoFactory{productRepo: inventory, categoryRepo: categoryRepo}},
		ProductRepo:  inventory,
		CategoryRepo: categoryRepo,
		Logger:       newDiscardLogger(),
	})

	ctx := context.Background()
	results := make([]error, 2)

	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, results[i] = service.Purchase(ctx, usecase.PurchaseInput{
				ProductName: "widget",
				Quantity:    1,
			})
		}()
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock):
			insufficient++
		}
	}

	assert.Equal(t, 1, successes, "exactly one buyer should win the last unit")
	assert.Equal(t, 1, insufficient, "the loser should be rejected for insufficient stock")

	remaining, err := inventory.FindByName(ctx, "widget")
	require.NoError(t, err)
	assert.Equal(t, 0, remaining.Stock, "stock should never go negative")
}
