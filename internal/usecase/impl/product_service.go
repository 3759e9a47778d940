package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultPurchaseMaxRetries = 3

// productService implements the ProductUsecase interface.
type productService struct {
	txManager          repository.TransactionManager
	productRepo        repository.ProductRepository
	categoryRepo       repository.CategoryRepository
	purchaseMaxRetries int
	logger             *slog.Logger
}

// ProductServiceParams holds dependencies for productService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	purchaseMaxRetries := defaultPurchaseMaxRetries
	if params.Config != nil && params.Config.Inventory != nil && params.Config.Inventory.PurchaseMaxRetries > 0 {
		purchaseMaxRetries = params.Config.Inventory.PurchaseMaxRetries
	}

	return &productService{
		txManager:          params.TxManager,
		productRepo:        params.ProductRepo,
		categoryRepo:       params.CategoryRepo,
		purchaseMaxRetries: purchaseMaxRetries,
		logger:             params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct creates a new product after checking that its category exists
// and its name is unique. Both checks and the insert run in one transaction.
func (srv *productService) CreateProduct(ctx context.Context, input usecase.CreateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImgURL:      input.ImgURL,
		SKU:         input.SKU,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		categoryRepo := repoFactory.CategoryRepo()

		exists, err := categoryRepo.ExistsByID(ctx, input.CategoryID)
		if err != nil {
			return errors.Wrap(err, "failed to check category existence")
		}
		if !exists {
			return domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist for new product")
		}

		taken, err := productRepo.ExistsByName(ctx, entity.NormalizeProductName(input.Name))
		if err != nil {
			return errors.Wrap(err, "failed to check product name uniqueness")
		}
		if taken {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("product name already in use")
		}

		return productRepo.Create(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Product created", slog.Int64("productID", product.ID))

	return product, nil
}

// GetProduct retrieves a single product by its identifier.
func (srv *productService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListProducts retrieves all products.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// ListProductsByCategory retrieves all products in a category. A missing
// category is reported as not found rather than an empty list.
func (srv *productService) ListProductsByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	exists, err := srv.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check category existence")
	}
	if !exists {
		return nil, domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist")
	}

	products, err := srv.productRepo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products by category")
	}

	return products, nil
}

// SearchProducts retrieves products whose name or description matches the term.
func (srv *productService) SearchProducts(ctx context.Context, term string) ([]*entity.Product, error) {
	products, err := srv.productRepo.Search(ctx, term)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

// UpdateProduct replaces an existing product's attributes.
func (srv *productService) UpdateProduct(ctx context.Context, input usecase.UpdateProductInput) (*entity.Product, error) {
	if err := validateProductInput(input.Name, input.Price, input.Stock); err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImgURL:      input.ImgURL,
		SKU:         input.SKU,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		categoryRepo := repoFactory.CategoryRepo()

		existing, err := productRepo.FindByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found for update")
			}

			return errors.Wrap(err, "failed to load product for update")
		}

		exists, err := categoryRepo.ExistsByID(ctx, input.CategoryID)
		if err != nil {
			return errors.Wrap(err, "failed to check category existence")
		}
		if !exists {
			return domainerrors.ErrCategoryNotFound.WrapMessage("category does not exist for updated product")
		}

		// Renaming onto another product's name is a conflict.
		newName := entity.NormalizeProductName(input.Name)
		if newName != entity.NormalizeProductName(existing.Name) {
			taken, err := productRepo.ExistsByName(ctx, newName)
			if err != nil {
				return errors.Wrap(err, "failed to check product name uniqueness")
			}
			if taken {
				return domainerrors.ErrProductAlreadyExists.WrapMessage("product name already in use")
			}
		}

		return productRepo.Update(ctx, product)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update product", slog.Int64("productID", input.ID), slog.Any("error", err))

		return nil, err
	}

	return srv.GetProduct(ctx, input.ID)
}

// DeleteProduct removes a product by its identifier.
func (srv *productService) DeleteProduct(ctx context.Context, id int64) error {
	if err := srv.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return domainerrors.ErrProductNotFound.WrapMessage("product not found for delete")
		}

		return errors.Wrap(err, "failed to delete product")
	}

	srv.log(ctx).Debug("Product deleted", slog.Int64("productID", id))

	return nil
}

// Purchase atomically decrements a product's stock by the requested quantity
// and returns a receipt. The decrement is a compare-and-swap on the stock
// column; on a lost race the product is re-read and the swap retried a
// bounded number of times.
func (srv *productService) Purchase(ctx context.Context, input usecase.PurchaseInput) (*entity.Receipt, error) {
	if input.Quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("purchase quantity must be positive")
	}

	name := entity.NormalizeProductName(input.ProductName)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("product name must not be empty")
	}

	for attempt := 0; attempt < srv.purchaseMaxRetries; attempt++ {
		product, err := srv.productRepo.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found for purchase")
			}

			return nil, errors.Wrap(err, "failed to find product for purchase")
		}

		if product.Stock < input.Quantity {
			srv.log(ctx).Warn("Purchase rejected, insufficient stock",
				slog.String("product", product.Name),
				slog.Int("stock", product.Stock),
				slog.Int("quantity", input.Quantity),
			)

			return nil, domainerrors.ErrInsufficientStock.WrapMessage("not enough stock for purchase")
		}

		remaining := product.Stock - input.Quantity

		err = srv.productRepo.UpdateStock(ctx, product.ID, remaining, product.Stock)
		if err == nil {
			srv.log(ctx).Info("Purchase completed",
				slog.String("product", product.Name),
				slog.Int("quantity", input.Quantity),
				slog.Int("remainingStock", remaining),
			)

			return &entity.Receipt{
				ProductName:    product.Name,
				Quantity:       input.Quantity,
				RemainingStock: remaining,
			}, nil
		}

		if errors.Is(err, repository.ErrStockConflict) {
			// Someone else changed the stock between the read and the swap.
			srv.log(ctx).Debug("Stock swap lost race, retrying",
				slog.String("product", product.Name),
				slog.Int("attempt", attempt+1),
			)

			continue
		}

		return nil, errors.Wrap(err, "failed to update stock for purchase")
	}

	srv.log(ctx).Warn("Purchase retries exhausted", slog.String("product", name))

	return nil, domainerrors.ErrStockConflict.WrapMessage("purchase retries exhausted")
}

// validateProductInput covers the invariants shared by create and update.
func validateProductInput(name string, price float64, stock int) error {
	if entity.NormalizeProductName(name) == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("product name must not be empty")
	}
	if price < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product price must not be negative")
	}
	if stock < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("product stock must not be negative")
	}

	return nil
}
