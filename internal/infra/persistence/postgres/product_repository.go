// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// productRepository implements the domain.ProductRepository interface using GORM.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// FindByID retrieves a single product with its category preloaded.
func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").First(&productM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// FindByName retrieves a single product by name. Matching is on the
// normalized form of the stored name, so callers pass the already
// normalized value.
func (repo *productRepository) FindByName(ctx context.Context, normalizedName string) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").
		Where("LOWER(TRIM(name)) = ?", normalizedName).
		First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by name")
	}

	return toProductDomain(&productM), nil
}

// List retrieves all products ordered by name.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").Order("name").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return toProductDomainList(productMs), nil
}

// ListByCategoryID retrieves all products belonging to a category.
func (repo *productRepository) ListByCategoryID(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").
		Where("category_id = ?", categoryID).
		Order("name").
		Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products by category")
	}

	return toProductDomainList(productMs), nil
}

// Search retrieves products whose name or description contains the given term,
// case-insensitively.
func (repo *productRepository) Search(ctx context.Context, term string) ([]*entity.Product, error) {
	pattern := "%" + term + "%"

	var productMs []model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("name").
		Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return toProductDomainList(productMs), nil
}

// ExistsByName reports whether a product with the given normalized name exists.
func (repo *productRepository) ExistsByName(ctx context.Context, normalizedName string) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("LOWER(TRIM(name)) = ?", normalizedName).
		Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check product existence by name")
	}

	return count > 0, nil
}

// Create persists a new product.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("product name already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("product references a missing category")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.ID = productM.ID
	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

// Update modifies an existing product. Zero values are written as-is, so the
// caller supplies the complete desired state of the row.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ?", productM.ID).
		Select("name", "description", "price", "img_url", "sku", "stock", "category_id").
		Updates(productM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrProductAlreadyExists.WrapMessage("product name already exists")
		}
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryNotFound.WrapMessage("product references a missing category")
		}
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WrapMessage("stock must not be negative")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by its identifier.
func (repo *productRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// UpdateStock performs a compare-and-swap on a product's stock. The update
// only lands when the row still holds expectedStock, so two concurrent
// purchases of the same unit cannot both succeed.
func (repo *productRepository) UpdateStock(ctx context.Context, id int64, newStock, expectedStock int) error {
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ? AND stock = ?", id, expectedStock).
		Update("stock", newStock)
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInsufficientStock
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product stock")
	}
	if result.RowsAffected == 0 {
		return repository.ErrStockConflict
	}

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImgURL:      data.ImgURL,
		SKU:         data.SKU,
		Stock:       data.Stock,
		CategoryID:  data.CategoryID,
		Category:    toCategoryDomain(data.Category),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toProductDomainList(data []model.ProductModel) []*entity.Product {
	products := make([]*entity.Product, 0, len(data))
	for i := range data {
		products = append(products, toProductDomain(&data[i]))
	}

	return products
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	if data == nil {
		return nil
	}

	return &model.ProductModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Price:       data.Price,
		ImgURL:      data.ImgURL,
		SKU:         data.SKU,
		Stock:       data.Stock,
		CategoryID:  data.CategoryID,
	}
}
