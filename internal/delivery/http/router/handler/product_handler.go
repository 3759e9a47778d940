package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/delivery/http/response"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// --- Request / Response models ---

type productRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	ImgURL      string  `json:"imgUrl"`
	SKU         string  `json:"sku"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  int64   `json:"categoryId" validate:"required"`
}

type purchaseRequest struct {
	Name     string `json:"name" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

type productResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Price       float64           `json:"price"`
	ImgURL      string            `json:"imgUrl,omitempty"`
	SKU         string            `json:"sku,omitempty"`
	Stock       int               `json:"stock"`
	CategoryID  int64             `json:"categoryId"`
	Category    *categoryResponse `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

type receiptResponse struct {
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	RemainingStock int    `json:"remainingStock"`
}

func toProductResponse(product *entity.Product) *productResponse {
	if product == nil {
		return nil
	}

	return &productResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImgURL:      product.ImgURL,
		SKU:         product.SKU,
		Stock:       product.Stock,
		CategoryID:  product.CategoryID,
		Category:    toCategoryResponse(product.Category),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

func toProductResponseList(products []*entity.Product) []*productResponse {
	results := make([]*productResponse, 0, len(products))
	for _, product := range products {
		results = append(results, toProductResponse(product))
	}

	return results
}

// CreateProduct handles the product creation request.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), usecase.CreateProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImgURL:      input.ImgURL,
		SKU:         input.SKU,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toProductResponse(product), "Product created successfully")
}

// GetProduct handles the request to fetch a single product by ID.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID must be an integer")
	}

	product, err := h.uc.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product retrieved successfully")
}

// ListProducts handles the request to list all products.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	products, err := h.uc.ListProducts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// ListProductsByCategory handles the request to list products in one category.
func (h *ProductHandler) ListProductsByCategory(c echo.Context) error {
	categoryID, err := strconv.ParseInt(c.Param("categoryId"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Category ID must be an integer")
	}

	products, err := h.uc.ListProductsByCategory(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// SearchProducts handles the request to search products by name or description.
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	term := c.Param("term")
	if term == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Search term must not be empty")
	}

	products, err := h.uc.SearchProducts(c.Request().Context(), term)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponseList(products), "Products retrieved successfully")
}

// UpdateProduct handles the product update request.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID must be an integer")
	}

	var input productRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), usecase.UpdateProductInput{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		ImgURL:      input.ImgURL,
		SKU:         input.SKU,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toProductResponse(product), "Product updated successfully")
}

// DeleteProduct handles the product deletion request.
func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Product ID must be an integer")
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

// Purchase handles the request to buy a quantity of a product by name.
func (h *ProductHandler) Purchase(c echo.Context) error {
	var input purchaseRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid purchase input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	receipt, err := h.uc.Purchase(c.Request().Context(), usecase.PurchaseInput{
		ProductName: input.Name,
		Quantity:    input.Quantity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, receiptResponse{
		ProductName:    receipt.ProductName,
		Quantity:       receipt.Quantity,
		RemainingStock: receipt.RemainingStock,
	}, "Purchase completed successfully")
}
