package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/delivery/http/validator"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProductUsecase answers Purchase with a canned receipt or error.
type stubProductUsecase struct {
	usecase.ProductUsecase

	receipt   *entity.Receipt
	err       error
	lastInput usecase.PurchaseInput
}

func (s *stubProductUsecase) Purchase(ctx context.Context, input usecase.PurchaseInput) (*entity.Receipt, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}

	return s.receipt, nil
}

func newPurchaseContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodPost, "/products/buy", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestProductHandler_Purchase_Success(t *testing.T) {
	stub := &stubProductUsecase{
		receipt: &entity.Receipt{ProductName: "Widget", Quantity: 2, RemainingStock: 3},
	}
	h := NewProductHandler(stub, nil)

	c, rec := newPurchaseContext(`{"name":"Widget","quantity":2}`)

	require.NoError(t, h.Purchase(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, usecase.PurchaseInput{ProductName: "Widget", Quantity: 2}, stub.lastInput)

	body := rec.Body.String()
	assert.Contains(t, body, `"productName":"Widget"`)
	assert.Contains(t, body, `"remainingStock":3`)
}

func TestProductHandler_Purchase_MissingQuantity(t *testing.T) {
	stub := &stubProductUsecase{}
	h := NewProductHandler(stub, nil)

	c, _ := newPurchaseContext(`{"name":"Widget"}`)

	err := h.Purchase(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrValidationFailed.ErrorCode(), appErr.ErrorCode())
}

func TestProductHandler_Purchase_UsecaseError(t *testing.T) {
	stub := &stubProductUsecase{err: domainerrors.ErrInsufficientStock}
	h := NewProductHandler(stub, nil)

	c, _ := newPurchaseContext(`{"name":"Widget","quantity":5}`)

	err := h.Purchase(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestProductHandler_GetProduct_InvalidID(t *testing.T) {
	stub := &stubProductUsecase{}
	h := NewProductHandler(stub, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.GetProduct(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
