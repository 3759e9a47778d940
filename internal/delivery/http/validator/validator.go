// Package validator adapts go-playground/validator to Echo's Validator interface.
package validator

import (
	domainerrors "storefront/internal/domain/errors"

	validatorlib "github.com/go-playground/validator/v10"
)

// echoValidator wraps a validator instance for use as echo.Validator.
type echoValidator struct {
	validate *validatorlib.Validate
}

// New creates the validator used by the HTTP server.
func New() *echoValidator {
	return &echoValidator{validate: validatorlib.New()}
}

// Validate runs struct validation and maps failures to the application's
// validation error so the error handler renders them uniformly.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
