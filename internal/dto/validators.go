package dto

import (
	"github.com/citycable/cable_collect_app/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidators installs the binding tags used by the request
// DTOs. Must be called once at startup against gin's validator engine.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("paymentmethod", func(fl validator.FieldLevel) bool {
		return domain.PaymentMethod(fl.Field().String()).Valid()
	})
}
