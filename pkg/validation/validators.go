package validation

import (
	"contact-page-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) error {
	return v.RegisterValidation("contact_email", ContactEmail)
}

// ContactEmail applies the same structural pattern the form session uses,
// so the one-shot endpoint and the interactive page agree on what is valid.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return domain.EmailPattern.MatchString(val)
}
