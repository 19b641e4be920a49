// Package dto defines the JSON shapes of API version 3.
package dto

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom rules used by the request types to
// gin's validator. Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("gtin", validateGTIN)
		}
	})
}

// validateGTIN accepts 8 to 14 digits.
func validateGTIN(fl validator.FieldLevel) bool {
	return IsGTIN(fl.Field().String())
}

// IsGTIN reports whether s has the form of a GTIN.
func IsGTIN(s string) bool {
	if len(s) < 8 || len(s) > 14 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
