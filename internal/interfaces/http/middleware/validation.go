package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SetupValidator configures the binding validator: JSON tag names in error
// messages and a "money" tag for decimal amount strings.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("money", validateMoney)
}

// validateMoney accepts non-negative decimal strings with at most two
// decimal places, matching the pesewa precision of stored amounts.
func validateMoney(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // pair with required when the amount is mandatory
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	if d.IsNegative() {
		return false
	}
	return d.Exponent() >= -2
}
