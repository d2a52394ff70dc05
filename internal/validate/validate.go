package validate

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// New returns the shared validator with the custom tags registered.
func New() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterCustomTypeFunc(PriceValue, decimal.Decimal{})
		_ = validate.RegisterValidation("price", ValidatePrice)
		_ = validate.RegisterValidation("slug", ValidateSlug)
	})
	return validate
}

// ValidatePrice accepts non-negative amounts with at most two fractional digits.
func ValidatePrice(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(2))
}

func ValidateSlug(fl validator.FieldLevel) bool {
	return slug.IsSlug(fl.Field().String())
}

func PriceValue(v reflect.Value) interface{} {
	n, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return n.String()
}
