package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// SetupValidator configures gin's validator with JSON field names and the
// custom money tag. Call once before serving requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Use JSON tag names for field names in binding errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// money validates that a string field parses as an exact decimal.
	_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
		raw, ok := fl.Field().Interface().(string)
		if !ok {
			return false
		}
		_, err := decimal.NewFromString(raw)
		return err == nil
	})
}
