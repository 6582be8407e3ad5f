package accountdelivery

import (
	"github.com/go-petr/rib-bank/pkg/ribpkg"
	"github.com/go-playground/validator/v10"
)

// ValidRIB validates whether the field is a well-formed account reference.
var ValidRIB validator.Func = func(fl validator.FieldLevel) bool {
	if rib, ok := fl.Field().Interface().(string); ok {
		return ribpkg.Valid(rib)
	}

	return false
}
