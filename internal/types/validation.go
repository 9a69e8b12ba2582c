package types

import (
	"github.com/bbqmenu/bbq-menu-ai/backend/internal/units"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

// RegisterOn registers the custom tags on v.
func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation("locale", validateLocale)
}

func validateLocale(fl validator.FieldLevel) bool {
	return units.IsSupported(fl.Field().String())
}
