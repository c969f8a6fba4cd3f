package dto

import (
	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/catalog/internal/entities"
)

// RegisterValidations adds the catalog's custom binding rules to v.
func RegisterValidations(v *validator.Validate) error {
	return v.RegisterValidation("genre", validateGenre)
}

func validateGenre(fl validator.FieldLevel) bool {
	_, err := entities.ParseGenre(fl.Field().String())
	return err == nil
}
