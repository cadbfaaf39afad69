package customvalidator

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations registers the project's custom validation rules
// on the given validator instance.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("entry_date", isEntryDate); err != nil {
		return err
	}
	if err := v.RegisterValidation("ghg_scope", isGHGScope); err != nil {
		return err
	}
	return nil
}

// isEntryDate accepts only the unambiguous YYYY-MM-DD calendar form.
// 2024/01/01 or 01-02-2024 must not pass.
func isEntryDate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func isGHGScope(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "scope1", "scope2", "scope3":
		return true
	}
	return false
}
