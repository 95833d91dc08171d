package service

import (
	"go-papeleria-pos/internal/apperr"
	"go-papeleria-pos/pkg/validator"
)

// validateStruct runs tag validation and converts the first failure into the
// Validation kind of the error taxonomy.
func validateStruct(data interface{}) *apperr.Error {
	if errs := validator.ValidateStruct(data); len(errs) > 0 {
		first := errs[0]
		return apperr.Validationf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	return nil
}
