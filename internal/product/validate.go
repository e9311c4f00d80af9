package product

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError names a draft field and the validator tag it broke ("required", "number", "max").
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// Validator checks drafts against the field rules of a product row.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator. Field names in the reported errors use the json names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Check returns the violations of d, or nil when d is valid.
func (v *Validator) Check(d Draft) []FieldError {
	err := v.validate.Struct(d)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []FieldError{{Field: "", Rule: err.Error()}}
	}
	fields := make([]FieldError, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, FieldError{Field: fieldErr.Field(), Rule: fieldErr.Tag()})
	}
	return fields
}
