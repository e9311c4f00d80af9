package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abgdnv/productgrid/internal/product"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrRowOutOfRange  = errors.New("row out of range")
	ErrNoSession      = errors.New("no row is being edited")
	ErrDuplicateID    = errors.New("duplicate record id")
)

// ValidationError reports the draft fields that failed validation.
type ValidationError struct {
	Fields []product.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Rule)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RecordGoneError is returned by Save when the record being edited was removed in the
// meantime. It matches ErrRecordNotFound.
type RecordGoneError struct {
	ID int
}

func (e *RecordGoneError) Error() string {
	return fmt.Sprintf("record with ID %d: %v", e.ID, ErrRecordNotFound)
}

func (e *RecordGoneError) Unwrap() error {
	return ErrRecordNotFound
}
