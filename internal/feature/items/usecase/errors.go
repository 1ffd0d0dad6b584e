// Package usecase implements the business logic for the items feature.
package usecase

import "errors"

var (
	// ErrItemNotFound is returned when an item does not exist or belongs to another user.
	// The two cases are deliberately indistinguishable.
	ErrItemNotFound = errors.New("item not found")
)

// ValidationError lists every field of an item input that broke a rule.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
