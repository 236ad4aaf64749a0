// services/errors.go
package services

import "errors"

// ErrNotFound is returned when a referenced lead, product or user no
// longer exists. Handlers surface it as a 404 with no state changed.
var ErrNotFound = errors.New("not found")

// ValidationError marks caller-correctable input problems. Handlers
// surface the message as a 400-level rejection; no collection is ever
// left partially updated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given user-facing
// message.
func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
