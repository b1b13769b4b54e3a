package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access forbidden")
	ErrDirectory       = errors.New("identity directory unavailable")
	ErrStore           = errors.New("content store unavailable")
	ErrInternal        = errors.New("internal error")
)

var (
	ErrPostNotFound    = fmt.Errorf("post: %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment: %w", ErrNotFound)
	ErrMessageNotFound = fmt.Errorf("message: %w", ErrNotFound)
	ErrAccountNotFound = fmt.Errorf("account: %w", ErrNotFound)
	ErrAccountExists   = fmt.Errorf("account already exists: %w", ErrDirectory)

	ErrDuplicateSubmission = errors.New("message already submitted")
)

// ValidationError carries every rule violation found for an input.
type ValidationError struct {
	Messages []string
}

func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
