// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Analysis errors.
	ErrMissingCredential = errors.New("API key is not defined")
	ErrTransport         = errors.New("analysis request failed")
	ErrAnalysisInFlight  = errors.New("an analysis is already in progress")
	ErrAnalysisCanceled  = errors.New("analysis canceled")
	ErrNoImageSelected   = errors.New("no image selected")
	ErrUnsupportedImage  = errors.New("unsupported image type")

	// Storage errors.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Profile errors.
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrHistoryNotFound = errors.New("history item not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the user-facing message carried by err, or fallback
// when err carries none.
func UserMessage(err error, fallback string) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return fallback
}
