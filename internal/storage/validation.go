// Package storage provides the on-device persistence layer for context-lens.
package storage

import (
	"context"
	"errors"
)

// ErrNilContext is returned when a nil context is passed in.
var ErrNilContext = errors.New("context cannot be nil")

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}
