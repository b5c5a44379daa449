// Package common defines shared sentinel errors and error types used across
// the store, service and HTTP layers. Callers should use errors.Is / errors.As
// to match these values.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound   = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Authentication errors. Both are shown to the end user as the same
	// generic login failure.
	ErrUnknownUser   = errors.New("unknown user")
	ErrBadCredential = errors.New("bad credential")

	// Task workflow errors.
	ErrMissingTitle        = errors.New("missing title")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrNotFoundOrForbidden = errors.New("not found or no permission")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// ValidationError carries every problem found in a piece of user input.
// It matches ErrValidation.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		parts = append(parts, string(p))
	}
	return fmt.Sprintf("validation error: %s", strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DuplicateKeyError reports which unique field collided. It matches
// ErrDuplicateKey.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key: %s already exists", e.Field)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}
