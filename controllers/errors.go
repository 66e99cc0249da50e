// ABOUTME: Screen controllers holding transient UI state over the store
// ABOUTME: Validation and confirmation errors shared by every controller

package controllers

import (
	"errors"
	"time"
)

var (
	// ErrValidation marks user input that cannot be saved.
	ErrValidation = errors.New("validation failed")

	// ErrConfirmationRequired is returned by destructive actions called without confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
)

// ValidationError carries the message shown next to the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

// mediumDate renders dates the way activity entries show them, e.g. "Mar 19, 2026".
func mediumDate(t time.Time) string {
	return t.Format("Jan 2, 2006")
}
