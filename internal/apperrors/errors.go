// Package apperrors holds the sentinel errors shared across packages.
package apperrors

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrNoApplication = errors.New("no application selected")
	ErrNoFiles       = errors.New("no files selected")
)
