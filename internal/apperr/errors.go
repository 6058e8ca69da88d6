// Package apperr holds the sentinel errors shared by the store and its surfaces.
package apperr

import "errors"

var (
	ErrInvalidName   = errors.New("invalid note name")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrNoSelection   = errors.New("no note selected")
	// ErrCorrupt means the persisted note collection could not be decoded.
	ErrCorrupt = errors.New("corrupt note collection")
)
