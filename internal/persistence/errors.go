package persistence

import "errors"

var (
	// ErrNotFound is returned when no value is stored under the requested key.
	ErrNotFound = errors.New("persistence: not found")
	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("persistence: store closed")
)
