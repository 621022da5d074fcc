package store

import (
	"errors"
	"fmt"
)

// CacheReadError means a state file is missing or unreadable.
type CacheReadError struct {
	Path string
	Err  error
}

func (e *CacheReadError) Error() string {
	return fmt.Sprintf("read cache %s: %v", e.Path, e.Err)
}

func (e *CacheReadError) Unwrap() error {
	return e.Err
}

// PersistenceError means a state file could not be written.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError reports whether err wraps a *PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
