package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the history locator does not resolve to a backing resource.
	ErrNotFound = errors.New("repository: history not found")
	// ErrPermissionDenied indicates the backing resource exists but cannot be read.
	ErrPermissionDenied = errors.New("repository: permission denied")
)

// ParseError reports a history entry that is not a valid fingerprint. The
// whole iteration is considered failed; malformed entries are never skipped.
type ParseError struct {
	Locator string
	Line    int
	Err     error
}

// Error implements error for ParseError.
func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("repository: %s line %d: %v", e.Locator, e.Line, e.Err)
}

// Unwrap exposes the underlying parse failure.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
