package errors

import "errors"

var (
	ErrNotFound     = errors.New("resource could not be found")
	ErrUnauthorized = errors.New("no active session")
)

// Re-exported so callers only need this package.
var (
	Is  = errors.Is
	As  = errors.As
	New = errors.New
)
