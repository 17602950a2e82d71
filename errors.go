package disksearch

import (
	"errors"
	"fmt"
)

// Configuration errors. They are returned by [Config.Validate] and by
// [Run] before any worker starts.
var (
	ErrInvalidWorkers  = errors.New("disksearch: matcher and copier counts must be positive")
	ErrInvalidCapacity = errors.New("disksearch: queue capacity must be positive")
	ErrRootNotFound    = errors.New("disksearch: root directory not found")
	ErrRootNotDir      = errors.New("disksearch: root is not a directory")
	ErrNoDest          = errors.New("disksearch: destination directory is required")
	ErrInvalidPolicy   = errors.New("disksearch: unknown copy error policy")
	ErrDestLocked      = errors.New("disksearch: destination is in use by another run")
)

// CopyError reports a single file that could not be copied.
type CopyError struct {
	Src  string
	Dest string
	Err  error
}

// Error names both paths and the cause.
func (e *CopyError) Error() string {
	return fmt.Sprintf("copy %s to %s: %v", e.Src, e.Dest, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *CopyError) Unwrap() error {
	return e.Err
}
