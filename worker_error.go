package disksearch

import (
	"errors"
	"fmt"
)

// WorkerError attributes an error to the worker that returned it. Every
// error surfaced by [Run] after workers have started is a WorkerError or a
// join of several.
type WorkerError struct {
	Worker WorkerInfo
	Err    error
}

// Error names the stage and the worker's index within it.
func (e *WorkerError) Error() string {
	return fmt.Sprintf("%s #%d: %v", e.Worker.Stage, e.Worker.Index, e.Err)
}

// Unwrap returns the worker's own error.
func (e *WorkerError) Unwrap() error {
	return e.Err
}

// IsWorkerError reports whether err came from a running worker, as opposed
// to a configuration or locking failure reported before any worker started.
func IsWorkerError(err error) bool {
	var we *WorkerError
	return errors.As(err, &we)
}

// WorkerOf returns the worker behind the first [*WorkerError] in err.
func WorkerOf(err error) (WorkerInfo, bool) {
	var we *WorkerError
	if errors.As(err, &we) {
		return we.Worker, true
	}
	return WorkerInfo{}, false
}

// AllWorkerErrors returns every [*WorkerError] in err, in join order.
func AllWorkerErrors(err error) []*WorkerError {
	var out []*WorkerError
	walkErrors(err, func(e error) bool {
		if we, ok := e.(*WorkerError); ok {
			out = append(out, we)
			return false
		}
		return true
	})
	return out
}

// FailedCopies returns every [*CopyError] in err. With [SkipFile] a single
// copier can contribute several.
func FailedCopies(err error) []*CopyError {
	var out []*CopyError
	walkErrors(err, func(e error) bool {
		if ce, ok := e.(*CopyError); ok {
			out = append(out, ce)
			return false
		}
		return true
	})
	return out
}

// walkErrors visits err and, while visit returns true, everything it wraps.
func walkErrors(err error, visit func(error) bool) {
	if err == nil || !visit(err) {
		return
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			walkErrors(sub, visit)
		}
	case interface{ Unwrap() error }:
		walkErrors(e.Unwrap(), visit)
	}
}
