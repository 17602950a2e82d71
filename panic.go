package disksearch

import (
	"fmt"
	"runtime/debug"
)

// PanicError is a panic recovered from a worker, with the worker that
// raised it and the stack at that point.
//
// [Run] re-panics with the first one once every worker has exited, unless
// [WithPanicAsError] is set; then it arrives wrapped in a [*WorkerError].
type PanicError struct {
	Worker WorkerInfo
	Value  any
	Stack  []byte
}

// Error includes the full stack.
func (e *PanicError) Error() string {
	return fmt.Sprintf("%s panicked: %v\n\n%s", e.Worker.Name, e.Value, e.Stack)
}

func recovered(w WorkerInfo, v any) *PanicError {
	return &PanicError{Worker: w, Value: v, Stack: debug.Stack()}
}
