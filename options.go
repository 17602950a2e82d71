package disksearch

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// StageKind identifies which pipeline stage a worker belongs to.
type StageKind int

const (
	// StageEnumerator walks the root tree and feeds the directory queue.
	StageEnumerator StageKind = iota

	// StageMatcher lists directories and feeds the results queue.
	StageMatcher

	// StageCopier copies matched files into the destination.
	StageCopier
)

// String returns the lowercase stage name used in worker names.
func (k StageKind) String() string {
	switch k {
	case StageEnumerator:
		return "enumerator"
	case StageMatcher:
		return "matcher"
	case StageCopier:
		return "copier"
	default:
		return fmt.Sprintf("stage(%d)", int(k))
	}
}

// WorkerInfo describes one worker goroutine.
// It is passed to hooks registered via [WithOnWorkerStart] and [WithOnWorkerDone].
type WorkerInfo struct {
	Stage StageKind
	Index int
	Name  string
}

func workerInfo(stage StageKind, index int) WorkerInfo {
	return WorkerInfo{
		Stage: stage,
		Index: index,
		Name:  fmt.Sprintf("%s-%d", stage, index),
	}
}

// CopyErrorPolicy determines how the copier stage reacts to a failed copy.
type CopyErrorPolicy int

const (
	// StopWorker ends the failing copier's loop. Other copiers keep going.
	// If the failing copier was the last one alive, it discards whatever
	// is left in the results queue and counts it as stranded.
	StopWorker CopyErrorPolicy = iota

	// SkipFile records the failure and moves on to the next file.
	SkipFile

	// AbortRun stops all useful work after the first worker error, a
	// failed copy or an unreadable directory. Every stage keeps draining
	// its input so the queues still close normally.
	AbortRun
)

// String returns the flag and config spelling of p.
func (p CopyErrorPolicy) String() string {
	switch p {
	case StopWorker:
		return "stop-worker"
	case SkipFile:
		return "skip-file"
	case AbortRun:
		return "abort-run"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParseCopyErrorPolicy parses the names returned by [CopyErrorPolicy.String].
// An empty string selects [StopWorker].
func ParseCopyErrorPolicy(s string) (CopyErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "stop-worker":
		return StopWorker, nil
	case "skip-file":
		return SkipFile, nil
	case "abort-run":
		return AbortRun, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

type options struct {
	fs         FS
	logger     *slog.Logger
	panicAsErr bool
	destLock   bool
	onStart    func(WorkerInfo)
	onDone     func(WorkerInfo, error, time.Duration)
}

// Option configures a [Run].
type Option func(*options)

func defaultOptions() options {
	return options{
		fs:       OSFS{},
		logger:   slog.New(slog.DiscardHandler),
		destLock: true,
	}
}

// WithFS replaces the filesystem collaborator. Panics if fs is nil.
func WithFS(fs FS) Option {
	if fs == nil {
		panic("disksearch: WithFS requires non-nil FS")
	}
	return func(o *options) {
		o.fs = fs
	}
}

// WithLogger sets the logger used by every worker. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.logger = l
	}
}

// WithPanicAsError converts panics in workers to [*PanicError] values
// returned from [Run], instead of re-raising them.
func WithPanicAsError() Option {
	return func(o *options) {
		o.panicAsErr = true
	}
}

// WithoutDestLock skips the exclusive lock on the destination directory.
func WithoutDestLock() Option {
	return func(o *options) {
		o.destLock = false
	}
}

// WithOnWorkerStart registers a hook invoked when each worker begins.
// The hook runs inside the worker's goroutine.
func WithOnWorkerStart(fn func(WorkerInfo)) Option {
	return func(o *options) {
		o.onStart = fn
	}
}

// WithOnWorkerDone registers a hook invoked when each worker finishes,
// with its error (nil on success) and wall-clock duration.
func WithOnWorkerDone(fn func(WorkerInfo, error, time.Duration)) Option {
	return func(o *options) {
		o.onDone = fn
	}
}
