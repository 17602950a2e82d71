package disksearch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

// group runs pipeline workers, each on its own goroutine, and joins them.
//
// Unlike a general task scope, a group never skips a worker because its
// context is already cancelled: a skipped producer would never unregister
// and its consumers would block forever. Workers see cancellation through
// ctx and decide themselves how to drain.
type group struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	opts   *options

	// failFast makes the first worker error cancel ctx and become the
	// only error returned from wait.
	failFast bool

	wg sync.WaitGroup

	errOnce  sync.Once
	errMu    sync.Mutex
	firstErr *WorkerError
	errs     []*WorkerError

	panicMu sync.Mutex
	panics  []*PanicError

	spawned atomic.Int64
}

func newGroup(parent context.Context, opts *options, failFast bool) *group {
	ctx, cancel := context.WithCancelCause(parent)
	return &group{
		ctx:      ctx,
		cancel:   cancel,
		opts:     opts,
		failFast: failFast,
	}
}

// spawn starts fn on a new goroutine. Hooks run on that goroutine.
func (g *group) spawn(info WorkerInfo, fn func(ctx context.Context) error) {
	g.wg.Add(1)
	g.spawned.Add(1)

	go func() {
		defer g.wg.Done()

		start := time.Now()
		err := g.exec(info, func(ctx context.Context) error {
			if g.opts.onStart != nil {
				g.opts.onStart(info)
			}
			return fn(ctx)
		})
		elapsed := time.Since(start)

		if g.opts.onDone != nil {
			g.opts.onDone(info, err, elapsed)
		}
		if err != nil {
			g.record(info, err)
		}
	}()
}

// exec runs fn with panic recovery.
func (g *group) exec(info WorkerInfo, fn func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe := recovered(info, r)
			if g.opts.panicAsErr {
				err = pe
				return
			}
			g.panicMu.Lock()
			g.panics = append(g.panics, pe)
			g.panicMu.Unlock()
			g.cancel(pe)
		}
	}()
	return fn(g.ctx)
}

func (g *group) record(info WorkerInfo, err error) {
	we := &WorkerError{Worker: info, Err: err}

	g.errMu.Lock()
	g.errs = append(g.errs, we)
	g.errMu.Unlock()

	if g.failFast {
		g.errOnce.Do(func() {
			g.errMu.Lock()
			g.firstErr = we
			g.errMu.Unlock()
			g.cancel(we)
		})
	}
}

// wait blocks until every spawned worker has returned. It re-panics with
// the first captured panic unless panics are converted to errors.
func (g *group) wait() error {
	g.wg.Wait()

	cancelled := g.ctx.Err() != nil
	g.cancel(nil)

	g.panicMu.Lock()
	if len(g.panics) > 0 && !g.opts.panicAsErr {
		pe := g.panics[0]
		g.panicMu.Unlock()
		panic(pe)
	}
	g.panicMu.Unlock()

	g.errMu.Lock()
	defer g.errMu.Unlock()

	if g.failFast && g.firstErr != nil {
		return g.firstErr
	}
	if len(g.errs) > 0 {
		errs := make([]error, 0, len(g.errs))
		for _, we := range g.errs {
			errs = append(errs, we)
		}
		return errors.Join(errs...)
	}
	if cancelled {
		return context.Cause(g.ctx)
	}
	return nil
}
