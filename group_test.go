package disksearch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/disksearch/queue"
)

func TestGroupCollectsEveryError(t *testing.T) {
	opts := defaultOptions()
	g := newGroup(context.Background(), &opts, false)

	for i := range 3 {
		g.spawn(workerInfo(StageMatcher, i), func(ctx context.Context) error {
			return errors.New("boom")
		})
	}
	g.spawn(workerInfo(StageCopier, 0), func(ctx context.Context) error { return nil })

	err := g.wait()
	require.Error(t, err)
	assert.Len(t, AllWorkerErrors(err), 3)
	assert.Equal(t, int64(4), g.spawned.Load())
}

func TestGroupFailFastCancelsSiblings(t *testing.T) {
	opts := defaultOptions()
	g := newGroup(context.Background(), &opts, true)

	var sawCancel atomic.Bool
	g.spawn(workerInfo(StageCopier, 1), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			sawCancel.Store(true)
		case <-time.After(5 * time.Second):
		}
		return nil
	})
	g.spawn(workerInfo(StageCopier, 0), func(ctx context.Context) error {
		return errDiskFull
	})

	err := g.wait()
	require.ErrorIs(t, err, errDiskFull)
	info, ok := WorkerOf(err)
	require.True(t, ok)
	assert.Equal(t, "copier-0", info.Name)
	assert.True(t, sawCancel.Load())
}

func TestGroupRunsWorkersEvenWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := defaultOptions()
	g := newGroup(ctx, &opts, false)

	var ran atomic.Int32
	for i := range 4 {
		g.spawn(workerInfo(StageMatcher, i), func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	err := g.wait()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(4), ran.Load(), "producers must always run to unregister")
}

func TestGroupPanicAsError(t *testing.T) {
	opts := defaultOptions()
	opts.panicAsErr = true
	g := newGroup(context.Background(), &opts, false)

	g.spawn(workerInfo(StageEnumerator, 0), func(ctx context.Context) error {
		panic("oops")
	})

	err := g.wait()
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "oops", pe.Value)
	assert.Equal(t, "enumerator-0", pe.Worker.Name)
}

func TestGroupRepanicsAfterAllWorkersExit(t *testing.T) {
	opts := defaultOptions()
	g := newGroup(context.Background(), &opts, false)

	var finished atomic.Bool
	g.spawn(workerInfo(StageMatcher, 0), func(ctx context.Context) error {
		panic("matcher broke")
	})
	g.spawn(workerInfo(StageMatcher, 1), func(ctx context.Context) error {
		<-ctx.Done() // cancelled by the panic
		finished.Store(true)
		return nil
	})

	r := func() (r any) {
		defer func() { r = recover() }()
		_ = g.wait()
		return nil
	}()

	pe, ok := r.(*PanicError)
	require.True(t, ok)
	assert.Equal(t, "matcher broke", pe.Value)
	assert.True(t, finished.Load())
}

func TestGroupHooks(t *testing.T) {
	var started, done atomic.Int32
	opts := defaultOptions()
	WithOnWorkerStart(func(WorkerInfo) { started.Add(1) })(&opts)
	WithOnWorkerDone(func(_ WorkerInfo, err error, d time.Duration) {
		assert.GreaterOrEqual(t, d, time.Duration(0))
		done.Add(1)
	})(&opts)

	g := newGroup(context.Background(), &opts, false)
	for i := range 5 {
		g.spawn(workerInfo(StageCopier, i), func(ctx context.Context) error { return nil })
	}
	require.NoError(t, g.wait())
	assert.Equal(t, int32(5), started.Load())
	assert.Equal(t, int32(5), done.Load())
}

func TestSpawnProducerRegistersBeforeStart(t *testing.T) {
	opts := defaultOptions()
	g := newGroup(context.Background(), &opts, false)
	out := queue.New[int](1)

	release := make(chan struct{})
	spawnProducer(g, workerInfo(StageMatcher, 0), out, func(ctx context.Context) error {
		<-release
		return nil
	})
	assert.Equal(t, 1, out.Producers(), "registered synchronously by the launcher")
	assert.False(t, out.Closed())

	close(release)
	require.NoError(t, g.wait())
	assert.Equal(t, 0, out.Producers())
	assert.True(t, out.Closed())
}

func TestSpawnProducerUnregistersOnPanic(t *testing.T) {
	opts := defaultOptions()
	opts.panicAsErr = true
	g := newGroup(context.Background(), &opts, false)
	out := queue.New[int](1)

	spawnProducer(g, workerInfo(StageMatcher, 0), out, func(ctx context.Context) error {
		panic("bad")
	})
	require.Error(t, g.wait())
	assert.True(t, out.Closed())
}
