package disksearch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/baxromumarov/disksearch/queue"
)

// Default queue capacities.
const (
	DefaultDirQueueCapacity     = 50
	DefaultResultsQueueCapacity = 50
)

// Config describes one search-and-copy run.
type Config struct {
	Pattern   string // substring the file name must contain
	Extension string // suffix the file name must end with
	Root      string // directory tree to search
	Dest      string // directory receiving the copies

	Matchers int // size of the matcher pool
	Copiers  int // size of the copier pool

	// Zero selects the default capacity.
	DirQueueCapacity     int
	ResultsQueueCapacity int

	OnCopyError CopyErrorPolicy

	// IncludeRoot searches files directly inside Root as well.
	IncludeRoot bool
}

func (c Config) withDefaults() Config {
	if c.DirQueueCapacity == 0 {
		c.DirQueueCapacity = DefaultDirQueueCapacity
	}
	if c.ResultsQueueCapacity == 0 {
		c.ResultsQueueCapacity = DefaultResultsQueueCapacity
	}
	return c
}

// Validate checks c after defaults are applied. It stats Root.
func (c Config) Validate() error {
	c = c.withDefaults()

	if c.Matchers <= 0 || c.Copiers <= 0 {
		return fmt.Errorf("%w: matchers=%d copiers=%d", ErrInvalidWorkers, c.Matchers, c.Copiers)
	}
	if c.DirQueueCapacity < 0 || c.ResultsQueueCapacity < 0 {
		return fmt.Errorf("%w: directories=%d results=%d",
			ErrInvalidCapacity, c.DirQueueCapacity, c.ResultsQueueCapacity)
	}
	switch c.OnCopyError {
	case StopWorker, SkipFile, AbortRun:
	default:
		return fmt.Errorf("%w: %d", ErrInvalidPolicy, int(c.OnCopyError))
	}
	if c.Dest == "" {
		return ErrNoDest
	}

	info, err := os.Stat(c.Root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrRootNotFound, c.Root)
	case err != nil:
		return fmt.Errorf("stat root %s: %w", c.Root, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrRootNotDir, c.Root)
	}
	return nil
}

// search holds the state shared by the workers of one run.
type search struct {
	cfg     Config
	fs      FS
	logger  *slog.Logger
	matcher NameMatcher
	stats   counters

	// abort cancels the context shared by all workers. Only AbortRun
	// calls it before the failing worker returns.
	abort        context.CancelCauseFunc
	liveMatchers atomic.Int32
	liveCopiers  atomic.Int32
}

// Run validates cfg, then runs one enumerator, cfg.Matchers matchers and
// cfg.Copiers copiers concurrently until both queues have closed and every
// worker has returned.
//
// Configuration problems are returned before any worker starts. Worker
// failures are returned as [*WorkerError] values, joined unless
// cfg.OnCopyError is [AbortRun]. Stats are returned in both cases.
//
// Cancelling ctx makes every worker drain its input without doing further
// work; blocked queue operations are never interrupted.
func Run(ctx context.Context, cfg Config, opts ...Option) (Stats, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	if o.destLock {
		lock, err := acquireDestLock(cfg.Dest)
		if err != nil {
			return Stats{}, err
		}
		defer func() {
			if err := lock.release(); err != nil {
				o.logger.Warn("release destination lock", "error", err)
			}
		}()
	}

	s := &search{
		cfg:     cfg,
		fs:      o.fs,
		logger:  o.logger,
		matcher: NameMatcher{Pattern: cfg.Pattern, Extension: cfg.Extension},
	}

	dirs := queue.New[string](cfg.DirQueueCapacity)
	results := queue.New[string](cfg.ResultsQueueCapacity)

	s.logger.Info("search started",
		"root", cfg.Root,
		"dest", cfg.Dest,
		"pattern", cfg.Pattern,
		"extension", cfg.Extension,
		"matchers", cfg.Matchers,
		"copiers", cfg.Copiers,
		"on_copy_error", cfg.OnCopyError.String(),
	)

	start := time.Now()
	g := newGroup(ctx, &o, cfg.OnCopyError == AbortRun)
	s.abort = g.cancel

	// Every worker is started before any is awaited.
	enum := workerInfo(StageEnumerator, 0)
	spawnProducer(g, enum, dirs, func(ctx context.Context) error {
		return s.enumerate(ctx, enum, dirs)
	})

	s.liveMatchers.Store(int32(cfg.Matchers))
	for i := range cfg.Matchers {
		info := workerInfo(StageMatcher, i)
		spawnProducer(g, info, results, func(ctx context.Context) error {
			return s.match(ctx, info, dirs, results)
		})
	}

	s.liveCopiers.Store(int32(cfg.Copiers))
	for i := range cfg.Copiers {
		info := workerInfo(StageCopier, i)
		spawnConsumer(g, info, func(ctx context.Context) error {
			return s.copyAll(ctx, info, results)
		})
	}

	workers := int(g.spawned.Load())
	err := g.wait()

	stats := s.stats.snapshot()
	stats.DirQueueHighWater = dirs.HighWater()
	stats.ResultsQueueHighWater = results.HighWater()
	stats.Workers = workers
	stats.Duration = time.Since(start)

	s.logger.Info("search finished",
		"copied", stats.Copied,
		"failed", stats.Failed,
		"matched", stats.Matched,
		"dirs", stats.DirsSearched,
		"duration", stats.Duration,
	)
	return stats, err
}
