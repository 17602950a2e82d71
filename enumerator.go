package disksearch

import (
	"context"
	"fmt"
	"slices"

	"github.com/baxromumarov/disksearch/queue"
)

// enumerate walks the tree under cfg.Root depth-first and enqueues every
// subdirectory at every depth. Files directly under the root are only
// searched when IncludeRoot is set, in which case the root itself is
// enqueued first.
func (s *search) enumerate(ctx context.Context, info WorkerInfo, dirs *queue.Bounded[string]) error {
	log := s.logger.With("worker", info.Name)

	if s.cfg.IncludeRoot {
		dirs.Enqueue(s.cfg.Root)
		s.stats.dirsQueued.Add(1)
	}

	top, err := s.fs.Subdirs(s.cfg.Root)
	if err != nil {
		s.stats.listErrors.Add(1)
		return fmt.Errorf("list root %s: %w", s.cfg.Root, err)
	}

	// Children are pushed in reverse so they pop in listing order.
	stack := slices.Clone(top)
	slices.Reverse(stack)

	for len(stack) > 0 {
		if ctx.Err() != nil {
			log.Debug("enumeration stopped", "pending", len(stack))
			return nil
		}

		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirs.Enqueue(dir)
		s.stats.dirsQueued.Add(1)

		children, err := s.fs.Subdirs(dir)
		if err != nil {
			s.stats.listErrors.Add(1)
			if s.cfg.OnCopyError == AbortRun {
				log.Warn("unreadable directory, aborting run", "dir", dir, "error", err)
				lerr := fmt.Errorf("list %s: %w", dir, err)
				s.abort(lerr)
				return lerr
			}
			log.Warn("skipping unreadable directory", "dir", dir, "error", err)
			continue
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	return nil
}
