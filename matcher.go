package disksearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/baxromumarov/disksearch/queue"
)

// match lists each directory taken from dirs, without recursing, and
// enqueues the matching files on results. It returns once dirs is closed.
// Listing failures do not stop the loop; they are joined into the result.
func (s *search) match(ctx context.Context, info WorkerInfo, dirs, results *queue.Bounded[string]) error {
	log := s.logger.With("worker", info.Name)

	// Only a panic ends a matcher before dirs closes; the last one out
	// keeps the enumerator from blocking on a queue nobody reads.
	defer func() {
		if s.liveMatchers.Add(-1) > 0 {
			return
		}
		if n := queue.Drain(dirs); n > 0 {
			log.Warn("no matcher left, discarded remaining directories", "dirs", n)
		}
	}()

	var errs []error
	for dir := range dirs.All() {
		if ctx.Err() != nil {
			continue
		}

		files, err := s.fs.Files(dir, s.matcher.Match)
		if err != nil {
			s.stats.listErrors.Add(1)
			log.Warn("list directory", "dir", dir, "error", err)
			lerr := fmt.Errorf("list %s: %w", dir, err)
			if s.cfg.OnCopyError == AbortRun {
				s.abort(lerr)
			}
			errs = append(errs, lerr)
			continue
		}
		s.stats.dirsSearched.Add(1)
		log.Debug("searched directory", "dir", dir, "matches", len(files))

		for _, f := range files {
			results.Enqueue(f)
			s.stats.matched.Add(1)
		}
	}
	return errors.Join(errs...)
}
