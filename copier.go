package disksearch

import (
	"context"
	"errors"

	"github.com/baxromumarov/disksearch/queue"
)

// copyAll copies every file taken from results into cfg.Dest until results
// is closed or a failure ends the loop under the configured policy.
//
// The last copier to return drains results. Normally the queue is already
// closed and nothing is discarded; after failures it keeps the matchers
// from blocking on a full queue that nobody reads.
func (s *search) copyAll(ctx context.Context, info WorkerInfo, results *queue.Bounded[string]) error {
	log := s.logger.With("worker", info.Name)

	defer func() {
		if s.liveCopiers.Add(-1) > 0 {
			return
		}
		if n := queue.Drain(results); n > 0 {
			s.stats.stranded.Add(int64(n))
			log.Warn("no copier left, discarded remaining files", "files", n)
		}
	}()

	var errs []error
	for src := range results.All() {
		if ctx.Err() != nil {
			s.stats.skipped.Add(1)
			continue
		}

		n, err := s.fs.CopyFile(src, s.cfg.Dest)
		if err != nil {
			s.stats.failed.Add(1)
			cerr := &CopyError{Src: src, Dest: s.cfg.Dest, Err: err}
			log.Error("copy failed", "src", src, "error", err)

			switch s.cfg.OnCopyError {
			case SkipFile:
				errs = append(errs, cerr)
				continue
			case AbortRun:
				s.abort(cerr)
			}
			return cerr
		}

		s.stats.copied.Add(1)
		s.stats.bytes.Add(n)
		log.Debug("copied", "src", src, "bytes", n)
	}
	return errors.Join(errs...)
}
