package disksearch

import (
	"sync/atomic"
	"time"
)

// Stats is a snapshot of one run's activity.
type Stats struct {
	DirsQueued   int64 // directories the enumerator put on the directory queue
	DirsSearched int64 // directories a matcher listed successfully
	Matched      int64 // files put on the results queue
	Copied       int64 // files written to the destination
	Bytes        int64 // bytes written to the destination
	Failed       int64 // copy attempts that failed
	Skipped      int64 // files dequeued after the run was aborted
	Stranded     int64 // files discarded because no copier was left
	ListErrors   int64 // directories that could not be listed

	DirQueueHighWater     int // most directories queued at once
	ResultsQueueHighWater int // most files queued at once

	Workers  int
	Duration time.Duration
}

type counters struct {
	dirsQueued   atomic.Int64
	dirsSearched atomic.Int64
	matched      atomic.Int64
	copied       atomic.Int64
	bytes        atomic.Int64
	failed       atomic.Int64
	skipped      atomic.Int64
	stranded     atomic.Int64
	listErrors   atomic.Int64
}

func (c *counters) snapshot() Stats {
	return Stats{
		DirsQueued:   c.dirsQueued.Load(),
		DirsSearched: c.dirsSearched.Load(),
		Matched:      c.matched.Load(),
		Copied:       c.copied.Load(),
		Bytes:        c.bytes.Load(),
		Failed:       c.failed.Load(),
		Skipped:      c.skipped.Load(),
		Stranded:     c.stranded.Load(),
		ListErrors:   c.listErrors.Load(),
	}
}
