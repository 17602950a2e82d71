package disksearch

import (
	"context"

	"github.com/baxromumarov/disksearch/queue"
)

// spawnProducer starts a worker that writes into out.
//
// The worker is registered as a producer of out before its goroutine
// exists, so consumers of out cannot observe the closed state until this
// worker has run and returned. Unregistering is deferred inside the
// goroutine and happens on error and panic alike.
func spawnProducer[T any](g *group, info WorkerInfo, out *queue.Bounded[T], body func(ctx context.Context) error) {
	out.RegisterProducer()
	g.spawn(info, func(ctx context.Context) error {
		defer out.UnregisterProducer()
		return body(ctx)
	})
}

// spawnConsumer starts a worker that only reads from queues.
func spawnConsumer(g *group, info WorkerInfo, body func(ctx context.Context) error) {
	g.spawn(info, body)
}
