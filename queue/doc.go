// Package queue provides a fixed-capacity blocking queue whose shutdown is
// driven by a producer count instead of sentinel values or close calls.
//
// Go channels support exactly one closer. A pipeline stage with N
// concurrent producers therefore needs an extra coordinator to decide who
// closes the channel and when. [Bounded] folds that coordination into the
// queue itself:
//
//   - [Bounded.RegisterProducer] and [Bounded.UnregisterProducer] track how
//     many goroutines may still add items.
//   - [Bounded.Enqueue] blocks while the queue is full.
//   - [Bounded.Dequeue] blocks while the queue is empty and producers are
//     still registered, and reports closed once no producer is left and
//     every item has been taken.
//   - [Bounded.All] is a range-over-func consumer loop built on Dequeue.
//   - [Drain] discards remaining items so blocked producers can finish.
//
// The producer count and the buffer share one lock, so a consumer can never
// miss the wake-up sent by the last producer leaving.
//
//	q := queue.New[string](16)
//	q.RegisterProducer()
//	go func() {
//	    defer q.UnregisterProducer()
//	    q.Enqueue("a")
//	}()
//	for item := range q.All() {
//	    fmt.Println(item)
//	}
package queue
