package queue

import (
	"iter"
	"sync"
)

// Bounded is a fixed-capacity FIFO queue safe for use by many producers and
// many consumers. The zero value is not usable; create one with [New].
//
// Every goroutine that enqueues must call RegisterProducer before its first
// Enqueue and UnregisterProducer after its last one. Consumers learn that the
// stream is over when Dequeue returns false.
type Bounded[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	buf       []T
	head      int // next slot to read
	tail      int // next slot to write
	count     int
	producers int
	highWater int
}

// New creates a queue holding at most capacity items.
// Panics if capacity <= 0.
func New[T any](capacity int) *Bounded[T] {
	if capacity <= 0 {
		panic("queue: New requires capacity > 0")
	}
	q := &Bounded[T]{buf: make([]T, capacity)}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends item at the tail, blocking while the queue is full.
//
// Enqueue panics if no producer is registered: nothing could ever be
// waiting for the item, so the call is a protocol violation.
func (q *Bounded[T]) Enqueue(item T) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.producers == 0 {
		panic("queue: Enqueue called without a registered producer")
	}
	for q.count == len(q.buf) {
		q.notFull.Wait()
	}

	q.buf[q.tail] = item
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++
	if q.count > q.highWater {
		q.highWater = q.count
	}

	// Must wake all consumers, not one.
	q.notEmpty.Broadcast()
}

// Dequeue removes and returns the head item. It blocks while the queue is
// empty and at least one producer is registered.
//
// The boolean is false once the queue is closed: empty with no registered
// producers. A closed queue returns immediately.
func (q *Bounded[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		if q.producers == 0 {
			var zero T
			return zero, false
		}
		q.notEmpty.Wait()
	}

	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // release the reference for GC
	q.head = (q.head + 1) % len(q.buf)
	q.count--

	q.notFull.Broadcast()
	return item, true
}

// RegisterProducer announces one more goroutine that may call Enqueue.
func (q *Bounded[T]) RegisterProducer() {
	q.mu.Lock()
	q.producers++
	q.mu.Unlock()
}

// UnregisterProducer retracts one RegisterProducer call. When the last
// producer leaves, every blocked consumer is woken so that each one can
// observe the closed state.
// Panics if called more times than RegisterProducer.
func (q *Bounded[T]) UnregisterProducer() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.producers == 0 {
		panic("queue: UnregisterProducer called without matching RegisterProducer")
	}
	q.producers--
	if q.producers == 0 {
		q.notEmpty.Broadcast()
	}
}

// All returns an iterator that dequeues items until the queue is closed.
// Breaking out of the loop leaves the remaining items in the queue.
func (q *Bounded[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := q.Dequeue()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Capacity returns the maximum number of items the queue can hold.
func (q *Bounded[T]) Capacity() int {
	return len(q.buf)
}

// Size returns the number of items currently queued.
func (q *Bounded[T]) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Producers returns the number of currently registered producers.
func (q *Bounded[T]) Producers() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.producers
}

// Closed reports whether the queue is empty and has no registered producers.
// A closed queue can reopen if a producer registers again.
func (q *Bounded[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == 0 && q.producers == 0
}

// HighWater returns the largest number of items the queue has held at once.
func (q *Bounded[T]) HighWater() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.highWater
}

// Drain dequeues and discards items until q is closed and returns how many
// were discarded. Use it to keep upstream producers from blocking forever
// once no consumer will process their output.
func Drain[T any](q *Bounded[T]) int {
	n := 0
	for range q.All() {
		n++
	}
	return n
}
