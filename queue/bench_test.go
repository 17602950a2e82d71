package queue

import (
	"fmt"
	"sync"
	"testing"
)

// BenchmarkBounded moves items through a queue with p producers and c
// consumers.
func BenchmarkBounded(b *testing.B) {
	for _, tc := range []struct{ producers, consumers, capacity int }{
		{1, 1, 1},
		{1, 1, 50},
		{4, 4, 50},
		{8, 2, 8},
	} {
		name := fmt.Sprintf("p=%d/c=%d/cap=%d", tc.producers, tc.consumers, tc.capacity)
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			const items = 1000
			for range b.N {
				q := New[int](tc.capacity)
				var wg sync.WaitGroup
				for range tc.producers {
					q.RegisterProducer()
					wg.Add(1)
					go func() {
						defer wg.Done()
						defer q.UnregisterProducer()
						for i := range items / tc.producers {
							q.Enqueue(i)
						}
					}()
				}
				for range tc.consumers {
					wg.Add(1)
					go func() {
						defer wg.Done()
						for range q.All() {
						}
					}()
				}
				wg.Wait()
			}
		})
	}
}

// BenchmarkBufferedChannel is the baseline: one producer closing a
// buffered channel.
func BenchmarkBufferedChannel(b *testing.B) {
	for _, capacity := range []int{1, 50} {
		b.Run(fmt.Sprintf("cap=%d", capacity), func(b *testing.B) {
			b.ReportAllocs()
			const items = 1000
			for range b.N {
				ch := make(chan int, capacity)
				go func() {
					defer close(ch)
					for i := range items {
						ch <- i
					}
				}()
				for range ch {
				}
			}
		})
	}
}
