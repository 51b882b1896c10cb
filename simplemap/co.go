package simplemap

import (
	"context"
	"sync"
)

// Source is the read-only half of Iterator. A CoIterator only ever
// reads from it, and may stop reading at any point.
type Source[T any] interface {
	Next() bool
	Item() T
}

var _ Source[int] = (Iterator[int])(nil)

// CoIterator hands the items of a Source over a channel, from a
// goroutine started by CoIterate or CoIterateContext.
type CoIterator[T any] struct {
	items <-chan T
	stop  func()
}

// Items returns the channel carrying the items, in Source order.
// It is closed once the Source is exhausted or the iteration is stopped.
func (c CoIterator[T]) Items() <-chan T {
	return c.items
}

// Stop ends the iteration early. It is safe to call more than once
// and from several goroutines. Once Items is closed, Stop is not needed.
//
// An item already on offer when Stop is called may still be received.
func (c CoIterator[T]) Stop() {
	c.stop()
}

// CoIterate is CoIterateContext without a context.
//
//	co := simplemap.CoIterate[K](m.Keys())
//	for k := range co.Items() {
//		if done(k) {
//			co.Stop()
//		}
//	}
func CoIterate[T any](src Source[T]) CoIterator[T] {
	return CoIterateContext(context.Background(), src)
}

// CoIterateContext starts a goroutine that reads src and sends each
// item on the Items channel. The goroutine exits, closing Items, when
// src runs out, when Stop is called, or when ctx is done.
// A nil src gives an already closed channel.
//
// The map behind src must not be modified until Items is closed.
func CoIterateContext[T any](ctx context.Context, src Source[T]) CoIterator[T] {
	out := make(chan T)
	stopped := make(chan struct{})

	var once sync.Once
	co := CoIterator[T]{
		items: out,
		stop:  func() { once.Do(func() { close(stopped) }) },
	}

	if src == nil {
		close(out)
		return co
	}

	go func() {
		defer close(out)
		for src.Next() {
			// stopping wins over offering the next item
			select {
			case <-stopped:
				return
			case <-ctx.Done():
				return
			default:
			}

			select {
			case out <- src.Item():
			case <-stopped:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return co
}
