package datasource

import (
	"context"
	"sync"

	"github.com/abgdnv/productgrid/internal/product"
)

// Subscription is one asynchronous fetch whose result is delivered to callbacks.
type Subscription struct {
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	stopped bool
}

// Subscribe fetches in the background and calls onLoad or onError, at most once.
// Callbacks must not call Stop.
func Subscribe(ctx context.Context, f Fetcher, onLoad func([]product.Record), onError func(error)) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(s.done)
		defer cancel()
		records, err := f.Fetch(ctx)

		s.mu.Lock()
		defer s.mu.Unlock()
		if s.stopped || ctx.Err() != nil {
			return
		}
		if err != nil {
			onError(err)
			return
		}
		onLoad(records)
	}()

	return s
}

// Stop cancels the fetch and waits for the goroutine. Once Stop returns no callback runs.
func (s *Subscription) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()
	s.cancel()
	<-s.done
}

// Done is closed once the fetch has finished and any callback has returned.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
