package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ayase-dev/otodoke/internal/domain"
)

// Loader retries product fetches at a fixed interval until one succeeds
// or the context ends. Results are keyed by product id so a late answer
// for a product the caller has since navigated away from is dropped
// instead of cancelled mid-flight.
type Loader struct {
	client   *Client
	interval time.Duration

	// want is the product id of the most recent Load call. A goroutine
	// that finishes for an older id discards its result.
	mu   sync.Mutex
	want string
}

// NewLoader wraps a Client with retry behaviour. Interval must be
// positive; callers pick it from configuration.
func NewLoader(c *Client, interval time.Duration) *Loader {
	return &Loader{client: c, interval: interval}
}

// Result is what a background load delivers on its channel.
type Result struct {
	ProductID string
	Product   *domain.Product
	Err       error
}

// Load fetches the product graph, retrying transient failures until the
// context is cancelled. Permanent failures return immediately.
func (l *Loader) Load(ctx context.Context, productID string) (*domain.Product, error) {
	l.mu.Lock()
	l.want = productID
	l.mu.Unlock()
	for {
		view, err := l.client.FetchProduct(ctx, productID)
		if err == nil {
			l.mu.Lock()
			stale := l.want != productID
			l.mu.Unlock()
			if stale {
				// Superseded by a later Load; report cancellation
				// rather than a stale product.
				return nil, context.Canceled
			}
			return view.ToDomain(), nil
		}
		var transient *TransientFetchError
		if !errors.As(err, &transient) {
			return nil, err
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

// LoadAsync runs Load in the background and delivers the outcome on the
// returned channel. The channel is buffered so an ignored result never
// leaks the goroutine.
func (l *Loader) LoadAsync(ctx context.Context, productID string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		p, err := l.Load(ctx, productID)
		ch <- Result{ProductID: productID, Product: p, Err: err}
	}()
	return ch
}
