// Package loader runs the fetch-on-focus loads of storefront views.
//
// A view focuses its loader every time it is shown. The newest load
// always wins: focusing again cancels the load still in flight and its
// result is discarded, so a slow old response can never overwrite a
// newer one. Unmount cancels whatever is in flight.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSuperseded is returned to the caller of a load that was replaced
// by a newer Focus or cancelled by Unmount.
var ErrSuperseded = errors.New("loader: load superseded")

// LoadFunc fetches the view data. It must honour ctx cancellation.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// State is the last committed outcome of a loader.
type State[T any] struct {
	Data     T         `json:"data"`
	Err      error     `json:"-"`
	Loading  bool      `json:"loading"`
	LoadedAt time.Time `json:"loaded_at"`
}

type Loader[T any] struct {
	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	state   State[T]
	timeout time.Duration
	now     func() time.Time
}

// New returns a loader. A positive timeout bounds every load.
func New[T any](timeout time.Duration) *Loader[T] {
	return &Loader[T]{timeout: timeout, now: time.Now}
}

// Focus starts fn, cancelling any load in flight, and waits for it.
// The result replaces the committed state only if no newer Focus or
// Unmount happened meanwhile; otherwise ErrSuperseded is returned.
func (l *Loader[T]) Focus(ctx context.Context, fn LoadFunc[T]) (T, error) {
	loadCtx, gen := l.begin(ctx)

	data, err := fn(loadCtx)

	if !l.commit(gen, data, err) {
		var zero T
		return zero, ErrSuperseded
	}
	return data, err
}

func (l *Loader[T]) begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	var loadCtx context.Context
	var cancel context.CancelFunc
	if l.timeout > 0 {
		loadCtx, cancel = context.WithTimeout(ctx, l.timeout)
	} else {
		loadCtx, cancel = context.WithCancel(ctx)
	}
	l.gen++
	l.cancel = cancel
	l.state.Loading = true
	return loadCtx, l.gen
}

func (l *Loader[T]) commit(gen uint64, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.gen {
		return false
	}
	l.cancel()
	l.cancel = nil
	l.state.Loading = false
	l.state.Err = err
	if err == nil {
		l.state.Data = data
		l.state.LoadedAt = l.now()
	}
	return true
}

// Unmount cancels the load in flight, if any. The committed state is kept.
func (l *Loader[T]) Unmount() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.state.Loading = false
}

// Snapshot returns the committed state.
func (l *Loader[T]) Snapshot() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Set commits data as if a load had just returned it, superseding any
// load in flight. Used after a mutation whose response already carries
// the fresh list.
func (l *Loader[T]) Set(data T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
	l.state = State[T]{Data: data, LoadedAt: l.now()}
}
