package screens

import (
	"context"
	"sync"
)

// View is what a list screen should render.
type View int

const (
	ViewLoading View = iota
	ViewEmpty
	ViewReady
	ViewFailed
)

func (v View) String() string {
	return [...]string{"loading", "empty", "ready", "failed"}[v]
}

// ListState holds the visible items of a list screen. Each refresh takes a
// sequence number and cancels the previous one; only the response to the
// latest refresh is applied.
type ListState[T any] struct {
	mu      sync.Mutex
	items   []T
	err     error
	loaded  bool
	issued  uint64
	applied uint64
	cancel  context.CancelFunc
}

// Begin starts a refresh.
func (l *ListState[T]) Begin(ctx context.Context) (context.Context, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, l.cancel = context.WithCancel(ctx)
	l.issued++
	return ctx, l.issued
}

// Apply stores the outcome of refresh seq. It reports false, leaving the
// state untouched, when a newer refresh has been issued since.
func (l *ListState[T]) Apply(seq uint64, items []T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.issued || seq <= l.applied {
		return false
	}
	l.applied = seq
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if err != nil {
		l.err = err
		return true
	}
	l.items, l.err, l.loaded = items, nil, true
	return true
}

// Items returns a copy of the visible items.
func (l *ListState[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Remove drops the visible items matching pred. The local edit counts as
// the latest state: a refresh still in flight is cancelled and its response
// is dropped.
func (l *ListState[T]) Remove(pred func(T) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.issued++
	l.applied = l.issued
	kept := l.items[:0:0]
	for _, it := range l.items {
		if !pred(it) {
			kept = append(kept, it)
		}
	}
	l.items = kept
}

func (l *ListState[T]) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

func (l *ListState[T]) View() View {
	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case l.err != nil:
		return ViewFailed
	case !l.loaded:
		return ViewLoading
	case len(l.items) == 0:
		return ViewEmpty
	default:
		return ViewReady
	}
}
