package lastfm

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Lazy is a relationship field that is resolved at most once.
//
// The zero value is unresolved and ready to use. A Lazy must not be copied
// after first use.
//
// Get resolves the field on first use and stores the result. Concurrent
// callers that arrive while a resolution is in flight wait for it instead of
// starting their own, so a successful resolution runs exactly once. A failed
// resolution is reported to every waiter and nothing is stored; the field
// stays unresolved and the next Get starts over.
type Lazy[T any] struct {
	value atomic.Pointer[T]
	group singleflight.Group
}

// Resolved reports whether the field holds a value.
func (l *Lazy[T]) Resolved() bool {
	return l.value.Load() != nil
}

// Peek returns the stored value without resolving.
func (l *Lazy[T]) Peek() (T, bool) {
	if p := l.value.Load(); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Get returns the stored value, calling resolve first if there is none.
//
// resolve runs with the values of the caller that started the flight but
// not its cancellation, so one caller giving up does not fail the others.
// Each caller stops waiting when its own ctx is done; the flight itself
// keeps running and stores its result.
func (l *Lazy[T]) Get(ctx context.Context, resolve func(context.Context) (T, error)) (T, error) {
	if v, ok := l.Peek(); ok {
		return v, nil
	}
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	flightCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan("", func() (any, error) {
		// A flight that finished between Peek and DoChan already stored it.
		if p := l.value.Load(); p != nil {
			return p, nil
		}
		v, err := resolve(flightCtx)
		if err != nil {
			return nil, err
		}
		p := &v
		l.value.Store(p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return *res.Val.(*T), nil
	}
}
