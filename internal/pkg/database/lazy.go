package database

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Lazy holds a value built on first use. Concurrent first calls share a
// single init; a failed init is not cached, so the next call retries.
type Lazy[T any] struct {
	init  func(ctx context.Context) (T, error)
	group singleflight.Group

	mu    sync.RWMutex
	value T
	ready bool
}

func NewLazy[T any](init func(ctx context.Context) (T, error)) *Lazy[T] {
	return &Lazy[T]{init: init}
}

func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if v, ok := l.Peek(); ok {
		return v, nil
	}

	v, err, _ := l.group.Do("init", func() (interface{}, error) {
		if v, ok := l.Peek(); ok {
			return v, nil
		}
		v, err := l.init(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.value, l.ready = v, true
		l.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Peek returns the value without triggering init.
func (l *Lazy[T]) Peek() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.ready
}
