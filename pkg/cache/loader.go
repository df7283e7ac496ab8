package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/lrukit/pkg/logger"
)

// Store is the cache surface a Loader reads through. Both *LRU and *Sharded
// implement it.
type Store[K comparable, V any] interface {
	Get(key K) (V, bool)
	Peek(key K) (V, bool)
	Put(key K, value V) (K, bool)
}

// LoadFunc produces the value for a key missing from the cache.
type LoadFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Loader fills a Store on misses, running at most one load per key at a time.
type Loader[K comparable, V any] struct {
	store   Store[K, V]
	load    LoadFunc[K, V]
	keyFunc func(K) string
	logger  *slog.Logger
	group   singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption[K comparable, V any] func(*Loader[K, V])

// WithKeyFunc sets how keys are turned into flight identifiers.
// The default formats keys with fmt.Sprint, which must be injective for the
// key type in use.
func WithKeyFunc[K comparable, V any](fn func(K) string) LoaderOption[K, V] {
	return func(l *Loader[K, V]) {
		if fn != nil {
			l.keyFunc = fn
		}
	}
}

// WithLoaderLogger sets the logger used to report failed loads.
func WithLoaderLogger[K comparable, V any](lg *slog.Logger) LoaderOption[K, V] {
	return func(l *Loader[K, V]) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// NewLoader creates a read-through loader over store.
func NewLoader[K comparable, V any](store Store[K, V], fn LoadFunc[K, V], opts ...LoaderOption[K, V]) (*Loader[K, V], error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if fn == nil {
		return nil, ErrNilLoadFunc
	}

	l := &Loader[K, V]{
		store:   store,
		load:    fn,
		keyFunc: func(k K) string { return fmt.Sprint(k) },
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// GetOrLoad returns the cached value for key, loading and storing it on a
// miss. Concurrent misses for the same key share a single load. Failed loads
// are not cached.
//
// The shared load is detached from the caller's cancellation so that one
// caller giving up does not fail the others; each caller still stops waiting
// when its own ctx is done.
func (l *Loader[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := l.store.Get(key); ok {
		return v, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(l.keyFunc(key), func() (any, error) {
		// A flight that finished just before this one may have stored the key.
		if v, ok := l.store.Peek(key); ok {
			return v, nil
		}

		v, err := l.load(loadCtx, key)
		if err != nil {
			l.logger.ErrorContext(loadCtx, "failed to load cache entry",
				logger.Component("cache_loader"),
				logger.Key(key),
				logger.Error(err),
			)
			return nil, errors.Join(ErrLoadFailed, err)
		}

		l.store.Put(key, v)
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, _ := res.Val.(V)
		return v, nil
	}
}
