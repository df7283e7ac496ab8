package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lrukit/pkg/cache"
	"github.com/dmitrymomot/lrukit/pkg/logger"
)

var errInvalidWorkload = errors.New("invalid workload config")

// WorkloadReport summarizes a workload run.
type WorkloadReport struct {
	Stats    cache.Stats
	Loads    int64
	Size     int
	Duration time.Duration
}

// runWorkload spreads cfg.Operations read-through lookups over cfg.Workers
// goroutines against a sharded cache backed by a synthetic loader.
func runWorkload(ctx context.Context, cfg WorkloadConfig, log *slog.Logger) (WorkloadReport, error) {
	if cfg.Workers <= 0 || cfg.Operations < 0 || cfg.KeySpace <= 0 {
		return WorkloadReport{}, fmt.Errorf("%w: workers=%d operations=%d key_space=%d",
			errInvalidWorkload, cfg.Workers, cfg.Operations, cfg.KeySpace)
	}

	store, err := cache.NewSharded[string, string](cfg.Capacity, cfg.Shards, cache.StringHasher)
	if err != nil {
		return WorkloadReport{}, err
	}

	var loads atomic.Int64
	loader, err := cache.NewLoader(store,
		func(_ context.Context, key string) (string, error) {
			loads.Add(1)
			return "value-" + key, nil
		},
		cache.WithLoaderLogger[string, string](log.With(logger.Component("workload"))),
	)
	if err != nil {
		return WorkloadReport{}, err
	}

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	for w := range cfg.Workers {
		ops := cfg.Operations / cfg.Workers
		if w < cfg.Operations%cfg.Workers {
			ops++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewPCG(uint64(w), uint64(cfg.KeySpace)))
			for range ops {
				if err := ctx.Err(); err != nil {
					return err
				}
				// Skewed keys so that a hot set stays resident.
				key := strconv.Itoa(int(rng.ExpFloat64()*float64(cfg.KeySpace)/8) % cfg.KeySpace)
				if _, err := loader.GetOrLoad(ctx, key); err != nil {
					return err
				}
			}
			return nil
		})
	}
	err = g.Wait()

	return WorkloadReport{
		Stats:    store.Stats(),
		Loads:    loads.Load(),
		Size:     store.Len(),
		Duration: time.Since(start),
	}, err
}
