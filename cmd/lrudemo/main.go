package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"

	"github.com/dmitrymomot/lrukit/pkg/cache"
	"github.com/dmitrymomot/lrukit/pkg/config"
	"github.com/dmitrymomot/lrukit/pkg/logger"
	"github.com/dmitrymomot/lrukit/pkg/scenario"
)

const serviceName = "lrudemo"

type runIDKey struct{}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	ctx = context.WithValue(ctx, runIDKey{}, uuid.New().String())

	if err := run(ctx, cfg, log); err != nil {
		log.ErrorContext(ctx, "lrudemo failed", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, serviceName),
		withRunID(),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(strings.ToLower(cfg.LogFormat))))
	}
	return logger.New(opts...)
}

// withRunID tags every record logged with a run context with its run id.
func withRunID() logger.Option {
	return logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
		id, ok := ctx.Value(runIDKey{}).(string)
		return logger.RunID(id), ok
	})
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	script := scenario.Default()
	if cfg.Scenario != "" {
		s, err := scenario.Load(cfg.Scenario)
		if err != nil {
			return err
		}
		script = s
	}

	log.InfoContext(ctx, "replaying scenario",
		slog.String("scenario", script.Name),
		logger.Capacity(script.Capacity),
		slog.Int("steps", len(script.Steps)),
	)

	trace, err := scenario.Run(ctx, script,
		cache.WithLogger[string, string](log.With(logger.Component("scenario_cache"))),
	)
	if err != nil {
		return err
	}
	for _, r := range trace.Results {
		attrs := []any{
			logger.Op(string(r.Op)),
			logger.Key(r.Key),
			slog.String("state", r.State),
			logger.Size(r.Size),
		}
		switch r.Op {
		case scenario.OpGet, scenario.OpPeek, scenario.OpRemove:
			attrs = append(attrs, slog.Bool("hit", r.Hit), slog.String("value", r.Got))
		case scenario.OpPut:
			if r.Evicted {
				attrs = append(attrs, slog.String("evicted", r.EvictedKey))
			}
		}
		log.InfoContext(ctx, "step", attrs...)
	}

	report, err := runWorkload(ctx, cfg.Workload, log)
	if err != nil {
		return err
	}

	log.InfoContext(ctx, "workload finished",
		logger.Capacity(cfg.Workload.Capacity),
		logger.Size(report.Size),
		slog.Int("shards", cfg.Workload.Shards),
		slog.Uint64("hits", report.Stats.Hits),
		slog.Uint64("misses", report.Stats.Misses),
		slog.Uint64("evictions", report.Stats.Evictions),
		slog.Int64("loads", report.Loads),
		slog.Float64("hit_ratio", report.Stats.HitRatio()),
		logger.Duration(report.Duration),
	)
	return nil
}
