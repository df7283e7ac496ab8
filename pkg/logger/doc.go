// Package logger builds *slog.Logger instances from functional options and
// offers attribute helpers for consistent key naming.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler according to the
// configured Format. When ContextExtractor callbacks are registered, the
// handler runs them on every record; that is how values carried in a
// context.Context, such as a run id, reach every log line.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment("development", "lrudemo"),
//	    logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
//	        id, ok := ctx.Value(runIDKey{}).(string)
//	        return logger.RunID(id), ok
//	    }),
//	)
//
//	ctx := context.WithValue(context.Background(), runIDKey{}, id)
//	log.InfoContext(ctx, "entry evicted",
//	    logger.Key(key),
//	    logger.Capacity(3),
//	)
//
// # Configuration
//
//   - WithEnvironment: per-environment defaults (development, staging, production).
//   - WithFormat, WithLevelName: override format and level.
//   - WithOutput: write somewhere other than stdout.
//   - WithContextExtractors: attributes from context.
//
// Error returns an empty attribute for a nil error, so
//
//	log.Info("replay finished", logger.Error(err))
//
// needs no nil check.
package logger
