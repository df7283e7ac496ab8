package logger

import (
	"log/slog"
	"time"
)

// Error records err under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Key records a cache key under the key "key".
func Key(k any) slog.Attr {
	return slog.Any("key", k)
}

// Capacity records a cache capacity under the key "capacity".
func Capacity(n int) slog.Attr {
	return slog.Int("capacity", n)
}

// Size records a cache size under the key "size".
func Size(n int) slog.Attr {
	return slog.Int("size", n)
}

// Shard records a shard index under the key "shard".
func Shard(i int) slog.Attr {
	return slog.Int("shard", i)
}

// Op records an operation name under the key "op".
func Op(name string) slog.Attr {
	return slog.String("op", name)
}

// RunID records the run identifier under the key "run_id".
// If id is nil, it returns an empty Attr.
func RunID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("run_id", id)
}

// Duration records d under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
