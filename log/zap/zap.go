// Package zap adapts a *zap.Logger to arraycache.Logger.
package zap

import (
	"maps"
	"slices"

	"github.com/unkn0wn-root/arraycache"
	"go.uber.org/zap"
)

var _ arraycache.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "arraycache". A nil l yields a no-op logger.
func New(l *zap.Logger) ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return ZapLogger{L: l.Named("arraycache")}
}

func (z ZapLogger) Debug(msg string, f arraycache.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f arraycache.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f arraycache.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f arraycache.Fields) { z.L.Error(msg, zf(f)...) }

// zf converts fields in key order.
func zf(f arraycache.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for _, k := range slices.Sorted(maps.Keys(f)) {
		switch v := f[k].(type) {
		case string:
			out = append(out, zap.String(k, v))
		case error:
			out = append(out, zap.NamedError(k, v))
		default:
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}
