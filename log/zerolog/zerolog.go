// Package zerolog adapts a zerolog.Logger to arraycache.Logger.
package zerolog

import (
	"github.com/rs/zerolog"
	"github.com/unkn0wn-root/arraycache"
)

var _ arraycache.Logger = Logger{}

type Logger struct{ L zerolog.Logger }

// New tags every event with component=arraycache.
func New(l zerolog.Logger) Logger {
	return Logger{L: l.With().Str("component", "arraycache").Logger()}
}

func (z Logger) Debug(msg string, f arraycache.Fields) { send(z.L.Debug(), msg, f) }
func (z Logger) Info(msg string, f arraycache.Fields)  { send(z.L.Info(), msg, f) }
func (z Logger) Warn(msg string, f arraycache.Fields)  { send(z.L.Warn(), msg, f) }
func (z Logger) Error(msg string, f arraycache.Fields) { send(z.L.Error(), msg, f) }

// send is a no-op for events below the logger level (e == nil).
func send(e *zerolog.Event, msg string, f arraycache.Fields) {
	if e == nil {
		return
	}
	if len(f) > 0 {
		e = e.Fields(map[string]any(f))
	}
	e.Msg(msg)
}
