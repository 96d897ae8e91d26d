// Package logrus adapts a logrus entry to arraycache.Logger.
package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/arraycache"
)

var _ arraycache.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every line with component=arraycache.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "arraycache")}
}

func (l LogrusLogger) with(f arraycache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}

func (l LogrusLogger) Debug(msg string, f arraycache.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f arraycache.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f arraycache.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f arraycache.Fields) { l.with(f).Error(msg) }
