package logging

import (
	"github.com/go-logr/logr"
)

const (
	LEVEL_INFO  = 0
	LEVEL_DEBUG = 1
	LEVEL_TRACE = 2
)

// NewLogger wraps a logr.Logger. A logger without a sink is replaced by logr.Discard().
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a Logger that drops everything.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// VerbosityFromFlags maps the -v and -vv command line switches to a sink verbosity.
func VerbosityFromFlags(debug, trace bool) int {
	switch {
	case trace:
		return LEVEL_TRACE
	case debug:
		return LEVEL_DEBUG
	default:
		return LEVEL_INFO
	}
}

// Logger is a struct that wraps the logr.Logger interface.
type Logger struct {
	log logr.Logger
}

// Logr exposes the wrapped logr.Logger so it can be handed to options.WithLogger.
func (l *Logger) Logr() logr.Logger {
	return l.log
}

// WithName returns a Logger whose messages are prefixed with name.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{log: l.log.WithName(name)}
}

func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
