// Package dbg is the driver-only trace logger for cmd/mipsstep. The
// execution core in internal/cpu never imports this package — it stays a
// pure function of its register-file and memory arguments.
//
// A build tag (debug / !debug) swaps the active Logger implementation
// between a real logrus-backed sink and a no-op, so trace output carries
// structured fields and levels without costing anything in a non-debug
// build.
package dbg

// Logger is the tag-selected trace sink.
type Logger interface {
	Tracef(format string, a ...interface{})
	WithField(key string, value interface{}) Logger
}

// Active is initialised by either debug-log.go or nodebug-log.go depending
// on the build tag in effect.
var Active Logger

func Tracef(format string, a ...interface{}) {
	Active.Tracef(format, a...)
}

func WithField(key string, value interface{}) Logger {
	return Active.WithField(key, value)
}
