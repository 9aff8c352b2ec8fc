//go:build !debug
// +build !debug

package dbg

type noOpLogger struct{}

func init() {
	Active = noOpLogger{}
}

func (noOpLogger) Tracef(format string, a ...interface{}) {}

func (n noOpLogger) WithField(key string, value interface{}) Logger { return n }
