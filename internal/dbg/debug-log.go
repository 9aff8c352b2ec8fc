//go:build debug
// +build debug

package dbg

import (
	"os"

	"github.com/sirupsen/logrus"
)

type logrusLogger struct {
	entry *logrus.Entry
}

func init() {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.TraceLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Active = &logrusLogger{entry: logrus.NewEntry(logger)}
}

func (l *logrusLogger) Tracef(format string, a ...interface{}) {
	l.entry.Tracef(format, a...)
}

func (l *logrusLogger) WithField(key string, value interface{}) Logger {
	return &logrusLogger{entry: l.entry.WithField(key, value)}
}
