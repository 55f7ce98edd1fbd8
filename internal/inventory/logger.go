package inventory

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// leveledLogger adapts a logrus logger to the retryablehttp.LeveledLogger interface.
type leveledLogger struct {
	logger *logrus.Logger
}

func (l *leveledLogger) entry(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{"component": component}

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return l.logger.WithFields(fields)
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Error(msg)
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Warn(msg)
}

// retryablehttp messages are logged one level below the level they are emitted at.
func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Debug(msg)
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry(keysAndValues).Trace(msg)
}
