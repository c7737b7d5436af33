package logger

import (
	"github.com/sirupsen/logrus"
)

// Logger tags every entry with the component it belongs to.
// Debug entries are only written when the debug flag is set.
type Logger struct {
	flag      bool
	component string
}

func New(flag bool, component string) *Logger {
	if flag {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return &Logger{
		flag:      flag,
		component: component,
	}
}

func (l *Logger) DebugMode() bool {
	return l.flag
}

func (l *Logger) entry() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"component": l.component,
	})
}

func (l *Logger) Info(args ...interface{}) {
	l.entry().Info(args...)
}

func (l *Logger) Debug(args ...interface{}) {
	if l.flag {
		l.entry().Debug(args...)
	}
}

func (l *Logger) Warn(args ...interface{}) {
	l.entry().Warn(args...)
}

func (l *Logger) Error(args ...interface{}) {
	l.entry().Error(args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.entry().Infof(format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.flag {
		l.entry().Debugf(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.entry().Warnf(format, args...)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}
