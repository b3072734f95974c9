// Package logger defines the logging interface used across the library.
//
// Components take a logger.Logger rather than a concrete implementation so
// the hosting application can plug in its own logging stack. A *logrus.Logger
// satisfies the interface directly; NewLogrus returns one with sane defaults.
package logger

import (
	"io"
	"log"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal leveled logging surface components depend on.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	SetOutput(writer io.Writer)
}

// *logrus.Logger implements Logger as is.
var _ Logger = (*logrus.Logger)(nil)

// NewLogrus returns a logrus backed Logger with timestamps enabled.
func NewLogrus() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// DefaultLogger forwards every message to a single printer function,
// typically log.Printf. Debug messages are dropped unless Debug is set.
type DefaultLogger struct {
	Printer func(format string, args ...interface{})
	Debug   bool
}

var _ Logger = (*DefaultLogger)(nil)

// Go is a Logger writing to the standard library log package.
var Go Logger = &DefaultLogger{Printer: log.Printf}

func (d *DefaultLogger) Debugf(format string, args ...interface{}) {
	if !d.Debug {
		return
	}
	d.Printer("[debug] "+format, args...)
}

func (d *DefaultLogger) Infof(format string, args ...interface{}) {
	d.Printer("[info] "+format, args...)
}

func (d *DefaultLogger) Warnf(format string, args ...interface{}) {
	d.Printer("[warn] "+format, args...)
}

func (d *DefaultLogger) Errorf(format string, args ...interface{}) {
	d.Printer("[error] "+format, args...)
}

func (d *DefaultLogger) SetOutput(io.Writer) {}

type nilLogger struct{}

// Nil is a Logger that discards all messages.
var Nil Logger = nilLogger{}

func (nilLogger) Debugf(string, ...interface{}) {}
func (nilLogger) Infof(string, ...interface{})  {}
func (nilLogger) Warnf(string, ...interface{})  {}
func (nilLogger) Errorf(string, ...interface{}) {}
func (nilLogger) SetOutput(io.Writer)           {}
