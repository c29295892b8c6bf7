/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	stdlog "log"
	"os"
	"sync"
)

// Log is an implementation of Logger interface.
// It encapsulates default or custom logger to provide module and level based logging.
type Log struct {
	instance Logger
	module   string
	once     sync.Once
}

// New creates and returns a Logger implementation based on given module name.
// note: the underlying logger instance is lazy initialized on first use.
// To use your own logger implementation provide logger provider in 'Initialize()' before logging any line.
func New(module string) *Log {
	return &Log{module: module}
}

// Fatalf calls Fatalf function of underlying logger.
func (l *Log) Fatalf(msg string, args ...interface{}) {
	l.logger().Fatalf(msg, args...)
}

// Panicf calls Panicf function of underlying logger.
func (l *Log) Panicf(msg string, args ...interface{}) {
	l.logger().Panicf(msg, args...)
}

// Debugf calls Debugf function of underlying logger.
func (l *Log) Debugf(msg string, args ...interface{}) {
	l.logger().Debugf(msg, args...)
}

// Infof calls Infof function of underlying logger.
func (l *Log) Infof(msg string, args ...interface{}) {
	l.logger().Infof(msg, args...)
}

// Warnf calls Warnf function of underlying logger.
func (l *Log) Warnf(msg string, args ...interface{}) {
	l.logger().Warnf(msg, args...)
}

// Errorf calls Errorf function of underlying logger.
func (l *Log) Errorf(msg string, args ...interface{}) {
	l.logger().Errorf(msg, args...)
}

func (l *Log) logger() Logger {
	l.once.Do(func() {
		l.instance = loggerProvider().GetLogger(l.module)
	})

	return l.instance
}

//nolint:gochecknoglobals
var (
	loggerProviderInstance LoggerProvider
	loggerProviderOnce     sync.Once

	levelsMu sync.RWMutex
	levels   = map[string]Level{}
)

// Initialize sets new custom logging provider which takes over logging operations.
// It is required to call this function before making any loggings for using custom loggers.
func Initialize(p LoggerProvider) {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = p
	})
}

func loggerProvider() LoggerProvider {
	loggerProviderOnce.Do(func() {
		loggerProviderInstance = &defProvider{}
	})

	return loggerProviderInstance
}

// SetLevel sets the log level for given module. If not set, the default level is INFO.
func SetLevel(module string, level Level) {
	levelsMu.Lock()
	defer levelsMu.Unlock()

	levels[module] = level
}

// GetLevel returns the log level for given module.
func GetLevel(module string) Level {
	levelsMu.RLock()
	defer levelsMu.RUnlock()

	if level, ok := levels[module]; ok {
		return level
	}

	return defaultLevel
}

// IsEnabledFor checks if given log level is enabled for given module.
func IsEnabledFor(module string, level Level) bool {
	return level <= GetLevel(module)
}

type defProvider struct{}

func (p *defProvider) GetLogger(module string) Logger {
	return &defLog{
		logger: stdlog.New(os.Stderr, fmt.Sprintf(" [%s] ", module), stdlog.Ldate|stdlog.Ltime|stdlog.LUTC),
		module: module,
	}
}

// defLog is a moduled leveled logger on top of the standard library logger.
type defLog struct {
	logger *stdlog.Logger
	module string
}

func (l *defLog) Fatalf(msg string, args ...interface{}) {
	l.logf(CRITICAL, msg, args...)
	os.Exit(1)
}

func (l *defLog) Panicf(msg string, args ...interface{}) {
	l.logf(CRITICAL, msg, args...)
	panic(fmt.Sprintf(msg, args...))
}

func (l *defLog) Debugf(msg string, args ...interface{}) {
	l.logf(DEBUG, msg, args...)
}

func (l *defLog) Infof(msg string, args ...interface{}) {
	l.logf(INFO, msg, args...)
}

func (l *defLog) Warnf(msg string, args ...interface{}) {
	l.logf(WARNING, msg, args...)
}

func (l *defLog) Errorf(msg string, args ...interface{}) {
	l.logf(ERROR, msg, args...)
}

func (l *defLog) logf(level Level, msg string, args ...interface{}) {
	if !IsEnabledFor(l.module, level) {
		return
	}

	l.logger.Output(2, fmt.Sprintf(level.String()+" "+msg, args...)) //nolint:errcheck,gomnd
}
