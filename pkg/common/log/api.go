/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"errors"
	"strings"
)

// Level defines a log level for logging messages.
type Level int

// Log levels.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

const defaultLevel = INFO

var levelNames = []string{"CRITICAL", "ERROR", "WARNING", "INFO", "DEBUG"} //nolint:gochecknoglobals

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return Level(i), nil
		}
	}

	return ERROR, errors.New("invalid log level")
}

// String returns string representation of given log level.
func (l Level) String() string {
	return levelNames[l]
}

// Logger defines all the logging methods to be implemented by a logger provider.
type Logger interface {
	// Fatalf logs a message and calls os.Exit.
	Fatalf(msg string, args ...interface{})

	// Panicf logs a message and panics.
	Panicf(msg string, args ...interface{})

	// Debugf logs a debug message.
	Debugf(msg string, args ...interface{})

	// Infof logs an informational message.
	Infof(msg string, args ...interface{})

	// Warnf logs a warning message.
	Warnf(msg string, args ...interface{})

	// Errorf logs an error message.
	Errorf(msg string, args ...interface{})
}

// LoggerProvider is a factory for moduled loggers.
type LoggerProvider interface {
	GetLogger(module string) Logger
}
