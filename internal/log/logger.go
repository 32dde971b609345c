// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"
)

// LeveledLogger is the interface implemented by Logger.
type LeveledLogger interface {
	Trace(s string)
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(s string)
	Critical(s string)
	Tracef(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Criticalf(format string, args ...interface{})
}

var _ LeveledLogger = (*Logger)(nil)

// Logger is the logger implementation structure.
// It is thread safe to use.
type Logger struct {
	settings settings
	childs   []*Logger
	mutex    *sync.Mutex // shared with child loggers
}

// New creates a new logger.
// It can only be called once per writer.
// If you want to create more loggers with different settings for the
// same writer, child loggers can be created using the New(options) method,
// to ensure thread safety on the same writer.
func New(options ...Option) *Logger {
	s := newSettings(options)
	s.setDefaults()

	return &Logger{
		settings: s,
		mutex:    new(sync.Mutex),
	}
}

// New creates a new thread safe child logger.
// Options not given are inherited from the parent logger.
func (l *Logger) New(options ...Option) *Logger {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	s := newSettings(options)
	s.mergeWith(l.settings)
	s.setDefaults()

	child := &Logger{
		settings: s,
		mutex:    l.mutex,
	}
	l.childs = append(l.childs, child)
	return child
}

// Patch patches the existing settings with any option given.
// This is thread safe and propagates to all child loggers.
func (l *Logger) Patch(options ...Option) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.patch(options...)
}

func (l *Logger) patch(options ...Option) {
	patched := newSettings(options)
	patched.mergeWith(l.settings)
	l.settings = patched

	for _, child := range l.childs {
		child.patch(options...)
	}
}

// PatchLevel patches the level of the logger and of its children.
func (l *Logger) PatchLevel(level Level) {
	l.Patch(SetLevel(level))
}

type jsonLine struct {
	Time    string              `json:"time"`
	Level   string              `json:"level"`
	Caller  string              `json:"caller,omitempty"`
	Message string              `json:"message"`
	Context map[string][]string `json:"context,omitempty"`
}

func (l *Logger) log(logLevel Level, s string, args ...interface{}) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if *l.settings.level > logLevel {
		return
	}

	if len(args) > 0 {
		s = fmt.Sprintf(s, args...)
	}

	var line string
	switch *l.settings.format {
	case FormatJSON:
		line = l.jsonLine(logLevel, s)
	default:
		line = l.consoleLine(logLevel, s)
	}

	_, _ = l.settings.writer.Write([]byte(line + "\n"))
}

func (l *Logger) consoleLine(logLevel Level, s string) string {
	line := time.Now().Format(time.RFC3339) + " " + logLevel.ColouredString() + " " + s

	callerString := l.settings.caller.callerString()
	if callerString != "" {
		line += "\t" + callerString
	}

	if len(l.settings.context) > 0 {
		keyValues := make([]string, 0, len(l.settings.context))
		for _, kvs := range l.settings.context {
			keyValues = append(keyValues, kvs.key+"="+strings.Join(kvs.values, ","))
		}
		line += "\t" + strings.Join(keyValues, " ")
	}
	return line
}

func (l *Logger) jsonLine(logLevel Level, s string) string {
	entry := jsonLine{
		Time:    time.Now().Format(time.RFC3339),
		Level:   strings.ToLower(logLevel.String()),
		Caller:  l.settings.caller.callerString(),
		Message: s,
	}

	if len(l.settings.context) > 0 {
		entry.Context = make(map[string][]string, len(l.settings.context))
		for _, kvs := range l.settings.context {
			entry.Context[kvs.key] = kvs.values
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"error","message":"encoding log line: %s"}`, err)
	}
	return string(b)
}

// Trace logs with the trace level.
func (l *Logger) Trace(s string) { l.log(Trace, s) }

// Debug logs with the debug level.
func (l *Logger) Debug(s string) { l.log(Debug, s) }

// Info logs with the info level.
func (l *Logger) Info(s string) { l.log(Info, s) }

// Warn logs with the warn level.
func (l *Logger) Warn(s string) { l.log(Warn, s) }

// Error logs with the error level.
func (l *Logger) Error(s string) { l.log(Error, s) }

// Critical logs with the critical level.
func (l *Logger) Critical(s string) { l.log(Critical, s) }

// Tracef formats and logs at the trace level.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.log(Trace, format, args...)
}

// Debugf formats and logs at the debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(Debug, format, args...)
}

// Infof formats and logs at the info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(Info, format, args...)
}

// Warnf formats and logs at the warn level.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(Warn, format, args...)
}

// Errorf formats and logs at the error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(Error, format, args...)
}

// Criticalf formats and logs at the critical level.
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.log(Critical, format, args...)
}
