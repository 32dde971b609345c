// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"io"
	"os"
)

type contextKeyValues struct {
	key    string
	values []string
}

type settings struct {
	writer  io.Writer
	level   *Level
	format  *Format
	caller  callerSettings
	context []contextKeyValues
}

func newSettings(options []Option) (s settings) {
	for _, option := range options {
		option(&s)
	}
	return s
}

// mergeWith sets fields of the receiver that are not set yet
// using the other settings. Context key values of the other
// settings are prepended to the receiver ones.
func (s *settings) mergeWith(other settings) {
	if s.writer == nil {
		s.writer = other.writer
	}

	if s.level == nil && other.level != nil {
		level := *other.level
		s.level = &level
	}

	if s.format == nil && other.format != nil {
		format := *other.format
		s.format = &format
	}

	s.caller.mergeWith(other.caller)

	if len(other.context) > 0 {
		merged := make([]contextKeyValues, 0, len(other.context)+len(s.context))
		for _, kv := range other.context {
			merged = append(merged, contextKeyValues{
				key:    kv.key,
				values: append([]string(nil), kv.values...),
			})
		}
		for _, kv := range s.context {
			merged = addContext(merged, kv.key, kv.values...)
		}
		s.context = merged
	}
}

func (s *settings) setDefaults() {
	if s.writer == nil {
		s.writer = os.Stdout
	}

	if s.level == nil {
		level := Info
		s.level = &level
	}

	if s.format == nil {
		format := FormatConsole
		s.format = &format
	}

	s.caller.setDefaults()
}

// Option is the type to specify settings modifier
// for the logger operation.
type Option func(s *settings)

// SetLevel sets the level for the logger.
// The level defaults to Info.
func SetLevel(level Level) Option {
	return func(s *settings) {
		s.level = &level
	}
}

// SetFormat sets the output format of the logger.
// The format defaults to FormatConsole.
func SetFormat(format Format) Option {
	return func(s *settings) {
		s.format = &format
	}
}

// SetCallerFile enables or disables logging the caller file.
// The default is disabled.
func SetCallerFile(enabled bool) Option {
	return func(s *settings) {
		s.caller.set(callerFile, enabled)
	}
}

// SetCallerLine enables or disables logging the caller line number.
// The default is disabled.
func SetCallerLine(enabled bool) Option {
	return func(s *settings) {
		s.caller.set(callerLine, enabled)
	}
}

// SetCallerFunc enables or disables logging the caller function.
// The default is disabled.
func SetCallerFunc(enabled bool) Option {
	return func(s *settings) {
		s.caller.set(callerFunc, enabled)
	}
}

// SetCaller enables or disables both the caller file and line number.
func SetCaller(enabled bool) Option {
	return func(s *settings) {
		s.caller.set(callerFile, enabled)
		s.caller.set(callerLine, enabled)
	}
}

// SetWriter set the writer for the logger.
// The writer defaults to os.Stdout.
func SetWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writer = writer
	}
}

// AddContext adds the context for the logger as a key values pair.
// It adds them in order. If a key already exists, the value is added to the
// existing values.
func AddContext(key, value string) Option {
	return func(s *settings) {
		s.context = addContext(s.context, key, value)
	}
}

func addContext(context []contextKeyValues, key string, values ...string) []contextKeyValues {
	for i := range context {
		if context[i].key == key {
			context[i].values = append(context[i].values, values...)
			return context
		}
	}
	return append(context, contextKeyValues{key: key, values: append([]string(nil), values...)})
}
