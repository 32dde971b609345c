// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

var root = New()

// NewFromGlobal creates a child of the process wide logger.
// Package loggers are created this way so a single Patch call
// reconfigures all of them.
func NewFromGlobal(options ...Option) *Logger {
	return root.New(options...)
}

// Patch patches the process wide logger and all of its children.
func Patch(options ...Option) {
	root.Patch(options...)
}
