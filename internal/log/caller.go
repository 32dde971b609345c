// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// callerField is a part of the caller location added to log lines.
type callerField uint8

const (
	callerFile callerField = 1 << iota
	callerLine
	callerFunc

	callerAll = callerFile | callerLine | callerFunc
)

// callerSettings holds the enabled caller fields, and which of them
// were explicitly configured so unset ones can be inherited.
type callerSettings struct {
	enabled    callerField
	configured callerField
}

func (c *callerSettings) set(field callerField, enabled bool) {
	c.configured |= field
	if enabled {
		c.enabled |= field
	} else {
		c.enabled &^= field
	}
}

func (c *callerSettings) mergeWith(other callerSettings) {
	inherited := other.configured &^ c.configured
	c.enabled |= other.enabled & inherited
	c.configured |= inherited
}

// setDefaults disables every field not configured.
func (c *callerSettings) setDefaults() {
	c.configured = callerAll
}

// callerDepth skips callerString, the line formatter, Logger.log
// and the exported logging method.
const callerDepth = 4

func (c callerSettings) callerString() string {
	if c.enabled == 0 {
		return ""
	}

	pc, file, line, ok := runtime.Caller(callerDepth)
	if !ok {
		return "error"
	}

	fields := make([]string, 0, 3)
	if c.enabled&callerFile != 0 {
		fields = append(fields, filepath.Base(file))
	}
	if c.enabled&callerLine != 0 {
		fields = append(fields, "L"+strconv.Itoa(line))
	}
	if c.enabled&callerFunc != 0 {
		if details := runtime.FuncForPC(pc); details != nil {
			fields = append(fields, strings.TrimLeft(filepath.Ext(details.Name()), "."))
		}
	}
	return strings.Join(fields, ":")
}
