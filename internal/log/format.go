// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"errors"
	"fmt"
	"strings"
)

// Format is the output format of the logger.
type Format uint8

const (
	// FormatConsole writes human readable, coloured lines.
	FormatConsole Format = iota
	// FormatJSON writes one JSON object per line.
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatConsole:
		return "console"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ErrFormatNotRecognised is returned by ParseFormat for unknown formats.
var ErrFormatNotRecognised = errors.New("format is not recognised")

// ParseFormat parses a case insensitive format name.
func ParseFormat(s string) (format Format, err error) {
	switch strings.ToLower(s) {
	case FormatConsole.String():
		return FormatConsole, nil
	case FormatJSON.String():
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrFormatNotRecognised, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() (text []byte, err error) {
	if f > FormatJSON {
		return nil, fmt.Errorf("%w: %d", ErrFormatNotRecognised, f)
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) (err error) {
	*f, err = ParseFormat(string(text))
	return err
}
