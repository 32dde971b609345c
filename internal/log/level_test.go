// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ParseLevel(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		s          string
		level      Level
		errWrapped error
		errMessage string
	}{
		"lower_case": {s: "debug", level: Debug},
		"upper_case": {s: "CRITICAL", level: Critical},
		"mixed_case": {s: "Warn", level: Warn},
		"unknown": {
			s:          "verbose",
			errWrapped: ErrLevelNotRecognised,
			errMessage: "level is not recognised: verbose",
		},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := ParseLevel(testCase.s)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.level, level)
		})
	}
}

func Test_Level_Text(t *testing.T) {
	t.Parallel()

	text, err := Trace.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "trace", string(text))

	var level Level
	err = level.UnmarshalText([]byte("error"))
	require.NoError(t, err)
	assert.Equal(t, Error, level)

	_, err = Level(10).MarshalText()
	assert.ErrorIs(t, err, ErrLevelNotRecognised)
}

func Test_ParseFormat(t *testing.T) {
	t.Parallel()

	format, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	assert.EqualError(t, err, "format is not recognised: xml")

	var decoded Format
	err = decoded.UnmarshalText([]byte("console"))
	require.NoError(t, err)
	assert.Equal(t, FormatConsole, decoded)
}
