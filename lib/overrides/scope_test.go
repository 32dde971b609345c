// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func bounded(min, max uint32) VersionScope {
	return VersionScope{Min: min, Max: &max}
}

func Test_VersionScope_Contains(t *testing.T) {
	t.Parallel()

	scope := bounded(10, 20)
	assert.False(t, scope.Contains(9))
	assert.True(t, scope.Contains(10))
	assert.True(t, scope.Contains(19))
	assert.False(t, scope.Contains(20))

	open := VersionScope{Min: 10}
	assert.False(t, open.Contains(9))
	assert.True(t, open.Contains(^uint32(0)))
}

func Test_VersionScope_overlaps(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		a, b     VersionScope
		overlaps bool
	}{
		"adjacent":          {a: bounded(0, 10), b: bounded(10, 20)},
		"disjoint":          {a: bounded(0, 5), b: bounded(10, 20)},
		"partial":           {a: bounded(0, 11), b: bounded(10, 20), overlaps: true},
		"nested":            {a: bounded(0, 100), b: bounded(10, 20), overlaps: true},
		"identical":         {a: bounded(3, 4), b: bounded(3, 4), overlaps: true},
		"unbounded_ignored": {a: VersionScope{}, b: bounded(10, 20)},
		"both_unbounded":    {a: VersionScope{}, b: VersionScope{Min: 5}},
	}

	for name, testCase := range testCases {
		testCase := testCase
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.overlaps, testCase.a.overlaps(testCase.b))
			assert.Equal(t, testCase.overlaps, testCase.b.overlaps(testCase.a))
		})
	}
}

func Test_VersionScope_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "[1, 2)", bounded(1, 2).String())
	assert.Equal(t, "[0, unbounded)", VersionScope{}.String())
}

func Test_viewAt(t *testing.T) {
	t.Parallel()

	scopes := []Scope{
		{VersionScope: VersionScope{Min: 0}},
		{VersionScope: bounded(10, 20)},
		{VersionScope: VersionScope{Min: 15}},
		{VersionScope: bounded(0, 10)},
		{VersionScope: VersionScope{Min: 15}},
	}

	assert.Equal(t, view{3, 0}, viewAt(scopes, 5))
	assert.Equal(t, view{1, 0}, viewAt(scopes, 12))
	assert.Equal(t, view{1, 4, 2, 0}, viewAt(scopes, 15))
	assert.Equal(t, view{4, 2, 0}, viewAt(scopes, 20))
	assert.Equal(t, "4,2,0", viewAt(scopes, 20).key())
	assert.Nil(t, viewAt(nil, 20))
}

func Test_breakpoints(t *testing.T) {
	t.Parallel()

	scopes := []Scope{
		{VersionScope: bounded(10, 20)},
		{VersionScope: VersionScope{Min: 15}},
		{VersionScope: bounded(20, 30)},
	}

	assert.Equal(t, []uint32{0, 10, 15, 20, 30}, breakpoints(scopes))
	assert.Equal(t, []uint32{0}, breakpoints(nil))
}
