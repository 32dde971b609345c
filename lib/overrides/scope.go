// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package overrides

import (
	"sort"
	"strconv"
	"strings"
)

// VersionScope is the runtime spec version interval [Min, Max).
// A nil Max means the scope applies from Min onward.
type VersionScope struct {
	Min uint32
	Max *uint32
}

// Bounded returns true if the scope has an upper limit.
func (s VersionScope) Bounded() bool { return s.Max != nil }

// Contains returns true if the version falls inside the scope.
func (s VersionScope) Contains(version uint32) bool {
	return version >= s.Min && (s.Max == nil || version < *s.Max)
}

// overlaps only considers bounded scopes: unbounded scopes are allowed to
// overlap anything and are searched last.
func (s VersionScope) overlaps(other VersionScope) bool {
	if !s.Bounded() || !other.Bounded() {
		return false
	}
	return s.Min < *other.Max && other.Min < *s.Max
}

func (s VersionScope) String() string {
	upper := "unbounded"
	if s.Max != nil {
		upper = strconv.FormatUint(uint64(*s.Max), 10)
	}
	return "[" + strconv.FormatUint(uint64(s.Min), 10) + ", " + upper + ")"
}

// Scope is a version scope with its type catalog.
type Scope struct {
	VersionScope
	Catalog *Catalog
}

// view is the ordered list of scope indexes searched for a version:
// the containing bounded scope first, then containing unbounded scopes
// from the most recent lower bound to the oldest.
type view []int

func (v view) key() string {
	parts := make([]string, len(v))
	for i, index := range v {
		parts[i] = strconv.Itoa(index)
	}
	return strings.Join(parts, ",")
}

func viewAt(scopes []Scope, version uint32) (v view) {
	var unbounded []int
	for i, scope := range scopes {
		if !scope.Contains(version) {
			continue
		}
		if scope.Bounded() {
			v = append(v, i)
			continue
		}
		unbounded = append(unbounded, i)
	}

	sort.SliceStable(v, func(i, j int) bool {
		return scopes[v[i]].Min < scopes[v[j]].Min
	})
	// later declarations win over earlier ones with the same lower bound
	sort.SliceStable(unbounded, func(i, j int) bool {
		a, b := scopes[unbounded[i]], scopes[unbounded[j]]
		if a.Min != b.Min {
			return a.Min > b.Min
		}
		return unbounded[i] > unbounded[j]
	})
	return append(v, unbounded...)
}

// breakpoints returns the versions at which the set of containing scopes
// can change, in ascending order. Every distinct view is found by probing
// these versions.
func breakpoints(scopes []Scope) []uint32 {
	seen := map[uint32]struct{}{0: {}}
	points := []uint32{0}
	add := func(version uint32) {
		if _, ok := seen[version]; ok {
			return
		}
		seen[version] = struct{}{}
		points = append(points, version)
	}

	for _, scope := range scopes {
		add(scope.Min)
		if scope.Max != nil {
			add(*scope.Max)
		}
	}

	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}
