// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package tuple implements spec.md §4.2's n-dimensional interval: a
// tuple of one-dimensional axes (package ivl) composed coordinatewise,
// plus the versioned lift of §4.6 that adds a trailing integer version
// axis to any interval type.
//
// The shared Interval constraint is grounded on other_examples'
// gaissmai-interval package, whose self-referential
// Interface[T any] { CompareFirst(T) int } pattern is the idiomatic Go
// way to write one generic algorithm (package store) over several
// concrete dimensionalities -- the alternative the teacher itself would
// have reached for, code generation via gtl, is obsoleted by generics.
package tuple

import (
	"github.com/grailbio/intervalidus/box"
)

// Interval is the shape package store requires of an interval type,
// regardless of its dimensionality: ordering by start (the store's
// record key), the set-relations of spec.md §3/§4.2, and conversion to
// a box.Box for indexing by package boxtree.
type Interval[I any] interface {
	// CompareStart orders by the interval's start point (or start tuple,
	// lexicographic), used as the store's record key.
	CompareStart(other I) int
	Intersects(other I) bool
	ContainsInterval(other I) bool
	Intersection(other I) (I, bool)
	Join(other I) (I, bool)
	Excluding(other I) []I
	// AtomicCut splits this interval at the axis boundaries induced by
	// other, whether or not the two intervals intersect. Used by
	// store.RecompressAll to compute the canonical atomic partition.
	AtomicCut(other I) []I
	Box() box.Box
	String() string
}
