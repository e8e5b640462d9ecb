// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tuple

import (
	"fmt"

	"github.com/grailbio/intervalidus/box"
	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
)

// Interval2D is a 2-D interval: an X axis and a Y axis, each a 1-D
// ivl.Interval. It satisfies Interval[Interval2D[T, U]].
type Interval2D[T domain.Value[T], U domain.Value[U]] struct {
	X ivl.Interval[T]
	Y ivl.Interval[U]
}

// New2D builds the 2-D interval x * y.
func New2D[T domain.Value[T], U domain.Value[U]](x ivl.Interval[T], y ivl.Interval[U]) Interval2D[T, U] {
	return Interval2D[T, U]{X: x, Y: y}
}

// Unbounded2D returns the interval covering every point in both axes.
func Unbounded2D[T domain.Value[T], U domain.Value[U]]() Interval2D[T, U] {
	return Interval2D[T, U]{X: ivl.Unbounded[T](), Y: ivl.Unbounded[U]()}
}

// Contains reports whether the point (x, y) lies within i.
func (i Interval2D[T, U]) Contains(x point.Point[T], y point.Point[U]) bool {
	return i.X.Contains(x) && i.Y.Contains(y)
}

// CompareStart orders i lexicographically by (X.Start, Y.Start).
func (i Interval2D[T, U]) CompareStart(other Interval2D[T, U]) int {
	if c := i.X.CompareStart(other.X); c != 0 {
		return c
	}
	return i.Y.CompareStart(other.Y)
}

// Intersects reports whether i and other overlap on every axis.
func (i Interval2D[T, U]) Intersects(other Interval2D[T, U]) bool {
	return i.X.Intersects(other.X) && i.Y.Intersects(other.Y)
}

// ContainsInterval reports whether other lies entirely within i.
func (i Interval2D[T, U]) ContainsInterval(other Interval2D[T, U]) bool {
	return i.X.ContainsInterval(other.X) && i.Y.ContainsInterval(other.Y)
}

// Intersection returns the per-axis overlap of i and other, if every
// axis overlaps.
func (i Interval2D[T, U]) Intersection(other Interval2D[T, U]) (Interval2D[T, U], bool) {
	x, ok := i.X.Intersection(other.X)
	if !ok {
		return Interval2D[T, U]{}, false
	}
	y, ok := i.Y.Intersection(other.Y)
	if !ok {
		return Interval2D[T, U]{}, false
	}
	return Interval2D[T, U]{X: x, Y: y}, true
}

// Join merges i and other when they differ (by adjacency or overlap)
// along exactly one axis while matching exactly on every other axis --
// the n-D generalization of the 1-D join used by store.compress.
func (i Interval2D[T, U]) Join(other Interval2D[T, U]) (Interval2D[T, U], bool) {
	sameX := i.X.Equal(other.X)
	sameY := i.Y.Equal(other.Y)
	switch {
	case sameY && !sameX:
		x, ok := i.X.Join(other.X)
		if !ok {
			return Interval2D[T, U]{}, false
		}
		return Interval2D[T, U]{X: x, Y: i.Y}, true
	case sameX && !sameY:
		y, ok := i.Y.Join(other.Y)
		if !ok {
			return Interval2D[T, U]{}, false
		}
		return Interval2D[T, U]{X: i.X, Y: y}, true
	default:
		return Interval2D[T, U]{}, false
	}
}

// Excluding returns i \ other as spec.md §4.2 describes: walk the axes
// in order, splitting around other's start/end on each axis and keeping
// prior axes at their already-intersected value, later axes at i's
// original value; the fully-intersected remainder (the intersection
// itself) is not part of the result. Produces up to 2*2 = 4 disjoint
// pieces.
func (i Interval2D[T, U]) Excluding(other Interval2D[T, U]) []Interval2D[T, U] {
	interX, ok := i.X.Intersection(other.X)
	if !ok {
		return []Interval2D[T, U]{i}
	}
	_, ok = i.Y.Intersection(other.Y)
	if !ok {
		return []Interval2D[T, U]{i}
	}
	var out []Interval2D[T, U]
	for _, x := range i.X.Excluding(other.X) {
		out = append(out, Interval2D[T, U]{X: x, Y: i.Y})
	}
	for _, y := range i.Y.Excluding(other.Y) {
		out = append(out, Interval2D[T, U]{X: interX, Y: y})
	}
	return out
}

// AtomicCut tiles i with the grid induced by cutting X at other.X and Y
// at other.Y, regardless of whether i and other intersect.
func (i Interval2D[T, U]) AtomicCut(other Interval2D[T, U]) []Interval2D[T, U] {
	var out []Interval2D[T, U]
	for _, x := range i.X.AtomicCut(other.X) {
		for _, y := range i.Y.AtomicCut(other.Y) {
			out = append(out, Interval2D[T, U]{X: x, Y: y})
		}
	}
	return out
}

// Box converts i to a 2-D box.Box for indexing by package boxtree.
func (i Interval2D[T, U]) Box() box.Box {
	xb, yb := i.X.Box(), i.Y.Box()
	return box.New(
		[]float64{xb.Min[0], yb.Min[0]},
		[]float64{xb.Max[0], yb.Max[0]},
	)
}

func (i Interval2D[T, U]) String() string {
	return fmt.Sprintf("%v x %v", i.X, i.Y)
}

// Flip swaps the X and Y axes.
func (i Interval2D[T, U]) Flip() Interval2D[U, T] {
	return Interval2D[U, T]{X: i.Y, Y: i.X}
}
