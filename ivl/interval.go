// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package ivl implements the one-dimensional interval algebra of
// spec.md §4.1: containment, intersection, adjacency, join, and the
// excluding (set-difference) operation.
package ivl

import (
	"fmt"

	"github.com/grailbio/intervalidus/box"
	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/point"
)

// Interval is the ordered pair (Start, End) with Start <= End.
type Interval[T domain.Value[T]] struct {
	Start point.Point[T]
	End   point.Point[T]
}

// New returns the interval [start, end]. It panics if start > end -- per
// spec.md §3 invariant 2, every record's interval must be non-empty.
func New[T domain.Value[T]](start, end point.Point[T]) Interval[T] {
	if start.Compare(end) > 0 {
		panic(fmt.Sprintf("ivl: invalid interval, start %v > end %v", start, end))
	}
	return Interval[T]{Start: start, End: end}
}

// Unbounded returns (-infinity, +infinity).
func Unbounded[T domain.Value[T]]() Interval[T] {
	return Interval[T]{Start: point.Bottom[T](), End: point.Top[T]()}
}

// Singleton returns the degenerate interval [v, v].
func Singleton[T domain.Value[T]](v T) Interval[T] {
	return Interval[T]{Start: point.At(v), End: point.At(v)}
}

// Before returns (-infinity, end].
func Before[T domain.Value[T]](end point.Point[T]) Interval[T] {
	return Interval[T]{Start: point.Bottom[T](), End: end}
}

// After returns [start, +infinity).
func After[T domain.Value[T]](start point.Point[T]) Interval[T] {
	return Interval[T]{Start: start, End: point.Top[T]()}
}

// IsEmpty reports whether Start orders after End. New, Unbounded,
// Singleton, Before and After never return such an interval (New
// panics instead).
func (i Interval[T]) IsEmpty() bool { return i.Start.Compare(i.End) > 0 }

// Contains reports whether p lies within the interval.
func (i Interval[T]) Contains(p point.Point[T]) bool {
	return i.Start.Compare(p) <= 0 && p.Compare(i.End) <= 0
}

// ContainsInterval reports whether other is entirely within i.
func (i Interval[T]) ContainsInterval(other Interval[T]) bool {
	return i.Start.Compare(other.Start) <= 0 && other.End.Compare(i.End) <= 0
}

// Intersects reports whether i and other share at least one point.
func (i Interval[T]) Intersects(other Interval[T]) bool {
	return i.Start.Compare(other.End) <= 0 && other.Start.Compare(i.End) <= 0
}

// Intersection returns the overlap of i and other, if any.
func (i Interval[T]) Intersection(other Interval[T]) (Interval[T], bool) {
	if !i.Intersects(other) {
		var zero Interval[T]
		return zero, false
	}
	start := i.Start
	if other.Start.Compare(start) > 0 {
		start = other.Start
	}
	end := i.End
	if other.End.Compare(end) < 0 {
		end = other.End
	}
	return Interval[T]{Start: start, End: end}, true
}

// Adjacent reports whether i and other are disjoint but touch with no
// gap: either i.End immediately precedes other.Start, or vice versa.
func (i Interval[T]) Adjacent(other Interval[T]) bool {
	if i.Intersects(other) {
		return false
	}
	return i.End.ImmediatelyPrecedes(other.Start) || other.End.ImmediatelyPrecedes(i.Start)
}

// Join merges i and other into a single covering interval, if they are
// adjacent or intersecting with boundary kinds that compose into a
// contiguous interval. It returns false if they are neither.
func (i Interval[T]) Join(other Interval[T]) (Interval[T], bool) {
	if !i.Intersects(other) && !i.Adjacent(other) {
		var zero Interval[T]
		return zero, false
	}
	start := i.Start
	if other.Start.Compare(start) < 0 {
		start = other.Start
	}
	end := i.End
	if other.End.Compare(end) > 0 {
		end = other.End
	}
	return Interval[T]{Start: start, End: end}, true
}

// Split divides i into (left, right) around p: left covers up to the
// point immediately before p, and right runs from p through i.End. p
// must lie in i after i.Start (p may equal i.End) and must not be Top;
// otherwise ok is false.
func (i Interval[T]) Split(p point.Point[T]) (left, right Interval[T], ok bool) {
	if !i.Contains(p) || p.Compare(i.Start) == 0 || p.IsTop() {
		return Interval[T]{}, Interval[T]{}, false
	}
	left = Interval[T]{Start: i.Start, End: p.PrevBefore()}
	right = Interval[T]{Start: p, End: i.End}
	return left, right, true
}

// Excluding returns i \ other as 0, 1, or 2 disjoint intervals.
func (i Interval[T]) Excluding(other Interval[T]) []Interval[T] {
	inter, ok := i.Intersection(other)
	if !ok {
		return []Interval[T]{i}
	}
	var out []Interval[T]
	if i.Start.Compare(inter.Start) < 0 {
		out = append(out, Interval[T]{Start: i.Start, End: inter.Start.PrevBefore()})
	}
	if inter.End.Compare(i.End) < 0 {
		out = append(out, Interval[T]{Start: inter.End.NextAfter(), End: i.End})
	}
	return out
}

// AtomicCut splits i into the pieces induced by cutting at other's Start
// and End, regardless of whether i and other intersect. Used by
// store.RecompressAll to refine a store's records into the canonical
// atomic partition induced by every record's boundaries.
func (i Interval[T]) AtomicCut(other Interval[T]) []Interval[T] {
	var out []Interval[T]
	cur := i
	for _, p := range [2]point.Point[T]{other.Start, other.End} {
		if cur.Contains(p) && p.Compare(cur.Start) != 0 {
			left, right, ok := cur.Split(p)
			if ok {
				out = append(out, left)
				cur = right
			}
		}
	}
	out = append(out, cur)
	return out
}

func (i Interval[T]) String() string {
	return fmt.Sprintf("[%v .. %v]", i.Start, i.End)
}

// Equal reports whether i and other are the same interval.
func (i Interval[T]) Equal(other Interval[T]) bool {
	return i.Start.Equal(other.Start) && i.End.Equal(other.End)
}

// CompareStart orders i relative to other by Start point alone, used as
// the store's record key and by package tuple's lexicographic ordering.
func (i Interval[T]) CompareStart(other Interval[T]) int {
	return i.Start.Compare(other.Start)
}

// Box converts i to a 1-D box.Box by applying the ordered hash to Start
// and End, for indexing by package boxtree.
func (i Interval[T]) Box() box.Box {
	return box.New([]float64{i.Start.OrderedHash()}, []float64{i.End.OrderedHash()})
}
