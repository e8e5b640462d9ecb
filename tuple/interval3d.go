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

// Interval3D is a 3-D interval: X (horizontal), Y (vertical), and Z
// (depth) axes, each a 1-D ivl.Interval. It satisfies
// Interval[Interval3D[T, U, W]].
type Interval3D[T domain.Value[T], U domain.Value[U], W domain.Value[W]] struct {
	X ivl.Interval[T]
	Y ivl.Interval[U]
	Z ivl.Interval[W]
}

// New3D builds the 3-D interval x * y * z.
func New3D[T domain.Value[T], U domain.Value[U], W domain.Value[W]](
	x ivl.Interval[T], y ivl.Interval[U], z ivl.Interval[W],
) Interval3D[T, U, W] {
	return Interval3D[T, U, W]{X: x, Y: y, Z: z}
}

// Unbounded3D returns the interval covering every point on all three axes.
func Unbounded3D[T domain.Value[T], U domain.Value[U], W domain.Value[W]]() Interval3D[T, U, W] {
	return Interval3D[T, U, W]{X: ivl.Unbounded[T](), Y: ivl.Unbounded[U](), Z: ivl.Unbounded[W]()}
}

// Contains reports whether the point (x, y, z) lies within i.
func (i Interval3D[T, U, W]) Contains(x point.Point[T], y point.Point[U], z point.Point[W]) bool {
	return i.X.Contains(x) && i.Y.Contains(y) && i.Z.Contains(z)
}

// CompareStart orders i lexicographically by (X.Start, Y.Start, Z.Start).
func (i Interval3D[T, U, W]) CompareStart(other Interval3D[T, U, W]) int {
	if c := i.X.CompareStart(other.X); c != 0 {
		return c
	}
	if c := i.Y.CompareStart(other.Y); c != 0 {
		return c
	}
	return i.Z.CompareStart(other.Z)
}

// Intersects reports whether i and other overlap on every axis.
func (i Interval3D[T, U, W]) Intersects(other Interval3D[T, U, W]) bool {
	return i.X.Intersects(other.X) && i.Y.Intersects(other.Y) && i.Z.Intersects(other.Z)
}

// ContainsInterval reports whether other lies entirely within i.
func (i Interval3D[T, U, W]) ContainsInterval(other Interval3D[T, U, W]) bool {
	return i.X.ContainsInterval(other.X) && i.Y.ContainsInterval(other.Y) && i.Z.ContainsInterval(other.Z)
}

// Intersection returns the per-axis overlap of i and other, if every
// axis overlaps.
func (i Interval3D[T, U, W]) Intersection(other Interval3D[T, U, W]) (Interval3D[T, U, W], bool) {
	x, ok := i.X.Intersection(other.X)
	if !ok {
		return Interval3D[T, U, W]{}, false
	}
	y, ok := i.Y.Intersection(other.Y)
	if !ok {
		return Interval3D[T, U, W]{}, false
	}
	z, ok := i.Z.Intersection(other.Z)
	if !ok {
		return Interval3D[T, U, W]{}, false
	}
	return Interval3D[T, U, W]{X: x, Y: y, Z: z}, true
}

// Join merges i and other when they differ along exactly one axis while
// matching exactly on the other two.
func (i Interval3D[T, U, W]) Join(other Interval3D[T, U, W]) (Interval3D[T, U, W], bool) {
	sameX := i.X.Equal(other.X)
	sameY := i.Y.Equal(other.Y)
	sameZ := i.Z.Equal(other.Z)
	switch {
	case sameY && sameZ && !sameX:
		x, ok := i.X.Join(other.X)
		if !ok {
			return Interval3D[T, U, W]{}, false
		}
		return Interval3D[T, U, W]{X: x, Y: i.Y, Z: i.Z}, true
	case sameX && sameZ && !sameY:
		y, ok := i.Y.Join(other.Y)
		if !ok {
			return Interval3D[T, U, W]{}, false
		}
		return Interval3D[T, U, W]{X: i.X, Y: y, Z: i.Z}, true
	case sameX && sameY && !sameZ:
		z, ok := i.Z.Join(other.Z)
		if !ok {
			return Interval3D[T, U, W]{}, false
		}
		return Interval3D[T, U, W]{X: i.X, Y: i.Y, Z: z}, true
	default:
		return Interval3D[T, U, W]{}, false
	}
}

// Excluding returns i \ other per spec.md §4.2, walking axes X, Y, Z in
// order. Produces up to 2*3 = 6 disjoint pieces.
func (i Interval3D[T, U, W]) Excluding(other Interval3D[T, U, W]) []Interval3D[T, U, W] {
	interX, ok := i.X.Intersection(other.X)
	if !ok {
		return []Interval3D[T, U, W]{i}
	}
	interY, ok := i.Y.Intersection(other.Y)
	if !ok {
		return []Interval3D[T, U, W]{i}
	}
	_, ok = i.Z.Intersection(other.Z)
	if !ok {
		return []Interval3D[T, U, W]{i}
	}
	var out []Interval3D[T, U, W]
	for _, x := range i.X.Excluding(other.X) {
		out = append(out, Interval3D[T, U, W]{X: x, Y: i.Y, Z: i.Z})
	}
	for _, y := range i.Y.Excluding(other.Y) {
		out = append(out, Interval3D[T, U, W]{X: interX, Y: y, Z: i.Z})
	}
	for _, z := range i.Z.Excluding(other.Z) {
		out = append(out, Interval3D[T, U, W]{X: interX, Y: interY, Z: z})
	}
	return out
}

// AtomicCut tiles i with the grid induced by cutting X at other.X, Y at
// other.Y, and Z at other.Z, regardless of whether i and other intersect.
func (i Interval3D[T, U, W]) AtomicCut(other Interval3D[T, U, W]) []Interval3D[T, U, W] {
	var out []Interval3D[T, U, W]
	for _, x := range i.X.AtomicCut(other.X) {
		for _, y := range i.Y.AtomicCut(other.Y) {
			for _, z := range i.Z.AtomicCut(other.Z) {
				out = append(out, Interval3D[T, U, W]{X: x, Y: y, Z: z})
			}
		}
	}
	return out
}

// Box converts i to a 3-D box.Box for indexing by package boxtree.
func (i Interval3D[T, U, W]) Box() box.Box {
	xb, yb, zb := i.X.Box(), i.Y.Box(), i.Z.Box()
	return box.New(
		[]float64{xb.Min[0], yb.Min[0], zb.Min[0]},
		[]float64{xb.Max[0], yb.Max[0], zb.Max[0]},
	)
}

func (i Interval3D[T, U, W]) String() string {
	return fmt.Sprintf("%v x %v x %v", i.X, i.Y, i.Z)
}

// FlipAboutHorizontal swaps the vertical (Y) and depth (Z) axes, keeping
// the horizontal (X) axis fixed.
func (i Interval3D[T, U, W]) FlipAboutHorizontal() Interval3D[T, W, U] {
	return Interval3D[T, W, U]{X: i.X, Y: i.Z, Z: i.Y}
}

// FlipAboutVertical swaps the horizontal (X) and depth (Z) axes, keeping
// the vertical (Y) axis fixed.
func (i Interval3D[T, U, W]) FlipAboutVertical() Interval3D[W, U, T] {
	return Interval3D[W, U, T]{X: i.Z, Y: i.Y, Z: i.X}
}

// FlipAboutDepth swaps the horizontal (X) and vertical (Y) axes, keeping
// the depth (Z) axis fixed.
func (i Interval3D[T, U, W]) FlipAboutDepth() Interval3D[U, T, W] {
	return Interval3D[U, T, W]{X: i.Y, Y: i.X, Z: i.Z}
}
