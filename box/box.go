// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package box implements the n-dimensional floating-point bounding box
// used by package boxtree to conservatively index intervals over
// arbitrary domain value types: every interval is projected to a box by
// applying the ordered hash to each of its per-axis endpoints (see
// spec.md §4.3). Because the ordered hash is non-decreasing but not
// necessarily injective, box intersection is implied by interval
// intersection but not the converse -- boxes may produce false
// positives, never false negatives.
package box

// Box is an axis-aligned rectangle in n-space, Min[i] <= Max[i] for every
// axis i.
type Box struct {
	Min []float64
	Max []float64
}

// New returns the box [min, max] (per-axis).
func New(min, max []float64) Box {
	return Box{Min: min, Max: max}
}

// Dims returns the number of axes.
func (b Box) Dims() int { return len(b.Min) }

// Intersects reports whether b and other overlap on every axis.
func (b Box) Intersects(other Box) bool {
	for i := range b.Min {
		if b.Max[i] < other.Min[i] || other.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Contains reports whether other lies entirely within b.
func (b Box) Contains(other Box) bool {
	for i := range b.Min {
		if other.Min[i] < b.Min[i] || other.Max[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Union returns the smallest box containing both b and other.
func (b Box) Union(other Box) Box {
	n := len(b.Min)
	min := make([]float64, n)
	max := make([]float64, n)
	for i := 0; i < n; i++ {
		min[i] = minF(b.Min[i], other.Min[i])
		max[i] = maxF(b.Max[i], other.Max[i])
	}
	return Box{Min: min, Max: max}
}

// Intersect returns the overlap of b and other, which is only meaningful
// when b.Intersects(other).
func (b Box) Intersect(other Box) Box {
	n := len(b.Min)
	min := make([]float64, n)
	max := make([]float64, n)
	for i := 0; i < n; i++ {
		min[i] = maxF(b.Min[i], other.Min[i])
		max[i] = minF(b.Max[i], other.Max[i])
	}
	return Box{Min: min, Max: max}
}

// Mid returns the midpoint coordinate of axis i, used by boxtree to
// bisect a branch node.
func (b Box) Mid(axis int) float64 {
	return b.Min[axis] + (b.Max[axis]-b.Min[axis])/2
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
