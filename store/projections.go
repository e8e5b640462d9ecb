// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package store

import (
	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/tuple"
)

// GetByDimensionX2D slices a 2-D store at a fixed X value, returning the
// 1-D store of the Y axis's records intersecting that slice. Axis type
// parameters are named P, Q (not T, U) to avoid shadowing this package's
// own exported store type T.
func GetByDimensionX2D[P domain.Value[P], Q domain.Value[Q], V comparable](
	s *T[tuple.Interval2D[P, Q], V], x point.Point[P], opts Options,
) *T[ivl.Interval[Q], V] {
	out := New[ivl.Interval[Q], V](1, opts)
	for _, rec := range s.records {
		if !rec.rec.Interval.X.Contains(x) {
			continue
		}
		out.insertRecord(Record[ivl.Interval[Q], V]{Interval: rec.rec.Interval.Y, Value: rec.rec.Value})
	}
	out.CompressAll()
	return out
}

// GetByDimensionY2D slices a 2-D store at a fixed Y value, returning the
// 1-D store of the X axis's records intersecting that slice.
func GetByDimensionY2D[P domain.Value[P], Q domain.Value[Q], V comparable](
	s *T[tuple.Interval2D[P, Q], V], y point.Point[Q], opts Options,
) *T[ivl.Interval[P], V] {
	out := New[ivl.Interval[P], V](1, opts)
	for _, rec := range s.records {
		if !rec.rec.Interval.Y.Contains(y) {
			continue
		}
		out.insertRecord(Record[ivl.Interval[P], V]{Interval: rec.rec.Interval.X, Value: rec.rec.Value})
	}
	out.CompressAll()
	return out
}

// Flip2D swaps the X and Y axes of every record in a 2-D store.
func Flip2D[P domain.Value[P], Q domain.Value[Q], V comparable](
	s *T[tuple.Interval2D[P, Q], V], opts Options,
) *T[tuple.Interval2D[Q, P], V] {
	out := New[tuple.Interval2D[Q, P], V](2, opts)
	for _, h := range s.records {
		out.insertRecord(Record[tuple.Interval2D[Q, P], V]{Interval: h.rec.Interval.Flip(), Value: h.rec.Value})
	}
	return out
}

// GetByHorizontal3D slices a 3-D store at a fixed X (horizontal) value,
// returning the 2-D store of the remaining Y/Z axes.
func GetByHorizontal3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], x point.Point[P], opts Options,
) *T[tuple.Interval2D[Q, R], V] {
	out := New[tuple.Interval2D[Q, R], V](2, opts)
	for _, h := range s.records {
		if !h.rec.Interval.X.Contains(x) {
			continue
		}
		out.insertRecord(Record[tuple.Interval2D[Q, R], V]{
			Interval: tuple.New2D(h.rec.Interval.Y, h.rec.Interval.Z),
			Value:    h.rec.Value,
		})
	}
	out.CompressAll()
	return out
}

// GetByVertical3D slices a 3-D store at a fixed Y (vertical) value,
// returning the 2-D store of the remaining X/Z axes.
func GetByVertical3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], y point.Point[Q], opts Options,
) *T[tuple.Interval2D[P, R], V] {
	out := New[tuple.Interval2D[P, R], V](2, opts)
	for _, h := range s.records {
		if !h.rec.Interval.Y.Contains(y) {
			continue
		}
		out.insertRecord(Record[tuple.Interval2D[P, R], V]{
			Interval: tuple.New2D(h.rec.Interval.X, h.rec.Interval.Z),
			Value:    h.rec.Value,
		})
	}
	out.CompressAll()
	return out
}

// GetByDepth3D slices a 3-D store at a fixed Z (depth) value, returning
// the 2-D store of the remaining X/Y axes.
func GetByDepth3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], z point.Point[R], opts Options,
) *T[tuple.Interval2D[P, Q], V] {
	out := New[tuple.Interval2D[P, Q], V](2, opts)
	for _, h := range s.records {
		if !h.rec.Interval.Z.Contains(z) {
			continue
		}
		out.insertRecord(Record[tuple.Interval2D[P, Q], V]{
			Interval: tuple.New2D(h.rec.Interval.X, h.rec.Interval.Y),
			Value:    h.rec.Value,
		})
	}
	out.CompressAll()
	return out
}

// FlipAboutHorizontal3D swaps the Y and Z axes of every record.
func FlipAboutHorizontal3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], opts Options,
) *T[tuple.Interval3D[P, R, Q], V] {
	out := New[tuple.Interval3D[P, R, Q], V](3, opts)
	for _, h := range s.records {
		out.insertRecord(Record[tuple.Interval3D[P, R, Q], V]{Interval: h.rec.Interval.FlipAboutHorizontal(), Value: h.rec.Value})
	}
	return out
}

// FlipAboutVertical3D swaps the X and Z axes of every record.
func FlipAboutVertical3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], opts Options,
) *T[tuple.Interval3D[R, Q, P], V] {
	out := New[tuple.Interval3D[R, Q, P], V](3, opts)
	for _, h := range s.records {
		out.insertRecord(Record[tuple.Interval3D[R, Q, P], V]{Interval: h.rec.Interval.FlipAboutVertical(), Value: h.rec.Value})
	}
	return out
}

// FlipAboutDepth3D swaps the X and Y axes of every record.
func FlipAboutDepth3D[P domain.Value[P], Q domain.Value[Q], R domain.Value[R], V comparable](
	s *T[tuple.Interval3D[P, Q, R], V], opts Options,
) *T[tuple.Interval3D[Q, P, R], V] {
	out := New[tuple.Interval3D[Q, P, R], V](3, opts)
	for _, h := range s.records {
		out.insertRecord(Record[tuple.Interval3D[Q, P, R], V]{Interval: h.rec.Interval.FlipAboutDepth(), Value: h.rec.Value})
	}
	return out
}
