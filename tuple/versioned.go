// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tuple

import (
	"fmt"

	"github.com/grailbio/intervalidus/box"
	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
)

// WithVersion lifts any Interval I to an (n+1)-D interval by appending a
// trailing integer version axis, per spec.md §4.6. Unlike Interval2D and
// Interval3D, this lift is written once, generic over the base interval
// type, since adding a version axis does not depend on the base's own
// dimensionality.
type WithVersion[I Interval[I]] struct {
	Base    I
	Version ivl.Interval[domain.LongValue]
}

// NewWithVersion builds the lifted interval base * version.
func NewWithVersion[I Interval[I]](base I, version ivl.Interval[domain.LongValue]) WithVersion[I] {
	return WithVersion[I]{Base: base, Version: version}
}

// CompareStart orders lexicographically by (Base.Start, Version.Start).
func (w WithVersion[I]) CompareStart(other WithVersion[I]) int {
	if c := w.Base.CompareStart(other.Base); c != 0 {
		return c
	}
	return w.Version.CompareStart(other.Version)
}

func (w WithVersion[I]) Intersects(other WithVersion[I]) bool {
	return w.Base.Intersects(other.Base) && w.Version.Intersects(other.Version)
}

func (w WithVersion[I]) ContainsInterval(other WithVersion[I]) bool {
	return w.Base.ContainsInterval(other.Base) && w.Version.ContainsInterval(other.Version)
}

func (w WithVersion[I]) Intersection(other WithVersion[I]) (WithVersion[I], bool) {
	base, ok := w.Base.Intersection(other.Base)
	if !ok {
		return WithVersion[I]{}, false
	}
	version, ok := w.Version.Intersection(other.Version)
	if !ok {
		return WithVersion[I]{}, false
	}
	return WithVersion[I]{Base: base, Version: version}, true
}

func (w WithVersion[I]) Join(other WithVersion[I]) (WithVersion[I], bool) {
	sameBase := w.Base.CompareStart(other.Base) == 0 && w.Base.ContainsInterval(other.Base) && other.Base.ContainsInterval(w.Base)
	sameVersion := w.Version.Equal(other.Version)
	switch {
	case sameVersion && !sameBase:
		base, ok := w.Base.Join(other.Base)
		if !ok {
			return WithVersion[I]{}, false
		}
		return WithVersion[I]{Base: base, Version: w.Version}, true
	case sameBase && !sameVersion:
		version, ok := w.Version.Join(other.Version)
		if !ok {
			return WithVersion[I]{}, false
		}
		return WithVersion[I]{Base: w.Base, Version: version}, true
	default:
		return WithVersion[I]{}, false
	}
}

// Excluding returns w \ other per spec.md §4.2, walking the base axes
// first (as a block, via I's own Excluding) and then the version axis.
func (w WithVersion[I]) Excluding(other WithVersion[I]) []WithVersion[I] {
	interBase, ok := w.Base.Intersection(other.Base)
	if !ok {
		return []WithVersion[I]{w}
	}
	_, ok = w.Version.Intersection(other.Version)
	if !ok {
		return []WithVersion[I]{w}
	}
	var out []WithVersion[I]
	for _, base := range w.Base.Excluding(other.Base) {
		out = append(out, WithVersion[I]{Base: base, Version: w.Version})
	}
	for _, version := range w.Version.Excluding(other.Version) {
		out = append(out, WithVersion[I]{Base: interBase, Version: version})
	}
	return out
}

// AtomicCut tiles w with the grid induced by cutting Base at other.Base
// and Version at other.Version, regardless of intersection.
func (w WithVersion[I]) AtomicCut(other WithVersion[I]) []WithVersion[I] {
	var out []WithVersion[I]
	for _, base := range w.Base.AtomicCut(other.Base) {
		for _, version := range w.Version.AtomicCut(other.Version) {
			out = append(out, WithVersion[I]{Base: base, Version: version})
		}
	}
	return out
}

func (w WithVersion[I]) Box() box.Box {
	bb, vb := w.Base.Box(), w.Version.Box()
	min := append(append([]float64{}, bb.Min...), vb.Min...)
	max := append(append([]float64{}, bb.Max...), vb.Max...)
	return box.New(min, max)
}

func (w WithVersion[I]) String() string {
	return fmt.Sprintf("%v @ %v", w.Base, w.Version)
}
