// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package point implements the domain-point algebra: Bottom, Top, a
// closed Point, and an OpenPoint, the latter specialized into a
// lower-bound and an upper-bound flavor so that ordering at equal
// domain values is unambiguous (see the Compare doc comment).
package point

import (
	"fmt"

	"github.com/grailbio/intervalidus/domain"
)

// kind discriminates the four point variants of spec.md §3.
type kind int

const (
	bottomKind kind = iota
	topKind
	closedKind
	// openLowerKind represents an exclusive lower bound: "(t, ...". It
	// orders immediately after Point(t).
	openLowerKind
	// openUpperKind represents an exclusive upper bound: "..., t)". It
	// orders immediately before Point(t).
	openUpperKind
)

// Point is a point in one dimension of the domain: Bottom, Top, a closed
// Point(t), or an OpenPoint(t) (continuous domains only). T must satisfy
// domain.Value[T].
type Point[T domain.Value[T]] struct {
	kind  kind
	value T
}

// Bottom returns the point below every other point.
func Bottom[T domain.Value[T]]() Point[T] { return Point[T]{kind: bottomKind} }

// Top returns the point above every other point.
func Top[T domain.Value[T]]() Point[T] { return Point[T]{kind: topKind} }

// At returns the closed point at value v.
func At[T domain.Value[T]](v T) Point[T] { return Point[T]{kind: closedKind, value: v} }

// OpenLower returns the exclusive lower-bound point at value v: used as
// an interval start meaning "everything strictly greater than v". Panics
// if v's domain is discrete (OpenPoint is continuous-only per spec.md §3).
func OpenLower[T domain.Value[T]](v T) Point[T] {
	if v.Discrete() {
		panic("point: OpenPoint is only valid over a continuous domain")
	}
	return Point[T]{kind: openLowerKind, value: v}
}

// OpenUpper returns the exclusive upper-bound point at value v: used as
// an interval end meaning "everything strictly less than v". Panics if
// v's domain is discrete.
func OpenUpper[T domain.Value[T]](v T) Point[T] {
	if v.Discrete() {
		panic("point: OpenPoint is only valid over a continuous domain")
	}
	return Point[T]{kind: openUpperKind, value: v}
}

func (p Point[T]) IsBottom() bool { return p.kind == bottomKind }
func (p Point[T]) IsTop() bool    { return p.kind == topKind }
func (p Point[T]) IsOpen() bool   { return p.kind == openLowerKind || p.kind == openUpperKind }

// Value returns the underlying domain value and true, or the zero value
// and false if the point is Bottom or Top.
func (p Point[T]) Value() (T, bool) {
	if p.kind == bottomKind || p.kind == topKind {
		var zero T
		return zero, false
	}
	return p.value, true
}

// Compare orders p relative to other: Bottom < everything < Top; among
// Points and OpenPoints, by value; at equal value, an open-lower point
// is greater than the closed Point at the same value (it starts just
// after it) and an open-upper point is less (it ends just before it).
func (p Point[T]) Compare(other Point[T]) int {
	if p.kind == other.kind && (p.kind == bottomKind || p.kind == topKind) {
		return 0
	}
	if p.kind == bottomKind {
		return -1
	}
	if other.kind == bottomKind {
		return 1
	}
	if p.kind == topKind {
		return 1
	}
	if other.kind == topKind {
		return -1
	}
	if c := p.value.Compare(other.value); c != 0 {
		return c
	}
	return rank(p.kind) - rank(other.kind)
}

// rank gives the tie-break ordering among point kinds at equal domain value:
// openUpper < closed < openLower.
func rank(k kind) int {
	switch k {
	case openUpperKind:
		return -1
	case closedKind:
		return 0
	case openLowerKind:
		return 1
	default:
		return 0
	}
}

// Less reports whether p orders strictly before other.
func (p Point[T]) Less(other Point[T]) bool { return p.Compare(other) < 0 }

// Equal reports whether p and other are the same point.
func (p Point[T]) Equal(other Point[T]) bool { return p.Compare(other) == 0 }

// ImmediatelyPrecedes reports whether p, used as an interval's end point,
// touches q, used as the next interval's start point, with no gap and no
// overlap between them.
func (p Point[T]) ImmediatelyPrecedes(q Point[T]) bool {
	if p.kind == topKind || p.kind == bottomKind {
		return false
	}
	return p.NextAfter().Equal(q)
}

// NextAfter returns the smallest point strictly greater than p: for a
// discrete domain, Point(succ(v)) (or Top if v is already the maximum);
// for a continuous domain, the complementary open/closed flip at the
// same value (per spec.md §9's resolved Open Question on continuous
// adjacency). Panics if p is Top.
func (p Point[T]) NextAfter() Point[T] {
	switch p.kind {
	case topKind:
		panic("point: NextAfter(Top) is undefined")
	case bottomKind:
		panic("point: NextAfter(Bottom) is undefined")
	case closedKind:
		if p.value.Discrete() {
			succ, ok := p.value.Successor()
			if !ok {
				return Top[T]()
			}
			return At(succ)
		}
		return OpenLower(p.value)
	case openUpperKind:
		return At(p.value)
	case openLowerKind:
		// There is no well-defined "next" immediately after an exclusive
		// lower bound; callers never need this case in practice.
		return At(p.value)
	default:
		panic("point: unreachable kind")
	}
}

// PrevBefore returns the largest point strictly less than p, the mirror
// image of NextAfter. Panics if p is Bottom.
func (p Point[T]) PrevBefore() Point[T] {
	switch p.kind {
	case bottomKind:
		panic("point: PrevBefore(Bottom) is undefined")
	case topKind:
		panic("point: PrevBefore(Top) is undefined")
	case closedKind:
		if p.value.Discrete() {
			pred, ok := p.value.Predecessor()
			if !ok {
				return Bottom[T]()
			}
			return At(pred)
		}
		return OpenUpper(p.value)
	case openLowerKind:
		return At(p.value)
	case openUpperKind:
		// There is no well-defined "previous" immediately before an
		// exclusive upper bound; this returns At(v), which orders after p.
		return At(p.value)
	default:
		panic("point: unreachable kind")
	}
}

// OrderedHash maps p onto the real line, consistent with Compare, for use
// by package box when building a conservative bounding box.
func (p Point[T]) OrderedHash() float64 {
	switch p.kind {
	case bottomKind:
		return negInf
	case topKind:
		return posInf
	default:
		// OpenPoint collapses to the same coordinate as its closed sibling:
		// the box is conservative (may over-report intersections), never
		// under-reports, which is all package box's contract requires.
		// Hashes beyond the Bottom/Top coordinates are clamped to them so
		// that no value hashes below Bottom or above Top.
		h := p.value.OrderedHash()
		if h > posInf {
			return posInf
		}
		if h < negInf {
			return negInf
		}
		return h
	}
}

const (
	posInf = float64(1 << 62)
	negInf = -posInf
)

func (p Point[T]) String() string {
	switch p.kind {
	case bottomKind:
		return "Bottom"
	case topKind:
		return "Top"
	case openLowerKind:
		return fmt.Sprintf("OpenLower(%v)", p.value)
	case openUpperKind:
		return fmt.Sprintf("OpenUpper(%v)", p.value)
	default:
		return fmt.Sprintf("Point(%v)", p.value)
	}
}
