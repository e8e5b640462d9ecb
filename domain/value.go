// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package domain defines the totally ordered value types over which
// intervals are built. A Value is ordered, bounded, and equipped with an
// ordered hash into float64 so that a search tree can index it; discrete
// values additionally support Successor/Predecessor.
package domain

// Value is a totally ordered domain value. T is the concrete
// implementing type itself, so that Compare and Successor/Predecessor
// can be expressed without resorting to interface{}.
//
// OrderedHash must be non-decreasing with Compare: if a.Compare(b) <= 0
// then a.OrderedHash() <= b.OrderedHash(). It need not be injective --
// collisions are allowed and only cost the search tree some selectivity,
// never correctness (see package box).
type Value[T any] interface {
	// Compare returns a negative, zero, or positive value as the receiver
	// is less than, equal to, or greater than other.
	Compare(other T) int

	// OrderedHash maps the value onto the real line, preserving order.
	OrderedHash() float64

	// Discrete reports whether this domain supports Successor/Predecessor.
	// Continuous domains return false and panic if Successor/Predecessor
	// are called.
	Discrete() bool

	// Successor returns the next value in a discrete domain, and false if
	// called at the domain maximum.
	Successor() (T, bool)

	// Predecessor returns the previous value in a discrete domain, and
	// false if called at the domain minimum.
	Predecessor() (T, bool)
}

// FromIndex builds an ordered-hash-stable accessor over a finite,
// already-sorted sequence of comparable values, per spec's "instances may
// be built from a finite indexed sequence." The returned function maps an
// index in [0, len(seq)) to its OrderedHash; callers embed the result in
// their own Value implementation (see EnumValue for a ready-made one).
func FromIndex[T any](seq []T) func(idx int) float64 {
	n := len(seq)
	return func(idx int) float64 {
		if n <= 1 {
			return 0
		}
		return float64(idx) / float64(n-1)
	}
}
