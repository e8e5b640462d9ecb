// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package valuemap implements spec.md §4.4's value multi-index: a
// mapping from a store's value type to the sorted set of its valid-data
// records, ordered ascending by each record's interval start, so that
// compression (package store's compress/compressAll) walks records for
// a value in a deterministic order.
//
// Grounded on grailbio-base/intervalmap's own use of sort.Search over
// plain slices rather than a tree-shaped sorted map: no sorted-map/BTree
// dependency appears anywhere in the retrieved pack that a per-value
// list this small would benefit from pulling in.
package valuemap

import "sort"

// Record is the minimal shape valuemap needs from a store's record: an
// interval ordered by CompareStart, and an opaque value used as the map
// key via V's comparability.
type Record[I any] interface {
	CompareStart(other I) int
}

// T is a multimap from value V to its records, each record's interval
// kept sorted ascending by start.
type T[V comparable, I Record[I]] struct {
	byValue map[V][]I
}

// New creates an empty value multi-index.
func New[V comparable, I Record[I]]() *T[V, I] {
	return &T[V, I]{byValue: make(map[V][]I)}
}

// Add inserts interval for value, keeping value's slice sorted by start.
func (t *T[V, I]) Add(value V, interval I) {
	recs := t.byValue[value]
	pos := sort.Search(len(recs), func(i int) bool {
		return recs[i].CompareStart(interval) >= 0
	})
	recs = append(recs, interval)
	copy(recs[pos+1:], recs[pos:])
	recs[pos] = interval
	t.byValue[value] = recs
}

// Remove deletes interval from value's set, identified by CompareStart
// equality (0). It reports whether a matching interval was found.
func (t *T[V, I]) Remove(value V, interval I) bool {
	recs := t.byValue[value]
	pos := sort.Search(len(recs), func(i int) bool {
		return recs[i].CompareStart(interval) >= 0
	})
	if pos >= len(recs) || recs[pos].CompareStart(interval) != 0 {
		return false
	}
	recs = append(recs[:pos], recs[pos+1:]...)
	if len(recs) == 0 {
		delete(t.byValue, value)
	} else {
		t.byValue[value] = recs
	}
	return true
}

// Get returns value's records in ascending start order. The returned
// slice must not be mutated by the caller.
func (t *T[V, I]) Get(value V) []I {
	return t.byValue[value]
}

// Values iterates every distinct value currently present, in
// unspecified order.
func (t *T[V, I]) Values() []V {
	out := make([]V, 0, len(t.byValue))
	for v := range t.byValue {
		out = append(out, v)
	}
	return out
}

// Len returns the number of distinct values indexed.
func (t *T[V, I]) Len() int { return len(t.byValue) }
