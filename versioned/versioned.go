// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package versioned implements the versioned overlay of spec.md §4.6: a
// store lifted to an extra integer version axis, a current-version
// pointer, and an unapproved-version marker pinned at the axis max, so
// that proposed edits can be staged and approved before becoming
// visible under VersionSelection.Current.
//
// Grounded on package store's own T, generalized via tuple.WithVersion
// rather than hand-duplicated for every base interval shape.
package versioned

import (
	"math"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/errors"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/must"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/store"
	"github.com/grailbio/intervalidus/tuple"
)

// unapprovedMax is the version axis value reserved for unapproved
// writes: math.MaxInt64, the axis's effective upper bound short of Top.
const unapprovedMax = domain.LongValue(math.MaxInt64)

// VersionSelection chooses which version plane a write (or, for
// queries that don't name a plane explicitly, a read) targets.
type VersionSelection int

const (
	// Current selects the current-version plane: writes cover
	// [currentVersion, +infinity) on the version axis.
	Current VersionSelection = iota
	// Unapproved selects the staging plane at the unapproved marker.
	Unapproved
)

// Store wraps a store.T over tuple.WithVersion[I], presenting an
// interface shaped like the n-D store it lifts, plus version control.
type Store[I tuple.Interval[I], V comparable] struct {
	inner          *store.T[tuple.WithVersion[I], V]
	dims           int
	opts           store.Options
	initialVersion int64
	currentVersion int64
}

// New creates an empty versioned store with the given initial version.
// dims is the dimensionality of the base interval type I's Box().
func New[I tuple.Interval[I], V comparable](dims int, initialVersion int64, opts store.Options) *Store[I, V] {
	return &Store[I, V]{
		inner:          store.New[tuple.WithVersion[I], V](dims+1, opts),
		dims:           dims,
		opts:           opts,
		initialVersion: initialVersion,
		currentVersion: initialVersion,
	}
}

// CurrentVersion returns the current-version pointer.
func (s *Store[I, V]) CurrentVersion() int64 { return s.currentVersion }

func versionAxis(v int64) ivl.Interval[domain.LongValue] {
	return ivl.After(point.At(domain.LongValue(v)))
}

func versionPoint(v int64) ivl.Interval[domain.LongValue] {
	return ivl.Singleton(domain.LongValue(v))
}

func unapprovedAxis() ivl.Interval[domain.LongValue] {
	return ivl.Singleton(unapprovedMax)
}

// Set writes rec under the given version selection: Current covers
// [currentVersion, +infinity) on the version axis; Unapproved covers
// exactly the unapproved marker.
func (s *Store[I, V]) Set(sel VersionSelection, rec store.Record[I, V]) {
	version := s.selectionAxis(sel)
	s.inner.Set(store.Record[tuple.WithVersion[I], V]{
		Interval: tuple.NewWithVersion(rec.Interval, version),
		Value:    rec.Value,
	})
}

func (s *Store[I, V]) selectionAxis(sel VersionSelection) ivl.Interval[domain.LongValue] {
	if sel == Unapproved {
		return unapprovedAxis()
	}
	return versionAxis(s.currentVersion)
}

// GetAt returns the value covering point under the current version.
func (s *Store[I, V]) GetAt(point I) (V, bool) {
	target := tuple.NewWithVersion(point, versionPoint(s.currentVersion))
	return s.inner.GetAt(target)
}

// GetAll returns every record visible under the current version, with
// the version axis stripped back off.
func (s *Store[I, V]) GetAll() []store.Record[I, V] {
	var out []store.Record[I, V]
	for _, rec := range s.inner.GetAll() {
		if !rec.Interval.Version.Contains(point.At(domain.LongValue(s.currentVersion))) {
			continue
		}
		out = append(out, store.Record[I, V]{Interval: rec.Interval.Base, Value: rec.Value})
	}
	return out
}

// Approve finds the unapproved record exactly matching rec (same
// interval and value) and, if found, Sets it under Current. It reports
// whether a matching unapproved record was approved.
func (s *Store[I, V]) Approve(rec store.Record[I, V]) bool {
	unapproved := tuple.NewWithVersion(rec.Interval, unapprovedAxis())
	for _, existing := range s.inner.GetIntersecting(unapproved) {
		if !existing.Interval.Version.Equal(unapprovedAxis()) ||
			!existing.Interval.Base.ContainsInterval(rec.Interval) ||
			!rec.Interval.ContainsInterval(existing.Interval.Base) ||
			existing.Value != rec.Value {
			continue
		}
		s.inner.Remove(unapproved)
		s.Set(Current, rec)
		return true
	}
	return false
}

// ApproveAll approves every unapproved record whose base interval
// intersects region, by calling Approve on each. It removes no
// current-version coverage: parts of region that have current-version
// records but no unapproved record are left unchanged.
func (s *Store[I, V]) ApproveAll(region I) {
	unapprovedQuery := tuple.NewWithVersion(region, unapprovedAxis())
	pending := s.inner.GetIntersecting(unapprovedQuery)
	for _, rec := range pending {
		s.Approve(store.Record[I, V]{Interval: rec.Interval.Base, Value: rec.Value})
	}
}

// IncrementCurrentVersion advances the current-version pointer by one.
// It is a programming error (VersionExhausted) to increment into the
// unapproved marker.
func (s *Store[I, V]) IncrementCurrentVersion() {
	next := s.currentVersion + 1
	if domain.LongValue(next) == unapprovedMax {
		must.Nilf(errors.E(errors.VersionExhausted, "current version cannot advance into the unapproved marker"), "versioned")
	}
	s.currentVersion = next
}

// SetCurrentVersion moves the current-version pointer directly to v. It
// is a programming error to target a version at or past the unapproved
// marker, or before the initial version.
func (s *Store[I, V]) SetCurrentVersion(v int64) {
	if domain.LongValue(v) >= unapprovedMax || v < s.initialVersion {
		must.Nilf(errors.E(errors.ArgumentInvalid, "setCurrentVersion: %d out of range", v), "versioned")
	}
	s.currentVersion = v
}

// ResetToVersion truncates all version history after v: every record
// whose version interval starts after v is removed, and the
// current-version pointer is set to v.
func (s *Store[I, V]) ResetToVersion(v int64) {
	cutoff := domain.LongValue(v)
	s.inner.Filter(func(rec store.Record[tuple.WithVersion[I], V]) bool {
		start, ok := rec.Interval.Version.Start.Value()
		if !ok {
			return true
		}
		return start.Compare(cutoff) <= 0
	})
	s.currentVersion = v
}

// CollapseVersionHistory retains only the slice visible at the current
// version and resets the initial (and current) version to that single
// surviving slice, discarding all prior version history.
func (s *Store[I, V]) CollapseVersionHistory() {
	slice := s.GetAll()
	s.inner = store.New[tuple.WithVersion[I], V](s.dims+1, s.opts)
	s.initialVersion = s.currentVersion
	for _, rec := range slice {
		s.inner.Set(store.Record[tuple.WithVersion[I], V]{
			Interval: tuple.NewWithVersion(rec.Interval, versionAxis(s.currentVersion)),
			Value:    rec.Value,
		})
	}
}

