// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package versioned_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/store"
	"github.com/grailbio/intervalidus/versioned"
)

type baseIvl = ivl.Interval[domain.IntValue]

func iv(a, b int32) baseIvl {
	return ivl.New(point.At(domain.IntValue(a)), point.At(domain.IntValue(b)))
}

func newVersioned() *versioned.Store[baseIvl, string] {
	return versioned.New[baseIvl, string](1, 0, store.DefaultOptions())
}

func TestSetUnapprovedInvisibleUnderCurrent(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Unapproved, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})

	_, ok := s.GetAt(iv(5, 5))
	assert.False(t, ok)
	assert.Empty(t, s.GetAll())
}

func TestApproveMakesRecordVisibleUnderCurrent(t *testing.T) {
	s := newVersioned()
	rec := store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"}
	s.Set(versioned.Unapproved, rec)

	ok := s.Approve(rec)
	require.True(t, ok)

	v, found := s.GetAt(iv(5, 5))
	require.True(t, found)
	assert.Equal(t, "a", v)
}

func TestApproveTwiceFailsSecondTime(t *testing.T) {
	s := newVersioned()
	rec := store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"}
	s.Set(versioned.Unapproved, rec)

	assert.True(t, s.Approve(rec))
	assert.False(t, s.Approve(rec))
}

func TestApproveMismatchedValueFails(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Unapproved, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})

	ok := s.Approve(store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "b"})
	assert.False(t, ok)
}

func TestSetCurrentWritesImmediatelyVisible(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Current, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})

	v, ok := s.GetAt(iv(5, 5))
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestApproveAll(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Unapproved, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})
	s.Set(versioned.Unapproved, store.Record[baseIvl, string]{Interval: iv(20, 30), Value: "b"})

	s.ApproveAll(iv(0, 30))

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Value)
	assert.Equal(t, "b", all[1].Value)
}

func TestIncrementCurrentVersion(t *testing.T) {
	s := newVersioned()
	assert.Equal(t, int64(0), s.CurrentVersion())
	s.IncrementCurrentVersion()
	assert.Equal(t, int64(1), s.CurrentVersion())
}

func TestSetCurrentVersionRejectsOutOfRange(t *testing.T) {
	s := newVersioned()
	assert.Panics(t, func() { s.SetCurrentVersion(-1) })
}

func TestSetCurrentVersionMovesPointer(t *testing.T) {
	s := newVersioned()
	s.IncrementCurrentVersion()
	s.IncrementCurrentVersion()
	s.SetCurrentVersion(1)
	assert.Equal(t, int64(1), s.CurrentVersion())
}

func TestResetToVersionTruncatesHistory(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Current, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})
	s.IncrementCurrentVersion()
	s.Set(versioned.Current, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "b"})

	v, ok := s.GetAt(iv(5, 5))
	require.True(t, ok)
	assert.Equal(t, "b", v)

	s.ResetToVersion(0)
	assert.Equal(t, int64(0), s.CurrentVersion())

	v, ok = s.GetAt(iv(5, 5))
	require.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestCollapseVersionHistory(t *testing.T) {
	s := newVersioned()
	s.Set(versioned.Current, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "a"})
	s.IncrementCurrentVersion()
	s.Set(versioned.Current, store.Record[baseIvl, string]{Interval: iv(0, 10), Value: "b"})

	s.CollapseVersionHistory()

	v, ok := s.GetAt(iv(5, 5))
	require.True(t, ok)
	assert.Equal(t, "b", v)

	s.ResetToVersion(0)
	_, ok = s.GetAt(iv(5, 5))
	assert.False(t, ok)
}
