// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package store_test

import (
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/store"
)

type rec = store.Record[ivl.Interval[domain.IntValue], string]

func iv(a, b int32) ivl.Interval[domain.IntValue] {
	return ivl.New(point.At(domain.IntValue(a)), point.At(domain.IntValue(b)))
}

func newStore() *store.T[ivl.Interval[domain.IntValue], string] {
	return store.New[ivl.Interval[domain.IntValue], string](1, store.DefaultOptions())
}

func TestSetAndGetAt(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})

	v, ok := s.GetAt(iv(5, 5))
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = s.GetAt(iv(100, 100))
	assert.False(t, ok)
}

func TestSetOverwritesOverlap(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(5, 15), Value: "b"})

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, "a", all[0].Value)
	assert.Equal(t, iv(5, 15), all[1].Interval)
	assert.Equal(t, "b", all[1].Value)
}

func TestSetIfNoConflict(t *testing.T) {
	s := newStore()
	assert.True(t, s.SetIfNoConflict(rec{Interval: iv(0, 10), Value: "a"}))
	assert.False(t, s.SetIfNoConflict(rec{Interval: iv(5, 15), Value: "b"}))
	assert.Equal(t, 1, len(s.GetAll()))
}

func TestRemove(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 20), Value: "a"})
	s.Remove(iv(5, 10))

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, iv(11, 20), all[1].Interval)
}

func TestCompressJoinsAdjacentSameValue(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(11, 20), Value: "a"})

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, iv(0, 20), all[0].Interval)
}

func TestUpdateKeepsRemainderOriginalValue(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 20), Value: "a"})
	s.Update(rec{Interval: iv(5, 10), Value: "b"})

	all := s.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Value)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, "b", all[1].Value)
	assert.Equal(t, iv(5, 10), all[1].Interval)
	assert.Equal(t, "a", all[2].Value)
	assert.Equal(t, iv(11, 20), all[2].Interval)
}

func TestFillOnlyTouchesUncovered(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(5, 10), Value: "a"})
	s.Fill(rec{Interval: iv(0, 20), Value: "b"})

	all := s.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, "b", all[0].Value)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, "a", all[1].Value)
	assert.Equal(t, "b", all[2].Value)
	assert.Equal(t, iv(11, 20), all[2].Interval)
}

func TestGetPanicsWhenAmbiguous(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(20, 30), Value: "b"})
	assert.Panics(t, func() { s.Get() })
}

func TestGetOptionEmptyStore(t *testing.T) {
	s := newStore()
	_, ok := s.GetOption()
	assert.False(t, ok)
}

func TestDomainUnionsDisjointRecords(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(11, 20), Value: "b"})
	dom := s.Domain()
	require.Len(t, dom, 1)
	assert.Equal(t, iv(0, 20), dom[0])
}

func TestMapRejectsOverlap(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(20, 30), Value: "b"})
	assert.Panics(t, func() {
		s.Map(func(r rec) rec { return rec{Interval: iv(0, 40), Value: r.Value} })
	})
}

func TestMapValuesLeavesIntervalsAlone(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.MapValues(func(v string) string { return v + v })

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "aa", all[0].Value)
	assert.Equal(t, iv(0, 10), all[0].Interval)
}

func TestFilter(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(20, 30), Value: "b"})
	s.Filter(func(r rec) bool { return r.Value == "a" })

	all := s.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Value)
}

func TestDiffActionsFromAndApply(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 10), Value: "a"})
	a.Set(rec{Interval: iv(20, 30), Value: "b"})

	b := newStore()
	b.Set(rec{Interval: iv(0, 10), Value: "a"})
	b.Set(rec{Interval: iv(40, 50), Value: "c"})

	actions := a.DiffActionsFrom(b)
	b.ApplyDiffActions(actions)

	if diffs := deep.Equal(a.GetAll(), b.GetAll()); diffs != nil {
		t.Fatalf("stores diverged after replaying diff actions: %v", diffs)
	}
}

func TestSyncWith(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 10), Value: "a"})

	b := newStore()
	b.Set(rec{Interval: iv(0, 10), Value: "a"})
	b.Set(rec{Interval: iv(20, 30), Value: "b"})

	a.SyncWith(b)
	if diffs := deep.Equal(b.GetAll(), a.GetAll()); diffs != nil {
		t.Fatalf("stores diverged after SyncWith: %v", diffs)
	}
}

func TestRecompressAllProducesCanonicalPartition(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 20), Value: "a"})

	b := newStore()
	b.Set(rec{Interval: iv(0, 9), Value: "a"})
	b.Set(rec{Interval: iv(10, 20), Value: "a"})

	a.RecompressAll()
	b.RecompressAll()
	if diffs := deep.Equal(a.GetAll(), b.GetAll()); diffs != nil {
		t.Fatalf("differently-constructed equal stores didn't converge: %v", diffs)
	}
}

func TestMergeCombinesOverlap(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 10), Value: "a"})

	b := newStore()
	b.Set(rec{Interval: iv(5, 15), Value: "b"})

	a.Merge(b, func(existing, incoming string) string { return existing + incoming })

	all := a.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, "a", all[0].Value)
	assert.Equal(t, iv(5, 10), all[1].Interval)
	assert.Equal(t, "ab", all[1].Value)
	assert.Equal(t, iv(11, 15), all[2].Interval)
	assert.Equal(t, "b", all[2].Value)
}

func TestFoldLeft(t *testing.T) {
	s := newStore()
	s.Set(rec{Interval: iv(0, 10), Value: "a"})
	s.Set(rec{Interval: iv(20, 30), Value: "b"})

	total := store.FoldLeft(s, 0, func(acc int, r rec) int {
		return acc + len(r.Value)
	})
	assert.Equal(t, 2, total)
}
