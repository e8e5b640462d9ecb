// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/store"
	"github.com/grailbio/intervalidus/tuple"
)

type ivlInt1D = ivl.Interval[domain.IntValue]

type ivlInt = store.T[tuple.Interval2D[domain.IntValue, domain.IntValue], string]

func box2d(x0, y0, x1, y1 int32) tuple.Interval2D[domain.IntValue, domain.IntValue] {
	return tuple.New2D(iv(x0, x1), iv(y0, y1))
}

func newStore2D() *ivlInt {
	return store.New[tuple.Interval2D[domain.IntValue, domain.IntValue], string](2, store.DefaultOptions())
}

func TestGetByDimensionX2D(t *testing.T) {
	s := newStore2D()
	s.Set(store.Record[tuple.Interval2D[domain.IntValue, domain.IntValue], string]{
		Interval: box2d(0, 0, 10, 10), Value: "a",
	})

	slice := store.GetByDimensionX2D(s, point.At(domain.IntValue(5)), store.DefaultOptions())
	all := slice.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, "a", all[0].Value)
	assert.Equal(t, iv(0, 10), all[0].Interval)

	empty := store.GetByDimensionX2D(s, point.At(domain.IntValue(100)), store.DefaultOptions())
	assert.Empty(t, empty.GetAll())
}

func TestFlip2D(t *testing.T) {
	s := newStore2D()
	s.Set(store.Record[tuple.Interval2D[domain.IntValue, domain.IntValue], string]{
		Interval: box2d(0, 0, 10, 20), Value: "a",
	})

	flipped := store.Flip2D(s, store.DefaultOptions())
	all := flipped.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, iv(0, 20), all[0].Interval.X)
	assert.Equal(t, iv(0, 10), all[0].Interval.Y)
}

func TestCompressJoinsNonConsecutive2DRecords(t *testing.T) {
	s := newStore2D()
	s.Set(store.Record[tuple.Interval2D[domain.IntValue, domain.IntValue], string]{
		Interval: box2d(0, 0, 4, 0), Value: "v",
	})
	s.Set(store.Record[tuple.Interval2D[domain.IntValue, domain.IntValue], string]{
		Interval: box2d(2, 5, 2, 5), Value: "v",
	})
	s.Set(store.Record[tuple.Interval2D[domain.IntValue, domain.IntValue], string]{
		Interval: box2d(5, 0, 9, 0), Value: "v",
	})

	all := s.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, box2d(0, 0, 9, 0), all[0].Interval)
	assert.Equal(t, box2d(2, 5, 2, 5), all[1].Interval)
}

func TestZip(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 10), Value: "a"})

	b := store.New[ivlInt1D, string](1, store.DefaultOptions())
	b.Set(store.Record[ivlInt1D, string]{Interval: iv(5, 15), Value: "b"})

	zipped := store.Zip(a, b, 1, store.DefaultOptions())
	all := zipped.GetAll()
	require.Len(t, all, 1)
	assert.Equal(t, iv(5, 10), all[0].Interval)
	assert.Equal(t, store.Pair[string, string]{First: "a", Second: "b"}, all[0].Value)
}

func TestZipAll(t *testing.T) {
	a := newStore()
	a.Set(rec{Interval: iv(0, 10), Value: "a"})

	b := store.New[ivlInt1D, string](1, store.DefaultOptions())
	b.Set(store.Record[ivlInt1D, string]{Interval: iv(5, 15), Value: "b"})

	zipped := store.ZipAll(a, b, "thisDefault", "otherDefault", 1, store.DefaultOptions())
	all := zipped.GetAll()
	require.Len(t, all, 3)
	assert.Equal(t, iv(0, 4), all[0].Interval)
	assert.Equal(t, store.Pair[string, string]{First: "a", Second: "otherDefault"}, all[0].Value)
	assert.Equal(t, iv(5, 10), all[1].Interval)
	assert.Equal(t, store.Pair[string, string]{First: "a", Second: "b"}, all[1].Value)
	assert.Equal(t, iv(11, 15), all[2].Interval)
	assert.Equal(t, store.Pair[string, string]{First: "thisDefault", Second: "b"}, all[2].Value)
}
