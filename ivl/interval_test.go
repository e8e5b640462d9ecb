// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package ivl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
)

func iv(a, b int32) ivl.Interval[domain.IntValue] {
	return ivl.New(point.At(domain.IntValue(a)), point.At(domain.IntValue(b)))
}

func TestNewPanicsOnInvertedBounds(t *testing.T) {
	assert.Panics(t, func() {
		ivl.New(point.At(domain.IntValue(5)), point.At(domain.IntValue(1)))
	})
}

func TestContainsAndIntersects(t *testing.T) {
	i := iv(1, 10)
	assert.True(t, i.Contains(point.At(domain.IntValue(5))))
	assert.False(t, i.Contains(point.At(domain.IntValue(11))))

	j := iv(5, 15)
	assert.True(t, i.Intersects(j))
	k := iv(20, 30)
	assert.False(t, i.Intersects(k))
}

func TestIntersection(t *testing.T) {
	i, j := iv(1, 10), iv(5, 15)
	got, ok := i.Intersection(j)
	require.True(t, ok)
	assert.Equal(t, iv(5, 10), got)

	_, ok = i.Intersection(iv(20, 30))
	assert.False(t, ok)
}

func TestAdjacentAndJoin(t *testing.T) {
	i, j := iv(1, 10), iv(11, 20)
	assert.True(t, i.Adjacent(j))
	joined, ok := i.Join(j)
	require.True(t, ok)
	assert.Equal(t, iv(1, 20), joined)

	k := iv(15, 20)
	assert.False(t, i.Adjacent(k))
	_, ok = i.Join(iv(50, 60))
	assert.False(t, ok)
}

func TestExcluding(t *testing.T) {
	i := iv(1, 20)
	pieces := i.Excluding(iv(5, 10))
	require.Len(t, pieces, 2)
	assert.Equal(t, iv(1, 4), pieces[0])
	assert.Equal(t, iv(11, 20), pieces[1])

	// No overlap: whole interval returned unchanged.
	pieces = i.Excluding(iv(50, 60))
	require.Len(t, pieces, 1)
	assert.Equal(t, i, pieces[0])

	// Exact overlap at one edge: one piece only.
	pieces = iv(1, 10).Excluding(iv(1, 5))
	require.Len(t, pieces, 1)
	assert.Equal(t, iv(6, 10), pieces[0])
}

func TestAtomicCut(t *testing.T) {
	i := iv(1, 20)
	pieces := i.AtomicCut(iv(5, 10))
	require.Len(t, pieces, 3)
	assert.Equal(t, iv(1, 4), pieces[0])
	assert.Equal(t, iv(5, 9), pieces[1])
	assert.Equal(t, iv(10, 20), pieces[2])

	// Cutting at boundaries entirely outside i leaves i whole.
	pieces = iv(1, 4).AtomicCut(iv(50, 60))
	require.Len(t, pieces, 1)
	assert.Equal(t, iv(1, 4), pieces[0])
}

func TestEqualAndCompareStart(t *testing.T) {
	assert.True(t, iv(1, 10).Equal(iv(1, 10)))
	assert.False(t, iv(1, 10).Equal(iv(1, 11)))
	assert.Equal(t, -1, iv(1, 10).CompareStart(iv(2, 10)))
	assert.Equal(t, 0, iv(1, 10).CompareStart(iv(1, 50)))
}

func TestUnboundedAndSingleton(t *testing.T) {
	u := ivl.Unbounded[domain.IntValue]()
	assert.True(t, u.Contains(point.At(domain.IntValue(-1000))))
	assert.True(t, u.Contains(point.At(domain.IntValue(1000))))

	s := ivl.Singleton(domain.IntValue(7))
	assert.True(t, s.Contains(point.At(domain.IntValue(7))))
	assert.False(t, s.Contains(point.At(domain.IntValue(8))))
}

func TestBoxOrderPreserving(t *testing.T) {
	b := iv(1, 10).Box()
	require.Len(t, b.Min, 1)
	assert.True(t, b.Min[0] < b.Max[0])
}
