// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package tuple_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/intervalidus/domain"
	"github.com/grailbio/intervalidus/ivl"
	"github.com/grailbio/intervalidus/point"
	"github.com/grailbio/intervalidus/tuple"
)

func iv(a, b int32) ivl.Interval[domain.IntValue] {
	return ivl.New(point.At(domain.IntValue(a)), point.At(domain.IntValue(b)))
}

func box2d(x0, x1, y0, y1 int32) tuple.Interval2D[domain.IntValue, domain.IntValue] {
	return tuple.New2D(iv(x0, x1), iv(y0, y1))
}

func TestInterval2DIntersects(t *testing.T) {
	a := box2d(0, 10, 0, 10)
	b := box2d(5, 15, 5, 15)
	assert.True(t, a.Intersects(b))

	c := box2d(20, 30, 0, 10)
	assert.False(t, a.Intersects(c))
}

func TestInterval2DIntersection(t *testing.T) {
	a := box2d(0, 10, 0, 10)
	b := box2d(5, 15, 5, 15)
	got, ok := a.Intersection(b)
	require.True(t, ok)
	assert.Equal(t, box2d(5, 10, 5, 10), got)
}

func TestInterval2DJoinSingleAxis(t *testing.T) {
	a := box2d(0, 10, 0, 10)
	b := box2d(11, 20, 0, 10)
	joined, ok := a.Join(b)
	require.True(t, ok)
	assert.Equal(t, box2d(0, 20, 0, 10), joined)

	// Differ on both axes: not joinable.
	c := box2d(11, 20, 11, 20)
	_, ok = a.Join(c)
	assert.False(t, ok)
}

func TestInterval2DExcluding(t *testing.T) {
	a := box2d(0, 20, 0, 20)
	b := box2d(5, 10, 5, 10)
	pieces := a.Excluding(b)
	// Up to 4 pieces per axis-walk decomposition.
	assert.LessOrEqual(t, len(pieces), 4)
	assert.NotEmpty(t, pieces)
	for _, p := range pieces {
		assert.False(t, p.Intersects(b))
	}
}

func TestInterval2DAtomicCutIsCrossProduct(t *testing.T) {
	a := box2d(0, 20, 0, 20)
	b := box2d(5, 10, 5, 10)
	pieces := a.AtomicCut(b)
	// 1-D X axis cuts into 3 pieces, Y axis into 3 pieces: 3x3 = 9.
	assert.Len(t, pieces, 9)
}

func TestInterval2DFlip(t *testing.T) {
	a := box2d(0, 10, 20, 30)
	flipped := a.Flip()
	assert.Equal(t, iv(20, 30), flipped.X)
	assert.Equal(t, iv(0, 10), flipped.Y)
}

func TestInterval2DCompareStart(t *testing.T) {
	a := box2d(0, 10, 0, 10)
	b := box2d(0, 10, 5, 10)
	assert.Equal(t, -1, a.CompareStart(b))
}
