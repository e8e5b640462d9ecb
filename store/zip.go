// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package store

import "github.com/grailbio/intervalidus/tuple"

// Pair holds the combined value produced by Zip/ZipAll. It is
// comparable whenever V and W are, so it can itself serve as a store
// value type.
type Pair[V, W any] struct {
	First  V
	Second W
}

// Zip intersects a and b record by record, producing a store covering
// only the overlap of their domains, each record holding both source
// values.
func Zip[I tuple.Interval[I], V comparable, W comparable](a *T[I, V], b *T[I, W], dims int, opts Options) *T[I, Pair[V, W]] {
	out := New[I, Pair[V, W]](dims, opts)
	for _, ha := range a.records {
		for _, hb := range b.candidatesIntersecting(ha.rec.Interval) {
			inter, ok := ha.rec.Interval.Intersection(hb.rec.Interval)
			if !ok {
				continue
			}
			out.insertRecord(Record[I, Pair[V, W]]{
				Interval: inter,
				Value:    Pair[V, W]{First: ha.rec.Value, Second: hb.rec.Value},
			})
		}
	}
	out.CompressAll()
	return out
}

// ZipAll is Zip, additionally covering the symmetric difference of a's
// and b's domains: regions only a covers get Pair{a's value,
// otherDefault}, and regions only b covers get Pair{thisDefault, b's
// value}.
func ZipAll[I tuple.Interval[I], V comparable, W comparable](
	a *T[I, V], b *T[I, W], thisDefault V, otherDefault W, dims int, opts Options,
) *T[I, Pair[V, W]] {
	out := Zip(a, b, dims, opts)
	aDomain := a.Domain()
	bDomain := b.Domain()
	for _, ha := range a.records {
		for _, piece := range subtractIntervals(ha.rec.Interval, bDomain) {
			out.insertRecord(Record[I, Pair[V, W]]{Interval: piece, Value: Pair[V, W]{First: ha.rec.Value, Second: otherDefault}})
		}
	}
	for _, hb := range b.records {
		for _, piece := range subtractIntervals(hb.rec.Interval, aDomain) {
			out.insertRecord(Record[I, Pair[V, W]]{Interval: piece, Value: Pair[V, W]{First: thisDefault, Second: hb.rec.Value}})
		}
	}
	out.CompressAll()
	return out
}

func subtractIntervals[I tuple.Interval[I]](interval I, covering []I) []I {
	pieces := []I{interval}
	for _, c := range covering {
		var next []I
		for _, p := range pieces {
			if p.Intersects(c) {
				next = append(next, p.Excluding(c)...)
			} else {
				next = append(next, p)
			}
		}
		pieces = next
	}
	return pieces
}
