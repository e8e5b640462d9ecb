// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

package domain

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// IntValue is a discrete domain value backed by int32.
type IntValue int32

func (v IntValue) Compare(other IntValue) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

func (v IntValue) OrderedHash() float64 { return float64(v) }
func (v IntValue) Discrete() bool       { return true }

func (v IntValue) Successor() (IntValue, bool) {
	if v == math.MaxInt32 {
		return 0, false
	}
	return v + 1, true
}

func (v IntValue) Predecessor() (IntValue, bool) {
	if v == math.MinInt32 {
		return 0, false
	}
	return v - 1, true
}

// LongValue is a discrete domain value backed by int64. It is also used
// as the version axis of the versioned overlay (see package versioned).
type LongValue int64

func (v LongValue) Compare(other LongValue) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

func (v LongValue) OrderedHash() float64 { return float64(v) }
func (v LongValue) Discrete() bool       { return true }

func (v LongValue) Successor() (LongValue, bool) {
	if v == math.MaxInt64 {
		return 0, false
	}
	return v + 1, true
}

func (v LongValue) Predecessor() (LongValue, bool) {
	if v == math.MinInt64 {
		return 0, false
	}
	return v - 1, true
}

// BigIntValue is a discrete domain value with unbounded magnitude.
type BigIntValue struct{ *big.Int }

// NewBigIntValue wraps i, which must not be mutated afterwards.
func NewBigIntValue(i *big.Int) BigIntValue { return BigIntValue{i} }

func (v BigIntValue) Compare(other BigIntValue) int { return v.Int.Cmp(other.Int) }

// OrderedHash projects through big.Float, which loses precision far from
// zero but remains monotonic -- the only property the search tree needs
// (see package box's doc comment on conservative boxes).
func (v BigIntValue) OrderedHash() float64 {
	f := new(big.Float).SetInt(v.Int)
	h, _ := f.Float64()
	return h
}

func (v BigIntValue) Discrete() bool { return true }

func (v BigIntValue) Successor() (BigIntValue, bool) {
	return BigIntValue{new(big.Int).Add(v.Int, big.NewInt(1))}, true
}

func (v BigIntValue) Predecessor() (BigIntValue, bool) {
	return BigIntValue{new(big.Int).Sub(v.Int, big.NewInt(1))}, true
}

const dayNanos = int64(24 * time.Hour)

// LocalDateValue is a discrete domain value at day resolution, stored as
// days since the Unix epoch in UTC.
type LocalDateValue int64

// NewLocalDateValue truncates t to a UTC calendar day.
func NewLocalDateValue(t time.Time) LocalDateValue {
	u := t.UTC()
	midnight := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return LocalDateValue(midnight.Unix() / 86400)
}

// Time returns the UTC midnight instant for this date.
func (v LocalDateValue) Time() time.Time {
	return time.Unix(int64(v)*86400, 0).UTC()
}

func (v LocalDateValue) Compare(other LocalDateValue) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

func (v LocalDateValue) OrderedHash() float64 { return float64(v) }
func (v LocalDateValue) Discrete() bool       { return true }

func (v LocalDateValue) Successor() (LocalDateValue, bool) {
	if v == math.MaxInt64 {
		return 0, false
	}
	return v + 1, true
}

func (v LocalDateValue) Predecessor() (LocalDateValue, bool) {
	if v == math.MinInt64 {
		return 0, false
	}
	return v - 1, true
}

// LocalDateTimeValue is a continuous domain value at nanosecond
// resolution. It has no Successor/Predecessor: adjacency for continuous
// domains is expressed through OpenPoint (see package point), not through
// stepping by one nanosecond -- per spec.md §9's resolved Open Question.
type LocalDateTimeValue struct{ time.Time }

// NewLocalDateTimeValue wraps t.
func NewLocalDateTimeValue(t time.Time) LocalDateTimeValue { return LocalDateTimeValue{t} }

func (v LocalDateTimeValue) Compare(other LocalDateTimeValue) int {
	switch {
	case v.Time.Before(other.Time):
		return -1
	case v.Time.After(other.Time):
		return 1
	default:
		return 0
	}
}

func (v LocalDateTimeValue) OrderedHash() float64 {
	return float64(v.Time.UnixNano())
}

func (v LocalDateTimeValue) Discrete() bool { return false }

func (v LocalDateTimeValue) Successor() (LocalDateTimeValue, bool) {
	panic("domain: LocalDateTimeValue is continuous; it has no Successor")
}

func (v LocalDateTimeValue) Predecessor() (LocalDateTimeValue, bool) {
	panic("domain: LocalDateTimeValue is continuous; it has no Predecessor")
}

// LongDoubleValue is a continuous domain value backed by float64.
type LongDoubleValue float64

func (v LongDoubleValue) Compare(other LongDoubleValue) int {
	switch {
	case v < other:
		return -1
	case v > other:
		return 1
	default:
		return 0
	}
}

func (v LongDoubleValue) OrderedHash() float64 { return float64(v) }
func (v LongDoubleValue) Discrete() bool       { return false }

func (v LongDoubleValue) Successor() (LongDoubleValue, bool) {
	panic("domain: LongDoubleValue is continuous; it has no Successor")
}

func (v LongDoubleValue) Predecessor() (LongDoubleValue, bool) {
	panic("domain: LongDoubleValue is continuous; it has no Predecessor")
}

// EnumValue is a discrete domain value built from a finite, caller-supplied
// sequence of distinct labels in ascending order, per spec.md §3's "instances
// may be built from a finite indexed sequence." Comparison, successor, and
// predecessor all operate on the index into that sequence.
type EnumValue[L comparable] struct {
	labels *enumLabels[L]
	index  int
}

type enumLabels[L comparable] struct {
	seq   []L
	index map[L]int
	hash  func(idx int) float64
}

// NewEnumDomain builds the shared label table for an enumerated domain. The
// returned constructor maps a label to its EnumValue; it panics if the label
// was not part of seq.
func NewEnumDomain[L comparable](seq []L) func(label L) EnumValue[L] {
	idx := make(map[L]int, len(seq))
	for i, l := range seq {
		idx[l] = i
	}
	labels := &enumLabels[L]{seq: seq, index: idx, hash: FromIndex(seq)}
	return func(label L) EnumValue[L] {
		i, ok := idx[label]
		if !ok {
			panic("domain: label not part of this enum's sequence")
		}
		return EnumValue[L]{labels: labels, index: i}
	}
}

// Label returns the underlying label.
func (v EnumValue[L]) Label() L { return v.labels.seq[v.index] }

func (v EnumValue[L]) Compare(other EnumValue[L]) int {
	switch {
	case v.index < other.index:
		return -1
	case v.index > other.index:
		return 1
	default:
		return 0
	}
}

func (v EnumValue[L]) OrderedHash() float64 { return v.labels.hash(v.index) }
func (v EnumValue[L]) Discrete() bool       { return true }

func (v EnumValue[L]) Successor() (EnumValue[L], bool) {
	if v.index+1 >= len(v.labels.seq) {
		var zero EnumValue[L]
		return zero, false
	}
	return EnumValue[L]{labels: v.labels, index: v.index + 1}, true
}

func (v EnumValue[L]) Predecessor() (EnumValue[L], bool) {
	if v.index == 0 {
		var zero EnumValue[L]
		return zero, false
	}
	return EnumValue[L]{labels: v.labels, index: v.index - 1}, true
}

func (v EnumValue[L]) String() string {
	return fmt.Sprint(v.Label())
}
