// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package store implements the dimensional store algebra of spec.md
// §4.5: a mutable collection of disjoint valid-data records, each an
// (interval, value) pair, indexed three ways -- a start-keyed sorted
// slice, package valuemap's value multi-index, and package boxtree's
// n-D box search tree -- so that point/interval queries, compression,
// and replication diffing all run faster than a linear scan.
//
// T is generic over the interval type I (package ivl's 1-D interval,
// package tuple's Interval2D/Interval3D, or a tuple.WithVersion lift),
// via the shared tuple.Interval[I] constraint, and over the value type
// V. The wiring (start index, value index, search tree) is grounded on
// grailbio-base/intervalmap's own combination of a sorted-slice index
// and a search tree; must/errors enforce the invariants of spec.md §3
// as fail-fast programming errors.
package store

import (
	"fmt"
	"sort"

	"github.com/grailbio/intervalidus/boxtree"
	"github.com/grailbio/intervalidus/diffaction"
	"github.com/grailbio/intervalidus/errors"
	"github.com/grailbio/intervalidus/must"
	"github.com/grailbio/intervalidus/tuple"
	"github.com/grailbio/intervalidus/valuemap"
)

// Record is a single valid-data record: a value holding over an interval.
type Record[I any, V any] struct {
	Interval I
	Value    V
}

// Options configures a store's behavior. Per spec.md §9's resolved Open
// Question, these are per-instance construction-time fields, not global
// flags.
type Options struct {
	// RequireDisjoint is carried on the store but not consulted by any
	// operation: Map and FlatMap check disjointness whether it is set or
	// not, and no other operation adds a check when it is set.
	RequireDisjoint bool
	// PrintExperimental is carried on the store but not consulted by any
	// operation; the store does not log.
	PrintExperimental bool
	// NoSearchTree forces every query to fall back to a linear scan
	// instead of consulting the box search tree, for testing or for
	// very small stores where the tree's overhead isn't worth it.
	NoSearchTree bool
	// BruteForceUpdate, like NoSearchTree, makes every candidate lookup
	// (queries, updates and merges alike) a linear scan; unlike
	// NoSearchTree, the search tree is still maintained.
	BruteForceUpdate bool
	// TreeConfig tunes the box search tree. Zero value means
	// boxtree.DefaultConfig().
	TreeConfig boxtree.Config
}

// DefaultOptions returns the recommended Options for general use.
func DefaultOptions() Options {
	return Options{RequireDisjoint: true, TreeConfig: boxtree.DefaultConfig()}
}

// recordHandle is the unit stored in all three indices, so removal from
// the search tree can use pointer identity instead of requiring I or V
// to support deep equality.
type recordHandle[I any, V any] struct {
	rec Record[I, V]
}

// T is a dimensional store over interval type I and value type V. It is
// not safe for concurrent use without external synchronization, the
// same contract grailbio-base/state.File states for its own mutex scope.
type T[I tuple.Interval[I], V comparable] struct {
	opts    Options
	dims    int
	records []*recordHandle[I, V] // sorted ascending by Interval.CompareStart
	values  *valuemap.T[V, I]
	tree    *boxtree.Tree
}

// New creates an empty store. dims is the number of axes I.Box()
// produces, needed to size the search tree.
func New[I tuple.Interval[I], V comparable](dims int, opts Options) *T[I, V] {
	if opts.TreeConfig.NodeCapacity == 0 && opts.TreeConfig.DepthLimit == 0 {
		opts.TreeConfig = boxtree.DefaultConfig()
	}
	return &T[I, V]{
		opts:   opts,
		dims:   dims,
		values: valuemap.New[V, I](),
		tree:   boxtree.NewWithConfig(dims, opts.TreeConfig),
	}
}

func failInvariant(kind errors.Kind, format string, args ...interface{}) {
	must.Nilf(errors.E(kind, fmt.Sprintf(format, args...)), "store")
}

func (t *T[I, V]) search(key I) (idx int, found bool) {
	idx = sort.Search(len(t.records), func(i int) bool {
		return t.records[i].rec.Interval.CompareStart(key) >= 0
	})
	found = idx < len(t.records) && t.records[idx].rec.Interval.CompareStart(key) == 0
	return idx, found
}

func (t *T[I, V]) findByStart(key I) (*recordHandle[I, V], bool) {
	idx, found := t.search(key)
	if !found {
		return nil, false
	}
	return t.records[idx], true
}

func (t *T[I, V]) insertRecord(rec Record[I, V]) *recordHandle[I, V] {
	h := &recordHandle[I, V]{rec: rec}
	idx, found := t.search(rec.Interval)
	if found {
		failInvariant(errors.DisjointnessViolated, "duplicate start key on insert: %v", rec.Interval)
	}
	t.records = append(t.records, nil)
	copy(t.records[idx+1:], t.records[idx:])
	t.records[idx] = h
	t.values.Add(rec.Value, rec.Interval)
	if !t.opts.NoSearchTree {
		t.tree.Insert(rec.Interval.Box(), h)
	}
	return h
}

func (t *T[I, V]) removeHandle(h *recordHandle[I, V]) {
	idx, found := t.search(h.rec.Interval)
	if !found || t.records[idx] != h {
		failInvariant(errors.InvariantViolated, "record not found on remove: %v", h.rec.Interval)
	}
	t.records = append(t.records[:idx], t.records[idx+1:]...)
	t.values.Remove(h.rec.Value, h.rec.Interval)
	if !t.opts.NoSearchTree {
		t.tree.Remove(h.rec.Interval.Box(), func(d interface{}) bool {
			other, ok := d.(*recordHandle[I, V])
			return ok && other == h
		})
	}
}

// candidatesIntersecting returns every record whose interval intersects
// query, filtering out the search tree's false positives (hash
// collisions) with an exact check.
func (t *T[I, V]) candidatesIntersecting(query I) []*recordHandle[I, V] {
	if t.opts.NoSearchTree || t.opts.BruteForceUpdate {
		var out []*recordHandle[I, V]
		for _, h := range t.records {
			if h.rec.Interval.Intersects(query) {
				out = append(out, h)
			}
		}
		return out
	}
	entries := t.tree.Search(query.Box())
	out := make([]*recordHandle[I, V], 0, len(entries))
	for _, e := range entries {
		h, ok := e.Data.(*recordHandle[I, V])
		if ok && h.rec.Interval.Intersects(query) {
			out = append(out, h)
		}
	}
	return out
}

// Get expects exactly one record, covering everything; it is a
// programming error to call Get on an empty or ambiguous store.
func (t *T[I, V]) Get() V {
	if len(t.records) != 1 {
		failInvariant(errors.ArgumentInvalid, "get expects exactly one record, found %d", len(t.records))
	}
	return t.records[0].rec.Value
}

// GetOption is Get, tolerating an empty store.
func (t *T[I, V]) GetOption() (V, bool) {
	var zero V
	if len(t.records) == 0 {
		return zero, false
	}
	if len(t.records) > 1 {
		failInvariant(errors.ArgumentInvalid, "getOption is ambiguous, found %d records", len(t.records))
	}
	return t.records[0].rec.Value, true
}

// GetAt returns the value of the record containing point, where point
// is a degenerate (singleton) interval constructed by the caller.
func (t *T[I, V]) GetAt(point I) (V, bool) {
	rec, ok := t.GetDataAt(point)
	if !ok {
		var zero V
		return zero, false
	}
	return rec.Value, true
}

// GetDataAt returns the full record containing point.
func (t *T[I, V]) GetDataAt(point I) (Record[I, V], bool) {
	hs := t.candidatesIntersecting(point)
	if len(hs) == 0 {
		return Record[I, V]{}, false
	}
	if len(hs) > 1 {
		failInvariant(errors.InvariantViolated, "getDataAt found %d overlapping records at %v", len(hs), point)
	}
	return hs[0].rec, true
}

// GetAll returns every record, ascending by interval start.
func (t *T[I, V]) GetAll() []Record[I, V] {
	out := make([]Record[I, V], len(t.records))
	for i, h := range t.records {
		out[i] = h.rec
	}
	return out
}

// GetIntersecting returns every record whose interval intersects query,
// ascending by interval start.
func (t *T[I, V]) GetIntersecting(query I) []Record[I, V] {
	hs := t.candidatesIntersecting(query)
	sort.Slice(hs, func(i, j int) bool {
		return hs[i].rec.Interval.CompareStart(hs[j].rec.Interval) < 0
	})
	out := make([]Record[I, V], len(hs))
	for i, h := range hs {
		out[i] = h.rec
	}
	return out
}

// Intersects reports whether any record intersects query.
func (t *T[I, V]) Intersects(query I) bool {
	return len(t.candidatesIntersecting(query)) > 0
}

// IsDefinedAt reports whether point falls within some record's interval.
func (t *T[I, V]) IsDefinedAt(point I) bool {
	return t.Intersects(point)
}

// IsEmpty reports whether the store holds no records.
func (t *T[I, V]) IsEmpty() bool {
	return len(t.records) == 0
}

// Domain returns the set-theoretic union of every record's interval, as
// a compressed disjoint cover -- computed, per spec.md §4.5, by mapping
// every record to the same synthetic coverage and recompressing via the
// same adjacency-join algorithm Compress uses.
func (t *T[I, V]) Domain() []I {
	intervals := make([]I, len(t.records))
	for i, h := range t.records {
		intervals[i] = h.rec.Interval
	}
	return joinAdjacent(intervals)
}

func joinAdjacent[I tuple.Interval[I]](intervals []I) []I {
	if len(intervals) == 0 {
		return nil
	}
	out := append([]I(nil), intervals...)
	for joinedAny := true; joinedAny; {
		joinedAny = false
		for i := 0; i < len(out) && !joinedAny; i++ {
			for j := i + 1; j < len(out); j++ {
				if joined, ok := out[i].Join(out[j]); ok {
					out[i] = joined
					out = append(out[:j], out[j+1:]...)
					joinedAny = true
					break
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompareStart(out[j]) < 0 })
	return out
}

// FoldLeft traverses every record in ascending start order, threading an
// accumulator through op. It is a package-level function (not a method)
// because Go methods cannot introduce a new type parameter.
func FoldLeft[I tuple.Interval[I], V comparable, S any](t *T[I, V], seed S, op func(S, Record[I, V]) S) S {
	acc := seed
	for _, h := range t.records {
		acc = op(acc, h.rec)
	}
	return acc
}

func recordsEqual[I tuple.Interval[I], V comparable](a, b Record[I, V]) bool {
	return a.Value == b.Value &&
		a.Interval.CompareStart(b.Interval) == 0 &&
		a.Interval.ContainsInterval(b.Interval) &&
		b.Interval.ContainsInterval(a.Interval)
}

// DiffActionsFrom computes the minimal Create/Update/Delete sequence
// that, applied to other, yields t. Records are matched by interval
// start key, ascending.
func (t *T[I, V]) DiffActionsFrom(other *T[I, V]) []diffaction.Action[I, V] {
	var out []diffaction.Action[I, V]
	i, j := 0, 0
	for i < len(t.records) && j < len(other.records) {
		a, b := t.records[i], other.records[j]
		c := a.rec.Interval.CompareStart(b.rec.Interval)
		switch {
		case c < 0:
			out = append(out, diffaction.Action[I, V]{Kind: diffaction.Create, Key: a.rec.Interval, Interval: a.rec.Interval, Value: a.rec.Value})
			i++
		case c > 0:
			out = append(out, diffaction.Action[I, V]{Kind: diffaction.Delete, Key: b.rec.Interval})
			j++
		default:
			if !recordsEqual(a.rec, b.rec) {
				out = append(out, diffaction.Action[I, V]{Kind: diffaction.Update, Key: a.rec.Interval, Interval: a.rec.Interval, Value: a.rec.Value})
			}
			i++
			j++
		}
	}
	for ; i < len(t.records); i++ {
		r := t.records[i].rec
		out = append(out, diffaction.Action[I, V]{Kind: diffaction.Create, Key: r.Interval, Interval: r.Interval, Value: r.Value})
	}
	for ; j < len(other.records); j++ {
		out = append(out, diffaction.Action[I, V]{Kind: diffaction.Delete, Key: other.records[j].rec.Interval})
	}
	return out
}

// ApplyDiffActions replays actions produced by DiffActionsFrom.
func (t *T[I, V]) ApplyDiffActions(actions []diffaction.Action[I, V]) {
	for _, act := range actions {
		switch act.Kind {
		case diffaction.Create:
			t.Set(Record[I, V]{Interval: act.Interval, Value: act.Value})
		case diffaction.Update:
			t.ReplaceByKey(act.Key, Record[I, V]{Interval: act.Interval, Value: act.Value})
		case diffaction.Delete:
			if h, ok := t.findByStart(act.Key); ok {
				t.removeHandle(h)
			}
		}
	}
}

// SyncWith brings t into sync with other: t.SyncWith(other) is
// equivalent to t.ApplyDiffActions(other.DiffActionsFrom(t)).
func (t *T[I, V]) SyncWith(other *T[I, V]) {
	t.ApplyDiffActions(other.DiffActionsFrom(t))
}

// removeOverlapping strips interval out of every record that intersects
// it, reinserting each record's excluding(interval) remainder with its
// original value.
func (t *T[I, V]) removeOverlapping(interval I) {
	for _, h := range t.candidatesIntersecting(interval) {
		t.removeHandle(h)
		for _, piece := range h.rec.Interval.Excluding(interval) {
			t.insertRecord(Record[I, V]{Interval: piece, Value: h.rec.Value})
		}
	}
}

// Set removes any overlap with rec.Interval, inserts rec, then
// compresses rec.Value's records.
func (t *T[I, V]) Set(rec Record[I, V]) {
	t.removeOverlapping(rec.Interval)
	t.insertRecord(rec)
	t.Compress(rec.Value)
}

// SetIfNoConflict behaves like Set only if no existing record
// intersects rec.Interval; otherwise it leaves the store unchanged and
// returns false.
func (t *T[I, V]) SetIfNoConflict(rec Record[I, V]) bool {
	if t.Intersects(rec.Interval) {
		return false
	}
	t.Set(rec)
	return true
}

// Remove strips interval out of every record that intersects it.
func (t *T[I, V]) Remove(interval I) {
	t.removeOverlapping(interval)
}

// Update behaves like Remove(rec.Interval), except each remainder keeps
// its original value and the overlapped region is (re)inserted with
// rec.Value -- no coverage beyond what already existed is introduced.
// Pieces adjacent to the updated region are joined with the new value
// by the trailing Compress.
func (t *T[I, V]) Update(rec Record[I, V]) {
	for _, h := range t.candidatesIntersecting(rec.Interval) {
		inter, ok := h.rec.Interval.Intersection(rec.Interval)
		if !ok {
			continue
		}
		t.removeHandle(h)
		for _, piece := range h.rec.Interval.Excluding(rec.Interval) {
			t.insertRecord(Record[I, V]{Interval: piece, Value: h.rec.Value})
		}
		t.insertRecord(Record[I, V]{Interval: inter, Value: rec.Value})
	}
	t.Compress(rec.Value)
}

// Replace deletes the record exactly matching oldRec, then Sets newRec.
// It reports whether oldRec was found.
func (t *T[I, V]) Replace(oldRec, newRec Record[I, V]) bool {
	h, found := t.findByStart(oldRec.Interval)
	if !found || !recordsEqual(h.rec, oldRec) {
		return false
	}
	t.removeHandle(h)
	t.Set(newRec)
	return true
}

// ReplaceByKey deletes the record whose interval start matches key, then
// Sets newRec. It reports whether a record at key was found.
func (t *T[I, V]) ReplaceByKey(key I, newRec Record[I, V]) bool {
	h, found := t.findByStart(key)
	if !found {
		return false
	}
	t.removeHandle(h)
	t.Set(newRec)
	return true
}

// Fill sets rec only on the parts of rec.Interval not already covered.
func (t *T[I, V]) Fill(rec Record[I, V]) {
	pieces := subtractCovering(rec.Interval, t.candidatesIntersecting(rec.Interval))
	for _, p := range pieces {
		t.insertRecord(Record[I, V]{Interval: p, Value: rec.Value})
	}
	t.Compress(rec.Value)
}

func subtractCovering[I tuple.Interval[I], V any](interval I, covering []*recordHandle[I, V]) []I {
	pieces := []I{interval}
	for _, h := range covering {
		var next []I
		for _, p := range pieces {
			if p.Intersects(h.rec.Interval) {
				next = append(next, p.Excluding(h.rec.Interval)...)
			} else {
				next = append(next, p)
			}
		}
		pieces = next
	}
	return pieces
}

// Merge applies every record of other to t: where other's interval is
// empty in t, it is Set directly; where it overlaps existing records,
// mergeOp combines the existing and incoming values over the overlap.
// It then runs CompressAll.
func (t *T[I, V]) Merge(other *T[I, V], mergeOp func(existing, incoming V) V) {
	for _, oh := range other.records {
		rec := oh.rec
		existing := t.candidatesIntersecting(rec.Interval)
		if len(existing) == 0 {
			t.Set(rec)
			continue
		}
		remaining := []I{rec.Interval}
		for _, h := range existing {
			inter, ok := h.rec.Interval.Intersection(rec.Interval)
			if !ok {
				continue
			}
			merged := mergeOp(h.rec.Value, rec.Value)
			t.removeHandle(h)
			for _, piece := range h.rec.Interval.Excluding(rec.Interval) {
				t.insertRecord(Record[I, V]{Interval: piece, Value: h.rec.Value})
			}
			t.insertRecord(Record[I, V]{Interval: inter, Value: merged})
			var next []I
			for _, p := range remaining {
				if p.Intersects(inter) {
					next = append(next, p.Excluding(inter)...)
				} else {
					next = append(next, p)
				}
			}
			remaining = next
		}
		for _, p := range remaining {
			t.insertRecord(Record[I, V]{Interval: p, Value: rec.Value})
		}
	}
	t.CompressAll()
}

// Compress repeatedly replaces any two of value's records whose
// intervals are joinable with their join, until no joinable pair
// remains. A joinable pair need not be adjacent in start order -- in
// 2-D/3-D a third same-value record can sit between them -- so every
// pair is considered, not just consecutive ones. Idempotent.
func (t *T[I, V]) Compress(value V) {
	for {
		cur := t.values.Get(value)
		merged := false
		for i := 0; i < len(cur) && !merged; i++ {
			for j := i + 1; j < len(cur); j++ {
				joined, ok := cur[i].Join(cur[j])
				if !ok {
					continue
				}
				ha, _ := t.findByStart(cur[i])
				hb, _ := t.findByStart(cur[j])
				t.removeHandle(ha)
				t.removeHandle(hb)
				t.insertRecord(Record[I, V]{Interval: joined, Value: value})
				merged = true
				break
			}
		}
		if !merged {
			return
		}
	}
}

// CompressAll compresses every distinct value once.
func (t *T[I, V]) CompressAll() {
	for _, v := range t.values.Values() {
		t.Compress(v)
	}
}

// RecompressAll decomposes the store into its canonical atomic
// partition -- cutting every record along the axis boundaries induced
// by every other record via AtomicCut -- then runs CompressAll. Two
// stores that are logically equal, however differently constructed,
// produce the same physical partition after RecompressAll.
func (t *T[I, V]) RecompressAll() {
	allIntervals := make([]I, len(t.records))
	for i, h := range t.records {
		allIntervals[i] = h.rec.Interval
	}
	type piece struct {
		interval I
		value    V
	}
	var atoms []piece
	for _, h := range t.records {
		cells := []I{h.rec.Interval}
		for _, other := range allIntervals {
			var next []I
			for _, c := range cells {
				next = append(next, c.AtomicCut(other)...)
			}
			cells = next
		}
		for _, c := range cells {
			atoms = append(atoms, piece{interval: c, value: h.rec.Value})
		}
	}
	t.records = nil
	t.values = valuemap.New[V, I]()
	t.tree = boxtree.NewWithConfig(t.dims, t.opts.TreeConfig)
	for _, a := range atoms {
		t.insertRecord(Record[I, V]{Interval: a.interval, Value: a.value})
	}
	t.CompressAll()
}

// Filter retains only records satisfying pred.
func (t *T[I, V]) Filter(pred func(Record[I, V]) bool) {
	var drop []*recordHandle[I, V]
	for _, h := range t.records {
		if !pred(h.rec) {
			drop = append(drop, h)
		}
	}
	for _, h := range drop {
		t.removeHandle(h)
	}
}

func (t *T[I, V]) insertDisjointOrFail(rec Record[I, V]) {
	if t.Intersects(rec.Interval) {
		failInvariant(errors.DisjointnessViolated, "map/flatMap produced overlapping interval %v", rec.Interval)
	}
	t.insertRecord(rec)
}

// Map replaces every record with f(record), then runs CompressAll; it
// is a programming error for the result to violate disjointness.
func (t *T[I, V]) Map(f func(Record[I, V]) Record[I, V]) {
	old := t.records
	t.records = nil
	t.values = valuemap.New[V, I]()
	t.tree = boxtree.NewWithConfig(t.dims, t.opts.TreeConfig)
	for _, h := range old {
		t.insertDisjointOrFail(f(h.rec))
	}
	t.CompressAll()
}

// MapValues replaces every record's value with f(value), leaving
// intervals (and thus disjointness) untouched.
func (t *T[I, V]) MapValues(f func(V) V) {
	for _, h := range t.records {
		newVal := f(h.rec.Value)
		if newVal == h.rec.Value {
			continue
		}
		t.values.Remove(h.rec.Value, h.rec.Interval)
		h.rec.Value = newVal
		t.values.Add(newVal, h.rec.Interval)
	}
}

// FlatMap replaces every record with f(record), a list of zero or more
// records, then runs CompressAll; it is a programming error for the
// result to violate disjointness.
func (t *T[I, V]) FlatMap(f func(Record[I, V]) []Record[I, V]) {
	old := t.records
	t.records = nil
	t.values = valuemap.New[V, I]()
	t.tree = boxtree.NewWithConfig(t.dims, t.opts.TreeConfig)
	for _, h := range old {
		for _, rec := range f(h.rec) {
			t.insertDisjointOrFail(rec)
		}
	}
	t.CompressAll()
}
