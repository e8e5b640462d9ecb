// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache 2.0
// license that can be found in the LICENSE file.

// Package boxtree implements the n-dimensional box search tree of
// spec.md §4.3: a leaf node holds up to NodeCapacity payloads; once it
// overflows, it subdivides into 2^dims children by bisecting every axis
// at its midpoint, and a payload straddling the midpoint on some axis is
// filed under every child its box intersects. The tree grows on an
// out-of-bounds insert by replacing the root with a new root whose
// bounds cover both the old root and the inserted box.
//
// Adapted from grailbio-base/intervalmap's node/searcher/GOB-marshal
// shape: that package built a 1-D two-child tree using a randomized
// surface-area-heuristic split; this package generalizes the node and
// searcher machinery to n dimensions but replaces the SAH split with
// plain per-axis midpoint bisection, as spec.md §4.3 calls for.
package boxtree

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/grailbio/intervalidus/bitset"
	"github.com/grailbio/intervalidus/box"
	"github.com/grailbio/intervalidus/log"
	"github.com/grailbio/intervalidus/must"
)

// Config tunes a Tree's subdivision behavior.
type Config struct {
	// NodeCapacity is the maximum number of payloads a leaf holds before
	// it subdivides.
	NodeCapacity int
	// DepthLimit caps how many times a branch subdivides further,
	// regardless of how many payloads a leaf accumulates past that depth.
	DepthLimit int
}

const (
	defaultNodeCapacityConst = 256
	defaultDepthLimitConst   = 32
)

var defaultConfig = Config{
	NodeCapacity: envInt("INTERVALIDUS_TREE_NODE_CAPACITY", defaultNodeCapacityConst),
	DepthLimit:   envInt("INTERVALIDUS_TREE_DEPTH_LIMIT", defaultDepthLimitConst),
}

func envInt(name string, fallback int) int {
	s := os.Getenv(name)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// DefaultConfig returns the process-wide defaults, read once at package
// init from INTERVALIDUS_TREE_NODE_CAPACITY / INTERVALIDUS_TREE_DEPTH_LIMIT.
func DefaultConfig() Config { return defaultConfig }

// Entry is one payload box in the tree.
type Entry struct {
	Box  box.Box
	Data interface{}
}

type entry struct {
	Entry
	id int
}

// node is one node of the tree. A leaf has a non-nil ents and a nil
// children; a branch has the reverse.
type node struct {
	bounds   box.Box
	children []*node
	ents     []*entry
}

// TreeStats shows tree-wide structural stats, used by tests and
// diagnostics.
type TreeStats struct {
	Nodes           int
	LeafNodes       int
	MaxDepth        int
	MaxLeafNodeSize int
}

// Tree is the mutable n-dimensional box search tree. Construct with New.
// A Tree is not safe for concurrent use without external synchronization
// (matching the concurrency contract package store states for its own
// types).
type Tree struct {
	dims   int
	cfg    Config
	root   *node
	nextID int
	pool   *searcherPool
	stats  TreeStats
}

// New creates an empty tree over the given number of dimensions, using
// the process-wide default Config.
func New(dims int) *Tree {
	return NewWithConfig(dims, defaultConfig)
}

// NewWithConfig creates an empty tree with an explicit Config.
func NewWithConfig(dims int, cfg Config) *Tree {
	if cfg.NodeCapacity <= 0 {
		cfg.NodeCapacity = defaultNodeCapacityConst
	}
	if cfg.DepthLimit <= 0 {
		cfg.DepthLimit = defaultDepthLimitConst
	}
	t := &Tree{dims: dims, cfg: cfg}
	t.root = &node{bounds: emptyBox(dims)}
	t.pool = newSearcherPool(t)
	return t
}

func emptyBox(dims int) box.Box {
	min := make([]float64, dims)
	max := make([]float64, dims)
	for i := range min {
		min[i] = 0
		max[i] = 0
	}
	return box.New(min, max)
}

// Insert adds data under b, growing the tree if b lies outside the
// current root bounds.
func (t *Tree) Insert(b box.Box, data interface{}) {
	must.Truef(b.Dims() == t.dims, "boxtree: box has %d dims, tree has %d", b.Dims(), t.dims)
	e := &entry{Entry: Entry{Box: b, Data: data}, id: t.nextID}
	t.nextID++
	if t.stats.Nodes == 0 {
		t.root.bounds = b
	} else if !t.root.bounds.Contains(b) {
		t.growToContain(b, e)
		t.recomputeStats()
		return
	}
	t.insertInto(t.root, e, 0)
	t.recomputeStats()
}

// growToContain rebuilds the whole tree with a boundary wide enough to
// contain b, re-inserting every existing payload (deduplicated, since a
// straddling payload may be filed under several leaves) plus the new
// entry e, per spec.md §4.3's grow-on-outside-insert algorithm.
func (t *Tree) growToContain(b box.Box, e *entry) {
	newBounds := t.root.bounds.Union(b)
	log.Debug.Printf("boxtree: growing root %v to %v", t.root.bounds, newBounds)
	existing := t.collectEntries()
	t.root = &node{bounds: newBounds}
	for _, prior := range existing {
		t.insertInto(t.root, prior, 0)
	}
	t.insertInto(t.root, e, 0)
}

// collectEntries returns every distinct entry currently in the tree.
func (t *Tree) collectEntries() []*entry {
	seen := make(map[int]*entry)
	var walk func(n *node)
	walk = func(n *node) {
		if n.children == nil {
			for _, e := range n.ents {
				seen[e.id] = e
			}
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t.root)
	out := make([]*entry, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	return out
}

func (t *Tree) insertInto(n *node, e *entry, depth int) {
	if n.children != nil {
		t.insertIntoChildren(n, e, depth)
		return
	}
	n.ents = append(n.ents, e)
	if len(n.ents) > t.cfg.NodeCapacity && depth < t.cfg.DepthLimit {
		t.subdivide(n, depth)
	}
}

func (t *Tree) insertIntoChildren(n *node, e *entry, depth int) {
	for _, c := range n.children {
		if c.bounds.Intersects(e.Box) {
			t.insertInto(c, e, depth+1)
		}
	}
}

// subdivide splits leaf n into 2^dims children by bisecting each axis at
// its midpoint. A payload straddling a midpoint is filed into every
// child whose bounds it intersects, tracked via a bitset over the
// (at most 2^dims, 8 for 3-D) candidate child indices purely for
// debugging/assertion purposes -- the actual filing loop re-tests
// intersection directly.
func (t *Tree) subdivide(n *node, depth int) {
	nChildren := 1 << uint(t.dims)
	children := make([]*node, nChildren)
	for idx := 0; idx < nChildren; idx++ {
		children[idx] = &node{bounds: childBounds(n.bounds, idx, t.dims)}
	}
	mask := bitset.NewClearBits(nChildren)
	for _, e := range n.ents {
		bitset.ClearInterval(mask, 0, nChildren)
		filed := 0
		for idx, c := range children {
			if c.bounds.Intersects(e.Box) {
				bitset.Set(mask, idx)
				c.ents = append(c.ents, e)
				filed++
			}
		}
		must.Truef(filed > 0, "boxtree: entry %v did not fall into any child of %v", e.Box, n.bounds)
	}
	n.ents = nil
	n.children = children
	for _, c := range children {
		if len(c.ents) > t.cfg.NodeCapacity && depth+1 < t.cfg.DepthLimit {
			t.subdivide(c, depth+1)
		}
	}
}

// childBounds returns the bounds of child idx of a node with the given
// bounds: bit b of idx selects the upper (1) or lower (0) half of axis b.
func childBounds(bounds box.Box, idx, dims int) box.Box {
	min := make([]float64, dims)
	max := make([]float64, dims)
	for axis := 0; axis < dims; axis++ {
		mid := bounds.Mid(axis)
		if idx&(1<<uint(axis)) != 0 {
			min[axis] = mid
			max[axis] = bounds.Max[axis]
		} else {
			min[axis] = bounds.Min[axis]
			max[axis] = mid
		}
	}
	return box.New(min, max)
}

func (t *Tree) recomputeStats() {
	var s TreeStats
	var walk func(n *node, depth int)
	walk = func(n *node, depth int) {
		s.Nodes++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		if n.children == nil {
			s.LeafNodes++
			if len(n.ents) > s.MaxLeafNodeSize {
				s.MaxLeafNodeSize = len(n.ents)
			}
			return
		}
		for _, c := range n.children {
			walk(c, depth+1)
		}
	}
	walk(t.root, 0)
	t.stats = s
}

// Stats returns tree-wide structural stats.
func (t *Tree) Stats() TreeStats { return t.stats }

// Search returns every entry whose box intersects q, deduplicated (an
// entry filed under several children due to straddling a split is
// reported once).
func (t *Tree) Search(q box.Box) []Entry {
	s := t.pool.get()
	defer t.pool.put(s)
	s.searchID++
	var out []Entry
	t.search(t.root, q, s, &out)
	return out
}

func (t *Tree) search(n *node, q box.Box, s *searcher, out *[]Entry) {
	if !n.bounds.Intersects(q) {
		return
	}
	if n.children == nil {
		for _, e := range n.ents {
			if s.visit(e.id) && e.Box.Intersects(q) {
				*out = append(*out, e.Entry)
			}
		}
		return
	}
	for _, c := range n.children {
		t.search(c, q, s, out)
	}
}

// Any reports whether any entry intersects q, short-circuiting the walk.
func (t *Tree) Any(q box.Box) bool {
	return t.any(t.root, q)
}

func (t *Tree) any(n *node, q box.Box) bool {
	if !n.bounds.Intersects(q) {
		return false
	}
	if n.children == nil {
		for _, e := range n.ents {
			if e.Box.Intersects(q) {
				return true
			}
		}
		return false
	}
	for _, c := range n.children {
		if t.any(c, q) {
			return true
		}
	}
	return false
}

// Remove deletes the first payload under b whose Data satisfies equal,
// descending into every node whose boundary intersects b (a straddling
// payload may need removing from several leaves). It reports whether a
// matching payload was found and removed.
func (t *Tree) Remove(b box.Box, equal func(data interface{}) bool) bool {
	removed := t.remove(t.root, b, equal)
	if removed {
		t.recomputeStats()
	}
	return removed
}

func (t *Tree) remove(n *node, b box.Box, equal func(interface{}) bool) bool {
	if !n.bounds.Intersects(b) {
		return false
	}
	if n.children == nil {
		for i, e := range n.ents {
			if e.Box.Intersects(b) && equal(e.Data) {
				n.ents = append(n.ents[:i], n.ents[i+1:]...)
				return true
			}
		}
		return false
	}
	removed := false
	for _, c := range n.children {
		if t.remove(c, b, equal) {
			removed = true
		}
	}
	return removed
}

// searcher carries one search episode's dedup state, recycled across
// searches via searcherPool the way grailbio-base/intervalmap's searcher
// did, using a generation counter instead of clearing hits on every call.
type searcher struct {
	tree     *Tree
	searchID uint32
	hits     []uint32
}

func (s *searcher) visit(id int) bool {
	if id >= len(s.hits) {
		grown := make([]uint32, id+1)
		copy(grown, s.hits)
		s.hits = grown
	}
	if s.hits[id] != s.searchID {
		s.hits[id] = s.searchID
		return true
	}
	return false
}

type searcherPool struct {
	tree *Tree
	free chan *searcher
}

func newSearcherPool(t *Tree) *searcherPool {
	return &searcherPool{tree: t, free: make(chan *searcher, runtime.NumCPU()*2)}
}

func (p *searcherPool) get() *searcher {
	select {
	case s := <-p.free:
		return s
	default:
		return &searcher{tree: p.tree}
	}
}

func (p *searcherPool) put(s *searcher) {
	select {
	case p.free <- s:
	default:
	}
}

const gobFormatVersion = 1

// MarshalBinary implements encoding.BinaryMarshaler, mirroring
// grailbio-base/intervalmap's GOB support.
func (t *Tree) MarshalBinary() ([]byte, error) {
	buf := bytes.Buffer{}
	e := gob.NewEncoder(&buf)
	must.Nil(e.Encode(gobFormatVersion))
	must.Nil(e.Encode(t.dims))
	must.Nil(e.Encode(t.cfg))
	marshalNode(e, t.root)
	return buf.Bytes(), nil
}

func marshalNode(e *gob.Encoder, n *node) {
	if n == nil {
		must.Nil(e.Encode(false))
		return
	}
	must.Nil(e.Encode(true))
	must.Nil(e.Encode(n.bounds))
	must.Nil(e.Encode(len(n.children)))
	for _, c := range n.children {
		marshalNode(e, c)
	}
	must.Nil(e.Encode(len(n.ents)))
	for _, ent := range n.ents {
		must.Nil(e.Encode(ent.Box))
		must.Nil(e.Encode(ent.id))
	}
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. Payload Data
// fields are not preserved across a GOB round-trip, matching
// grailbio-base/intervalmap's own limitation (interface{} payloads are
// not gob-registered types here).
func (t *Tree) UnmarshalBinary(data []byte) error {
	buf := bytes.NewReader(data)
	d := gob.NewDecoder(buf)
	var version int
	if err := d.Decode(&version); err != nil {
		return err
	}
	if version != gobFormatVersion {
		return fmt.Errorf("boxtree: gob decode got version %d, want %d", version, gobFormatVersion)
	}
	if err := d.Decode(&t.dims); err != nil {
		return err
	}
	if err := d.Decode(&t.cfg); err != nil {
		return err
	}
	maxID := -1
	root, err := unmarshalNode(d, &maxID)
	if err != nil {
		return err
	}
	t.root = root
	t.nextID = maxID + 1
	t.pool = newSearcherPool(t)
	t.recomputeStats()
	return nil
}

func unmarshalNode(d *gob.Decoder, maxID *int) (*node, error) {
	var exist bool
	if err := d.Decode(&exist); err != nil {
		return nil, err
	}
	if !exist {
		return nil, nil
	}
	n := &node{}
	if err := d.Decode(&n.bounds); err != nil {
		return nil, err
	}
	var nChildren int
	if err := d.Decode(&nChildren); err != nil {
		return nil, err
	}
	if nChildren > 0 {
		n.children = make([]*node, nChildren)
		for i := range n.children {
			c, err := unmarshalNode(d, maxID)
			if err != nil {
				return nil, err
			}
			n.children[i] = c
		}
	}
	var nEnt int
	if err := d.Decode(&nEnt); err != nil {
		return nil, err
	}
	for i := 0; i < nEnt; i++ {
		e := &entry{}
		if err := d.Decode(&e.Box); err != nil {
			return nil, err
		}
		if err := d.Decode(&e.id); err != nil {
			return nil, err
		}
		if e.id > *maxID {
			*maxID = e.id
		}
		n.ents = append(n.ents, e)
	}
	return n, nil
}
