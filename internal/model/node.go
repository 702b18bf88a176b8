// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/go-compress/ppmzip/internal/fenwick"

// escapeIndex is the dense index permanently reserved for the escape
// symbol ↑ in every node's index map.
const escapeIndex = 0

// node is one left-context string's statistics. idxToSym[0] is an unused
// placeholder standing in for ↑; idxToSym[i] for i >= 1 is the real byte allocated at dense index
// i, mirrored by symToIdx. dist carries the matching Fenwick frequencies,
// index-for-index.
type node struct {
	symToIdx map[byte]int
	idxToSym []byte
	dist     *fenwick.Tree

	// seenOnce holds symbols scheme B has observed exactly once at this
	// node (and so has not yet allocated an index for); nil when empty,
	// per the Open Question decision recorded in DESIGN.md.
	seenOnce map[byte]bool

	children map[byte]*node
	parent   *node
}

func newNode(parent *node) *node {
	n := &node{
		symToIdx: map[byte]int{},
		idxToSym: []byte{0},
		dist:     fenwick.New(),
		parent:   parent,
	}
	n.dist.Append(0) // escape slot, weight fixed up by the first add
	return n
}

func (n *node) child(c byte) (*node, bool) {
	ch, ok := n.children[c]
	return ch, ok
}

func (n *node) childOrCreate(c byte) *node {
	if ch, ok := n.children[c]; ok {
		return ch
	}
	if n.children == nil {
		n.children = map[byte]*node{}
	}
	ch := newNode(n)
	n.children[c] = ch
	return ch
}

// effectiveCount is len(symToIdx) + len(seenOnce): the number of distinct
// real symbols this node knows about, whether or not they have been
// allocated a dense index yet. symToIdx has no entry for ↑, so nothing is
// subtracted for it.
func (n *node) effectiveCount() int {
	return len(n.symToIdx) + len(n.seenOnce)
}

// allocate assigns c a fresh dense index with initial frequency freq.
func (n *node) allocate(c byte, freq int64) int {
	idx := len(n.idxToSym)
	n.idxToSym = append(n.idxToSym, c)
	n.symToIdx[c] = idx
	n.dist.Append(freq)
	return idx
}

// setEscapeWeight forces the escape index's frequency to exactly w,
// regardless of its current value (scheme A's "set f[↑]=1").
func (n *node) setEscapeWeight(w int64) {
	cur := n.dist.Get(escapeIndex)
	if cur != w {
		n.dist.Add(escapeIndex, w-cur)
	}
}

// bumpEscapeWeight increments the escape index's frequency by delta
// (schemes B, C, D's "f[↑] += 1").
func (n *node) bumpEscapeWeight(delta int64) {
	n.dist.Add(escapeIndex, delta)
}

func (n *node) forgetSeenOnce(c byte) {
	delete(n.seenOnce, c)
	if len(n.seenOnce) == 0 {
		n.seenOnce = nil
	}
}

// add applies one occurrence of c to this node under scheme.
func (n *node) add(c byte, scheme Scheme) {
	if idx, ok := n.symToIdx[c]; ok {
		switch scheme {
		case SchemeD:
			n.dist.Add(idx, 2)
		default:
			n.dist.Add(idx, 1)
		}
		return
	}

	switch scheme {
	case SchemeA:
		n.allocate(c, 1)
		n.setEscapeWeight(1)
	case SchemeB:
		if n.seenOnce != nil && n.seenOnce[c] {
			n.forgetSeenOnce(c)
			n.allocate(c, 1)
			return
		}
		if n.seenOnce == nil {
			n.seenOnce = map[byte]bool{}
		}
		n.seenOnce[c] = true
		n.bumpEscapeWeight(1)
	case SchemeC, SchemeD:
		n.allocate(c, 1)
		n.bumpEscapeWeight(1)
	}
}

// view returns the distribution and lookup to query for symbol c at this
// node: the node's own distribution unmasked, or — when maskSeen is true
// and excluded actually removes something this node knows about — a
// materialized masked Fenwick tree over the retained indices, escape kept
// at index 0 by convention.
func (n *node) view(excluded map[byte]bool, maskSeen bool) (*fenwick.Tree, lookup) {
	if !maskSeen || len(excluded) == 0 {
		return n.dist, lookup{n: n}
	}
	anyExcluded := false
	for c := range n.symToIdx {
		if excluded[c] {
			anyExcluded = true
			break
		}
	}
	if !anyExcluded {
		return n.dist, lookup{n: n}
	}

	mt := fenwick.New()
	mt.Append(n.dist.Get(escapeIndex))
	syms := []byte{0}
	symToIdx := map[byte]int{}
	for idx := 1; idx < len(n.idxToSym); idx++ {
		c := n.idxToSym[idx]
		if excluded[c] {
			continue
		}
		mt.Append(n.dist.Get(idx))
		symToIdx[c] = len(syms)
		syms = append(syms, c)
	}
	return mt, lookup{masked: true, maskedSyms: syms, maskedSymToIdx: symToIdx}
}

// contains reports whether this node already knows c, whether or not it has
// an allocated index yet.
func (n *node) contains(c byte) bool {
	if _, ok := n.symToIdx[c]; ok {
		return true
	}
	return n.seenOnce != nil && n.seenOnce[c]
}

// unionInto adds every real symbol (not ↑) this node knows to excluded,
// applied at an escape step.
func (n *node) unionInto(excluded map[byte]bool) {
	for c := range n.symToIdx {
		excluded[c] = true
	}
}

// lookup resolves between dense indices and real symbols for one query
// step, accounting for whether a masked view is in effect.
type lookup struct {
	n *node

	masked         bool
	maskedSyms     []byte
	maskedSymToIdx map[byte]int
}

func (v lookup) find(c byte) (int, bool) {
	if !v.masked {
		idx, ok := v.n.symToIdx[c]
		return idx, ok
	}
	idx, ok := v.maskedSymToIdx[c]
	return idx, ok
}

func (v lookup) symbolAt(idx int) (byte, bool) {
	if idx == escapeIndex {
		return 0, false
	}
	if !v.masked {
		if idx < len(v.n.idxToSym) {
			return v.n.idxToSym[idx], true
		}
		return 0, false
	}
	if idx < len(v.maskedSyms) {
		return v.maskedSyms[idx], true
	}
	return 0, false
}
