// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model implements a variable-order PPM-style context tree: a
// left-context trie whose nodes hold adaptive
// Fenwick-tree distributions with an escape symbol, descended in reverse
// byte order from the most recent history, with optional exclusion
// masking and exclude-on-update tail handling. The escape/fallback shape
// is the classic PPM trie-with-escape construction; this package's
// closest cross-check in the retrieval pack is
// other_examples/9e5b7531_ColeWyeth-factored-ctw__ctw.go.go's tree of
// per-context statistics, though that file builds a context-tree-weighting
// mixture rather than a PPM escape model, so only the trie/per-context
// node shape is borrowed, not its algorithm.
package model

import (
	"github.com/go-compress/ppmzip/internal/errors"
	"github.com/go-compress/ppmzip/internal/rangecoder"
)

// Params is the immutable set of coding parameters for one Tree.
type Params struct {
	ContextLength   int
	MaskSeen        bool
	ExcludeOnUpdate bool
	UpCharCoding    Scheme
	Decapitalize    bool
}

// Tree is one encode or decode call's context tree: root N0 plus the
// sliding left-context window. It is never serialized and never reused
// across calls.
type Tree struct {
	params   Params
	root     *node
	fallback *fallback
	window   []byte
}

// New returns a Tree ready to encode or decode from an empty history.
func New(params Params) *Tree {
	return &Tree{
		params:   params,
		root:     newNode(nil),
		fallback: newFallback(params.Decapitalize),
	}
}

// checkSymbol enforces a precondition: with decapitalize on, the coder
// must never be asked to code
// an uppercase ASCII letter, since the decapitalizer guarantees its
// output is already folded.
func (t *Tree) checkSymbol(c byte) {
	if t.params.Decapitalize && c >= 'A' && c <= 'Z' {
		errors.Panicf(errors.InvalidModel, "coder presented uppercase byte %q with decapitalize enabled", c)
	}
}

// descendQuery walks down from root along window's bytes in reverse
// (most-recent-first), stopping at the deepest node whose child path
// already exists. It never creates nodes. Before the first update the root
// has no weight at all, so it returns nil and coding goes straight to the
// pseudo-root.
func (t *Tree) descendQuery(window []byte) *node {
	n := t.root
	if n.dist.Total() == 0 {
		return nil
	}
	for i := len(window) - 1; i >= 0; i-- {
		child, ok := n.child(window[i])
		if !ok {
			break
		}
		n = child
	}
	return n
}

// extendPath walks down from root along window's bytes in reverse,
// creating any missing child nodes, and returns the visited nodes
// ordered from deepest to root N0 (root always included, pseudo-root
// never included).
func (t *Tree) extendPath(window []byte) []*node {
	visited := make([]*node, 0, len(window)+1)
	n := t.root
	visited = append(visited, n)
	for i := len(window) - 1; i >= 0; i-- {
		n = n.childOrCreate(window[i])
		visited = append(visited, n)
	}
	for i, j := 0, len(visited)-1; i < j; i, j = i+1, j-1 {
		visited[i], visited[j] = visited[j], visited[i]
	}
	return visited
}

func (t *Tree) slideWindow(c byte) {
	t.window = append(t.window, c)
	if len(t.window) > t.params.ContextLength {
		t.window = t.window[len(t.window)-t.params.ContextLength:]
	}
}

// Encode codes byte c against the current window's context chain,
// writing to enc, then updates the tree and slides the window.
func (t *Tree) Encode(enc *rangecoder.Encoder, c byte) {
	t.checkSymbol(c)

	excluded := map[byte]bool{}
	n := t.descendQuery(t.window)
	var codingNode *node
	for n != nil {
		dist, lv := n.view(excluded, t.params.MaskSeen)
		if idx, ok := lv.find(c); ok {
			enc.Encode(dist, idx)
			codingNode = n
			break
		}
		enc.Encode(dist, escapeIndex)
		if t.params.MaskSeen {
			n.unionInto(excluded)
		}
		n = n.parent
	}
	if codingNode == nil {
		idx, ok := t.fallback.symToIdx[c]
		errors.Assert(ok, errors.E(errors.InvalidModel, "pseudo-root has no entry for byte %q", c))
		enc.Encode(t.fallback.dist, idx)
	}

	t.updateAfterCode(c, codingNode)
	t.slideWindow(c)
}

// Decode decodes one byte from dec against the current window's context
// chain, then updates the tree and slides the window.
func (t *Tree) Decode(dec *rangecoder.Decoder) byte {
	excluded := map[byte]bool{}
	n := t.descendQuery(t.window)
	var codingNode *node
	var decoded byte
	found := false
	for n != nil {
		dist, lv := n.view(excluded, t.params.MaskSeen)
		idx := dec.Find(dist)
		dec.Consume(dist, idx)
		if sym, ok := lv.symbolAt(idx); ok {
			decoded = sym
			codingNode = n
			found = true
			break
		}
		if t.params.MaskSeen {
			n.unionInto(excluded)
		}
		n = n.parent
	}
	if !found {
		idx := dec.Find(t.fallback.dist)
		dec.Consume(t.fallback.dist, idx)
		errors.Assert(idx < len(t.fallback.idxToSym), errors.E(errors.InvalidModel, "pseudo-root decoded out-of-range index %d", idx))
		decoded = t.fallback.idxToSym[idx]
	}

	t.checkSymbol(decoded)
	t.updateAfterCode(decoded, codingNode)
	t.slideWindow(decoded)
	return decoded
}

// updateAfterCode applies the tree update after a symbol is coded: it first
// extends (creating as needed) the path for the current window, then
// applies add(c, scheme) along that path per the configured update
// policy.
func (t *Tree) updateAfterCode(c byte, codingNode *node) {
	path := t.extendPath(t.window) // deepest first, root last
	deepest := path[0]

	if !t.params.ExcludeOnUpdate {
		for _, n := range path {
			n.add(c, t.params.UpCharCoding)
		}
		return
	}

	if deepest != codingNode {
		// The window descends deeper than where coding actually resolved:
		// every node below codingNode on this path lacked c, so update them
		// and codingNode itself unconditionally, then stop without touching
		// codingNode's ancestors.
		for _, n := range path {
			n.add(c, t.params.UpCharCoding)
			if n == codingNode {
				return
			}
		}
		return
	}

	// No escape occurred: codingNode is the deepest node itself, and it
	// already held c directly. Gate every node in the chain, starting with
	// this one, on its effective symbol count before applying the add: a
	// node that already knows more than one real symbol (or knows one
	// other than c) is left untouched and the walk stops there.
	for _, n := range path {
		count := n.effectiveCount()
		if !(count == 0 || (count == 1 && n.contains(c))) {
			return
		}
		n.add(c, t.params.UpCharCoding)
	}
}
