// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fenwick implements a growable Fenwick (binary indexed) tree: a
// structure mapping a dense index range [0, Len()) to non-negative integer
// frequencies, supporting Append, point updates, prefix sums, and the
// inverse (find the index whose cumulative range contains a target value)
// in O(log n).
//
// No repository in the retrieval pack implements this data structure
// directly (see DESIGN.md); it is built from the standard binary-indexed-
// tree technique. Internally the tree is kept 1-indexed (the classic BIT
// presentation, tree[1..n]); the exported API is 0-indexed. Growing the
// tree with Append relies on the
// identity tree[m] = freq[m] + sum(freq[m-lowbit(m)+1 .. m-1]): since every
// term on the right references an index below the new length, it can be
// computed from the existing (smaller) tree before the new slot is
// considered part of it, so appending never needs to revisit or
// invalidate any already-finalized entry.
package fenwick

// Tree is a growable Fenwick tree over non-negative int64 frequencies.
type Tree struct {
	tree []int64 // 1-indexed BIT; tree[0] is unused
	n    int     // logical length (external indices are 0..n-1)
}

// New returns an empty Tree.
func New() *Tree { return &Tree{tree: []int64{0}} }

// Len reports the number of indices currently tracked.
func (t *Tree) Len() int { return t.n }

// Reset empties the tree, retaining its backing array's capacity.
func (t *Tree) Reset() {
	if len(t.tree) == 0 {
		t.tree = []int64{0}
	} else {
		t.tree = t.tree[:1]
	}
	t.n = 0
}

func lowbit(i int) int { return i & (-i) }

// Append adds a new index at the end with the given initial frequency,
// growing capacity geometrically (x1.5) as needed.
func (t *Tree) Append(freq int64) {
	m := t.n + 1
	t.growTo(m + 1)
	lo := m - lowbit(m)
	t.tree[m] = freq + (t.prefixSumUpTo(m-1) - t.prefixSumUpTo(lo))
	t.n = m
}

func (t *Tree) growTo(need int) {
	if cap(t.tree) >= need {
		t.tree = t.tree[:need]
		return
	}
	newCap := cap(t.tree) + cap(t.tree)/2
	if newCap < need {
		newCap = need
	}
	nt := make([]int64, need, newCap)
	copy(nt, t.tree)
	t.tree = nt
}

// prefixSumUpTo sums the first i elements using 1-indexed internal
// positions 1..i (equivalently, external indices 0..i-1).
func (t *Tree) prefixSumUpTo(i int) int64 {
	var sum int64
	for i > 0 {
		sum += t.tree[i]
		i -= lowbit(i)
	}
	return sum
}

// add applies delta to the frequency at internal position i (1..n),
// propagating to every ancestor within the current length.
func (t *Tree) add(i int, delta int64) {
	for ; i <= t.n; i += lowbit(i) {
		t.tree[i] += delta
	}
}

// Add applies delta to the frequency at external index i (which must
// already exist).
func (t *Tree) Add(i int, delta int64) {
	t.add(i+1, delta)
}

// PrefixSum returns the sum of frequencies at external indices [0, i).
func (t *Tree) PrefixSum(i int) int64 {
	return t.prefixSumUpTo(i)
}

// Get returns the frequency at external index i.
func (t *Tree) Get(i int) int64 {
	return t.PrefixSum(i+1) - t.PrefixSum(i)
}

// Total returns the sum of all frequencies, i.e. PrefixSum(Len()).
func (t *Tree) Total() int64 {
	return t.prefixSumUpTo(t.n)
}

// Find returns the smallest external index i such that
// PrefixSum(i+1) > target, for any 0 <= target < Total(). This is the
// inverse of PrefixSum, used by the range coder's decoder to map a decoded
// cumulative value back to a symbol index.
func (t *Tree) Find(target int64) int {
	pos := 0
	for bitmask := highestPow2LE(t.n); bitmask != 0; bitmask >>= 1 {
		next := pos + bitmask
		if next <= t.n && t.tree[next] <= target {
			pos = next
			target -= t.tree[next]
		}
	}
	return pos
}

func highestPow2LE(n int) int {
	p := 1
	for p*2 <= n {
		p *= 2
	}
	if p > n {
		return p / 2
	}
	return p
}
