// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"testing"

	"github.com/go-compress/ppmzip/internal/rangecoder"
	"github.com/go-compress/ppmzip/internal/testutil"
)

func roundTrip(t *testing.T, params Params, input []byte) {
	t.Helper()

	encTree := New(params)
	enc := rangecoder.NewEncoder()
	for _, c := range input {
		encTree.Encode(enc, c)
	}
	data := enc.Finish()

	decTree := New(params)
	dec := rangecoder.NewDecoder(data)
	got := make([]byte, len(input))
	for i := range got {
		got[i] = decTree.Decode(dec)
	}

	for i := range input {
		if got[i] != input[i] {
			t.Fatalf("byte %d: decoded %q, want %q (full got=%q want=%q)", i, got[i], input[i], got, input)
		}
	}
}

func allParamCombos() []Params {
	var out []Params
	for _, k := range []int{1, 3, 5} {
		for _, mask := range []bool{false, true} {
			for _, exclude := range []bool{false, true} {
				for _, scheme := range []Scheme{SchemeA, SchemeB, SchemeC, SchemeD} {
					out = append(out, Params{
						ContextLength:   k,
						MaskSeen:        mask,
						ExcludeOnUpdate: exclude,
						UpCharCoding:    scheme,
					})
				}
			}
		}
	}
	return out
}

func TestRoundTripAllParamCombosOnFixedText(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog. the dog barks back!")
	for _, p := range allParamCombos() {
		p := p
		t.Run(p.UpCharCoding.String(), func(t *testing.T) {
			roundTrip(t, p, input)
		})
	}
}

func TestRoundTripRandomBytes(t *testing.T) {
	r := testutil.NewRand(5)
	for _, p := range allParamCombos() {
		n := r.Intn(200) + 1
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(r.Intn(256))
		}
		roundTrip(t, p, buf)
	}
}

func TestRoundTripEmptyAndSingleByte(t *testing.T) {
	p := Params{ContextLength: 5, UpCharCoding: SchemeA}
	roundTrip(t, p, nil)
	roundTrip(t, p, []byte("a"))
}

func TestRoundTripDecapitalizedAlphabetOnly(t *testing.T) {
	p := Params{ContextLength: 4, UpCharCoding: SchemeC, Decapitalize: true}
	roundTrip(t, p, []byte("hello world, this is a lowercase-only stream."))
}

// TestOrder2ContextConverges: after
// coding "abababab" with K=3 scheme A, the order-2 context "ba" should
// have accumulated weight >= 2 on 'b' relative to its total.
func TestOrder2ContextConverges(t *testing.T) {
	tr := New(Params{ContextLength: 3, UpCharCoding: SchemeA})
	enc := rangecoder.NewEncoder()
	input := []byte("abababab")
	for _, c := range input {
		tr.Encode(enc, c)
	}

	// Descend the context "ba" (most recent byte 'a', then 'b') from
	// root: child 'a' first (most-recent-first descent).
	n, ok := tr.root.child('a')
	if !ok {
		t.Fatal("no child node for single-byte context \"a\"")
	}
	n2, ok := n.child('b')
	if !ok {
		t.Fatal("no child node for context \"ba\"")
	}
	idx, ok := n2.symToIdx['b']
	if !ok {
		t.Fatal("context \"ba\" has no allocated index for 'b'")
	}
	weight := n2.dist.Get(idx)
	total := n2.dist.Total()
	if weight*3 < total*2 {
		t.Fatalf("context \"ba\": weight(b)=%d total=%d, want weight/total >= 2/3", weight, total)
	}
}

func TestSchemeATableExactly(t *testing.T) {
	n := newNode(nil)
	n.add('x', SchemeA)
	if got := n.dist.Get(escapeIndex); got != 1 {
		t.Fatalf("after first add, escape weight = %d, want 1", got)
	}
	idx := n.symToIdx['x']
	if got := n.dist.Get(idx); got != 1 {
		t.Fatalf("after first add, f[x] = %d, want 1", got)
	}
	n.add('x', SchemeA)
	if got := n.dist.Get(idx); got != 2 {
		t.Fatalf("after second add, f[x] = %d, want 2", got)
	}
	if got := n.dist.Get(escapeIndex); got != 1 {
		t.Fatalf("after second add, escape weight = %d, want 1 (scheme A never increments it further)", got)
	}
	n.add('y', SchemeA)
	if got := n.dist.Get(escapeIndex); got != 1 {
		t.Fatalf("after new symbol y, escape weight = %d, want 1 (scheme A sets, not adds)", got)
	}
}

func TestSchemeBDeferredAllocation(t *testing.T) {
	n := newNode(nil)
	n.add('z', SchemeB)
	if _, ok := n.symToIdx['z']; ok {
		t.Fatal("scheme B allocated an index on first occurrence")
	}
	if !n.seenOnce['z'] {
		t.Fatal("scheme B did not record 'z' in seen_once on first occurrence")
	}
	if got := n.dist.Get(escapeIndex); got != 1 {
		t.Fatalf("escape weight after first occurrence = %d, want 1", got)
	}
	n.add('z', SchemeB)
	if n.seenOnce['z'] {
		t.Fatal("scheme B left 'z' in seen_once after its second occurrence")
	}
	idx, ok := n.symToIdx['z']
	if !ok {
		t.Fatal("scheme B did not allocate an index on second occurrence")
	}
	if got := n.dist.Get(idx); got != 1 {
		t.Fatalf("f[z] after allocation = %d, want 1", got)
	}
}

func TestSchemeDDoublesExistingWeight(t *testing.T) {
	n := newNode(nil)
	n.add('w', SchemeD)
	idx := n.symToIdx['w']
	n.add('w', SchemeD)
	if got := n.dist.Get(idx); got != 3 {
		t.Fatalf("f[w] after 2nd occurrence under scheme D = %d, want 3 (1 + 2)", got)
	}
}
