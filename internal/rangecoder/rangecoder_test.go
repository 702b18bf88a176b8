// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rangecoder

import (
	"testing"

	"github.com/go-compress/ppmzip/internal/fenwick"
	"github.com/go-compress/ppmzip/internal/testutil"
)

// buildTree returns a small Fenwick distribution with random positive
// weights, used to drive both the encoder and decoder identically.
func buildTree(r *testutil.Rand, n int) *fenwick.Tree {
	f := fenwick.New()
	for i := 0; i < n; i++ {
		f.Append(int64(r.Intn(30) + 1))
	}
	return f
}

func TestRoundTripFixedDistribution(t *testing.T) {
	r := testutil.NewRand(7)
	f := buildTree(r, 8)

	var symbols []int
	enc := NewEncoder()
	for i := 0; i < 500; i++ {
		idx := r.Intn(f.Len())
		symbols = append(symbols, idx)
		enc.Encode(f, idx)
	}
	data := enc.Finish()

	dec := NewDecoder(data)
	for i, want := range symbols {
		got := dec.Find(f)
		if got != want {
			t.Fatalf("symbol %d: Find = %d, want %d", i, got, want)
		}
		dec.Consume(f, got)
	}
}

func TestRoundTripEvolvingDistribution(t *testing.T) {
	r := testutil.NewRand(99)
	encTree := fenwick.New()
	for i := 0; i < 16; i++ {
		encTree.Append(1)
	}

	var symbols []int
	enc := NewEncoder()
	for i := 0; i < 800; i++ {
		idx := r.Intn(encTree.Len())
		symbols = append(symbols, idx)
		enc.Encode(encTree, idx)
		encTree.Add(idx, 3)
	}
	data := enc.Finish()

	decTree := fenwick.New()
	for i := 0; i < 16; i++ {
		decTree.Append(1)
	}
	dec := NewDecoder(data)
	for i, want := range symbols {
		got := dec.Find(decTree)
		if got != want {
			t.Fatalf("symbol %d: Find = %d, want %d", i, got, want)
		}
		dec.Consume(decTree, got)
		decTree.Add(got, 3)
	}
}

func TestRoundTripSingleSymbolAlphabet(t *testing.T) {
	f := fenwick.New()
	f.Append(1)

	enc := NewEncoder()
	for i := 0; i < 5; i++ {
		enc.Encode(f, 0)
	}
	data := enc.Finish()

	dec := NewDecoder(data)
	for i := 0; i < 5; i++ {
		if got := dec.Find(f); got != 0 {
			t.Fatalf("symbol %d: Find = %d, want 0", i, got)
		}
		dec.Consume(f, 0)
	}
}

func TestEncodeRejectsZeroWeight(t *testing.T) {
	f := fenwick.New()
	f.Append(1)
	f.Append(0)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic encoding a zero-weight symbol")
		}
	}()
	NewEncoder().Encode(f, 1)
}
