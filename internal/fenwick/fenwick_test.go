// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fenwick

import (
	"testing"

	"github.com/go-compress/ppmzip/internal/testutil"
)

// reference is a brute-force model of the same operations, used to check
// Tree against.
type reference struct {
	freqs []int64
}

func (r *reference) Append(freq int64) { r.freqs = append(r.freqs, freq) }
func (r *reference) Add(i int, delta int64) { r.freqs[i] += delta }
func (r *reference) PrefixSum(i int) int64 {
	var sum int64
	for _, f := range r.freqs[:i] {
		sum += f
	}
	return sum
}
func (r *reference) Find(target int64) int {
	var sum int64
	for i, f := range r.freqs {
		if sum+f > target {
			return i
		}
		sum += f
	}
	return len(r.freqs)
}

func TestAgainstReference(t *testing.T) {
	rnd := testutil.NewRand(42)
	tr := New()
	ref := &reference{}

	for step := 0; step < 2000; step++ {
		switch {
		case tr.Len() == 0 || rnd.Intn(3) == 0:
			freq := int64(rnd.Intn(50) + 1)
			tr.Append(freq)
			ref.Append(freq)
		case rnd.Intn(2) == 0:
			i := rnd.Intn(tr.Len())
			delta := int64(rnd.Intn(20))
			tr.Add(i, delta)
			ref.Add(i, delta)
		default:
			total := ref.PrefixSum(len(ref.freqs))
			if total == 0 {
				continue
			}
			target := int64(rnd.Intn(int(total)))
			got := tr.Find(target)
			want := ref.Find(target)
			if got != want {
				t.Fatalf("step %d: Find(%d) = %d, want %d", step, target, got, want)
			}
		}

		if got, want := tr.Total(), ref.PrefixSum(len(ref.freqs)); got != want {
			t.Fatalf("step %d: Total() = %d, want %d", step, got, want)
		}
		for i := 0; i < tr.Len(); i++ {
			if got, want := tr.PrefixSum(i), ref.PrefixSum(i); got != want {
				t.Fatalf("step %d: PrefixSum(%d) = %d, want %d", step, i, got, want)
			}
			if got, want := tr.Get(i), ref.freqs[i]; got != want {
				t.Fatalf("step %d: Get(%d) = %d, want %d", step, i, got, want)
			}
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tr := New()
	if tr.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tr.Len())
	}
	if tr.Total() != 0 {
		t.Fatalf("Total() = %d, want 0", tr.Total())
	}
	if tr.PrefixSum(0) != 0 {
		t.Fatalf("PrefixSum(0) = %d, want 0", tr.PrefixSum(0))
	}
}

func TestReset(t *testing.T) {
	tr := New()
	tr.Append(3)
	tr.Append(5)
	tr.Reset()
	if tr.Len() != 0 || tr.Total() != 0 {
		t.Fatalf("Reset() left Len()=%d Total()=%d, want 0, 0", tr.Len(), tr.Total())
	}
	tr.Append(7)
	if tr.Get(0) != 7 {
		t.Fatalf("Get(0) after Reset+Append = %d, want 7", tr.Get(0))
	}
}
