// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rangecoder implements a 64-bit carry-hiding range coder: a
// closed subinterval [low, high] of [0, 2^64-1] is
// narrowed proportionally to a Fenwick distribution's cumulative weight at
// each step, emitting (or consuming) bits as the interval's top bits settle.
//
// The two-loop emission structure (a common-prefix loop that flushes
// settled top bits, and an underflow-hiding loop that rescales a
// range straddling the midpoint while counting hidden bits to flush once
// the ambiguity resolves) is the standard carry-less range coder
// construction; the hidden-bit counter plays the role that
// fumin-ctw's ac.go calls a delay register, tracking bits whose final value
// depends on a comparison not yet resolved. This package works in bits
// through internal/bitio rather than ctw's channels, and drives a
// fenwick.Tree distribution rather than a binary model.
package rangecoder

import (
	"math/bits"

	"github.com/go-compress/ppmzip/internal/bitio"
	"github.com/go-compress/ppmzip/internal/errors"
	"github.com/go-compress/ppmzip/internal/fenwick"
)

const nbits = 64

const (
	fullMask = ^uint64(0)           // 2^64 - 1
	topBit   = uint64(1) << (nbits - 1)
	quarter  = uint64(1) << (nbits - 2)
)

// projectToRange computes ceil(p / oldMax * newMax), clamped to newMax-1.
// oldMax must be positive; p must be in [0, oldMax]. newMax is a range
// width (high-low+1) that can reach 2^64, which wraps to 0 in a uint64 and
// is treated as 2^64 here, so the intermediate product p*newMax is computed
// to full 128-bit precision via math/bits rather than plain uint64
// multiplication, which would silently wrap.
func projectToRange(p, oldMax, newMax uint64) uint64 {
	var hi, lo uint64
	if newMax == 0 {
		hi, lo = p, 0 // p * 2^64
	} else {
		hi, lo = bits.Mul64(p, newMax)
	}
	if hi >= oldMax {
		return newMax - 1 // quotient is at least newMax: clamp
	}
	q, r := bits.Div64(hi, lo, oldMax)
	if r != 0 {
		q++
	}
	if q > newMax-1 {
		q = newMax - 1
	}
	return q
}

// Encoder narrows [low, high] against successive Fenwick distributions and
// writes settled bits to an internal bitio.Writer.
type Encoder struct {
	low, high  uint64
	hiddenBits int64
	w          bitio.Writer
}

// NewEncoder returns an Encoder ready to encode symbols.
func NewEncoder() *Encoder {
	e := &Encoder{}
	e.Reset()
	return e
}

// Reset returns the Encoder to its initial state and discards buffered
// output.
func (e *Encoder) Reset() {
	e.low = 0
	e.high = fullMask
	e.hiddenBits = 0
	e.w.Reset()
}

// Encode narrows the range for symbol index idx against distribution f
// (whose Total() must be positive), and flushes any bits that become
// determined as a result.
func (e *Encoder) Encode(f *fenwick.Tree, idx int) {
	total := f.Total()
	errors.Assert(total > 0, errors.E(errors.InvalidModel, "encode: zero-weight distribution"))
	weight := f.Get(idx)
	errors.Assert(weight > 0, errors.E(errors.InvalidModel, "encode: zero-weight symbol index %d", idx))

	lo := f.PrefixSum(idx)
	hi := lo + weight

	length := e.high - e.low + 1
	newLow := e.low + projectToRange(uint64(lo), uint64(total), length)
	var newHigh uint64
	if hi == total {
		newHigh = e.high
	} else {
		newHigh = e.low + projectToRange(uint64(hi), uint64(total), length) - 1
	}
	errors.Assert(newLow <= newHigh, errors.E(errors.InvalidModel, "encode: degenerate range"))
	e.low, e.high = newLow, newHigh

	e.normalize()
}

func (e *Encoder) normalize() {
	first := true
	for (e.low^e.high)&topBit == 0 {
		bit := e.low >> (nbits - 1)
		e.w.WriteBit(uint(bit))
		if first {
			comp := uint(bit ^ 1)
			for i := int64(0); i < e.hiddenBits; i++ {
				e.w.WriteBit(comp)
			}
			e.hiddenBits = 0
			first = false
		}
		e.low <<= 1
		e.high = (e.high << 1) | 1
	}
	for e.low >= quarter && e.high < topBit+quarter {
		e.low = 2*e.low - topBit
		e.high = 2*e.high - topBit + 1
		e.hiddenBits++
	}
}

// Finish emits the terminating bit and returns the complete encoded bit
// stream as a byte slice (MSB-first, zero-padded in its final byte).
//
// After normalize, the common-prefix loop's exit condition guarantees
// low < 2^(N-1) <= high: the top bits of low and high differ, with low's
// clear and high's set. So 2^(N-1) always lies in [low, high], and a
// single settled bit of 1 (2^(N-1)'s own top bit) identifies a valid
// codeword in the final range, followed by flushing any still-pending
// hidden bits as its complement — the same rule normalize applies to any
// newly settled bit.
func (e *Encoder) Finish() []byte {
	e.w.WriteBit(1)
	for i := int64(0); i < e.hiddenBits; i++ {
		e.w.WriteBit(0)
	}
	return e.w.Bytes()
}

// BitsWritten reports the number of bits emitted so far, not including
// whatever Finish will still add.
func (e *Encoder) BitsWritten() int64 { return e.w.BitsWritten() }

// Decoder mirrors Encoder's range narrowing, tracking a decoder window
// read from a bitio.Reader.
type Decoder struct {
	low, high uint64
	window    uint64
	r         bitio.Reader
}

// NewDecoder returns a Decoder that reads from data.
func NewDecoder(data []byte) *Decoder {
	d := &Decoder{}
	d.r.Init(data)
	d.low = 0
	d.high = fullMask
	d.window = d.r.ReadBits(nbits)
	return d
}

// Find returns the index k in f such that the decoder window, projected
// through the current range, resolves to k: prefix_sum(k) <= target <
// prefix_sum(k+1) for the projected cumulative target.
func (d *Decoder) Find(f *fenwick.Tree) int {
	total := f.Total()
	errors.Assert(total > 0, errors.E(errors.InvalidModel, "decode: zero-weight distribution"))
	length := d.high - d.low + 1

	offset := d.window - d.low
	// Invert the projection: find the largest cumulative value cum such
	// that projectToRange(cum, total, length) <= offset, then map that
	// back to a symbol index via the Fenwick inverse lookup. Since
	// projectToRange is non-decreasing in p, binary search over the
	// cumulative domain [0, total].
	lo, hi := uint64(0), uint64(total)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if projectToRange(mid, uint64(total), length) <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	idx := f.Find(int64(lo))
	if idx >= f.Len() {
		idx = f.Len() - 1
	}
	return idx
}

// Consume narrows the range for the symbol index idx previously returned
// by Find against the same distribution f, and advances the window to
// match.
func (d *Decoder) Consume(f *fenwick.Tree, idx int) {
	total := f.Total()
	weight := f.Get(idx)
	errors.Assert(weight > 0, errors.E(errors.InvalidModel, "decode: zero-weight symbol index %d", idx))

	lo := f.PrefixSum(idx)
	hi := lo + weight

	length := d.high - d.low + 1
	newLow := d.low + projectToRange(uint64(lo), uint64(total), length)
	var newHigh uint64
	if hi == total {
		newHigh = d.high
	} else {
		newHigh = d.low + projectToRange(uint64(hi), uint64(total), length) - 1
	}
	errors.Assert(newLow <= newHigh, errors.E(errors.InvalidModel, "decode: degenerate range"))
	d.low, d.high = newLow, newHigh

	for (d.low^d.high)&topBit == 0 {
		d.window = (d.window << 1) | d.r.ReadBits(1)
		d.low <<= 1
		d.high = (d.high << 1) | 1
	}
	for d.low >= quarter && d.high < topBit+quarter {
		d.low = 2*d.low - topBit
		d.high = 2*d.high - topBit + 1
		d.window = 2*d.window - topBit + d.r.ReadBits(1)
	}
}

// Overread reports how many synthetic zero bits the underlying bit source
// has produced because the real data was exhausted; a non-zero value
// after decoding the documented number of symbols is not itself an error
// (the final partial byte is expected), but a large value mid-stream
// indicates TruncatedInput, which callers should check via
// errors.E(errors.TruncatedInput, ...) against the documented symbol count
// rather than this counter alone.
func (d *Decoder) Overread() int64 { return d.r.Overread() }
