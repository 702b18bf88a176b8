// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ternary implements a self-delimiting variable-length integer
// codec, used to serialize proper-name from_pos deltas and rule-exception
// position deltas in the capitalization header. Each
// ternary digit (0, 1, or 2) of the most-significant-digit-first base-3
// representation is packed as 2 bits (00, 01, 10); the sequence terminates
// with the otherwise-unused 2-bit pattern 11. Zero encodes as the lone
// terminator.
package ternary

import "github.com/go-compress/ppmzip/internal/bitio"

// Encode appends the ternary code for n to w.
func Encode(w *bitio.Writer, n uint64) {
	if n == 0 {
		w.WriteBits(0b11, 2)
		return
	}
	var digits []uint64
	for n > 0 {
		digits = append(digits, n%3)
		n /= 3
	}
	for i := len(digits) - 1; i >= 0; i-- {
		w.WriteBits(digits[i], 2)
	}
	w.WriteBits(0b11, 2)
}

// Decode reads one ternary-coded value from r.
func Decode(r *bitio.Reader) uint64 {
	var n uint64
	for {
		d := r.ReadBits(2)
		if d == 0b11 {
			return n
		}
		n = n*3 + d
	}
}
