// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/go-compress/ppmzip/internal/errors"

// Scheme selects one of the four novel-symbol escape-weight policies. The
// zero value is invalid; schemes are numbered from 1 to match the archive
// header's up_char_coding byte.
type Scheme uint8

const (
	_ Scheme = iota

	// SchemeA is classic PPM-A: the escape weight is held at exactly 1
	// whenever a new symbol is allocated, never incremented further.
	SchemeA

	// SchemeB holds a novel symbol in a node's seen_once set on its first
	// occurrence (bumping only the escape weight) and only allocates it a
	// real index on its second occurrence.
	SchemeB

	// SchemeC allocates a new symbol immediately and increments the
	// escape weight by one each time a new symbol is allocated.
	SchemeC

	// SchemeD is SchemeC with existing-symbol increments doubled, biasing
	// the model toward recently-confirmed locality.
	SchemeD
)

func (s Scheme) String() string {
	switch s {
	case SchemeA:
		return "A"
	case SchemeB:
		return "B"
	case SchemeC:
		return "C"
	case SchemeD:
		return "D"
	default:
		return "invalid"
	}
}

// Byte returns the header encoding of s (1..4), matching the archive
// header's up_char_coding field.
func (s Scheme) Byte() byte { return byte(s) }

// ParseSchemeByte decodes a header up_char_coding byte, failing with
// MalformedHeader on any value outside 1..4.
func ParseSchemeByte(b byte) (Scheme, error) {
	s := Scheme(b)
	switch s {
	case SchemeA, SchemeB, SchemeC, SchemeD:
		return s, nil
	default:
		return 0, errors.E(errors.MalformedHeader, "invalid up_char_coding byte %d", b)
	}
}
