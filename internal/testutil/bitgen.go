// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testutil

import (
	"bytes"
	"encoding/hex"
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	reBin = regexp.MustCompile("^[01]{1,64}$")
	reDec = regexp.MustCompile("^D[0-9]+:[0-9]+$")
	reHex = regexp.MustCompile("^H[0-9]+:[0-9a-fA-F]{1,16}$")
	reRaw = regexp.MustCompile("^X:[0-9a-fA-F]+$")
	reQnt = regexp.MustCompile("[*][0-9]+$")
)

// DecodeBitGen decodes a BitGen formatted string into the exact bit sequence
// it describes, packed most-significant-bit first (this module's bit stream
// is always MSB-first, so unlike some BitGen variants that also support
// LSB-first formats, there is no packing-mode token).
//
// The format consists of a series of tokens separated by white space. The
// '#' character starts a line comment.
//
// A token of the pattern "[01]{1,64}" is a literal bit-string, left bit
// first (e.g. "110" writes a 1, then a 1, then a 0).
//
// A token of the pattern "D[0-9]+:[0-9]+" or "H[0-9]+:[0-9a-fA-F]{1,16}" is a
// decimal or hexadecimal value; the first number is the bit-width, the
// second the value, written most-significant-bit first.
//
// A token of the pattern "X:[0-9a-fA-F]+" is literal bytes in hex; it may
// only appear while the stream is byte-aligned.
//
// A trailing "*N" decorator on any token repeats it N times.
//
// If the resulting stream does not end byte-aligned, it is padded with 0
// bits up to the next byte boundary.
func DecodeBitGen(str string) ([]byte, error) {
	var toks []string
	for _, s := range strings.Split(str, "\n") {
		if i := strings.IndexByte(s, '#'); i >= 0 {
			s = s[:i]
		}
		toks = append(toks, strings.Fields(s)...)
	}

	var bw bitBuffer
	for _, t := range toks {
		rep := 1
		if reQnt.MatchString(t) {
			i := strings.LastIndexByte(t, '*')
			tt, tn := t[:i], t[i+1:]
			n, err := strconv.Atoi(tn)
			if err != nil {
				return nil, errors.New("testutil: invalid quantified token: " + t)
			}
			t, rep = tt, n
		}

		switch {
		case reBin.MatchString(t):
			for i := 0; i < rep; i++ {
				for _, b := range t {
					bw.WriteBit(uint(b - '0'))
				}
			}
		case reDec.MatchString(t) || reHex.MatchString(t):
			i := strings.IndexByte(t, ':')
			tb, tn, tv := t[0], t[1:i], t[i+1:]
			base := 10
			if tb == 'H' {
				base = 16
			}
			n, err1 := strconv.Atoi(tn)
			v, err2 := strconv.ParseUint(tv, base, 64)
			if err1 != nil || err2 != nil || n > 64 {
				return nil, errors.New("testutil: invalid numeric token: " + t)
			}
			if n < 64 && v>>uint(n) != 0 {
				return nil, errors.New("testutil: integer overflow on token: " + t)
			}
			for i := 0; i < rep; i++ {
				for b := n - 1; b >= 0; b-- {
					bw.WriteBit(uint((v >> uint(b)) & 1))
				}
			}
		case reRaw.MatchString(t):
			b, err := hex.DecodeString(t[2:])
			if err != nil {
				return nil, errors.New("testutil: invalid raw bytes token: " + t)
			}
			b = bytes.Repeat(b, rep)
			if err := bw.WriteAligned(b); err != nil {
				return nil, err
			}
		default:
			return nil, errors.New("testutil: invalid token: " + t)
		}
	}
	return bw.Bytes(), nil
}

// bitBuffer packs bits MSB-first into bytes. It is a minimal stand-in for
// internal/bitio.Writer, kept independent so that testutil has no import
// cycle onto the package it is used to test.
type bitBuffer struct {
	b []byte
	n uint // number of bits used in the trailing byte, 0..7
}

func (b *bitBuffer) WriteBit(bit uint) {
	if b.n == 0 {
		b.b = append(b.b, 0)
	}
	if bit != 0 {
		b.b[len(b.b)-1] |= 1 << (7 - b.n)
	}
	b.n = (b.n + 1) % 8
}

func (b *bitBuffer) WriteAligned(buf []byte) error {
	if b.n != 0 {
		return errors.New("testutil: unaligned write")
	}
	b.b = append(b.b, buf...)
	return nil
}

func (b *bitBuffer) Bytes() []byte {
	return b.b
}
