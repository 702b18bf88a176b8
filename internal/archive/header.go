// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"github.com/go-compress/ppmzip/internal/bitio"
	"github.com/go-compress/ppmzip/internal/capitalize"
	"github.com/go-compress/ppmzip/internal/errors"
	"github.com/go-compress/ppmzip/internal/model"
	"github.com/go-compress/ppmzip/internal/ternary"
)

func writeByte(w *bitio.Writer, b byte) { w.WriteBits(uint64(b), 8) }

func readByte(r *bitio.Reader) byte { return byte(r.ReadBits(8)) }

// writeU64LE writes v as 8 little-endian bytes: the fixed header's
// multi-byte fields are little-endian, independent of the big-endian bit
// packing the arithmetic payload uses.
func writeU64LE(w *bitio.Writer, v uint64) {
	for i := 0; i < 8; i++ {
		writeByte(w, byte(v>>(8*uint(i))))
	}
}

func readU64LE(r *bitio.Reader) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(readByte(r)) << (8 * uint(i))
	}
	return v
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func writeFixedHeader(w *bitio.Writer, params CodingParams, originalLength uint64) {
	writeU64LE(w, originalLength)
	writeByte(w, byte(params.ContextLength))
	writeByte(w, boolByte(params.MaskSeen))
	writeByte(w, boolByte(params.ExcludeOnUpdate))
	writeByte(w, params.UpCharCoding.Byte())
	writeByte(w, boolByte(params.Decapitalize))
}

func readFixedHeader(r *bitio.Reader) (originalLength uint64, params CodingParams) {
	originalLength = readU64LE(r)
	contextLength := readByte(r)
	errors.Assert(contextLength >= 1, errors.E(errors.MalformedHeader, "context_length must be >= 1, got 0"))
	maskSeen := readByte(r)
	excludeOnUpdate := readByte(r)
	schemeByte := readByte(r)
	scheme, err := model.ParseSchemeByte(schemeByte)
	errors.Assert(err == nil, err)
	decapitalize := readByte(r)
	errors.Assert(maskSeen == 0 || maskSeen == 1, errors.E(errors.MalformedHeader, "mask_seen must be 0 or 1, got %d", maskSeen))
	errors.Assert(excludeOnUpdate == 0 || excludeOnUpdate == 1, errors.E(errors.MalformedHeader, "exclude_on_update must be 0 or 1, got %d", excludeOnUpdate))
	errors.Assert(decapitalize == 0 || decapitalize == 1, errors.E(errors.MalformedHeader, "decapitalize must be 0 or 1, got %d", decapitalize))

	params = CodingParams{
		ContextLength:   int(contextLength),
		MaskSeen:        maskSeen == 1,
		ExcludeOnUpdate: excludeOnUpdate == 1,
		UpCharCoding:    scheme,
		Decapitalize:    decapitalize == 1,
	}
	return originalLength, params
}

// writeCapHeader serializes the capitalization header: proper_names_count,
// exceptions_count, each proper name as a NUL-terminated word plus a
// ternary-coded from_pos delta, then the ternary-coded exceptions deltas.
// Proper names must already be sorted by FromPos ascending (Decapitalizer
// guarantees this by construction).
func writeCapHeader(w *bitio.Writer, data capitalize.Data) {
	writeU64LE(w, uint64(len(data.ProperNames)))
	writeU64LE(w, uint64(len(data.RuleExceptions)))

	var prevPos uint64
	for _, pn := range data.ProperNames {
		for i := 0; i < len(pn.Word); i++ {
			b := pn.Word[i]
			errors.Assert(b != 0 && b < 0x80, errors.E(errors.MalformedHeader, "proper name %q contains a NUL or non-ASCII byte", pn.Word))
			writeByte(w, b)
		}
		writeByte(w, 0)
		ternary.Encode(w, pn.FromPos-prevPos)
		prevPos = pn.FromPos
	}

	var prevExc uint64
	for _, pos := range data.RuleExceptions {
		ternary.Encode(w, pos-prevExc)
		prevExc = pos
	}
}

func readCapHeader(r *bitio.Reader) capitalize.Data {
	properCount := readU64LE(r)
	exceptionsCount := readU64LE(r)

	var data capitalize.Data
	var prevPos uint64
	for i := uint64(0); i < properCount; i++ {
		var word []byte
		for {
			b := readByte(r)
			if b == 0 {
				break
			}
			errors.Assert(b < 0x80, errors.E(errors.MalformedHeader, "proper name word contains a non-ASCII byte"))
			word = append(word, b)
		}
		delta := ternary.Decode(r)
		prevPos += delta
		data.ProperNames = append(data.ProperNames, capitalize.ProperName{Word: string(word), FromPos: prevPos})
	}

	var prevExc uint64
	for i := uint64(0); i < exceptionsCount; i++ {
		delta := ternary.Decode(r)
		prevExc += delta
		data.RuleExceptions = append(data.RuleExceptions, prevExc)
	}
	return data
}
