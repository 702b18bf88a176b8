// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package archive implements the fixed/variable header framing and
// Reader/Writer glue: it sequences
// decapitalizer -> context tree -> range coder on encode, and range
// coder -> context tree -> capitalizer on decode, around the archive byte
// layout (a 13-byte fixed header, an optional capitalization header, and a
// big-endian bit-packed arithmetic payload).
//
// Reader and Writer are grounded on bzip2.Reader/bzip2.Writer's shapes: a
// persistent err field set once under a deferred errors.Recover, and
// InputOffset/OutputOffset counters. Writer buffers its entire input
// before encoding anything, the same way bzip2.Writer accumulates a whole
// block before its Burrows-Wheeler transform can run, since this format's
// single fixed header (carrying original_length) must precede the whole
// payload. Reader decodes on demand, up to len(buf) bytes per Read call,
// when decapitalize is off, exactly like flate.Reader's step-function pull loop; with
// decapitalize on, it decodes the whole lowercased stream once at
// construction time, since Capitalizer needs a complete buffer (see
// DESIGN.md).
package archive

import "github.com/go-compress/ppmzip/internal/model"

// fixedHeaderSize is the byte length of the fixed header:
// u64 original_length, u8 context_length, u8 mask_seen, u8 exclude_on_update,
// u8 up_char_coding, u8 decapitalize.
const fixedHeaderSize = 13

// CodingParams is the immutable set of coding parameters, as read from or
// written to an archive's fixed header.
type CodingParams struct {
	ContextLength   int
	MaskSeen        bool
	ExcludeOnUpdate bool
	UpCharCoding    model.Scheme
	Decapitalize    bool
}

func modelParams(p CodingParams) model.Params {
	return model.Params{
		ContextLength:   p.ContextLength,
		MaskSeen:        p.MaskSeen,
		ExcludeOnUpdate: p.ExcludeOnUpdate,
		UpCharCoding:    p.UpCharCoding,
		Decapitalize:    p.Decapitalize,
	}
}
