// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package archive

import (
	"io"

	"github.com/go-compress/ppmzip/internal/bitio"
	"github.com/go-compress/ppmzip/internal/capitalize"
	"github.com/go-compress/ppmzip/internal/errors"
	"github.com/go-compress/ppmzip/internal/model"
	"github.com/go-compress/ppmzip/internal/rangecoder"
)

// Reader decodes one archive produced by Writer. With Decapitalize off, each
// Read call decodes up to len(buf) bytes directly against the range coder
// and context tree, matching flate.Reader's step-function pull loop. With
// Decapitalize on, it decodes the entire lowercased stream and runs it
// through a Capitalizer once, at construction time, since recapitalization
// needs the complete buffer (see DESIGN.md); Read then only drains that
// buffer.
type Reader struct {
	InputOffset  int64
	OutputOffset int64

	params    CodingParams
	remaining int64
	tree      *model.Tree
	dec       *rangecoder.Decoder

	out    []byte
	outPos int

	err error
}

// NewReader reads and validates the archive header from r, then returns a
// Reader ready to decode the payload.
func NewReader(r io.Reader) (z *Reader, err error) {
	defer errors.Recover(&err)

	raw, ioErr := io.ReadAll(r)
	errors.Assert(ioErr == nil, errors.E(errors.Io, "reading archive: %v", ioErr))
	errors.Assert(len(raw) >= fixedHeaderSize, errors.E(errors.TruncatedInput, "archive shorter than the %d-byte fixed header", fixedHeaderSize))

	z = &Reader{}
	z.init(raw)
	return z, nil
}

func (z *Reader) init(raw []byte) {
	var hr bitio.Reader
	hr.Init(raw)

	originalLength, params := readFixedHeader(&hr)
	z.params = params

	var capData capitalize.Data
	if params.Decapitalize {
		capData = readCapHeader(&hr)
	}
	errors.Assert(hr.Overread() == 0, errors.E(errors.TruncatedInput, "archive truncated within its header"))

	hr.SkipToByteBoundary()
	headerBytes := int(hr.BitsRead() / 8)
	z.InputOffset = int64(headerBytes)
	payload := raw[headerBytes:]

	z.tree = model.New(modelParams(params))
	z.dec = rangecoder.NewDecoder(payload)
	z.remaining = int64(originalLength)

	if params.Decapitalize {
		lower := make([]byte, z.remaining)
		for i := range lower {
			lower[i] = z.tree.Decode(z.dec)
		}
		cz := capitalize.NewCapitalizer()
		z.out = cz.Run(lower, capData)
		z.remaining = 0
	}
}

// Read decodes into buf. With Decapitalize off, each call decodes as many
// symbols as fit in buf directly from the range coder; with Decapitalize
// on, it drains the buffer computed by init.
func (z *Reader) Read(buf []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if len(buf) == 0 {
		return 0, nil
	}

	if z.params.Decapitalize {
		if z.outPos >= len(z.out) {
			z.err = io.EOF
			return 0, z.err
		}
		n := copy(buf, z.out[z.outPos:])
		z.outPos += n
		z.OutputOffset += int64(n)
		return n, nil
	}

	n := 0
	func() {
		defer errors.Recover(&z.err)
		for n < len(buf) && z.remaining > 0 {
			buf[n] = z.tree.Decode(z.dec)
			n++
			z.remaining--
		}
	}()
	z.OutputOffset += int64(n)
	if z.err != nil {
		return n, z.err
	}
	if n == 0 && z.remaining == 0 {
		z.err = io.EOF
		return 0, z.err
	}
	return n, nil
}

// Close returns the Reader's persistent error, if any other than a clean
// EOF.
func (z *Reader) Close() error {
	if z.err == io.EOF {
		return nil
	}
	return z.err
}
