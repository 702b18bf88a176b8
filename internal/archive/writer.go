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

// Writer buffers its entire input, then encodes and writes one complete
// archive (header plus arithmetic-coded payload) on Close. It cannot emit
// anything earlier because the fixed header carries original_length,
// which is only known once the whole input (and, if decapitalize is set,
// the whole capitalization pass) has been seen.
type Writer struct {
	InputOffset  int64 // bytes accepted via Write so far
	OutputOffset int64 // bytes written to the underlying io.Writer so far

	w      io.Writer
	params CodingParams
	buf    []byte
	err    error
	closed bool
}

// NewWriter returns a Writer that will encode to w with the given params
// once Close is called.
func NewWriter(w io.Writer, params CodingParams) *Writer {
	return &Writer{w: w, params: params}
}

// Write buffers p for later encoding; it never fails on its own.
func (z *Writer) Write(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	z.buf = append(z.buf, p...)
	z.InputOffset += int64(len(p))
	return len(p), nil
}

// Close encodes the buffered input and writes the complete archive. It is
// an error to call Write after Close.
func (z *Writer) Close() (err error) {
	if z.closed {
		return z.err
	}
	z.closed = true
	if z.err != nil {
		return z.err
	}
	defer func() { err = z.err }()
	defer errors.Recover(&z.err)
	z.encode()
	return z.err
}

func (z *Writer) encode() {
	symbols := z.buf
	var capData capitalize.Data
	if z.params.Decapitalize {
		dec := capitalize.NewDecapitalizer()
		symbols, capData = dec.Run(z.buf)
	}

	tree := model.New(modelParams(z.params))
	enc := rangecoder.NewEncoder()
	for _, c := range symbols {
		tree.Encode(enc, c)
	}
	payload := enc.Finish()

	var hw bitio.Writer
	writeFixedHeader(&hw, z.params, uint64(len(symbols)))
	if z.params.Decapitalize {
		writeCapHeader(&hw, capData)
	}
	hw.PadToByte()
	header := hw.Bytes()

	n, ioErr := z.w.Write(header)
	z.OutputOffset += int64(n)
	errors.Assert(ioErr == nil, errors.E(errors.Io, "writing archive header: %v", ioErr))

	n, ioErr = z.w.Write(payload)
	z.OutputOffset += int64(n)
	errors.Assert(ioErr == nil, errors.E(errors.Io, "writing archive payload: %v", ioErr))
}
