// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ppmzip is a single-file lossless text compressor built on an
// adaptive range coder driven by a variable-order PPM-style context tree,
// with an optional capitalization-normalization front-end.
//
// Example usage:
//	$ ppmzip zip -K 5 -u A input.txt output.ppz
//	$ ppmzip unzip output.ppz restored.txt
//
// Use "-" as either path to mean stdin or stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/go-compress/ppmzip/internal/archive"
	"github.com/go-compress/ppmzip/internal/errors"
	"github.com/go-compress/ppmzip/internal/model"
)

var schemeByName = map[string]model.Scheme{
	"A": model.SchemeA,
	"B": model.SchemeB,
	"C": model.SchemeC,
	"D": model.SchemeD,
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  ppmzip zip [-K N] [-m 0|1] [-e 0|1] [-u A|B|C|D] [-c 0|1] <src> <dst>")
	fmt.Fprintln(os.Stderr, "  ppmzip unzip <src> <dst>")
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ppmzip: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "zip":
		err = runZip(os.Args[2:])
	case "unzip":
		err = runUnzip(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runZip(args []string) error {
	fs := flag.NewFlagSet("zip", flag.ExitOnError)
	k := fs.Int("K", 5, "context length (1..255)")
	m := fs.Int("m", 0, "mask_seen: 0 or 1")
	e := fs.Int("e", 0, "exclude_on_update: 0 or 1")
	u := fs.String("u", "A", "up_char_coding scheme: A, B, C, or D")
	c := fs.Int("c", 0, "decapitalize: 0 or 1")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	scheme, ok := schemeByName[*u]
	if !ok {
		return fmt.Errorf("invalid -u scheme %q: must be A, B, C, or D", *u)
	}
	if *k < 1 || *k > 255 {
		return fmt.Errorf("invalid -K %d: must be in 1..255", *k)
	}

	src, dst := fs.Arg(0), fs.Arg(1)
	in, err := openInput(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := createOutput(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	params := archive.CodingParams{
		ContextLength:   *k,
		MaskSeen:        *m != 0,
		ExcludeOnUpdate: *e != 0,
		UpCharCoding:    scheme,
		Decapitalize:    *c != 0,
	}

	return zip(in, out, params)
}

func runUnzip(args []string) error {
	fs := flag.NewFlagSet("unzip", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		usage()
		os.Exit(2)
	}

	src, dst := fs.Arg(0), fs.Arg(1)
	in, err := openInput(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := createOutput(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	return unzip(in, out)
}

func zip(in io.Reader, out io.Writer, params archive.CodingParams) (err error) {
	defer errors.Recover(&err)
	input, ioErr := io.ReadAll(in)
	errors.Assert(ioErr == nil, errors.E(errors.Io, "reading input: %v", ioErr))

	w := archive.NewWriter(out, params)
	_, werr := w.Write(input)
	errors.Assert(werr == nil, errors.E(errors.Io, "buffering input: %v", werr))
	return w.Close()
}

func unzip(in io.Reader, out io.Writer) (err error) {
	r, rerr := archive.NewReader(in)
	if rerr != nil {
		return rerr
	}
	_, err = io.Copy(out, r)
	return err
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func createOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
