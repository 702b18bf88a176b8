// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors classifies every failure this module can produce into one
// of a small set of Kinds, and supplies the panic/recover
// plumbing used throughout the repo to surface them. The plumbing itself is
// github.com/dsnet/golib/errs, imported directly rather than reimplemented.
package errors

import (
	"fmt"

	"github.com/dsnet/golib/errs"
)

// Kind classifies an Error. The zero Kind is never produced.
type Kind uint8

const (
	_ Kind = iota

	// Io reports an underlying read/write failure. The caller is expected
	// to clean up any partial output; there is no local recovery.
	Io

	// TruncatedInput reports that the decoder exhausted its bit source
	// before decoding the number of symbols promised by the header.
	TruncatedInput

	// MalformedHeader reports a corrupt fixed or capitalization header:
	// an invalid up_char_coding value, a NUL inside a proper-name word, or
	// a decapitalize flag set without a capitalization header to match.
	MalformedHeader

	// InvalidModel reports a coding-time programmer error: a zero-weight
	// symbol presented for encoding, or a degenerate (empty) range.
	InvalidModel

	// RoundTripMismatch is produced only by the round-trip benchmark
	// harness, never by the core packages.
	RoundTripMismatch
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "I/O error"
	case TruncatedInput:
		return "truncated input"
	case MalformedHeader:
		return "malformed header"
	case InvalidModel:
		return "invalid model"
	case RoundTripMismatch:
		return "round-trip mismatch"
	default:
		return "unknown error"
	}
}

// Error is the concrete error type produced by this module.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return "ppmzip: " + e.Kind.String() + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error of the given Kind from a format string, analogous to
// the errorf helper bzip2/reader.go calls through its internal/errors
// import.
func E(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, a...)}
}

// Wrap attaches a Kind to an existing error, leaving it unchanged if it is
// already an *Error.
func Wrap(err error, kind Kind) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: kind, Err: err}
}

// Panic raises err as a panic, to be caught by a deferred Recover. It is a
// direct pass-through to github.com/dsnet/golib/errs.Panic.
func Panic(err error) { errs.Panic(err) }

// Panicf raises a formatted *Error of the given Kind as a panic.
func Panicf(kind Kind, format string, a ...interface{}) { errs.Panic(E(kind, format, a...)) }

// Assert panics with err if cond is false.
func Assert(cond bool, err error) { errs.Assert(cond, err) }

// Recover must be deferred at the top of any function that calls Panic,
// Panicf, or Assert. It recovers a matching panic and stores it in *err;
// any other panic (e.g. a runtime.Error) propagates unchanged. recover only
// works when called directly by the deferred function, so the panic value
// is caught here and re-raised under a direct defer of errs.Recover.
func Recover(err *error) {
	if ex := recover(); ex != nil {
		func() {
			defer errs.Recover(err)
			panic(ex)
		}()
	}
}

// KindOf reports the Kind of err, or the zero Kind if err was not produced
// by this package.
func KindOf(err error) Kind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return 0
}
