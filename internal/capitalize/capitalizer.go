// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

import "github.com/go-compress/ppmzip/internal/errors"

// Capitalizer inverts a Decapitalizer: given the fully lowercased stream and
// the Data recorded alongside it, it restores the original case. It mirrors
// the Decapitalizer's per-byte automaton walk exactly (same predictors, same
// order of observation), using rule_exceptions membership to flip the
// combined prediction instead of comparing it against a known actual case.
//
// Decode-side proper-name recognition could instead use a bounded
// ring-buffer-plus-trie lookup so that decoding stays within fixed memory
// regardless of stream length. Since archive.Reader already decodes a
// stream of a length declared by the archive header in full before this
// stage runs, a simple index into an in-memory proper-name table is
// equivalent and considerably simpler; this substitution is recorded in
// DESIGN.md.
type Capitalizer struct {
	consec   ConsecutiveCapitalsAutomaton
	sentence SentenceStartAutomaton
}

func NewCapitalizer() *Capitalizer {
	return &Capitalizer{sentence: NewSentenceStartAutomaton()}
}

// Run returns a recapitalized copy of lower with the original casing
// restored; lower itself is not modified.
func (cz *Capitalizer) Run(lower []byte, data Data) []byte {
	promoted := make(map[string]uint64, len(data.ProperNames))
	for _, pn := range data.ProperNames {
		errors.Assert(pn.FromPos <= uint64(len(lower)), errors.E(errors.MalformedHeader, "proper name %q: from_pos %d past stream length %d", pn.Word, pn.FromPos, len(lower)))
		for i := 0; i < len(pn.Word); i++ {
			errors.Assert(pn.Word[i] < 0x80, errors.E(errors.MalformedHeader, "proper name %q contains a non-ASCII byte", pn.Word))
		}
		promoted[pn.Word] = pn.FromPos
	}
	exceptions := make(map[uint64]bool, len(data.RuleExceptions))
	for _, pos := range data.RuleExceptions {
		exceptions[pos] = true
	}

	out := make([]byte, len(lower))
	pos := 0
	for pos < len(lower) {
		c := lower[pos]
		if !isASCIIAlpha(c) {
			out[pos] = c
			cz.consec.Observe(c)
			cz.sentence.Observe(c)
			pos++
			continue
		}

		start := pos
		end := pos
		for end < len(lower) && isASCIIAlpha(lower[end]) {
			end++
		}
		word := string(lower[start:end])

		basePredicted := cz.consec.Predict() || cz.sentence.Predict()
		promotedHere := false
		if fp, ok := promoted[word]; ok && fp <= uint64(start) {
			promotedHere = true
		}
		firstPredicted := basePredicted || promotedHere

		for i := start; i < end; i++ {
			predicted := firstPredicted
			if i > start {
				predicted = cz.consec.Predict() || cz.sentence.Predict()
			}
			if exceptions[uint64(i)] {
				predicted = !predicted
			}

			var final byte
			if predicted {
				final = toASCIIUpper(lower[i])
			} else {
				final = lower[i]
			}
			out[i] = final
			cz.consec.Observe(final)
			cz.sentence.Observe(final)
		}
		pos = end
	}
	return out
}
