// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package capitalize implements an optional capitalization-normalization
// front-end: a streaming decapitalizer that folds
// ASCII uppercase letters to lowercase before the bytes reach the context
// tree, recording just enough side information (a proper-name table and a
// sorted list of rule-exception positions) for a matching Capitalizer to
// restore the original case losslessly on decode.
//
// Three cooperating predictors decide, for each alpha byte, whether the
// original was capitalized: a ConsecutiveCapitalsAutomaton (ALL-CAPS runs),
// a SentenceStartAutomaton (first letter after a sentence terminator or
// blank line) and a proper-name table built up as candidate words cross a
// scoring threshold in a NameCandidatesCache. Only disagreements between
// this combined prediction and the actual input case cost a rule_exceptions
// entry; a word recognized as a proper name is capitalized for free at every
// later occurrence once it is promoted.
package capitalize

import "strings"

// Decapitalizer performs one full pass over an already-buffered input,
// lowercasing ASCII letters and building the Data a Capitalizer needs to
// invert it. It is grounded in a streaming automaton-state-machine shape
// (akin to flate.Reader's step function) but, since archive.Writer already
// buffers its whole input before encoding (see SPEC_FULL.md), it runs over
// an in-memory slice rather than a byte-at-a-time io.Reader.
type Decapitalizer struct {
	consec   ConsecutiveCapitalsAutomaton
	sentence SentenceStartAutomaton
	cache    *NameCandidatesCache
	promoted map[string]uint64
	data     Data
}

func NewDecapitalizer() *Decapitalizer {
	return &Decapitalizer{
		sentence: NewSentenceStartAutomaton(),
		cache:    NewNameCandidatesCache(defaultCacheCapacity, defaultProperNameThreshold, defaultNotProperThreshold),
		promoted: make(map[string]uint64),
	}
}

// Run lowercases every ASCII uppercase byte in input and returns the folded
// stream alongside the capitalization data needed to undo the folding.
func (d *Decapitalizer) Run(input []byte) ([]byte, Data) {
	out := make([]byte, len(input))
	pos := 0
	for pos < len(input) {
		c := input[pos]
		if !isASCIIAlpha(c) {
			out[pos] = c
			d.consec.Observe(c)
			d.sentence.Observe(c)
			pos++
			continue
		}

		start := pos
		end := pos
		for end < len(input) && isASCIIAlpha(input[end]) {
			end++
		}
		raw := input[start:end]

		basePredicted := d.consec.Predict() || d.sentence.Predict()
		lower := strings.ToLower(string(raw))
		promotedAlready := false
		if fp, ok := d.promoted[lower]; ok && fp <= uint64(start) {
			promotedAlready = true
		}
		firstPredicted := basePredicted || promotedAlready

		for i, b := range raw {
			predicted := firstPredicted
			if i > 0 {
				predicted = d.consec.Predict() || d.sentence.Predict()
			}
			actual := isASCIIUpper(b)
			if actual != predicted {
				d.data.RuleExceptions = append(d.data.RuleExceptions, uint64(start+i))
			}
			out[start+i] = toASCIILower(b)
			d.consec.Observe(b)
			d.sentence.Observe(b)
		}

		if !promotedAlready {
			d.processWord(raw, uint64(start), basePredicted)
		}
		pos = end
	}
	return out, d.data
}

// processWord scores a just-completed alpha run against the proper-name
// cache. Only a word capitalized exactly on its first letter, at a position
// the rule automata did not already predict, is a proper-name candidate; a
// plain lowercase sighting scores an existing candidate back down.
func (d *Decapitalizer) processWord(raw []byte, startPos uint64, startPredicted bool) {
	word := strings.ToLower(string(raw))
	firstUpper := isASCIIUpper(raw[0])
	restLower := true
	for _, b := range raw[1:] {
		if isASCIIUpper(b) {
			restLower = false
			break
		}
	}

	switch {
	case firstUpper && restLower && !startPredicted:
		if d.cache.FoundAsProperName(word) {
			// The promoting occurrence itself was coded unpredicted, so the
			// name applies from the position just past it.
			fromPos := startPos + uint64(len(raw))
			d.promoted[word] = fromPos
			d.data.ProperNames = append(d.data.ProperNames, ProperName{Word: word, FromPos: fromPos})
		}
	case !firstUpper:
		d.cache.FoundAsMaybeNotProperName(word)
	case firstUpper && !restLower:
		// Capitalized past the first letter (an ALL-CAPS or otherwise
		// irregularly cased word): not the shape of an ordinary proper
		// name, and contradicts any softer evidence already gathered for
		// it under a different occurrence.
		d.cache.FoundAsNotProperName(word)
	}
}
