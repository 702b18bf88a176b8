// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

// ConsecutiveCapitalsAutomaton predicts that a byte is capitalized once two
// or more ASCII uppercase letters have appeared back to back, and keeps
// predicting capitalization until a newline or an ASCII lowercase letter is
// observed. Other bytes (digits, punctuation, non-ASCII) neither trigger
// nor un-trigger it; they only interrupt the run count.
type ConsecutiveCapitalsAutomaton struct {
	run       int
	triggered bool
}

func (a *ConsecutiveCapitalsAutomaton) Predict() bool { return a.triggered }

func (a *ConsecutiveCapitalsAutomaton) Observe(c byte) {
	switch {
	case isASCIIUpper(c):
		a.run++
		if a.run >= 2 {
			a.triggered = true
		}
	case c == '\n' || isASCIILower(c):
		a.run = 0
		a.triggered = false
	default:
		a.run = 0
	}
}

// SentenceStartAutomaton predicts that the next ASCII-alpha byte begins a
// new sentence (and so should be capitalized) after a run of one or more
// '.', '!' or '?' characters, or after a blank line. waiting and dotRun are
// tracked independently: every dot sets waiting, regardless of how many
// dots precede it; dotRun only gates whether Predict reports it once three
// or more dots (an ellipsis) have run together. Any alpha byte consumes the
// pending prediction and ends the dot run; '!', '?' and newlines also end
// the dot run. Other bytes (spaces, digits, other punctuation) leave both
// the pending prediction and the dot run as they are.
type SentenceStartAutomaton struct {
	waiting    bool
	dotRun     int
	newlineRun int
}

// NewSentenceStartAutomaton returns an automaton already waiting: the very
// first letter of a stream counts as a sentence start, the same as the
// first letter after any other terminator.
func NewSentenceStartAutomaton() SentenceStartAutomaton {
	return SentenceStartAutomaton{waiting: true}
}

func (a *SentenceStartAutomaton) Predict() bool { return a.waiting && a.dotRun < 3 }

func (a *SentenceStartAutomaton) Observe(c byte) {
	switch {
	case c == '.':
		a.dotRun++
		a.newlineRun = 0
		a.waiting = true
	case c == '!' || c == '?':
		a.dotRun = 0
		a.newlineRun = 0
		a.waiting = true
	case c == '\n':
		a.dotRun = 0
		a.newlineRun++
		if a.newlineRun >= 2 {
			a.waiting = true
		}
	case isASCIIAlpha(c):
		a.dotRun = 0
		a.newlineRun = 0
		a.waiting = false
	default:
		a.newlineRun = 0
	}
}
