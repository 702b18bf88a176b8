// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

import (
	"testing"

	"github.com/go-compress/ppmzip/internal/testutil"
)

func roundTrip(t *testing.T, input string) (lower []byte, data Data, restored []byte) {
	t.Helper()
	d := NewDecapitalizer()
	lower, data = d.Run([]byte(input))
	c := NewCapitalizer()
	restored = c.Run(lower, data)
	if string(restored) != input {
		t.Fatalf("round trip mismatch:\n  input:    %q\n  lower:    %q\n  restored: %q", input, lower, restored)
	}
	return lower, data, restored
}

func TestRoundTripPlainSentences(t *testing.T) {
	roundTrip(t, "Hello. World. Hello. World.")
}

func TestSeedScenarioNoExceptionsBelowThreshold(t *testing.T) {
	// Below the proper-name threshold, "Hello"/"World" are fully explained
	// by the sentence-start rule, so
	// there should be no proper names and no rule exceptions at all.
	_, data, _ := roundTrip(t, "Hello. World. Hello. World.")
	if len(data.ProperNames) != 0 {
		t.Fatalf("ProperNames = %v, want none", data.ProperNames)
	}
	if len(data.RuleExceptions) != 0 {
		t.Fatalf("RuleExceptions = %v, want none", data.RuleExceptions)
	}
}

func TestConsecutiveCapitalsRoundTrip(t *testing.T) {
	roundTrip(t, "THIS IS SHOUTED. this is not.")
}

func TestEllipsisSuppressesSentenceStart(t *testing.T) {
	_, data, _ := roundTrip(t, "wait... what just happened")
	// "what" starts at position 8, right after the ellipsis and a space.
	for _, pos := range data.RuleExceptions {
		if pos == 8 {
			t.Fatalf("RuleExceptions = %v: the letter after the ellipsis was predicted capital", data.RuleExceptions)
		}
	}
}

func TestBlankLineTriggersSentenceStart(t *testing.T) {
	roundTrip(t, "end of paragraph\n\nNew paragraph starts here.")
}

func TestProperNamePromotionAcrossManyOccurrences(t *testing.T) {
	// Repeat an unpredictable capitalized word past the promotion
	// threshold; later occurrences should stop costing rule exceptions.
	text := ""
	for i := 0; i < 15; i++ {
		text += "we spoke with Obama again today. "
	}
	_, data, _ := roundTrip(t, text)

	found := false
	for _, pn := range data.ProperNames {
		if pn.Word == "obama" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected \"obama\" to be promoted to a proper name, data=%+v", data)
	}
}

func TestRoundTripRandomASCII(t *testing.T) {
	r := testutil.NewRand(7)
	alphabet := []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ .,!?\n")
	for trial := 0; trial < 20; trial++ {
		n := r.Intn(300)
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = alphabet[r.Intn(len(alphabet))]
		}
		roundTrip(t, string(buf))
	}
}

func TestRoundTripEmptyAndNonAlpha(t *testing.T) {
	roundTrip(t, "")
	roundTrip(t, "1234 !!! ... \n\n ---")
}

func TestNameCandidatesCachePromotionAndDemotion(t *testing.T) {
	c := NewNameCandidatesCache(10, 3, 0)
	if c.FoundAsProperName("ada") {
		t.Fatal("promoted on first sighting")
	}
	if c.FoundAsProperName("ada") {
		t.Fatal("promoted on second sighting")
	}
	if !c.FoundAsProperName("ada") {
		t.Fatal("did not promote on third sighting crossing threshold 3")
	}
	// Promoted words are forgotten by the cache itself.
	if _, ok := c.index["ada"]; ok {
		t.Fatal("promoted word still tracked in cache")
	}
}

func TestNameCandidatesCacheLowercaseSightingDemotes(t *testing.T) {
	c := NewNameCandidatesCache(10, 5, 0)
	c.FoundAsProperName("grace")
	c.FoundAsProperName("grace")
	c.FoundAsMaybeNotProperName("grace")
	c.FoundAsMaybeNotProperName("grace")
	if _, ok := c.index["grace"]; ok {
		t.Fatal("word with score <= notProperThresh should have been evicted")
	}
}

func TestNameCandidatesCacheCapacityEviction(t *testing.T) {
	c := NewNameCandidatesCache(2, 100, -100)
	c.FoundAsProperName("one")
	c.FoundAsProperName("two")
	c.FoundAsProperName("three")
	if _, ok := c.index["one"]; ok {
		t.Fatal("least-recently-used entry was not evicted at capacity")
	}
	if _, ok := c.index["two"]; !ok {
		t.Fatal("two should still be tracked")
	}
	if _, ok := c.index["three"]; !ok {
		t.Fatal("three should still be tracked")
	}
}

func TestCapitalizerRejectsFromPosPastStreamLength(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range from_pos")
		}
	}()
	c := NewCapitalizer()
	c.Run([]byte("short"), Data{ProperNames: []ProperName{{Word: "x", FromPos: 1000}}})
}
