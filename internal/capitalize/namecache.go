// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

import "container/list"

const (
	defaultCacheCapacity       = 10000
	defaultProperNameThreshold = 10
	defaultNotProperThreshold  = 0
)

type cacheCell struct {
	word  string
	score int
}

// NameCandidatesCache tracks words that have appeared capitalized at a
// position the rule automata did not predict, scoring them up each time
// and down whenever the same word is seen in plain lowercase. A word whose
// score crosses properNameThreshold is promoted (and forgotten by the
// cache, since a promoted word moves into the caller's permanent table); a
// word whose score falls to notProperThreshold is evicted outright.
//
// No library in the retrieval pack implements an LRU-style bounded cache
// (grep across _examples for golang-lru, container/ring and container/list
// turned up nothing beyond the standard library's own container/list,
// which this type uses directly rather than hand-rolling a ring buffer).
type NameCandidatesCache struct {
	capacity        int
	properThresh    int
	notProperThresh int

	order *list.List
	index map[string]*list.Element
}

func NewNameCandidatesCache(capacity, properThreshold, notProperThreshold int) *NameCandidatesCache {
	return &NameCandidatesCache{
		capacity:        capacity,
		properThresh:    properThreshold,
		notProperThresh: notProperThreshold,
		order:           list.New(),
		index:           make(map[string]*list.Element),
	}
}

// FoundAsProperName scores word up on a capitalized-but-unpredicted sighting
// and reports whether this sighting just crossed the promotion threshold.
func (c *NameCandidatesCache) FoundAsProperName(word string) bool {
	if el, ok := c.index[word]; ok {
		cell := el.Value.(*cacheCell)
		cell.score++
		c.order.MoveToFront(el)
		if cell.score >= c.properThresh {
			c.evict(el)
			return true
		}
		return false
	}
	c.insert(word, 1)
	return 1 >= c.properThresh
}

// FoundAsMaybeNotProperName scores word down on a plain-lowercase sighting.
func (c *NameCandidatesCache) FoundAsMaybeNotProperName(word string) {
	el, ok := c.index[word]
	if !ok {
		return
	}
	cell := el.Value.(*cacheCell)
	cell.score--
	c.order.MoveToFront(el)
	if cell.score <= c.notProperThresh {
		c.evict(el)
	}
}

// FoundAsNotProperName evicts word outright, if tracked.
func (c *NameCandidatesCache) FoundAsNotProperName(word string) {
	if el, ok := c.index[word]; ok {
		c.evict(el)
	}
}

func (c *NameCandidatesCache) insert(word string, score int) {
	el := c.order.PushFront(&cacheCell{word: word, score: score})
	c.index[word] = el
	if c.order.Len() > c.capacity {
		c.evict(c.order.Back())
	}
}

func (c *NameCandidatesCache) evict(el *list.Element) {
	cell := el.Value.(*cacheCell)
	delete(c.index, cell.word)
	c.order.Remove(el)
}
