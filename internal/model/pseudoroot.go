// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "github.com/go-compress/ppmzip/internal/fenwick"

// fallback is the synthetic order-(-1) pseudo-root: a flat, never-updated
// distribution over every symbol the coder may ever present (all of Σ, or
// Σ minus uppercase ASCII letters when decapitalize
// is active). It has no escape slot — every symbol is encodable here
// directly, so it structurally differs from an ordinary node rather than
// reusing node's escape-reserving layout.
type fallback struct {
	dist     *fenwick.Tree
	symToIdx map[byte]int
	idxToSym []byte
}

func newFallback(decapitalize bool) *fallback {
	f := &fallback{dist: fenwick.New(), symToIdx: map[byte]int{}}
	for b := 0; b < 256; b++ {
		c := byte(b)
		if decapitalize && c >= 'A' && c <= 'Z' {
			continue
		}
		f.symToIdx[c] = len(f.idxToSym)
		f.idxToSym = append(f.idxToSym, c)
		f.dist.Append(1)
	}
	return f
}
