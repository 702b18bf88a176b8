// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

// ProperName is one entry of the proper-name side channel: a lowercased
// word, and the absolute byte position (in the decapitalized stream) from
// which it should be treated as a recognized proper name.
type ProperName struct {
	Word    string
	FromPos uint64
}

// Data is everything the decapitalization front-end needs to reconstruct
// original capitalization from a lowercased byte stream: the proper-name
// table built during encoding, and the sorted list of absolute positions
// where the mechanical rules (consecutive-capitals, sentence-start,
// recognized-proper-name) predicted the wrong case.
type Data struct {
	ProperNames    []ProperName
	RuleExceptions []uint64
}
