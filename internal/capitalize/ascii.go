// Copyright 2026, The PPMZip Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package capitalize

func isASCIIUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isASCIILower(c byte) bool { return c >= 'a' && c <= 'z' }
func isASCIIAlpha(c byte) bool { return isASCIIUpper(c) || isASCIILower(c) }

func toASCIILower(c byte) byte {
	if isASCIIUpper(c) {
		return c + ('a' - 'A')
	}
	return c
}

func toASCIIUpper(c byte) byte {
	if isASCIILower(c) {
		return c - ('a' - 'A')
	}
	return c
}
