// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slicesx provides additional slice functions
// beyond those in the standard slices package.
package slicesx

// Repeat returns a new slice of length n with every element set to v.
func Repeat[E any](v E, n int) []E {
	s := make([]E, n)
	for i := range s {
		s[i] = v
	}
	return s
}
