// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tolassert provides functions for asserting the equality of numbers
// with tolerance (in other words, it checks whether numbers are about equal).
package tolassert

import (
	"math"

	"github.com/stretchr/testify/assert"
)

// Float is a floating point number type.
type Float interface {
	~float32 | ~float64
}

// Equal asserts that the given two numbers are about equal to each other,
// using a default tolerance of 0.001.
func Equal[T Float](t assert.TestingT, expected T, actual T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return EqualTol(t, expected, actual, 0.001, msgAndArgs...)
}

// EqualTol asserts that the given two numbers are about equal to each other,
// using the given tolerance value.
func EqualTol[T Float](t assert.TestingT, expected T, actual, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if math.Abs(float64(actual-expected)) > float64(tolerance) {
		return assert.Equal(t, expected, actual, msgAndArgs...)
	}
	return true
}

// EqualTolSlice asserts that the given two slices of numbers are about
// equal to each other, using the given tolerance value.
func EqualTolSlice[T Float](t assert.TestingT, expected, actual []T, tolerance T, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if len(expected) != len(actual) {
		return assert.Equal(t, expected, actual, msgAndArgs...)
	}
	for i := range expected {
		if !EqualTol(t, expected[i], actual[i], tolerance, msgAndArgs...) {
			return false
		}
	}
	return true
}
