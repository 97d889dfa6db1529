// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package math32 is a float32 based vector and matrix package
// providing the fixed-size value types that can be stored directly
// in GPU buffers and uniform blocks.
package math32

import (
	"cmp"
	"math"

	"github.com/chewxy/math32"
)

// Pi is the float32 value of pi.
const Pi = float32(math.Pi)

// DegToRad converts a number from degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * (Pi / 180)
}

// Sqrt returns the square root of x, computed in float32.
func Sqrt(x float32) float32 { return math32.Sqrt(x) }

// Sin returns the sine of the radian argument x.
func Sin(x float32) float32 { return math32.Sin(x) }

// Cos returns the cosine of the radian argument x.
func Cos(x float32) float32 { return math32.Cos(x) }

// Clamp clamps x to the closed interval [a, b].
func Clamp[T cmp.Ordered](x, a, b T) T {
	return min(max(x, a), b)
}
