// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import "fmt"

// Vector4 is a vector in homogeneous coordinates with X, Y, Z and W
// float32 components, laid out like a shader vec4. It has the 16 byte
// alignment of the std140 layout, so it is the natural element type
// for uniform blocks.
type Vector4 struct {
	X float32
	Y float32
	Z float32
	W float32
}

// Vec4 returns a new [Vector4] with the given x, y, z and w components.
func Vec4(x, y, z, w float32) Vector4 {
	return Vector4{X: x, Y: y, Z: z, W: w}
}

// Vector4Scalar returns a new [Vector4] with all components set to s.
func Vector4Scalar(s float32) Vector4 {
	return Vector4{s, s, s, s}
}

// Point4 returns the point v in homogeneous coordinates, with W = 1,
// padding a [Vector3] to the vec4 layout.
func Point4(v Vector3) Vector4 {
	return Vector4{v.X, v.Y, v.Z, 1}
}

func (v Vector4) String() string {
	return fmt.Sprintf("(%v, %v, %v, %v)", v.X, v.Y, v.Z, v.W)
}

// Vector3 returns the X, Y and Z components.
func (v Vector4) Vector3() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// Add returns the sum of v and other.
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// MulScalar returns v with each component multiplied by s.
func (v Vector4) MulScalar(s float32) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Lerp returns the linear interpolation between v and other at alpha.
func (v Vector4) Lerp(other Vector4, alpha float32) Vector4 {
	return v.Add(other.Add(v.MulScalar(-1)).MulScalar(alpha))
}

// MulMatrix4 returns the vector multiplied by the given 4x4 matrix.
func (v Vector4) MulMatrix4(m *Matrix4) Vector4 {
	var r [4]float32
	for i := range 4 {
		r[i] = m[i]*v.X + m[4+i]*v.Y + m[8+i]*v.Z + m[12+i]*v.W
	}
	return Vector4{r[0], r[1], r[2], r[3]}
}

// PerspDiv returns the normalized device coordinates of v,
// dividing by its W component.
func (v Vector4) PerspDiv() Vector3 {
	return v.Vector3().MulScalar(1 / v.W)
}
