// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Matrix2 is a 2x2 matrix of float32 values in column-major order,
// matching a shader mat2.
type Matrix2 [4]float32

// Matrix3 is a 3x3 matrix of float32 values in column-major order,
// matching a packed shader mat3 (which needs padding for std140).
type Matrix3 [9]float32

// Matrix4 is a 4x4 matrix of float32 values in column-major order,
// matching a shader mat4.
type Matrix4 [16]float32

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
	}
}

// Rotate2 returns a [Matrix2] rotating by the given angle in radians.
func Rotate2(angle float32) Matrix2 {
	c, s := Cos(angle), Sin(angle)
	return Matrix2{
		c, s,
		-s, c,
	}
}

// Mul returns the matrix product m * other.
func (m Matrix2) Mul(other Matrix2) Matrix2 {
	return Matrix2{
		m[0]*other[0] + m[2]*other[1],
		m[1]*other[0] + m[3]*other[1],
		m[0]*other[2] + m[2]*other[3],
		m[1]*other[2] + m[3]*other[3],
	}
}

// Determinant returns the determinant of this matrix.
func (m Matrix2) Determinant() float32 {
	return m[0]*m[3] - m[2]*m[1]
}

// Identity3 returns a new identity [Matrix3].
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mul returns the matrix product m * other.
func (m Matrix3) Mul(other Matrix3) Matrix3 {
	var r Matrix3
	for c := range 3 {
		for row := range 3 {
			var sum float32
			for k := range 3 {
				sum += m[k*3+row] * other[c*3+k]
			}
			r[c*3+row] = sum
		}
	}
	return r
}

// Transpose returns the transpose of this matrix.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Identity4 returns a new identity [Matrix4].
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate4 returns a [Matrix4] translating by the given offsets.
func Translate4(x, y, z float32) Matrix4 {
	m := Identity4()
	m[12] = x
	m[13] = y
	m[14] = z
	return m
}

// Scale4 returns a [Matrix4] scaling by the given factors.
func Scale4(x, y, z float32) Matrix4 {
	m := Identity4()
	m[0] = x
	m[5] = y
	m[10] = z
	return m
}

// SetIdentity sets this matrix to the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Identity4()
}

// Mul returns the matrix product m * other.
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var r Matrix4
	for c := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m[k*4+row] * other[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// Transpose returns the transpose of this matrix.
func (m Matrix4) Transpose() Matrix4 {
	var r Matrix4
	for c := range 4 {
		for row := range 4 {
			r[row*4+c] = m[c*4+row]
		}
	}
	return r
}
