// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"testing"

	"cogentcore.org/gpubuf/base/tolassert"
	"github.com/stretchr/testify/assert"
)

func tolAssertEqualVector(t *testing.T, tol float32, vt, va Vector2) {
	tolassert.EqualTol(t, vt.X, va.X, tol)
	tolassert.EqualTol(t, vt.Y, va.Y, tol)
}

const standardTol = float32(1.0e-6)

func TestMatrix2(t *testing.T) {
	vx := Vec2(1, 0)
	vy := Vec2(0, 1)
	vxy := Vec2(1, 1)

	id := Identity2()
	assert.Equal(t, vx, vx.MulMatrix2(&id))
	assert.Equal(t, vxy, vxy.MulMatrix2(&id))

	r90 := Rotate2(DegToRad(90))
	tolAssertEqualVector(t, standardTol, vy, vx.MulMatrix2(&r90))
	r45 := Rotate2(DegToRad(45))
	tolAssertEqualVector(t, standardTol, vxy.Normal(), vx.MulMatrix2(&r45))

	rr := Rotate2(DegToRad(-45)).Mul(r45)
	tolAssertEqualVector(t, standardTol, vxy, vxy.MulMatrix2(&rr))
	tolassert.EqualTol(t, 1, r45.Determinant(), standardTol)
	id2 := Identity2()
	tolassert.EqualTolSlice(t, id2[:], rr[:], standardTol)
}

func TestMatrix3(t *testing.T) {
	m := Matrix3{1, 2, 3, 4, 5, 6, 7, 8, 9}
	assert.Equal(t, m, Identity3().Mul(m))
	assert.Equal(t, m, m.Mul(Identity3()))
	assert.Equal(t, m, m.Transpose().Transpose())
	assert.Equal(t, Vec3(1, 2, 3), Vec3(1, 0, 0).MulMatrix3(&m))
}

func TestMatrix4(t *testing.T) {
	tr := Translate4(1, 2, 3)
	p := Vec4(1, 1, 1, 1).MulMatrix4(&tr)
	assert.Equal(t, Vec4(2, 3, 4, 1), p)

	sc := Scale4(2, 2, 2)
	st := tr.Mul(sc)
	assert.Equal(t, Vec4(3, 4, 5, 1), Vec4(1, 1, 1, 1).MulMatrix4(&st))

	var m Matrix4
	m.SetIdentity()
	assert.Equal(t, Identity4(), m)
	assert.Equal(t, tr, tr.Transpose().Transpose())
	assert.Equal(t, Vec3(2, 3, 4), p.PerspDiv())
}

func TestVectors(t *testing.T) {
	assert.Equal(t, float32(5), Vec2(3, 4).Length())
	tolassert.Equal(t, 1, Vec2(0.6, 0.8).Length())
	assert.Equal(t, Vec3(0, 0, 1), Vec3(1, 0, 0).Cross(Vec3(0, 1, 0)))
	assert.Equal(t, Vec4(0.5, 0.5, 0.5, 0.5), Vector4Scalar(0).Lerp(Vector4Scalar(1), 0.5))
	assert.Equal(t, int32(3), Vec3i(1, 2, 3).Dim(Z))
	assert.Equal(t, "W", W.String())
	assert.Equal(t, float32(2), Clamp[float32](5, 0, 2))
	assert.Equal(t, Vec4(1, 2, 3, 1), Point4(Vec3(1, 2, 3)))
	assert.Equal(t, 3, Clamp(-1, 3, 9))
}
