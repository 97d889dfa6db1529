// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"reflect"

	"cogentcore.org/gpubuf/math32"
)

// See: https://www.khronos.org/opengl/wiki/Data_Type_(GLSL)

// Types is a list of GPU data types that buffer elements map onto.
// Note that a Vector3 or arrays of single scalar values such as Float32
// are not well supported outside of vertex data due to the std140 convention,
// which aligns them to 16 bytes. The Struct type is particularly challenging
// as each member must in general be aligned on a 16 byte boundary.
// None of this is checked: see [UniformCompatible].
type Types int32

const (
	UndefinedType Types = iota
	Bool

	Int8
	Uint8
	Int16
	Uint16

	Int32
	Int32Vector2
	Int32Vector3
	Int32Vector4

	Uint32
	Uint32Vector2
	Uint32Vector3
	Uint32Vector4

	Float32
	Float32Vector2
	Float32Vector3 // note: only use for vertex data -- not properly aligned for uniforms
	Float32Vector4

	Float64
	Float64Vector2
	Float64Vector3
	Float64Vector4

	Float32Matrix2
	Float32Matrix3 // std transform matrix: math32.Matrix3 works directly
	Float32Matrix4 // std transform matrix: math32.Matrix4 works directly

	Struct

	TypesN
)

var typeNames = [...]string{
	"UndefinedType", "Bool", "Int8", "Uint8", "Int16", "Uint16",
	"Int32", "Int32Vector2", "Int32Vector3", "Int32Vector4",
	"Uint32", "Uint32Vector2", "Uint32Vector3", "Uint32Vector4",
	"Float32", "Float32Vector2", "Float32Vector3", "Float32Vector4",
	"Float64", "Float64Vector2", "Float64Vector3", "Float64Vector4",
	"Float32Matrix2", "Float32Matrix3", "Float32Matrix4", "Struct",
}

func (tp Types) String() string {
	if tp < 0 || tp >= TypesN {
		return "Types(?)"
	}
	return typeNames[tp]
}

// Bytes returns number of bytes for this type,
// which is 0 for UndefinedType and Struct.
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// IsVector returns whether the type is a 2, 3 or 4 component vector.
func (tp Types) IsVector() bool {
	return tp.Components() > 1 && tp < Float32Matrix2
}

// Components returns the number of scalar components of the type.
func (tp Types) Components() int {
	switch tp {
	case UndefinedType, Struct:
		return 0
	case Int32Vector2, Uint32Vector2, Float32Vector2, Float64Vector2:
		return 2
	case Int32Vector3, Uint32Vector3, Float32Vector3, Float64Vector3:
		return 3
	case Int32Vector4, Uint32Vector4, Float32Vector4, Float64Vector4, Float32Matrix2:
		return 4
	case Float32Matrix3:
		return 9
	case Float32Matrix4:
		return 16
	}
	return 1
}

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Bool: 1,

	Int8:   1,
	Uint8:  1,
	Int16:  2,
	Uint16: 2,

	Int32:        4,
	Int32Vector2: 8,
	Int32Vector3: 12,
	Int32Vector4: 16,

	Uint32:        4,
	Uint32Vector2: 8,
	Uint32Vector3: 12,
	Uint32Vector4: 16,

	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,

	Float64:        8,
	Float64Vector2: 16,
	Float64Vector3: 24,
	Float64Vector4: 32,

	Float32Matrix2: 16,
	Float32Matrix3: 36,
	Float32Matrix4: 64,
}

// namedTypes maps the math32 vector and matrix types, and nested float32
// arrays, to their GPU types.
var namedTypes = map[reflect.Type]Types{
	reflect.TypeFor[math32.Vector2]():  Float32Vector2,
	reflect.TypeFor[math32.Vector3]():  Float32Vector3,
	reflect.TypeFor[math32.Vector4]():  Float32Vector4,
	reflect.TypeFor[math32.Vector2i](): Int32Vector2,
	reflect.TypeFor[math32.Vector3i](): Int32Vector3,
	reflect.TypeFor[math32.Vector4i](): Int32Vector4,
	reflect.TypeFor[math32.Matrix2]():  Float32Matrix2,
	reflect.TypeFor[math32.Matrix3]():  Float32Matrix3,
	reflect.TypeFor[math32.Matrix4]():  Float32Matrix4,
	reflect.TypeFor[[2][2]float32]():   Float32Matrix2,
	reflect.TypeFor[[3][3]float32]():   Float32Matrix3,
	reflect.TypeFor[[4][4]float32]():   Float32Matrix4,
}

// vectorTypes gives the 2, 3 and 4 component vector types
// for the scalar types that have them.
var vectorTypes = map[Types][3]Types{
	Int32:   {Int32Vector2, Int32Vector3, Int32Vector4},
	Uint32:  {Uint32Vector2, Uint32Vector3, Uint32Vector4},
	Float32: {Float32Vector2, Float32Vector3, Float32Vector4},
	Float64: {Float64Vector2, Float64Vector3, Float64Vector4},
}

// TypeOf returns the GPU data type for the given Go type.
// Scalars of any named type map by kind, arrays of 2 to 4 scalars map
// to vectors where a vector type exists, and other structs map to Struct.
// It returns UndefinedType for anything else.
func TypeOf(typ reflect.Type) Types {
	if tp, ok := namedTypes[typ]; ok {
		return tp
	}
	switch typ.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.Int8:
		return Int8
	case reflect.Uint8:
		return Uint8
	case reflect.Int16:
		return Int16
	case reflect.Uint16:
		return Uint16
	case reflect.Int32:
		return Int32
	case reflect.Uint32:
		return Uint32
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	case reflect.Array:
		n := typ.Len()
		if n < 2 || n > 4 {
			return UndefinedType
		}
		if vt, ok := vectorTypes[TypeOf(typ.Elem())]; ok {
			return vt[n-2]
		}
	case reflect.Struct:
		return Struct
	}
	return UndefinedType
}
