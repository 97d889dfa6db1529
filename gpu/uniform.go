// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"reflect"
	"sync"

	"cogentcore.org/gpubuf/base/reflectx"
	"cogentcore.org/gpubuf/math32"
)

// UniformScalar is the set of scalar types that can be used
// in a uniform block.
type UniformScalar interface {
	~uint8 | ~uint16 | ~uint32 | ~int8 | ~int16 | ~int32 | ~float32 | ~float64 | ~bool
}

// UniformVector is the set of 2, 3 and 4 component vector types that
// can be used in a uniform block.
type UniformVector interface {
	[2]uint8 | [3]uint8 | [4]uint8 |
		[2]uint16 | [3]uint16 | [4]uint16 |
		[2]uint32 | [3]uint32 | [4]uint32 |
		[2]int8 | [3]int8 | [4]int8 |
		[2]int16 | [3]int16 | [4]int16 |
		[2]int32 | [3]int32 | [4]int32 |
		[2]float32 | [3]float32 | [4]float32 |
		[2]float64 | [3]float64 | [4]float64 |
		[2]bool | [3]bool | [4]bool |
		math32.Vector2 | math32.Vector3 | math32.Vector4 |
		math32.Vector2i | math32.Vector3i | math32.Vector4i
}

// UniformMatrix is the set of 2x2, 3x3 and 4x4 float matrix types that
// can be used in a uniform block, as math32 matrices or nested arrays.
type UniformMatrix interface {
	math32.Matrix2 | math32.Matrix3 | math32.Matrix4 |
		[2][2]float32 | [3][3]float32 | [4][4]float32
}

// UniformValue is the static gate for uniform block element types:
// scalars, vectors and matrices. Composite types (tuples and structs)
// cannot be expressed as a type set, and are checked by [UniformCompatible].
type UniformValue interface {
	UniformScalar | UniformVector | UniformMatrix
}

// uniformMatrices are the matrix types, which are arrays that
// would otherwise not be compatible.
var uniformMatrices = map[reflect.Type]bool{
	reflect.TypeFor[math32.Matrix2](): true,
	reflect.TypeFor[math32.Matrix3](): true,
	reflect.TypeFor[math32.Matrix4](): true,
	reflect.TypeFor[[2][2]float32](): true,
	reflect.TypeFor[[3][3]float32](): true,
	reflect.TypeFor[[4][4]float32](): true,
}

// uniformCache records the final result of UniformCompatible by type.
var uniformCache sync.Map

// UniformCompatible returns whether values of the given type can be used
// as uniform block storage. The set of compatible types is closed:
//   - the scalars in [UniformScalar], including named types of them;
//   - arrays of 2, 3 or 4 such scalars (vectors);
//   - the math32 matrix types and square nested float32 arrays of 2, 3 or 4;
//   - structs of 2 to 9 fields that are all compatible, such as the
//     [Tuple2] to [Tuple9] types and the math32 vector types;
//   - slices of a compatible element type, at the top level only:
//     a slice field or tuple component is a reference, not data.
//
// This is not a layout check: the std140 alignment of the fields
// is not verified, and is the caller's responsibility.
func UniformCompatible(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	if ok, has := uniformCache.Load(typ); has {
		return ok.(bool)
	}
	var ok bool
	if typ.Kind() == reflect.Slice {
		ok = uniformCompatible(typ.Elem())
	} else {
		ok = uniformCompatible(typ)
	}
	uniformCache.Store(typ, ok)
	return ok
}

func uniformScalar(k reflect.Kind) bool {
	switch k {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32, reflect.Float64, reflect.Bool:
		return true
	}
	return false
}

// uniformCompatible reports whether typ is compatible as a field of a
// uniform block, which excludes slices. Value types cannot contain
// themselves, so the recursion is finite.
func uniformCompatible(typ reflect.Type) bool {
	if uniformMatrices[typ] {
		return true
	}
	switch k := typ.Kind(); {
	case uniformScalar(k):
		return true
	case k == reflect.Array:
		n := typ.Len()
		return n >= 2 && n <= 4 && uniformScalar(typ.Elem().Kind())
	case k == reflect.Struct:
		nf := typ.NumField()
		if nf < 2 || nf > 9 {
			return false
		}
		for i := range nf {
			if !uniformCompatible(typ.Field(i).Type) {
				return false
			}
		}
		return true
	}
	return false
}

// IsUniformBlock returns whether T is uniform block compatible,
// see [UniformCompatible].
func IsUniformBlock[T any]() bool {
	return UniformCompatible(reflect.TypeFor[T]())
}

// IsUniformValue returns whether the given value, or the value it
// points to, is uniform block compatible, see [UniformCompatible].
func IsUniformValue(v any) bool {
	return UniformCompatible(reflectx.NonPointerType(reflect.TypeOf(v)))
}

// NewUniformBuffer creates a new buffer of n elements that are statically
// known to be uniform block compatible. It is otherwise the same as [NewBuffer].
func NewUniformBuffer[T UniformValue](ctx Context, n int) *Buffer[T] {
	return NewBuffer[T](ctx, n)
}

// BindUniform binds the buffer to the uniform block slot at index,
// for element types that are statically known to be compatible.
func BindUniform[T UniformValue](b *Buffer[T], index int) {
	rb := b.live()
	rb.state.BindUniformBlock(index, rb.handle)
}

// BindUniformBlock binds the buffer to the uniform block slot at index,
// returning a [NotUniformError] without binding anything if the element
// type is not uniform block compatible. Use it for composite element types
// such as [Tuple2]; see [BindUniform] for the static version.
func BindUniformBlock[T any](b *Buffer[T], index int) error {
	if !IsUniformBlock[T]() {
		return &NotUniformError{Type: reflect.TypeFor[T]()}
	}
	rb := b.live()
	rb.state.BindUniformBlock(index, rb.handle)
	return nil
}
