// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"math"
	"reflect"
	"sync"
	"unsafe"

	"cogentcore.org/gpubuf/base/errors"
	"cogentcore.org/gpubuf/base/reflectx"
	"cogentcore.org/gpubuf/base/slicesx"
)

// Buffer is a region of GPU memory holding a fixed number of elements
// of type T, which cannot be resized. The size is a number of elements,
// not bytes. T must not contain pointers, strings, slices or other
// references, as elements are copied bitwise to and from GPU memory.
//
// A Buffer exclusively owns its driver resource, which is destroyed by
// [Buffer.Release], unless ownership has been passed on with
// [Buffer.IntoRaw]. Every access maps and unmaps the buffer; use a view
// ([Buffer.WithSlice]) for many element accesses in a row.
type Buffer[T any] struct {
	// raw is nil once the buffer has been released or converted to raw.
	raw *RawBuffer

	len int
}

// elementChecked records element types already checked for pointers.
var elementChecked sync.Map

func checkElement[T any]() {
	typ := reflect.TypeFor[T]()
	if _, ok := elementChecked.Load(typ); ok {
		return
	}
	if reflectx.HasPointers(typ) {
		panic(fmt.Sprintf("gpu.NewBuffer: element type %v contains pointers and cannot be stored in GPU memory", typ))
	}
	elementChecked.Store(typ, true)
}

// NewBuffer creates a new zero-initialized buffer of n elements of type T
// in the given context. A length of zero is valid. Failure to create the
// driver resource is fatal.
func NewBuffer[T any](ctx Context, n int) *Buffer[T] {
	checkElement[T]()
	if n < 0 {
		panic(fmt.Sprintf("gpu.NewBuffer: negative length %d", n))
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > 0 && n > math.MaxInt/size {
		panic(fmt.Sprintf("gpu.NewBuffer: size overflow for %d elements of %d bytes", n, size))
	}
	bytes := n * size
	return &Buffer[T]{raw: newRawBuffer(ctx, bytes, n), len: n}
}

func (b *Buffer[T]) live() *RawBuffer {
	if b.raw == nil {
		panic("gpu.Buffer: use of a buffer after Release or IntoRaw")
	}
	return b.raw
}

// Len returns the number of elements in the buffer, which never changes.
func (b *Buffer[T]) Len() int {
	return b.len
}

// Handle returns the driver handle of the buffer.
func (b *Buffer[T]) Handle() Handle {
	return b.live().handle
}

// ElementType returns the GPU data type of the elements.
func (b *Buffer[T]) ElementType() Types {
	return TypeOf(reflect.TypeFor[T]())
}

// Raw returns the underlying raw buffer, which remains owned
// by this buffer. Use [Buffer.IntoRaw] to take ownership.
func (b *Buffer[T]) Raw() *RawBuffer {
	return b.live()
}

// Get returns the element at index i, and false if i is out of range.
// It maps the buffer read-only for the duration of the copy. A map
// failure is logged and also reported as false.
func (b *Buffer[T]) Get(i int) (T, bool) {
	var zero T
	if i < 0 || i >= b.len {
		return zero, false
	}
	rb := b.live()
	data, err := mapTyped[T](rb, ReadOnly)
	if errors.Log(err) != nil {
		return zero, false
	}
	defer rb.unmap()
	return data[i], true
}

// At is the same as [Buffer.Get].
func (b *Buffer[T]) At(i int) (T, bool) {
	return b.Get(i)
}

// Set sets the element at index i, returning an [OverflowError]
// if i is out of range. It maps the buffer write-only.
func (b *Buffer[T]) Set(i int, v T) error {
	if i < 0 || i >= b.len {
		return &OverflowError{Index: i, Size: b.len}
	}
	rb := b.live()
	data, err := mapTyped[T](rb, WriteOnly)
	if err != nil {
		return err
	}
	defer rb.unmap()
	data[i] = v
	return nil
}

// WriteWhole replaces the whole content of the buffer with the given
// values, which must have exactly [Buffer.Len] elements. It returns a
// [TooFewValuesError] or [TooManyValuesError] otherwise, without writing
// anything.
func (b *Buffer[T]) WriteWhole(values []T) error {
	nv := len(values)
	switch {
	case nv < b.len:
		return &TooFewValuesError{Given: nv, Expected: b.len}
	case nv > b.len:
		return &TooManyValuesError{Given: nv, Expected: b.len}
	}
	rb := b.live()
	data, err := mapTyped[T](rb, WriteOnly)
	if err != nil {
		return err
	}
	defer rb.unmap()
	copy(data, values)
	return nil
}

// Fill is the same as [Buffer.WriteWhole].
func (b *Buffer[T]) Fill(values []T) error {
	return b.WriteWhole(values)
}

// Clear sets every element of the buffer to v.
func (b *Buffer[T]) Clear(v T) error {
	return b.WriteWhole(slicesx.Repeat(v, b.len))
}

// Whole returns a copy of the whole content of the buffer.
func (b *Buffer[T]) Whole() ([]T, error) {
	rb := b.live()
	data, err := mapTyped[T](rb, ReadOnly)
	if err != nil {
		return nil, err
	}
	defer rb.unmap()
	values := make([]T, len(data))
	copy(values, data)
	return values, nil
}

// Slice returns an immutable view of the buffer, which must be released.
func (b *Buffer[T]) Slice() (*Slice[T], error) {
	return RawSlice[T](b.live())
}

// SliceMut returns a mutable view of the buffer, which must be released.
func (b *Buffer[T]) SliceMut() (*SliceMut[T], error) {
	return RawSliceMut[T](b.live())
}

// WithSlice calls fn with an immutable view of the buffer, which is
// released when fn returns or panics. The slice must not be retained.
func (b *Buffer[T]) WithSlice(fn func(s []T) error) error {
	return WithRawSlice(b.live(), fn)
}

// WithSliceMut calls fn with a mutable view of the buffer, which is
// released when fn returns or panics, making the changes visible to
// subsequent accesses. The slice must not be retained.
func (b *Buffer[T]) WithSliceMut(fn func(s []T) error) error {
	return WithRawSliceMut(b.live(), fn)
}

// IntoRaw converts the buffer to its raw, type-erased form, which takes
// over ownership of the driver resource. The typed buffer cannot be used
// anymore, and its [Buffer.Release] does nothing. There is no checked
// way back from a raw buffer to a typed one.
func (b *Buffer[T]) IntoRaw() *RawBuffer {
	rb := b.live()
	b.raw = nil
	return rb
}

// RawFrom converts the given buffer to its raw form, see [Buffer.IntoRaw].
func RawFrom[T any](b *Buffer[T]) *RawBuffer {
	return b.IntoRaw()
}

// Release destroys the driver resource, unless it has already been
// released or passed on with [Buffer.IntoRaw].
func (b *Buffer[T]) Release() {
	if b.raw == nil {
		return
	}
	b.raw.Release()
	b.raw = nil
}
