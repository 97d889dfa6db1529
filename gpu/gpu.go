// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu provides typed, fixed-size GPU buffer objects on top of
// a minimal map / unmap driver interface.
//
// A [Buffer] is a typed region of GPU memory holding a fixed number of
// elements; it cannot be resized. All access goes through the driver
// [State] of its [Context], which binds the buffer before any map or
// transfer:
//
//	buf := gpu.NewBuffer[float32](ctx, 5)
//	defer buf.Release()
//	buf.Fill([]float32{1, 2, 3, 4, 5})
//	buf.Set(3, 3.14)
//	v, ok := buf.Get(3)
//
// A typed buffer can be erased to a [RawBuffer] with [Buffer.IntoRaw],
// and a raw buffer can be viewed as any element type with [RawSlice]
// and [RawSliceMut]. That reinterpretation is not checked: the caller
// asserts the element type is compatible with the layout of the data.
//
// Views ([Slice], [SliceMut]) map the buffer for as long as they are
// held, and must be released before any other view or transfer touches
// the same buffer. Only one view per buffer may be outstanding; a second
// overlapping map is a precondition violation that this package does not
// detect (drivers typically refuse it, giving [ErrMapFailed]).
// Prefer [Buffer.WithSlice] and [Buffer.WithSliceMut], which release the
// view on every exit path.
//
// Types that can be used for uniform block storage are enumerated by
// [UniformValue] and [UniformCompatible]. The std140 alignment rules are
// not checked: the caller is responsible for the padding of the data.
package gpu

import "unsafe"

// Debug is whether to print debugging information for driver calls.
var Debug = false

// MemSizeAlign returns the size aligned according to align byte increments
// e.g., if align = 16 and size = 12, it returns 16
func MemSizeAlign(size, align int) int {
	if size%align == 0 {
		return size
	}
	nb := size / align
	return (nb + 1) * align
}

// AllocBytes returns n zeroed bytes whose storage is 8-byte aligned,
// so that drivers can hand them out as mapped memory that is valid
// for any element type. The result is never nil.
func AllocBytes(n int) []byte {
	if n == 0 {
		return []byte{}
	}
	words := make([]uint64, MemSizeAlign(n, 8)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n)
}
