// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"
	"unsafe"

	"cogentcore.org/gpubuf/base/errors"
)

// RawBuffer is a type-erased buffer object: a driver handle with a
// fixed byte capacity. It owns the driver resource, which is destroyed
// exactly once by [RawBuffer.Release]. Any [Buffer] can be converted
// to a RawBuffer with [Buffer.IntoRaw]; viewing a RawBuffer as typed
// elements with [RawSlice] or [RawSliceMut] is unchecked.
type RawBuffer struct {
	// handle is the driver handle of the buffer object.
	handle Handle

	// bytes is the byte capacity of the storage.
	bytes int

	// len is the number of elements of the typed buffer that created
	// this buffer, or bytes for a buffer created with [NewRawBuffer].
	len int

	// state is the driver state of the context owning the buffer.
	state *State

	// released is set once the resource has been destroyed.
	released bool
}

// NewRawBuffer creates a new zero-initialized buffer object with the given
// capacity in bytes. Failure to create the driver resource is fatal.
func NewRawBuffer(ctx Context, bytes int) *RawBuffer {
	return newRawBuffer(ctx, bytes, bytes)
}

func newRawBuffer(ctx Context, bytes, n int) *RawBuffer {
	if bytes < 0 || n < 0 {
		panic(fmt.Sprintf("gpu.NewRawBuffer: negative size: %d bytes, %d elements", bytes, n))
	}
	st := ctx.State()
	h := errors.Must1(st.Generate())
	errors.Must(st.Allocate(h, ArrayBuffer, bytes))
	return &RawBuffer{handle: h, bytes: bytes, len: n, state: st}
}

// Handle returns the driver handle of the buffer.
func (rb *RawBuffer) Handle() Handle { return rb.handle }

// Bytes returns the capacity of the buffer in bytes.
func (rb *RawBuffer) Bytes() int { return rb.bytes }

// Len returns the number of elements the buffer was created with.
func (rb *RawBuffer) Len() int { return rb.len }

// Released returns whether [RawBuffer.Release] has been called.
func (rb *RawBuffer) Released() bool { return rb.released }

// Release destroys the driver resource. It is safe to call more than
// once; only the first call has any effect. Any view of the buffer
// must have been released first.
func (rb *RawBuffer) Release() {
	if rb == nil || rb.released {
		return
	}
	rb.released = true
	rb.state.Destroy(rb.handle)
}

// mapBytes binds the buffer and maps it with the given access.
func (rb *RawBuffer) mapBytes(access Access) ([]byte, error) {
	if rb.released {
		return nil, fmt.Errorf("gpu.RawBuffer map %d: %w: buffer has been released", rb.handle, ErrMapFailed)
	}
	b := rb.state.Map(rb.handle, ArrayBuffer, access)
	if b == nil {
		return nil, ErrMapFailed
	}
	return b, nil
}

// unmap rebinds the buffer and releases its mapping.
func (rb *RawBuffer) unmap() {
	if !rb.state.Unmap(rb.handle, ArrayBuffer) {
		slog.Warn("gpu.RawBuffer unmap: driver reported lost mapping", "handle", rb.handle)
	}
}

// mapTyped maps the buffer and returns its contents as a slice of n
// elements of type T, bounded by the mapped byte length.
func mapTyped[T any](rb *RawBuffer, access Access) ([]T, error) {
	b, err := rb.mapBytes(access)
	if err != nil {
		return nil, err
	}
	return bytesAs[T](b, rb.len), nil
}

// bytesAs reinterprets b as up to n elements of type T.
func bytesAs[T any](b []byte, n int) []T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return make([]T, n)
	}
	if len(b) == 0 {
		return []T{}
	}
	if mx := len(b) / size; n > mx {
		n = mx
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}
