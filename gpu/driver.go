// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

// Handle is an opaque driver identifier for a buffer object.
// The zero Handle never names a live buffer.
type Handle uint32

// BindingPoint is a named slot in driver state through which the
// active buffer for an operation is selected.
type BindingPoint int32

const (
	// ArrayBuffer is the binding point used for all buffer
	// allocation and data transfer in this package.
	ArrayBuffer BindingPoint = iota

	// ElementArrayBuffer holds vertex index data.
	ElementArrayBuffer

	// UniformBuffer holds uniform block storage, see [BindUniformBlock].
	UniformBuffer

	// CopyReadBuffer and CopyWriteBuffer are used for copies between buffers.
	CopyReadBuffer
	CopyWriteBuffer

	BindingPointN
)

var bindingPointNames = [...]string{"ArrayBuffer", "ElementArrayBuffer", "UniformBuffer", "CopyReadBuffer", "CopyWriteBuffer"}

func (bp BindingPoint) String() string {
	if bp < 0 || bp >= BindingPointN {
		return "BindingPoint(?)"
	}
	return bindingPointNames[bp]
}

// Access is the access mode requested when mapping a buffer.
type Access int32

const (
	// ReadOnly maps the buffer for reading; writes through the
	// mapping are undefined and may be discarded by the driver.
	ReadOnly Access = iota

	// WriteOnly maps the buffer for writing.
	WriteOnly

	// ReadWrite maps the buffer for reading and writing.
	ReadWrite
)

func (ac Access) String() string {
	switch ac {
	case ReadOnly:
		return "ReadOnly"
	case WriteOnly:
		return "WriteOnly"
	case ReadWrite:
		return "ReadWrite"
	}
	return "Access(?)"
}

// Driver is the set of driver primitives needed to manage buffer objects.
// All methods are called with exclusive access to the owning [State],
// which is the only component that should call them directly.
// Drivers are not required to be safe for concurrent use.
type Driver interface {
	// GenerateHandle creates a new buffer object with no storage.
	GenerateHandle() (Handle, error)

	// Bind binds the given handle to the given binding point.
	// Binding the zero Handle unbinds the point.
	Bind(h Handle, bp BindingPoint)

	// BindBase binds the given handle to the given index of an
	// indexed binding point (e.g. a uniform block slot).
	BindBase(bp BindingPoint, index int, h Handle)

	// Allocate creates zero-initialized storage of size bytes for
	// the buffer bound to bp, replacing any previous storage.
	Allocate(bp BindingPoint, size int) error

	// Map maps the storage of the buffer bound to bp into client
	// memory, returning nil if the driver cannot map it, including
	// when it is already mapped. The returned bytes are only valid
	// until the matching Unmap.
	Map(bp BindingPoint, access Access) []byte

	// Unmap releases the mapping of the buffer bound to bp,
	// returning false if there was no mapping or its contents
	// were lost.
	Unmap(bp BindingPoint) bool

	// Destroy deletes the buffer object and its storage.
	// Any binding of the handle is reset.
	Destroy(h Handle)
}
