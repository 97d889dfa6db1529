// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package softgpu provides a [gpu.Driver] that keeps buffer storage in
// host memory. It is used for headless operation and testing: it counts
// every driver call, refuses overlapping maps like a real driver, and
// supports injecting allocation and mapping failures.
package softgpu

import (
	"fmt"

	"cogentcore.org/gpubuf/gpu"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
)

// Stats counts the calls made to a [Driver].
type Stats struct {
	// Generated is the number of handles generated.
	Generated int

	// Destroyed is the number of live buffers destroyed.
	Destroyed int

	// InvalidDestroys is the number of Destroy calls for a handle
	// that was not live, such as a second destroy of the same buffer.
	InvalidDestroys int

	// Binds is the number of Bind and BindBase calls.
	Binds int

	// Allocations is the number of successful Allocate calls.
	Allocations int

	// Maps is the number of successful Map calls.
	Maps int

	// FailedMaps is the number of Map calls that returned nil.
	FailedMaps int

	// Unmaps is the number of successful Unmap calls.
	Unmaps int
}

// Live returns the number of buffers that have been generated
// and not destroyed.
func (s Stats) Live() int {
	return s.Generated - s.Destroyed
}

// buffer is one buffer object.
type buffer struct {
	data   []byte
	mapped bool
	access gpu.Access

	// view is the memory handed out by Map, which is a copy of data
	// for ReadOnly access.
	view []byte
}

type baseKey struct {
	bp    gpu.BindingPoint
	index int
}

// Driver is a host memory [gpu.Driver].
type Driver struct {
	// buffers holds the live buffers, keyed by uint32 handle.
	buffers *treemap.Map

	bound [gpu.BindingPointN]gpu.Handle
	bases map[baseKey]gpu.Handle
	last  gpu.Handle

	stats Stats

	// FailGenerate, if set, is returned by GenerateHandle.
	FailGenerate error

	// FailAllocate, if set, is returned by Allocate.
	FailAllocate error

	// FailMaps is the number of upcoming Map calls that will fail.
	FailMaps int
}

var _ gpu.Driver = (*Driver)(nil)

// New returns a new Driver with no buffers.
func New() *Driver {
	return &Driver{
		buffers: treemap.NewWith(utils.UInt32Comparator),
		bases:   make(map[baseKey]gpu.Handle),
	}
}

// Stats returns the call counts so far.
func (d *Driver) Stats() Stats {
	return d.stats
}

func (d *Driver) buffer(h gpu.Handle) *buffer {
	if h == 0 {
		return nil
	}
	b, ok := d.buffers.Get(uint32(h))
	if !ok {
		return nil
	}
	return b.(*buffer)
}

func (d *Driver) GenerateHandle() (gpu.Handle, error) {
	if d.FailGenerate != nil {
		return 0, d.FailGenerate
	}
	d.last++
	d.buffers.Put(uint32(d.last), &buffer{data: gpu.AllocBytes(0)})
	d.stats.Generated++
	return d.last, nil
}

func (d *Driver) Bind(h gpu.Handle, bp gpu.BindingPoint) {
	d.stats.Binds++
	d.bound[bp] = h
}

func (d *Driver) BindBase(bp gpu.BindingPoint, index int, h gpu.Handle) {
	d.stats.Binds++
	d.bases[baseKey{bp, index}] = h
	d.bound[bp] = h
}

func (d *Driver) Allocate(bp gpu.BindingPoint, size int) error {
	if d.FailAllocate != nil {
		return d.FailAllocate
	}
	b := d.buffer(d.bound[bp])
	if b == nil {
		return fmt.Errorf("softgpu.Driver Allocate: no buffer bound to %v", bp)
	}
	if b.mapped {
		return fmt.Errorf("softgpu.Driver Allocate: buffer %d bound to %v is mapped", d.bound[bp], bp)
	}
	b.data = gpu.AllocBytes(size)
	d.stats.Allocations++
	return nil
}

func (d *Driver) Map(bp gpu.BindingPoint, access gpu.Access) []byte {
	b := d.buffer(d.bound[bp])
	if b == nil || b.mapped || d.FailMaps > 0 {
		if d.FailMaps > 0 {
			d.FailMaps--
		}
		d.stats.FailedMaps++
		return nil
	}
	b.mapped = true
	b.access = access
	if access == gpu.ReadOnly {
		b.view = gpu.AllocBytes(len(b.data))
		copy(b.view, b.data)
	} else {
		b.view = b.data
	}
	d.stats.Maps++
	return b.view
}

func (d *Driver) Unmap(bp gpu.BindingPoint) bool {
	b := d.buffer(d.bound[bp])
	if b == nil || !b.mapped {
		return false
	}
	b.mapped = false
	b.view = nil
	d.stats.Unmaps++
	return true
}

func (d *Driver) Destroy(h gpu.Handle) {
	if d.buffer(h) == nil {
		d.stats.InvalidDestroys++
		return
	}
	d.buffers.Remove(uint32(h))
	d.stats.Destroyed++
	for bp, bh := range d.bound {
		if bh == h {
			d.bound[bp] = 0
		}
	}
	for k, bh := range d.bases {
		if bh == h {
			delete(d.bases, k)
		}
	}
}

// Handles returns the live buffer handles in increasing order.
func (d *Driver) Handles() []gpu.Handle {
	keys := d.buffers.Keys()
	hs := make([]gpu.Handle, len(keys))
	for i, k := range keys {
		hs[i] = gpu.Handle(k.(uint32))
	}
	return hs
}

// Contents returns a copy of the storage of the given buffer,
// or nil if it is not live.
func (d *Driver) Contents(h gpu.Handle) []byte {
	b := d.buffer(h)
	if b == nil {
		return nil
	}
	c := make([]byte, len(b.data))
	copy(c, b.data)
	return c
}

// Mapped returns whether the given buffer is currently mapped.
func (d *Driver) Mapped(h gpu.Handle) bool {
	b := d.buffer(h)
	return b != nil && b.mapped
}

// Bound returns the handle bound to the given binding point.
func (d *Driver) Bound(bp gpu.BindingPoint) gpu.Handle {
	return d.bound[bp]
}

// BoundBase returns the handle bound to the given index of an
// indexed binding point.
func (d *Driver) BoundBase(bp gpu.BindingPoint, index int) gpu.Handle {
	return d.bases[baseKey{bp, index}]
}
