// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wgpudrv provides a [gpu.Driver] on top of WebGPU.
//
// WebGPU has no persistently mapped device buffers, so each buffer
// object keeps a host shadow of its contents. Map reads the device
// buffer back into the shadow through a staging buffer, and Unmap
// uploads the shadow again unless the buffer was mapped read-only.
package wgpudrv

import (
	"fmt"
	"log/slog"

	"cogentcore.org/gpubuf/base/errors"
	"cogentcore.org/gpubuf/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultUsage is the usage of the device buffers created by
// a new [Driver], which allows them to be used for any purpose.
const DefaultUsage = wgpu.BufferUsageVertex | wgpu.BufferUsageIndex | wgpu.BufferUsageUniform |
	wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst

// buffer is one buffer object.
type buffer struct {
	// device is the device buffer, nil when size is 0.
	device *wgpu.Buffer

	// read is the staging buffer that device is copied into to read it.
	read *wgpu.Buffer

	// size is the requested size in bytes.
	size int

	// allocSize is the size of the GPU buffers, which is
	// size rounded up to 4 bytes as WebGPU requires.
	allocSize int

	// shadow is the host copy of the contents, of allocSize bytes.
	shadow []byte

	mapped bool
	access gpu.Access
}

func (b *buffer) release() {
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.read != nil {
		b.read.Release()
		b.read = nil
	}
}

// Driver is a [gpu.Driver] for a WebGPU [Device].
type Driver struct {
	// Device is the device buffers are created on.
	Device *Device

	// Usage is the usage of the device buffers created by Allocate.
	// CopySrc and CopyDst are always added.
	Usage wgpu.BufferUsage

	buffers map[gpu.Handle]*buffer
	bound   [gpu.BindingPointN]gpu.Handle
	bases   map[gpu.BindingPoint]map[int]gpu.Handle
	last    gpu.Handle
}

var _ gpu.Driver = (*Driver)(nil)

// NewDriver returns a new Driver for the given device.
func NewDriver(dev *Device) *Driver {
	return &Driver{
		Device:  dev,
		Usage:   DefaultUsage,
		buffers: make(map[gpu.Handle]*buffer),
		bases:   make(map[gpu.BindingPoint]map[int]gpu.Handle),
	}
}

func (d *Driver) GenerateHandle() (gpu.Handle, error) {
	d.last++
	d.buffers[d.last] = &buffer{shadow: gpu.AllocBytes(0)}
	return d.last, nil
}

func (d *Driver) Bind(h gpu.Handle, bp gpu.BindingPoint) {
	d.bound[bp] = h
}

// BindBase records h as bound to the given index of bp, for use by
// [Driver.BindGroupEntry]. WebGPU binds buffers through bind groups
// in pipelines, which are outside the scope of this driver.
func (d *Driver) BindBase(bp gpu.BindingPoint, index int, h gpu.Handle) {
	bs := d.bases[bp]
	if bs == nil {
		bs = make(map[int]gpu.Handle)
		d.bases[bp] = bs
	}
	bs[index] = h
	d.bound[bp] = h
}

func (d *Driver) buffer(bp gpu.BindingPoint) (*buffer, error) {
	h := d.bound[bp]
	b := d.buffers[h]
	if b == nil {
		return nil, fmt.Errorf("wgpudrv.Driver: no buffer bound to %v", bp)
	}
	return b, nil
}

func (d *Driver) Allocate(bp gpu.BindingPoint, size int) error {
	b, err := d.buffer(bp)
	if err != nil {
		return err
	}
	if b.mapped {
		return fmt.Errorf("wgpudrv.Driver Allocate: buffer %d is mapped", d.bound[bp])
	}
	b.release()
	b.size = size
	b.allocSize = gpu.MemSizeAlign(size, 4)
	b.shadow = gpu.AllocBytes(b.allocSize)
	if size == 0 {
		return nil
	}
	label := fmt.Sprintf("gpubuf %d", d.bound[bp])
	dev, err := d.Device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(b.allocSize),
		Label:            label,
		Usage:            d.Usage | wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		return err
	}
	b.device = dev
	read, err := d.Device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(b.allocSize),
		Label:            label + " read",
		Usage:            wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if errors.Log(err) != nil {
		b.release()
		return err
	}
	b.read = read
	return nil
}

// readBack copies the device buffer into the shadow.
func (d *Driver) readBack(b *buffer) error {
	cmd, err := d.Device.Device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	cmd.CopyBufferToBuffer(b.device, 0, b.read, 0, uint64(b.allocSize))
	cmdBuffer, err := cmd.Finish(nil)
	if err != nil {
		return err
	}
	defer cmdBuffer.Release()
	d.Device.Queue.Submit(cmdBuffer)
	if err := BufferReadSync(d.Device, b.allocSize, b.read); err != nil {
		return err
	}
	copy(b.shadow, b.read.GetMappedRange(0, uint(b.allocSize)))
	b.read.Unmap()
	return nil
}

// Map reads the buffer back from the device and returns its shadow.
// It returns nil if the buffer is already mapped or the read fails.
// Write-only maps are also read back, so that writes of single
// elements keep the rest of the contents.
func (d *Driver) Map(bp gpu.BindingPoint, access gpu.Access) []byte {
	b, err := d.buffer(bp)
	if errors.Log(err) != nil {
		return nil
	}
	if b.mapped {
		slog.Error("wgpudrv.Driver Map: buffer is already mapped", "handle", d.bound[bp])
		return nil
	}
	if b.device != nil {
		if err := d.readBack(b); err != nil {
			slog.Error("wgpudrv.Driver Map: read back failed", "handle", d.bound[bp], "err", err)
			return nil
		}
	}
	b.mapped = true
	b.access = access
	return b.shadow[:b.size]
}

// Unmap uploads the shadow of the buffer to the device,
// unless it was mapped read-only.
func (d *Driver) Unmap(bp gpu.BindingPoint) bool {
	b, err := d.buffer(bp)
	if err != nil || !b.mapped {
		return false
	}
	b.mapped = false
	if b.access == gpu.ReadOnly || b.device == nil {
		return true
	}
	err = d.Device.Queue.WriteBuffer(b.device, 0, b.shadow)
	return errors.Log(err) == nil
}

func (d *Driver) Destroy(h gpu.Handle) {
	b := d.buffers[h]
	if b == nil {
		return
	}
	b.release()
	delete(d.buffers, h)
	for bp, bh := range d.bound {
		if bh == h {
			d.bound[bp] = 0
		}
	}
	for _, bs := range d.bases {
		for idx, bh := range bs {
			if bh == h {
				delete(bs, idx)
			}
		}
	}
}

// Release destroys all remaining buffers. The device is not released.
func (d *Driver) Release() {
	for h := range d.buffers {
		d.Destroy(h)
	}
}

// BindGroupEntry returns the bind group entry for the buffer bound to
// the given index of bp by [Driver.BindBase], with the given binding
// number in the shader. It returns false if nothing is bound there or
// the buffer has zero size.
func (d *Driver) BindGroupEntry(bp gpu.BindingPoint, index, binding int) (wgpu.BindGroupEntry, bool) {
	b := d.buffers[d.bases[bp][index]]
	if b == nil || b.device == nil {
		return wgpu.BindGroupEntry{}, false
	}
	return wgpu.BindGroupEntry{
		Binding: uint32(binding),
		Buffer:  b.device,
		Offset:  0,
		Size:    wgpu.WholeSize,
	}, true
}

// DeviceBuffer returns the WebGPU buffer for the given handle, which is
// nil for an unknown handle or a buffer of zero size. It can be used
// directly as a vertex or index buffer in a render pass.
func (d *Driver) DeviceBuffer(h gpu.Handle) *wgpu.Buffer {
	if b := d.buffers[h]; b != nil {
		return b.device
	}
	return nil
}
