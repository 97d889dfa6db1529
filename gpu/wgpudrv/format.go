// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudrv

import (
	"cogentcore.org/gpubuf/base/errors"
	"cogentcore.org/gpubuf/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// BufferMapAsyncError returns an error message if the status is not success.
func BufferMapAsyncError(status wgpu.BufferMapAsyncStatus) error {
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return errors.New("wgpudrv: BufferMapAsync was not successful: " + status.String())
	}
	return nil
}

// BufferReadSync maps the given buffer for reading, waiting on the
// device until the map is complete. The buffer must be unmapped
// after its mapped range has been used.
func BufferReadSync(dev *Device, size int, buffer *wgpu.Buffer) error {
	var status wgpu.BufferMapAsyncStatus
	err := buffer.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if err != nil {
		return err
	}
	dev.WaitDone()
	return BufferMapAsyncError(status)
}

// vertexFormats maps gpu.Types to WebGPU vertex formats.
var vertexFormats = map[gpu.Types]wgpu.VertexFormat{
	gpu.UndefinedType:  wgpu.VertexFormatUndefined,
	gpu.Int32:          wgpu.VertexFormatSint32,
	gpu.Int32Vector2:   wgpu.VertexFormatSint32x2,
	gpu.Int32Vector3:   wgpu.VertexFormatSint32x3,
	gpu.Int32Vector4:   wgpu.VertexFormatSint32x4,
	gpu.Uint32:         wgpu.VertexFormatUint32,
	gpu.Uint32Vector2:  wgpu.VertexFormatUint32x2,
	gpu.Uint32Vector3:  wgpu.VertexFormatUint32x3,
	gpu.Uint32Vector4:  wgpu.VertexFormatUint32x4,
	gpu.Float32:        wgpu.VertexFormatFloat32,
	gpu.Float32Vector2: wgpu.VertexFormatFloat32x2,
	gpu.Float32Vector3: wgpu.VertexFormatFloat32x3,
	gpu.Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// VertexFormat returns the WebGPU vertex format for the given type,
// and false if the type cannot be used as a vertex attribute.
func VertexFormat(tp gpu.Types) (wgpu.VertexFormat, bool) {
	vf, ok := vertexFormats[tp]
	return vf, ok && tp != gpu.UndefinedType
}

// VertexBufferLayout returns the layout of a vertex buffer holding
// elements of the given types, interleaved in order with the given
// byte offsets, and the given stride.
func VertexBufferLayout(stride int, types []gpu.Types, offsets []int) (wgpu.VertexBufferLayout, error) {
	if len(types) != len(offsets) {
		return wgpu.VertexBufferLayout{}, errors.New("wgpudrv.VertexBufferLayout: types and offsets differ in length")
	}
	attrs := make([]wgpu.VertexAttribute, len(types))
	for i, tp := range types {
		vf, ok := VertexFormat(tp)
		if !ok {
			return wgpu.VertexBufferLayout{}, errors.New("wgpudrv.VertexBufferLayout: type " + tp.String() + " is not a vertex format")
		}
		attrs[i] = wgpu.VertexAttribute{
			Format:         vf,
			Offset:         uint64(offsets[i]),
			ShaderLocation: uint32(i),
		}
	}
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(stride),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attrs,
	}, nil
}
