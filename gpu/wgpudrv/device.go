// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wgpudrv

import (
	"cogentcore.org/gpubuf/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds a WebGPU logical device and its queue, along with
// the instance and adapter it was created from.
type Device struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter

	// Device is the logical device.
	Device *wgpu.Device

	// Queue is the queue for the device.
	Queue *wgpu.Queue
}

// NoDisplayDevice returns a new Device for headless operation,
// without any surface. If fallback is true a software adapter is
// requested, which is useful for running on CI machines.
func NoDisplayDevice(fallback bool) (*Device, error) {
	inst := wgpu.CreateInstance(nil)
	if inst == nil {
		return nil, errors.New("wgpudrv.NoDisplayDevice: WebGPU instance could not be created")
	}
	dv := &Device{Instance: inst}
	a, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: fallback,
		PowerPreference:      wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		dv.Release()
		return nil, err
	}
	dv.Adapter = a
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "gpubuf device",
	})
	if err != nil {
		dv.Release()
		return nil, err
	}
	dv.Device = d
	dv.Queue = d.GetQueue()
	return dv, nil
}

// WaitDone waits until the device is idle.
func (dv *Device) WaitDone() {
	dv.Device.Poll(true, nil)
}

// Release releases the device and everything it was created from.
func (dv *Device) Release() {
	if dv.Queue != nil {
		dv.Queue.Release()
		dv.Queue = nil
	}
	if dv.Device != nil {
		dv.Device.Release()
		dv.Device = nil
	}
	if dv.Adapter != nil {
		dv.Adapter.Release()
		dv.Adapter = nil
	}
	if dv.Instance != nil {
		dv.Instance.Release()
		dv.Instance = nil
	}
}
