// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/gpubuf/gpu"
	"cogentcore.org/gpubuf/gpu/softgpu"
	"cogentcore.org/gpubuf/gpu/wgpudrv"
)

// newContext returns a buffer context for the configured driver,
// and a function that releases the driver.
func newContext(cfg *Config) (*gpu.DeviceContext, func(), error) {
	switch cfg.Driver {
	case "", "soft":
		drv := softgpu.New()
		return gpu.NewContext(drv), func() {
			st := drv.Stats()
			slog.Debug("softgpu stats", "generated", st.Generated, "destroyed", st.Destroyed,
				"maps", st.Maps, "unmaps", st.Unmaps, "binds", st.Binds, "live", st.Live())
		}, nil
	case "webgpu":
		dev, err := wgpudrv.NoDisplayDevice(cfg.Fallback)
		if err != nil {
			return nil, nil, fmt.Errorf("gpubuf: WebGPU device: %w", err)
		}
		drv := wgpudrv.NewDriver(dev)
		return gpu.NewContext(drv), func() {
			drv.Release()
			dev.Release()
		}, nil
	}
	return nil, nil, fmt.Errorf("gpubuf: unknown driver %q (want soft or webgpu)", cfg.Driver)
}
