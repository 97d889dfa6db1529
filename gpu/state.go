// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"
	"sync"
)

// State tracks the driver state of one context: which buffer is
// bound to each binding point, and which buffer is bound to each
// uniform block slot. All driver calls go through State, which skips
// redundant bind calls and holds its lock for the duration of each
// operation. State knows nothing about outstanding mapped views,
// only about bindings.
type State struct {
	mu sync.Mutex

	driver Driver

	// bound is the handle currently bound to each binding point.
	bound [BindingPointN]Handle

	// uniforms is the handle table of uniform block slots.
	uniforms map[int]Handle
}

// NewState returns a new State for the given driver, with nothing bound.
func NewState(drv Driver) *State {
	return &State{driver: drv, uniforms: make(map[int]Handle)}
}

// Driver returns the driver for this state.
func (st *State) Driver() Driver {
	return st.driver
}

// bind must be called with the lock held.
func (st *State) bind(h Handle, bp BindingPoint) {
	if st.bound[bp] == h {
		return
	}
	if Debug {
		slog.Info("gpu.State bind", "handle", h, "point", bp)
	}
	st.driver.Bind(h, bp)
	st.bound[bp] = h
}

// Bind binds the given handle to the given binding point,
// unless it is already bound there.
func (st *State) Bind(h Handle, bp BindingPoint) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bind(h, bp)
}

// Bound returns the handle currently bound to the given binding point.
func (st *State) Bound(bp BindingPoint) Handle {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.bound[bp]
}

// Generate creates a new buffer handle.
func (st *State) Generate() (Handle, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.driver.GenerateHandle()
}

// Allocate binds h to bp and creates zero-initialized storage
// of size bytes for it.
func (st *State) Allocate(h Handle, bp BindingPoint, size int) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bind(h, bp)
	return st.driver.Allocate(bp, size)
}

// Map binds h to bp and maps its storage with the given access,
// returning nil if the driver refuses.
func (st *State) Map(h Handle, bp BindingPoint, access Access) []byte {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bind(h, bp)
	if Debug {
		slog.Info("gpu.State map", "handle", h, "point", bp, "access", access)
	}
	return st.driver.Map(bp, access)
}

// Unmap rebinds h to bp and releases its mapping.
func (st *State) Unmap(h Handle, bp BindingPoint) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.bind(h, bp)
	if Debug {
		slog.Info("gpu.State unmap", "handle", h, "point", bp)
	}
	return st.driver.Unmap(bp)
}

// Destroy deletes the buffer object, resetting any binding of it
// in this state, as the driver does.
func (st *State) Destroy(h Handle) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.driver.Destroy(h)
	for bp, bh := range st.bound {
		if bh == h {
			st.bound[bp] = 0
		}
	}
	for idx, uh := range st.uniforms {
		if uh == h {
			delete(st.uniforms, idx)
		}
	}
}

// BindUniformBlock binds h to the uniform block slot at index.
func (st *State) BindUniformBlock(index int, h Handle) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.driver.BindBase(UniformBuffer, index, h)
	st.bound[UniformBuffer] = h
	st.uniforms[index] = h
}

// UniformBlock returns the handle bound to the uniform block slot at index.
func (st *State) UniformBlock(index int) Handle {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.uniforms[index]
}

// Context is the graphics context boundary needed by buffers:
// it yields the shared driver [State] of the context.
type Context interface {
	State() *State
}

// DeviceContext is a minimal [Context] around a single driver.
type DeviceContext struct {
	state *State
}

// NewContext returns a new [DeviceContext] for the given driver.
func NewContext(drv Driver) *DeviceContext {
	return &DeviceContext{state: NewState(drv)}
}

func (dc *DeviceContext) State() *State { return dc.state }
