// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"sync"
	"testing"

	"cogentcore.org/gpubuf/gpu"
	"cogentcore.org/gpubuf/gpu/softgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSkipsRedundantBinds(t *testing.T) {
	drv := softgpu.New()
	st := gpu.NewState(drv)
	assert.Same(t, drv, st.Driver())

	h, err := st.Generate()
	require.NoError(t, err)
	st.Bind(h, gpu.ArrayBuffer)
	st.Bind(h, gpu.ArrayBuffer)
	assert.Equal(t, 1, drv.Stats().Binds)
	assert.Equal(t, h, st.Bound(gpu.ArrayBuffer))

	st.Bind(h, gpu.CopyReadBuffer)
	assert.Equal(t, 2, drv.Stats().Binds)

	require.NoError(t, st.Allocate(h, gpu.ArrayBuffer, 4))
	assert.Equal(t, 2, drv.Stats().Binds)
	assert.NotNil(t, st.Map(h, gpu.ArrayBuffer, gpu.ReadWrite))
	assert.True(t, st.Unmap(h, gpu.ArrayBuffer))
	assert.False(t, st.Unmap(h, gpu.ArrayBuffer))
	assert.Equal(t, 2, drv.Stats().Binds)
}

func TestStateBufferBinds(t *testing.T) {
	ctx, drv := newContext()
	a := gpu.NewBuffer[float32](ctx, 2)
	b := gpu.NewBuffer[float32](ctx, 2)
	binds := drv.Stats().Binds

	// a is rebound before every access, after b was bound
	require.NoError(t, a.Set(0, 1))
	assert.Equal(t, binds+1, drv.Stats().Binds)
	require.NoError(t, a.Set(1, 2))
	assert.Equal(t, binds+1, drv.Stats().Binds)
	assert.Equal(t, a.Handle(), ctx.State().Bound(gpu.ArrayBuffer))

	a.Release()
	assert.Equal(t, gpu.Handle(0), ctx.State().Bound(gpu.ArrayBuffer))
	assert.Equal(t, gpu.Handle(0), drv.Bound(gpu.ArrayBuffer))
	require.NoError(t, b.Set(0, 3))
	b.Release()
	assert.Empty(t, drv.Handles())
}

func TestStateConcurrent(t *testing.T) {
	ctx, drv := newContext()
	bufs := make([]*gpu.Buffer[uint32], 8)
	for i := range bufs {
		bufs[i] = gpu.NewBuffer[uint32](ctx, 16)
	}
	var wg sync.WaitGroup
	for i, buf := range bufs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range buf.Len() {
				assert.NoError(t, buf.Set(j, uint32(i*100+j)))
			}
		}()
	}
	wg.Wait()
	for i, buf := range bufs {
		all, err := buf.Whole()
		require.NoError(t, err)
		for j, v := range all {
			assert.Equal(t, uint32(i*100+j), v)
		}
		buf.Release()
	}
	assert.Equal(t, 0, drv.Stats().Live())
}
