// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package softgpu

import (
	"errors"
	"testing"

	"cogentcore.org/gpubuf/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifecycle(t *testing.T) {
	d := New()
	h1, err := d.GenerateHandle()
	require.NoError(t, err)
	h2, err := d.GenerateHandle()
	require.NoError(t, err)
	assert.NotEqual(t, gpu.Handle(0), h1)
	assert.Equal(t, []gpu.Handle{h1, h2}, d.Handles())

	d.Bind(h2, gpu.ArrayBuffer)
	require.NoError(t, d.Allocate(gpu.ArrayBuffer, 5))
	assert.Equal(t, make([]byte, 5), d.Contents(h2))
	assert.Empty(t, d.Contents(h1))

	d.Destroy(h2)
	d.Destroy(h2)
	d.Destroy(0)
	st := d.Stats()
	assert.Equal(t, 2, st.Generated)
	assert.Equal(t, 1, st.Destroyed)
	assert.Equal(t, 2, st.InvalidDestroys)
	assert.Equal(t, 1, st.Live())
	assert.Equal(t, gpu.Handle(0), d.Bound(gpu.ArrayBuffer))
	assert.Nil(t, d.Contents(h2))
	assert.Equal(t, []gpu.Handle{h1}, d.Handles())
}

func TestMap(t *testing.T) {
	d := New()
	assert.Nil(t, d.Map(gpu.ArrayBuffer, gpu.ReadWrite), "nothing bound")
	assert.False(t, d.Unmap(gpu.ArrayBuffer))

	h, _ := d.GenerateHandle()
	d.Bind(h, gpu.CopyWriteBuffer)
	require.NoError(t, d.Allocate(gpu.CopyWriteBuffer, 4))

	w := d.Map(gpu.CopyWriteBuffer, gpu.WriteOnly)
	require.Len(t, w, 4)
	assert.True(t, d.Mapped(h))
	assert.Nil(t, d.Map(gpu.CopyWriteBuffer, gpu.ReadOnly), "already mapped")
	assert.Error(t, d.Allocate(gpu.CopyWriteBuffer, 8), "mapped")
	copy(w, []byte{1, 2, 3, 4})
	assert.True(t, d.Unmap(gpu.CopyWriteBuffer))
	assert.False(t, d.Mapped(h))
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Contents(h))

	r := d.Map(gpu.CopyWriteBuffer, gpu.ReadOnly)
	r[0] = 9
	assert.True(t, d.Unmap(gpu.CopyWriteBuffer))
	assert.Equal(t, []byte{1, 2, 3, 4}, d.Contents(h))

	st := d.Stats()
	assert.Equal(t, 2, st.Maps)
	assert.Equal(t, 2, st.Unmaps)
	assert.Equal(t, 2, st.FailedMaps)
}

func TestFaults(t *testing.T) {
	d := New()
	errGen := errors.New("no handles")
	d.FailGenerate = errGen
	_, err := d.GenerateHandle()
	assert.ErrorIs(t, err, errGen)
	d.FailGenerate = nil

	h, err := d.GenerateHandle()
	require.NoError(t, err)
	assert.Error(t, d.Allocate(gpu.ArrayBuffer, 4), "nothing bound")
	d.Bind(h, gpu.ArrayBuffer)
	errAlloc := errors.New("no memory")
	d.FailAllocate = errAlloc
	assert.ErrorIs(t, d.Allocate(gpu.ArrayBuffer, 4), errAlloc)
	d.FailAllocate = nil
	require.NoError(t, d.Allocate(gpu.ArrayBuffer, 4))

	d.FailMaps = 2
	assert.Nil(t, d.Map(gpu.ArrayBuffer, gpu.ReadOnly))
	assert.Nil(t, d.Map(gpu.ArrayBuffer, gpu.ReadOnly))
	assert.NotNil(t, d.Map(gpu.ArrayBuffer, gpu.ReadOnly))
	assert.Equal(t, 0, d.FailMaps)
}

func TestBindBase(t *testing.T) {
	d := New()
	h, _ := d.GenerateHandle()
	d.BindBase(gpu.UniformBuffer, 3, h)
	assert.Equal(t, h, d.BoundBase(gpu.UniformBuffer, 3))
	assert.Equal(t, h, d.Bound(gpu.UniformBuffer))
	assert.Equal(t, gpu.Handle(0), d.BoundBase(gpu.UniformBuffer, 0))
	d.Destroy(h)
	assert.Equal(t, gpu.Handle(0), d.BoundBase(gpu.UniformBuffer, 3))
	assert.Equal(t, 1, d.Stats().Binds)
}
