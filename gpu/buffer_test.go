// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"errors"
	"math"
	"testing"

	"cogentcore.org/gpubuf/gpu"
	"cogentcore.org/gpubuf/gpu/softgpu"
	"cogentcore.org/gpubuf/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (*gpu.DeviceContext, *softgpu.Driver) {
	drv := softgpu.New()
	return gpu.NewContext(drv), drv
}

func TestBufferScenario(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[float32](ctx, 5)
	assert.Equal(t, 5, buf.Len())

	require.NoError(t, buf.Fill([]float32{1, 2, 3, 4, 5}))
	all, err := buf.Whole()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, all)

	assert.NoError(t, buf.Set(3, 3.14))
	v, ok := buf.Get(3)
	assert.True(t, ok)
	assert.Equal(t, float32(3.14), v)

	_, ok = buf.Get(10)
	assert.False(t, ok)

	err = buf.Set(10, 0)
	var ov *gpu.OverflowError
	require.True(t, errors.As(err, &ov))
	assert.Equal(t, gpu.OverflowError{Index: 10, Size: 5}, *ov)
	assert.ErrorIs(t, err, gpu.ErrOverflow)
	assert.Equal(t, "buffer overflow (index = 10, size = 5)", err.Error())

	all, err = buf.Whole()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3, 3.14, 5}, all)
	assert.Equal(t, 5, buf.Len())

	buf.Release()
	st := drv.Stats()
	assert.Equal(t, 1, st.Destroyed)
	assert.Equal(t, 0, st.Live())
	assert.Equal(t, st.Maps, st.Unmaps)
}

func TestBufferRoundTrip(t *testing.T) {
	ctx, _ := newContext()
	buf := gpu.NewBuffer[int32](ctx, 16)
	defer buf.Release()
	for i := range buf.Len() {
		require.NoError(t, buf.Set(i, int32(i*i-7)))
	}
	for i := range buf.Len() {
		v, ok := buf.Get(i)
		assert.True(t, ok)
		assert.Equal(t, int32(i*i-7), v)
	}
	_, ok := buf.Get(-1)
	assert.False(t, ok)
	assert.ErrorIs(t, buf.Set(-1, 0), gpu.ErrOverflow)
}

func TestBufferZeroInitialized(t *testing.T) {
	ctx, _ := newContext()
	buf := gpu.NewBuffer[math32.Vector4](ctx, 3)
	defer buf.Release()
	all, err := buf.Whole()
	require.NoError(t, err)
	assert.Equal(t, make([]math32.Vector4, 3), all)
}

func TestBufferZeroLength(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[float64](ctx, 0)
	assert.Equal(t, 0, buf.Len())
	assert.Equal(t, 0, buf.Raw().Bytes())

	all, err := buf.Whole()
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.NoError(t, buf.Fill(nil))
	assert.NoError(t, buf.Clear(1))
	_, ok := buf.Get(0)
	assert.False(t, ok)
	assert.ErrorIs(t, buf.Set(0, 1), gpu.ErrOverflow)

	buf.Release()
	assert.Equal(t, 0, drv.Stats().Live())
}

func TestWriteWholeMismatch(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[uint16](ctx, 4)
	defer buf.Release()
	require.NoError(t, buf.Fill([]uint16{9, 8, 7, 6}))
	maps := drv.Stats().Maps

	err := buf.WriteWhole([]uint16{1, 2})
	var few *gpu.TooFewValuesError
	require.True(t, errors.As(err, &few))
	assert.Equal(t, 2, few.Given)
	assert.Equal(t, 4, few.Expected)
	assert.ErrorIs(t, err, gpu.ErrSizeMismatch)

	err = buf.WriteWhole([]uint16{1, 2, 3, 4, 5})
	var many *gpu.TooManyValuesError
	require.True(t, errors.As(err, &many))
	assert.Equal(t, 5, many.Given)
	assert.Equal(t, 4, many.Expected)
	assert.Equal(t, "too many values passed to the buffer (nb = 5, size = 4)", err.Error())

	assert.Equal(t, maps, drv.Stats().Maps, "no driver call on a size mismatch")
	all, err := buf.Whole()
	require.NoError(t, err)
	assert.Equal(t, []uint16{9, 8, 7, 6}, all)
}

func TestClear(t *testing.T) {
	ctx, _ := newContext()
	buf := gpu.NewBuffer[[2]float32](ctx, 7)
	defer buf.Release()
	v := [2]float32{0.5, -2}
	require.NoError(t, buf.Clear(v))
	all, err := buf.Whole()
	require.NoError(t, err)
	assert.Len(t, all, 7)
	for _, e := range all {
		assert.Equal(t, v, e)
	}
}

func TestBufferMapFailed(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[float32](ctx, 2)
	defer buf.Release()

	drv.FailMaps = 1
	assert.ErrorIs(t, buf.Set(0, 1), gpu.ErrMapFailed)
	drv.FailMaps = 1
	assert.ErrorIs(t, buf.Fill([]float32{1, 2}), gpu.ErrMapFailed)
	drv.FailMaps = 1
	_, err := buf.Whole()
	assert.ErrorIs(t, err, gpu.ErrMapFailed)
	drv.FailMaps = 1
	_, ok := buf.Get(0)
	assert.False(t, ok)

	assert.False(t, drv.Mapped(buf.Handle()))
	assert.NoError(t, buf.Set(0, 1))
}

func TestBufferPanics(t *testing.T) {
	ctx, drv := newContext()
	assert.Panics(t, func() { gpu.NewBuffer[float32](ctx, -1) })
	assert.Panics(t, func() { gpu.NewBuffer[*int](ctx, 1) })
	assert.Panics(t, func() { gpu.NewBuffer[string](ctx, 1) })
	assert.PanicsWithValue(t, "gpu.NewBuffer: size overflow for 2305843009213693952 elements of 8 bytes",
		func() { gpu.NewBuffer[uint64](ctx, 1<<61) })
	assert.Panics(t, func() { gpu.NewBuffer[math32.Vector4](ctx, math.MaxInt/8) })
	assert.Zero(t, drv.Stats().Generated, "no handle is generated for an overflowing size")

	drv.FailGenerate = errors.New("out of handles")
	assert.Panics(t, func() { gpu.NewBuffer[float32](ctx, 1) })
	drv.FailGenerate = nil
	drv.FailAllocate = errors.New("out of memory")
	assert.Panics(t, func() { gpu.NewBuffer[float32](ctx, 1) })
}

func TestIntoRaw(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[uint32](ctx, 3)
	h := buf.Handle()
	raw := buf.IntoRaw()
	assert.Equal(t, h, raw.Handle())
	assert.Equal(t, 12, raw.Bytes())
	assert.Equal(t, 3, raw.Len())

	buf.Release()
	assert.Equal(t, 0, drv.Stats().Destroyed, "typed release after IntoRaw does nothing")
	assert.Panics(t, func() { buf.Set(0, 1) })

	raw.Release()
	raw.Release()
	st := drv.Stats()
	assert.Equal(t, 1, st.Destroyed)
	assert.Equal(t, 0, st.InvalidDestroys)
	assert.Equal(t, 0, st.Live())
	assert.True(t, raw.Released())
}

func TestRawFrom(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[math32.Vector2](ctx, 2)
	require.NoError(t, buf.Set(1, math32.Vec2(3, 4)))
	raw := gpu.RawFrom(buf)
	err := gpu.WithRawSlice(raw, func(s []float32) error {
		assert.Equal(t, []float32{0, 0}, s, "length is the element count of the typed buffer")
		return nil
	})
	require.NoError(t, err)
	err = gpu.WithRawSlice(raw, func(s []math32.Vector2) error {
		assert.Equal(t, math32.Vec2(3, 4), s[1])
		return nil
	})
	require.NoError(t, err)
	raw.Release()
	buf.Release()
	assert.Equal(t, 1, drv.Stats().Destroyed)
}

func TestReleaseTwice(t *testing.T) {
	ctx, drv := newContext()
	buf := gpu.NewBuffer[int8](ctx, 3)
	buf.Release()
	buf.Release()
	assert.Equal(t, 1, drv.Stats().Destroyed)
	assert.Equal(t, 0, drv.Stats().InvalidDestroys)
	assert.Equal(t, 3, buf.Len())
}

func TestElementType(t *testing.T) {
	ctx, _ := newContext()
	buf := gpu.NewBuffer[math32.Matrix4](ctx, 1)
	defer buf.Release()
	assert.Equal(t, gpu.Float32Matrix4, buf.ElementType())
	assert.Equal(t, 64, buf.Raw().Bytes())
}
