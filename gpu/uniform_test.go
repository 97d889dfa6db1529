// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu_test

import (
	"reflect"
	"sync"
	"testing"

	"cogentcore.org/gpubuf/gpu"
	"cogentcore.org/gpubuf/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lightParams struct {
	Color     math32.Vector4
	Direction math32.Vector4
	Intensity float32
}

type recursive struct {
	Value float32
	Next  []recursive
}

type celsius float32

func TestUniformCompatible(t *testing.T) {
	compatible := []any{
		float32(0), float64(0), int8(0), uint8(0), int16(0), uint16(0), int32(0), uint32(0), true,
		celsius(0),
		[2]float32{}, [3]int32{}, [4]bool{}, [4]uint8{},
		math32.Vector2{}, math32.Vector3{}, math32.Vector4{}, math32.Vector3i{},
		math32.Matrix2{}, math32.Matrix3{}, math32.Matrix4{},
		[2][2]float32{}, [3][3]float32{}, [4][4]float32{},
		gpu.Tuple2[float32, math32.Vector3]{},
		gpu.Tuple9[int8, int16, int32, uint8, uint16, uint32, float32, float64, bool]{},
		gpu.Tuple3[math32.Matrix4, [4]float32, gpu.Tuple2[int32, int32]]{},
		lightParams{},
		[]float32{}, []math32.Vector4{}, [][4][4]float32{},
		[]gpu.Tuple2[float32, math32.Vector3]{},
	}
	for _, v := range compatible {
		assert.True(t, gpu.IsUniformValue(v), "%T", v)
	}

	incompatible := []any{
		int(0), uint(0), int64(0), uint64(0), "", complex64(0),
		[1]float32{}, [5]float32{}, [3]int64{},
		[2][3]float32{}, [2][2]int32{}, [2][2]float64{},
		struct{ A float32 }{},
		struct{ A, B float32; C string }{},
		struct {
			A float32
			B []float32
		}{},
		gpu.Tuple2[float32, []float32]{},
		gpu.Tuple2[[]math32.Vector4, int32]{},
		map[int]float32{}, []string{}, [][]float32{},
		recursive{}, []recursive{},
	}
	for _, v := range incompatible {
		assert.False(t, gpu.IsUniformValue(v), "%T", v)
	}

	assert.True(t, gpu.IsUniformValue(&math32.Vector4{}))
	assert.False(t, gpu.UniformCompatible(nil))
	assert.True(t, gpu.IsUniformBlock[gpu.Tuple2[float32, float32]]())
	assert.False(t, gpu.IsUniformBlock[gpu.Tuple2[float32, int]]())
}

func TestUniformCompatibleConcurrent(t *testing.T) {
	type block struct {
		Model, View math32.Matrix4
		Light       gpu.Tuple3[math32.Vector4, math32.Vector4, float32]
	}
	type slot struct {
		A math32.Vector2
		B [4][4]float32
	}
	var wg sync.WaitGroup
	results := make([][2]bool, 16)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = [2]bool{gpu.IsUniformBlock[block](), gpu.IsUniformBlock[[]slot]()}
		}()
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, [2]bool{true, true}, r)
	}
}

func TestBindUniformBlock(t *testing.T) {
	ctx, drv := newContext()
	st := ctx.State()

	params := gpu.NewBuffer[lightParams](ctx, 1)
	defer params.Release()
	require.NoError(t, params.Set(0, lightParams{Color: math32.Vec4(1, 1, 1, 1), Intensity: 2}))
	require.NoError(t, gpu.BindUniformBlock(params, 0))
	assert.Equal(t, params.Handle(), st.UniformBlock(0))
	assert.Equal(t, params.Handle(), drv.BoundBase(gpu.UniformBuffer, 0))

	mvp := gpu.NewUniformBuffer[math32.Matrix4](ctx, 1)
	require.NoError(t, mvp.Set(0, math32.Identity4()))
	gpu.BindUniform(mvp, 1)
	assert.Equal(t, mvp.Handle(), st.UniformBlock(1))
	assert.Equal(t, mvp.Handle(), drv.BoundBase(gpu.UniformBuffer, 1))

	bad := gpu.NewBuffer[int64](ctx, 1)
	defer bad.Release()
	err := gpu.BindUniformBlock(bad, 2)
	assert.ErrorIs(t, err, gpu.ErrNotUniform)
	var nu *gpu.NotUniformError
	require.ErrorAs(t, err, &nu)
	assert.Equal(t, reflect.TypeFor[int64](), nu.Type)
	assert.Equal(t, gpu.Handle(0), st.UniformBlock(2))

	h := mvp.Handle()
	mvp.Release()
	assert.Equal(t, gpu.Handle(0), st.UniformBlock(1))
	assert.Equal(t, gpu.Handle(0), drv.BoundBase(gpu.UniformBuffer, 1))
	assert.NotEqual(t, h, params.Handle())
	assert.Equal(t, params.Handle(), st.UniformBlock(0))
}
