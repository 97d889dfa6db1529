// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"reflect"
	"text/tabwriter"

	"cogentcore.org/gpubuf/gpu"
	"cogentcore.org/gpubuf/math32"
	"github.com/spf13/cobra"
)

func newUniformCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uniform",
		Short: "List the uniform block compatibility of element types and bind uniform buffers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, done, err := newContext(app.cfg)
			if err != nil {
				return err
			}
			defer done()
			return runUniform(ctx, cmd.OutOrStdout())
		},
	}
}

// lightBlock is an example uniform block struct.
type lightBlock struct {
	Color     math32.Vector4
	Position  math32.Vector4
	Intensity float32
	Range     float32
}

// uniformTypes are the types listed by the uniform command.
var uniformTypes = []reflect.Type{
	reflect.TypeFor[bool](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[[2]float32](),
	reflect.TypeFor[[4]int32](),
	reflect.TypeFor[[8]float32](),
	reflect.TypeFor[math32.Vector3](),
	reflect.TypeFor[math32.Vector4i](),
	reflect.TypeFor[math32.Matrix3](),
	reflect.TypeFor[math32.Matrix4](),
	reflect.TypeFor[gpu.Tuple2[math32.Vector4, float32]](),
	reflect.TypeFor[gpu.Tuple3[float32, int32, string]](),
	reflect.TypeFor[lightBlock](),
	reflect.TypeFor[[]math32.Vector4](),
}

// runUniform prints the uniform table and binds example
// buffers to uniform block slots, printing to w.
func runUniform(ctx gpu.Context, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "type\tgpu type\tbytes\tuniform")
	for _, typ := range uniformTypes {
		tp := gpu.TypeOf(typ)
		fmt.Fprintf(tw, "%v\t%v\t%d\t%v\n", typ, tp, tp.Bytes(), gpu.UniformCompatible(typ))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	mvp := gpu.NewUniformBuffer[math32.Matrix4](ctx, 1)
	defer mvp.Release()
	if err := mvp.Set(0, math32.Identity4()); err != nil {
		return err
	}
	gpu.BindUniform(mvp, 0)

	light := gpu.NewBuffer[lightBlock](ctx, 1)
	defer light.Release()
	err := light.Set(0, lightBlock{Color: math32.Vec4(1, 1, 1, 1), Position: math32.Vec4(0, 10, 0, 1), Intensity: 1, Range: 20})
	if err != nil {
		return err
	}
	if err := gpu.BindUniformBlock(light, 1); err != nil {
		return err
	}

	counts := gpu.NewBuffer[int64](ctx, 4)
	defer counts.Release()
	if err := gpu.BindUniformBlock(counts, 2); err != nil {
		fmt.Fprintf(w, "slot 2: %v\n", err)
	}

	st := ctx.State()
	for i := range 3 {
		fmt.Fprintf(w, "slot %d: buffer %d\n", i, st.UniformBlock(i))
	}
	return nil
}
