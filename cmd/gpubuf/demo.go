// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math"

	"cogentcore.org/gpubuf/gpu"
	"github.com/spf13/cobra"
)

func newDemoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Fill, update and read back a float32 buffer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, done, err := newContext(app.cfg)
			if err != nil {
				return err
			}
			defer done()
			return runDemo(ctx, &app.cfg.Demo, cmd.OutOrStdout())
		},
	}
}

// runDemo runs the demo against the given context, printing to w.
func runDemo(ctx gpu.Context, dc *DemoConfig, w io.Writer) error {
	buf := gpu.NewBuffer[float32](ctx, dc.Length)
	defer buf.Release()
	fmt.Fprintf(w, "buffer %d: %d x %v (%d bytes)\n", buf.Handle(), buf.Len(), buf.ElementType(), buf.Raw().Bytes())

	if err := buf.Fill(dc.Values); err != nil {
		return err
	}
	if err := buf.Set(dc.Index, dc.Value); err != nil {
		return err
	}
	if v, ok := buf.Get(dc.Index); ok {
		fmt.Fprintf(w, "get %d: %g\n", dc.Index, v)
	}
	out := 2 * buf.Len()
	if _, ok := buf.Get(out); !ok {
		fmt.Fprintf(w, "get %d: out of range\n", out)
	}
	if err := buf.Set(out, 0); err != nil {
		fmt.Fprintf(w, "set %d: %v\n", out, err)
	}

	var sum float32
	err := buf.WithSlice(func(s []float32) error {
		for _, v := range s {
			sum += v
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "sum: %g\n", sum)

	all, err := buf.Whole()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "whole: %v\n", all)

	// the same storage, viewed as raw bits
	return gpu.WithRawSlice(buf.Raw(), func(s []uint32) error {
		for i, b := range s {
			fmt.Fprintf(w, "bits %d: %#08x (%g)\n", i, b, math.Float32frombits(b))
		}
		return nil
	})
}
