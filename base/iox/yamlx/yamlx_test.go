// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name   string    `yaml:"name"`
	Length int       `yaml:"length"`
	Values []float32 `yaml:"values"`
}

func TestYAML(t *testing.T) {
	ts := &testStruct{Name: "verts", Length: 3, Values: []float32{1, 2.5, 3}}
	b, err := WriteBytes(ts)
	require.NoError(t, err)
	assert.Contains(t, string(b), "name: verts")

	var rt testStruct
	require.NoError(t, ReadBytes(&rt, b))
	assert.Equal(t, *ts, rt)

	var buf bytes.Buffer
	require.NoError(t, Write(ts, &buf))
	assert.Equal(t, b, buf.Bytes())
	var wt testStruct
	require.NoError(t, Read(&wt, &buf))
	assert.Equal(t, *ts, wt)

	fn := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, Save(ts, fn))
	var ot testStruct
	require.NoError(t, Open(&ot, fn))
	assert.Equal(t, *ts, ot)

	over := filepath.Join(t.TempDir(), "over.yaml")
	require.NoError(t, Save(map[string]any{"length": 9}, over))
	var mt testStruct
	require.NoError(t, OpenFiles(&mt, fn, over))
	assert.Equal(t, "verts", mt.Name)
	assert.Equal(t, 9, mt.Length)

	assert.Error(t, ReadBytes(&ot, []byte("length: [")))
}
