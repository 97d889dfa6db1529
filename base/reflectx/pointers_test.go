// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonPointerType(t *testing.T) {
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[int]()))
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[*int]()))
	assert.Equal(t, reflect.TypeFor[int](), NonPointerType(reflect.TypeFor[**int]()))

	assert.Equal(t, reflect.TypeFor[any](), NonPointerType(reflect.TypeFor[*any]()))

	assert.Equal(t, nil, NonPointerType(reflect.TypeOf(nil)))
}

type plain struct {
	A float32
	B [3]int32
	C struct{ D bool }
}

type withString struct {
	A float32
	S string
}

func TestHasPointers(t *testing.T) {
	assert.False(t, HasPointers(reflect.TypeFor[float32]()))
	assert.False(t, HasPointers(reflect.TypeFor[[4]uint8]()))
	assert.False(t, HasPointers(reflect.TypeFor[plain]()))
	assert.False(t, HasPointers(reflect.TypeFor[[0]*int]()))

	assert.True(t, HasPointers(reflect.TypeFor[*int]()))
	assert.True(t, HasPointers(reflect.TypeFor[string]()))
	assert.True(t, HasPointers(reflect.TypeFor[[]float32]()))
	assert.True(t, HasPointers(reflect.TypeFor[withString]()))
	assert.True(t, HasPointers(reflect.TypeFor[[2]any]()))
}
