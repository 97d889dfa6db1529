// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"reflect"
)

// These are a set of consistently named functions for navigating pointer
// types within the reflect system.

// NonPointerType returns a non-pointer version of the given type.
func NonPointerType(typ reflect.Type) reflect.Type {
	if typ == nil {
		return typ
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	return typ
}

// HasPointers returns whether values of the given type contain any
// pointers, either directly or in nested array or struct elements.
// Strings, slices, maps, channels, functions and interfaces all count
// as pointers. Types without pointers can be copied bitwise into
// and out of untyped memory.
func HasPointers(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return false
	case reflect.Array:
		if typ.Len() == 0 {
			return false
		}
		return HasPointers(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if HasPointers(typ.Field(i).Type) {
				return true
			}
		}
		return false
	}
	return true
}
