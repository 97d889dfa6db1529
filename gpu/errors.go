// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"reflect"

	"cogentcore.org/gpubuf/base/errors"
)

var (
	// ErrMapFailed is returned when the driver refuses or cannot
	// satisfy a map request, for example because the buffer is
	// already mapped.
	ErrMapFailed = errors.New("buffer mapping failed")

	// ErrOverflow matches any [OverflowError] with [errors.Is].
	ErrOverflow = errors.New("buffer overflow")

	// ErrSizeMismatch matches any [TooFewValuesError] or
	// [TooManyValuesError] with [errors.Is].
	ErrSizeMismatch = errors.New("buffer size mismatch")

	// ErrNotUniform matches any [NotUniformError] with [errors.Is].
	ErrNotUniform = errors.New("type is not uniform block compatible")
)

// OverflowError is returned when accessing an element at an index
// beyond the size of the buffer.
type OverflowError struct {
	Index int
	Size  int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("buffer overflow (index = %d, size = %d)", e.Index, e.Size)
}

func (e *OverflowError) Is(target error) bool { return target == ErrOverflow }

// TooFewValuesError is returned when fewer values than the size of
// the buffer are passed to fill it. Nothing is written.
type TooFewValuesError struct {
	Given    int
	Expected int
}

func (e *TooFewValuesError) Error() string {
	return fmt.Sprintf("too few values passed to the buffer (nb = %d, size = %d)", e.Given, e.Expected)
}

func (e *TooFewValuesError) Is(target error) bool { return target == ErrSizeMismatch }

// TooManyValuesError is returned when more values than the size of
// the buffer are passed to fill it. Nothing is written.
type TooManyValuesError struct {
	Given    int
	Expected int
}

func (e *TooManyValuesError) Error() string {
	return fmt.Sprintf("too many values passed to the buffer (nb = %d, size = %d)", e.Given, e.Expected)
}

func (e *TooManyValuesError) Is(target error) bool { return target == ErrSizeMismatch }

// NotUniformError is returned when binding a buffer whose element
// type is not uniform block compatible as uniform storage.
type NotUniformError struct {
	Type reflect.Type
}

func (e *NotUniformError) Error() string {
	return fmt.Sprintf("gpu.BindUniformBlock: element type %v is not uniform block compatible", e.Type)
}

func (e *NotUniformError) Is(target error) bool { return target == ErrNotUniform }
