// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"iter"
)

// Slice is an immutable view of the mapped memory of a buffer as a
// sequence of elements of type T. The buffer stays mapped until
// [Slice.Release] is called, which must happen before any other view
// or transfer uses the buffer. The view is not valid after Release,
// and using it then panics.
type Slice[T any] struct {
	raw  *RawBuffer
	data []T
}

// SliceMut is a mutable view of the mapped memory of a buffer as a
// sequence of elements of type T. Changes made through the view are
// in the buffer once [SliceMut.Release] has been called.
type SliceMut[T any] struct {
	Slice[T]
}

// RawSlice maps the given raw buffer read-only and returns a view of it
// as elements of type T. T is not checked against the type the buffer was
// created with: the caller asserts that the contents are valid values of T.
// The view has the element count of the buffer, bounded by its byte capacity.
// It returns [ErrMapFailed] if the driver cannot map the buffer.
func RawSlice[T any](rb *RawBuffer) (*Slice[T], error) {
	data, err := mapTyped[T](rb, ReadOnly)
	if err != nil {
		return nil, err
	}
	return &Slice[T]{raw: rb, data: data}, nil
}

// RawSliceMut maps the given raw buffer read-write and returns a mutable
// view of it as elements of type T, with the same unchecked contract
// as [RawSlice].
func RawSliceMut[T any](rb *RawBuffer) (*SliceMut[T], error) {
	data, err := mapTyped[T](rb, ReadWrite)
	if err != nil {
		return nil, err
	}
	return &SliceMut[T]{Slice[T]{raw: rb, data: data}}, nil
}

// WithRawSlice calls fn with a read-only view of the raw buffer as
// elements of type T, releasing the view when fn returns or panics.
// See [RawSlice] for the contract on T.
func WithRawSlice[T any](rb *RawBuffer, fn func(s []T) error) error {
	sl, err := RawSlice[T](rb)
	if err != nil {
		return err
	}
	defer sl.Release()
	return fn(sl.data)
}

// WithRawSliceMut calls fn with a mutable view of the raw buffer as
// elements of type T, releasing the view when fn returns or panics.
// See [RawSlice] for the contract on T.
func WithRawSliceMut[T any](rb *RawBuffer, fn func(s []T) error) error {
	sl, err := RawSliceMut[T](rb)
	if err != nil {
		return err
	}
	defer sl.Release()
	return fn(sl.data)
}

func (s *Slice[T]) check() {
	if s.raw == nil {
		panic("gpu.Slice: use of a released view")
	}
}

// Release unmaps the buffer. Only the first call has any effect.
func (s *Slice[T]) Release() {
	if s.raw == nil {
		return
	}
	rb := s.raw
	s.raw = nil
	s.data = nil
	rb.unmap()
}

// Released returns whether the view has been released.
func (s *Slice[T]) Released() bool {
	return s.raw == nil
}

// Len returns the number of elements in the view.
func (s *Slice[T]) Len() int {
	s.check()
	return len(s.data)
}

// At returns the element at index i, which must be in range.
func (s *Slice[T]) At(i int) T {
	s.check()
	return s.data[i]
}

// Data returns the mapped elements directly. The returned slice
// must not be used after the view is released; for an immutable
// view it must not be modified.
func (s *Slice[T]) Data() []T {
	s.check()
	return s.data
}

// All returns an iterator over the index and value of each element.
func (s *Slice[T]) All() iter.Seq2[int, T] {
	s.check()
	return func(yield func(int, T) bool) {
		for i, v := range s.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements.
func (s *Slice[T]) Values() iter.Seq[T] {
	s.check()
	return func(yield func(T) bool) {
		for _, v := range s.data {
			if !yield(v) {
				return
			}
		}
	}
}

// Set sets the element at index i, which must be in range.
func (s *SliceMut[T]) Set(i int, v T) {
	s.check()
	s.data[i] = v
}

// Update replaces each element with the result of calling fn
// with its index and current value.
func (s *SliceMut[T]) Update(fn func(i int, v T) T) {
	s.check()
	for i, v := range s.data {
		s.data[i] = fn(i, v)
	}
}

// Pointers returns an iterator over the index and a pointer to each
// element, for mutating elements in place. The pointers must not be
// retained after the view is released.
func (s *SliceMut[T]) Pointers() iter.Seq2[int, *T] {
	s.check()
	return func(yield func(int, *T) bool) {
		for i := range s.data {
			if !yield(i, &s.data[i]) {
				return
			}
		}
	}
}
