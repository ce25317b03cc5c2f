// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package seq provides a read-only interface for sequence-like types that can
// be indexed, and adapters that present non-slice storage through it.
//
// Token buffers only ever read their input, so nothing here offers mutation.
// This is what makes it safe for many speculative cursors to share one
// sequence.
package seq

import "iter"

// Indexer is a type that can be indexed like a slice.
type Indexer[T any] interface {
	// Len returns the length of this sequence.
	//
	// The length must not change for the lifetime of the value.
	Len() int

	// At returns the element at the given index.
	//
	// Should panic if idx < 0 or idx >= Len().
	At(idx int) T
}

// All returns an iterator over the elements in seq, like [slices.All].
func All[T any](seq Indexer[T]) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := seq.Len()
		for i := range n {
			if !yield(i, seq.At(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in seq, like [slices.Values].
func Values[T any](seq Indexer[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		n := seq.Len()
		for i := range n {
			if !yield(seq.At(i)) {
				return
			}
		}
	}
}

// ToSlice copies an [Indexer] into a slice.
func ToSlice[T any](seq Indexer[T]) []T {
	out := make([]T, seq.Len())
	for i := range out {
		out[i] = seq.At(i)
	}
	return out
}
