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

package seq

import (
	"fmt"
	"iter"

	"github.com/bufbuild/backtrack/internal/interval"
)

// Concat implements [Indexer][T] over several slices, presenting them as one
// sequence without copying any of them.
//
// Looking up an element costs O(log n) in the number of chunks.
type Concat[T any] struct {
	chunks interval.Map[int, []T]
	len    int
}

// NewConcat constructs a [Concat] over the given chunks, in order. Empty
// chunks are skipped.
//
// The chunks are not copied, so they must not be modified afterwards.
func NewConcat[T any](chunks ...[]T) *Concat[T] {
	c := new(Concat[T])
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		c.chunks.Append(c.len, c.len+len(chunk)-1, chunk)
		c.len += len(chunk)
	}
	return c
}

// Len implements [Indexer].
func (c *Concat[T]) Len() int {
	return c.len
}

// Chunks returns an iterator over the non-empty chunks of this sequence, in
// order. The chunks are the caller's original slices.
func (c *Concat[T]) Chunks() iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		for chunk := range c.chunks.All() {
			if !yield(*chunk.Value) {
				return
			}
		}
	}
}

// At implements [Indexer].
func (c *Concat[T]) At(idx int) T {
	found := c.chunks.Get(idx)
	if found.Value == nil {
		panic(fmt.Sprintf("seq: index %d out of range [0:%d]", idx, c.len))
	}
	return (*found.Value)[idx-found.Start]
}
