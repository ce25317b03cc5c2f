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

// Package interval provides an ordered map from closed integer intervals to
// values, for answering "which interval contains this point" in logarithmic
// time.
package interval

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/tidwall/btree"
)

// Map maps disjoint closed intervals with endpoints in K to values of type V.
//
// Intervals must be appended in increasing order. A zero value is ready to
// use.
type Map[K cmp.Ordered, V any] struct {
	// Keys in this tree are the ends of intervals.
	tree btree.Map[K, *entry[K, V]]
	last *K
}

// Interval is an entry returned by [Map.Get].
type Interval[K cmp.Ordered, V any] struct {
	// The range for this interval. Both endpoints are inclusive.
	Start, End K

	// The value associated with it.
	Value *V
}

type entry[K cmp.Ordered, V any] struct {
	start K
	value V
}

// Append adds the interval [start, end] with the given value.
//
// Panics if start > end, or if start is not strictly greater than the end of
// the last appended interval.
func (m *Map[K, V]) Append(start, end K, value V) {
	if start > end {
		panic(fmt.Sprintf("interval: start (%#v) > end (%#v)", start, end))
	}
	if m.last != nil && start <= *m.last {
		panic(fmt.Sprintf("interval: start (%#v) overlaps previous interval ending at %#v", start, *m.last))
	}

	m.tree.Set(end, &entry[K, V]{start: start, value: value})
	m.last = &end
}

// Get looks up the interval which contains key.
//
// If no such interval exists, the Value of the returned [Interval] will be
// nil.
func (m *Map[K, V]) Get(key K) Interval[K, V] {
	iter := m.tree.Iter()
	if !iter.Seek(key) || key < iter.Value().start {
		// Seek finds the least end >= key; key may still fall into the gap
		// before that interval's start.
		return Interval[K, V]{}
	}

	return Interval[K, V]{
		Start: iter.Value().start,
		End:   iter.Key(),
		Value: &iter.Value().value,
	}
}

// All returns an iterator over the intervals in this map, in order.
func (m *Map[K, V]) All() iter.Seq[Interval[K, V]] {
	return func(yield func(Interval[K, V]) bool) {
		iter := m.tree.Iter()
		for more := iter.First(); more; more = iter.Next() {
			if !yield(Interval[K, V]{
				Start: iter.Value().start,
				End:   iter.Key(),
				Value: &iter.Value().value,
			}) {
				return
			}
		}
	}
}
