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

package backtrack

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"unsafe"

	"github.com/bufbuild/backtrack/seq"
)

// Tokens is an immutable view of a finite sequence of tokens.
//
// Copying a Tokens never copies the tokens themselves: it is a slice header
// or an interface value, both of which refer to shared storage. Nothing can
// write through a Tokens, which is why speculative copies of a [Buffer] can
// share it freely.
//
// The zero value is an empty sequence.
type Tokens[T any] struct {
	// Exactly one of these is used. If indexer is nil, we are backed by slice.
	slice   []T
	indexer seq.Indexer[T]
}

// Borrow returns a Tokens that refers to s directly.
//
// The caller keeps ownership of s and must not modify it while any [Buffer]
// built from the result is in use.
func Borrow[T any](s []T) Tokens[T] {
	// Clip so that nobody can append through our copy of the header.
	return Tokens[T]{slice: slices.Clip(s)}
}

// Own returns a Tokens backed by a private copy of s, detaching it from s's
// storage. The copy is made once; every Tokens and [Buffer] derived from the
// result shares it.
func Own[T any](s []T) Tokens[T] {
	return Tokens[T]{slice: slices.Clone(s)}
}

// Share returns a Tokens backed by an arbitrary indexer, such as
// [seq.Concat]. The indexer is referenced, not copied.
//
// The indexer must be safe to call from any copy of the resulting Tokens,
// and its contents must not change.
func Share[T any](ix seq.Indexer[T]) Tokens[T] {
	if t, ok := ix.(Tokens[T]); ok {
		return t
	}
	return Tokens[T]{indexer: ix}
}

// Len returns the number of tokens in this sequence.
func (t Tokens[T]) Len() int {
	if t.indexer != nil {
		return t.indexer.Len()
	}
	return len(t.slice)
}

// At returns the token at the given index.
//
// Panics if idx is out of range.
func (t Tokens[T]) At(idx int) T {
	if idx < 0 || idx >= t.Len() {
		panic(fmt.Sprintf("backtrack: token index %d out of range [0:%d]", idx, t.Len()))
	}
	if t.indexer != nil {
		return t.indexer.At(idx)
	}
	return t.slice[idx]
}

// All returns an iterator over the tokens in this sequence.
func (t Tokens[T]) All() iter.Seq2[int, T] {
	return seq.All[T](t)
}

// Shares returns whether t and u read from the same storage.
//
// Slices share if they have the same base pointer and length. Indexers share
// if they are equal interface values, so an indexer of a type that is not
// comparable (such as a struct holding a func) never shares, not even with
// itself. Use pointers, like [seq.NewConcat] and [seq.NewFunc] return.
func (t Tokens[T]) Shares(u Tokens[T]) bool {
	if t.indexer != nil || u.indexer != nil {
		a, b := reflect.ValueOf(t.indexer), reflect.ValueOf(u.indexer)
		return a.IsValid() && b.IsValid() &&
			a.Comparable() && b.Comparable() && a.Equal(b)
	}
	return len(t.slice) == len(u.slice) &&
		unsafe.SliceData(t.slice) == unsafe.SliceData(u.slice)
}
