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

import "iter"

// Buffer is a cursor over a [Tokens], with an error type E used to report
// failures.
//
// Parsing functions take a *Buffer and advance it as they consume tokens.
// Combinators such as [Option], [List] and [Or] hand parsing functions a
// speculative copy of the Buffer, and only copy its position back if the
// attempt succeeds. Copying a Buffer is O(1).
type Buffer[T any, E Error[E]] struct {
	tokens Tokens[T]
	idx    int

	// Nesting depth of speculative copies, for tracing.
	depth  int
	tracer Tracer
}

// Mark is the return value of [Buffer.Mark], which marks a position on a
// Buffer for rewinding to.
type Mark struct {
	// This contains exactly the values needed to rewind the buffer.
	owner any
	idx   int
}

// New returns a new buffer over the given tokens, positioned at the first
// token.
func New[E Error[E], T any](tokens Tokens[T]) *Buffer[T, E] {
	return &Buffer[T, E]{tokens: tokens}
}

// NewBorrowed is shorthand for New[E]([Borrow](s)).
func NewBorrowed[E Error[E], T any](s []T) *Buffer[T, E] {
	return New[E](Borrow(s))
}

// NewOwned is shorthand for New[E]([Own](s)).
func NewOwned[E Error[E], T any](s []T) *Buffer[T, E] {
	return New[E](Own(s))
}

// Tokens returns the sequence this buffer reads from.
func (b *Buffer[T, E]) Tokens() Tokens[T] {
	return b.tokens
}

// Len returns the total number of tokens, consumed or not.
func (b *Buffer[T, E]) Len() int {
	return b.tokens.Len()
}

// Index returns the index of the next token to be read.
func (b *Buffer[T, E]) Index() int {
	return b.idx
}

// Remaining returns the number of tokens left to read.
func (b *Buffer[T, E]) Remaining() int {
	return b.tokens.Len() - b.idx
}

// End returns whether all tokens have been consumed.
func (b *Buffer[T, E]) End() bool {
	return b.idx >= b.tokens.Len()
}

// Peek returns the next token without consuming it.
//
// Returns E's end-of-input error if there are no tokens left.
func (b *Buffer[T, E]) Peek() (T, E) {
	var zero E
	if b.End() {
		var tok T
		return tok, eof[E](b.idx)
	}
	return b.tokens.At(b.idx), zero
}

// Get returns the next token and advances past it.
//
// Returns E's end-of-input error if there are no tokens left, in which case
// the buffer does not move.
func (b *Buffer[T, E]) Get() (T, E) {
	tok, err := b.Peek()
	if !failed(err) {
		b.idx++
	}
	return tok, err
}

// Rest returns an iterator over the remaining tokens, which consumes each
// token as it is yielded.
//
// Breaking out of a loop over this iterator leaves the buffer positioned at
// the token that was being yielded, so a new loop resumes with that token.
func (b *Buffer[T, E]) Rest() iter.Seq[T] {
	return func(yield func(T) bool) {
		for !b.End() {
			if !yield(b.tokens.At(b.idx)) {
				return
			}
			b.idx++
		}
	}
}

// Mark makes a mark on this buffer to indicate a place that can be rewound
// to.
func (b *Buffer[T, E]) Mark() Mark {
	return Mark{owner: b, idx: b.idx}
}

// Rewind moves this buffer back to the position described by mark.
//
// Panics if mark was not created using this buffer's Mark method.
func (b *Buffer[T, E]) Rewind(mark Mark) {
	if mark.owner != any(b) {
		panic("backtrack: rewound buffer using the wrong buffer's mark")
	}
	b.idx = mark.idx
}

// SetTracer installs a tracer which observes every speculative attempt made on
// this buffer and its copies. Passing nil disables tracing.
func (b *Buffer[T, E]) SetTracer(tracer Tracer) {
	b.tracer = tracer
}

// fork returns a speculative copy of this buffer.
func (b *Buffer[T, E]) fork() *Buffer[T, E] {
	spec := *b
	spec.depth++
	return &spec
}
