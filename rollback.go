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

// Func is a parsing function: it consumes tokens from a buffer and produces a
// value of type S, or fails with an error of type E.
//
// When a Func is run by a combinator it receives a speculative copy of the
// caller's buffer, so it does not need to undo its own consumption on failure.
// It must not have any other side effects that would need undoing.
type Func[T, S any, E Error[E]] func(*Buffer[T, E]) (S, E)

// WithRollback runs op on a copy of b. If op succeeds, b is advanced to where
// op left the copy; otherwise b is left untouched and op's error is returned
// as is.
func WithRollback[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E]) (S, E) {
	return speculate(b, "rollback", op)
}

// speculate is the primitive every combinator is built on: fork, evaluate,
// then commit or discard.
func speculate[T, S any, E Error[E]](b *Buffer[T, E], name string, op Func[T, S, E]) (S, E) {
	spec := b.fork()
	if b.tracer != nil {
		b.tracer.Speculate(name, spec.depth, b.idx)
	}

	value, err := op(spec)
	if failed(err) {
		if b.tracer != nil {
			b.tracer.Discard(name, spec.depth, spec.idx, err, err.Fatal())
		}
		var zero S
		return zero, err
	}

	if b.tracer != nil {
		b.tracer.Commit(name, spec.depth, b.idx, spec.idx)
	}
	b.idx = spec.idx
	return value, err
}
