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

// Option runs op speculatively, like [WithRollback], but treats an ordinary
// failure as the absence of a value: it returns ok == false, a zero error,
// and leaves b where it was.
//
// A fatal failure is returned as is.
func Option[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E]) (value S, ok bool, err E) {
	value, err = speculate(b, "option", op)
	if !failed(err) {
		return value, true, err
	}
	if err.Fatal() {
		return value, false, err
	}

	var zero E
	return value, false, zero
}

// List runs op repeatedly, each time from where the last successful run left
// off, and returns the values of all successful runs in order.
//
// The first ordinary failure ends the list; the tokens that failed attempt
// consumed are given back. A fatal failure discards everything accumulated so
// far, including the position, and is returned as is. Zero matches is not an
// error.
//
// op must consume at least one token whenever it succeeds, or List never
// returns.
func List[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E]) ([]S, E) {
	start := b.idx
	var values []S
	for {
		value, err := speculate(b, "list", op)
		if failed(err) {
			if err.Fatal() {
				b.idx = start
				return nil, err
			}

			var zero E
			return values, zero
		}
		values = append(values, value)
	}
}

// List1 is like [List], but requires at least one successful run. If the
// first run fails, its error is returned.
func List1[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E]) ([]S, E) {
	return speculate(b, "list", func(b *Buffer[T, E]) ([]S, E) {
		first, err := op(b)
		if failed(err) {
			return nil, err
		}
		rest, err := List(b, op)
		if failed(err) {
			return nil, err
		}
		return append([]S{first}, rest...), err
	})
}

// Separated parses zero or more items separated by sep, and returns the
// items' values.
//
// A separator that is not followed by an item is not consumed.
func Separated[T, S, P any, E Error[E]](b *Buffer[T, E], item Func[T, S, E], sep Func[T, P, E]) ([]S, E) {
	return speculate(b, "list", func(b *Buffer[T, E]) ([]S, E) {
		first, ok, err := Option(b, item)
		if failed(err) || !ok {
			return nil, err
		}

		rest, err := List(b, func(b *Buffer[T, E]) (S, E) {
			if _, err := sep(b); failed(err) {
				var zero S
				return zero, err
			}
			return item(b)
		})
		if failed(err) {
			return nil, err
		}
		return append([]S{first}, rest...), err
	})
}

// Or tries each alternative in order, each one starting from b's current
// position, and returns the value of the first that succeeds. b is advanced
// only by the successful alternative.
//
// If an alternative fails fatally, Or stops immediately and returns that
// error. If every alternative fails ordinarily, the errors are combined with
// E's [Error.Aggregate], in the order the alternatives were tried.
func Or[T, S any, E Error[E]](b *Buffer[T, E], alts ...Func[T, S, E]) (S, E) {
	var errs []E
	for _, alt := range alts {
		value, err := speculate(b, "or", alt)
		if !failed(err) {
			return value, err
		}
		if err.Fatal() {
			return value, err
		}
		errs = append(errs, err)
	}

	var zero S
	return zero, aggregate(errs)
}

// Lookahead runs op on a copy of b and returns its result, but never advances
// b, even on success.
func Lookahead[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E]) (S, E) {
	return speculate(b, "lookahead", func(b *Buffer[T, E]) (S, E) {
		mark := b.Mark()
		value, err := op(b)
		b.Rewind(mark)
		return value, err
	})
}

// Not succeeds without consuming anything if op fails ordinarily. If op
// succeeds, Not returns fail(b.Index()). A fatal failure of op is returned as
// is.
func Not[T, S any, E Error[E]](b *Buffer[T, E], op Func[T, S, E], fail func(index int) E) E {
	_, err := speculate(b, "not", func(b *Buffer[T, E]) (struct{}, E) {
		start := b.Index()
		_, err := op(b)
		if !failed(err) {
			return struct{}{}, fail(start)
		}
		if err.Fatal() {
			return struct{}{}, err
		}
		// Succeed, but give back whatever op consumed.
		b.idx = start
		var zero E
		return struct{}{}, zero
	})
	return err
}

// Satisfy consumes the next token if pred returns true for it. Otherwise it
// returns fail(tok, index) and consumes nothing.
//
// Returns E's end-of-input error if there are no tokens left.
func Satisfy[T any, E Error[E]](b *Buffer[T, E], pred func(T) bool, fail func(tok T, index int) E) (T, E) {
	tok, err := b.Peek()
	if failed(err) {
		return tok, err
	}
	if !pred(tok) {
		var zero T
		return zero, fail(tok, b.idx)
	}
	b.idx++
	return tok, err
}

// Map adapts op into a parsing function that transforms op's value with f.
//
// This is useful for making alternatives with different value types fit
// into the same call to [Or].
func Map[T, S, U any, E Error[E]](op Func[T, S, E], f func(S) U) Func[T, U, E] {
	return func(b *Buffer[T, E]) (U, E) {
		value, err := op(b)
		if failed(err) {
			var zero U
			return zero, err
		}
		return f(value), err
	}
}
