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

import "errors"

// ErrEndOfInput is the sentinel that end-of-input errors should match with
// [errors.Is].
//
// The engine never returns this directly; it asks the error type to build one
// through [Error.EOF].
var ErrEndOfInput = errors.New("unexpected end of input")

// Error is the contract an error type must satisfy to be used as the error
// channel of a [Buffer].
//
// A parsing function reports success by returning the zero value of E, which
// for pointer types is nil.
//
// EOF and Aggregate are constructors: the engine calls them on the zero value
// of E. Pointer types must therefore implement them without dereferencing
// their receiver, and E should not be an interface type.
type Error[E any] interface {
	comparable
	error

	// Fatal reports whether this particular error is a cut: the production
	// was recognized but is malformed, so no other alternative should be
	// tried.
	//
	// Ordinary errors cause the enclosing combinator to roll back and carry
	// on; fatal errors roll back and propagate.
	Fatal() bool

	// EOF returns an error for running out of input at the given index.
	EOF(index int) E

	// Aggregate combines the ordinary errors collected by a failed [Or], in
	// the order the alternatives were tried.
	Aggregate(errs []E) E
}

// failed returns whether err is not the zero value.
func failed[E Error[E]](err E) bool {
	var zero E
	return err != zero
}

// eof constructs an end-of-input error for E.
func eof[E Error[E]](index int) E {
	var zero E
	return zero.EOF(index)
}

// aggregate combines errs using E's policy.
func aggregate[E Error[E]](errs []E) E {
	var zero E
	return zero.Aggregate(errs)
}
