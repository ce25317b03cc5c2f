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

// Package backtrack provides a backtracking token buffer for writing
// recursive-descent parsers over any finite sequence of tokens.
//
// A parser built on this package is a collection of ordinary functions of
// type [Func]: each takes a *[Buffer], reads tokens from it with
// [Buffer.Peek] and [Buffer.Get], and returns a value or an error.
// Functions are composed with combinators:
//
//   - [Option] tries a function once and tolerates failure.
//   - [List] and [List1] repeat a function until it fails.
//   - [Or] tries alternatives in order and keeps the first that succeeds.
//
// Every combinator runs its function against a speculative copy of the
// buffer and only copies the new position back if the function succeeds, so
// failed attempts never need to be undone by hand. [WithRollback] exposes
// this primitive directly.
//
// # Inputs
//
// A [Buffer] reads from a [Tokens], which can borrow a caller's slice
// ([Borrow]), take a private copy of one ([Own]), or wrap any
// [seq.Indexer] ([Share]). Copying a Tokens or a Buffer never copies the
// tokens.
//
// # Errors
//
// The error type is chosen by the caller and must satisfy [Error]. Each
// error value says whether it is fatal. Ordinary errors mean "this is not
// what we are looking for" and let combinators try something else. Fatal
// errors are cuts: they mean "this is the right production, but it is
// malformed", and propagate through every enclosing combinator without
// trying further alternatives. [Failure] is a ready-made error type.
package backtrack
