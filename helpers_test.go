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

package backtrack_test

import (
	"fmt"

	"github.com/bufbuild/backtrack"
)

// testErr is a minimal error type satisfying backtrack.Error. Aggregates keep
// every input so tests can check exactly what was passed.
type testErr struct {
	msg   string
	at    int
	fatal bool
	eof   bool
	all   []*testErr
}

func (e *testErr) Error() string {
	return fmt.Sprintf("%s at %d", e.msg, e.at)
}

func (e *testErr) Fatal() bool {
	return e.fatal
}

func (*testErr) EOF(index int) *testErr {
	return &testErr{msg: "eof", at: index, eof: true}
}

func (*testErr) Aggregate(errs []*testErr) *testErr {
	return &testErr{msg: "aggregate", all: errs}
}

type buffer = backtrack.Buffer[int, *testErr]

func newBuffer(input ...int) *buffer {
	return backtrack.NewBorrowed[*testErr](input)
}

// get consumes one token.
func get(b *buffer) (int, *testErr) {
	return b.Get()
}

// even consumes one even token and returns true.
func even(b *buffer) (bool, *testErr) {
	n, err := b.Get()
	if err != nil {
		return false, err
	}
	if n%2 != 0 {
		return false, &testErr{msg: "want even", at: b.Index() - 1}
	}
	return true, nil
}

// odd consumes one odd token and returns false.
func odd(b *buffer) (bool, *testErr) {
	n, err := b.Get()
	if err != nil {
		return false, err
	}
	if n%2 == 0 {
		return false, &testErr{msg: "want odd", at: b.Index() - 1}
	}
	return false, nil
}

// consumeThen consumes n tokens and then fails with err.
func consumeThen(n int, err *testErr) backtrack.Func[int, int, *testErr] {
	return func(b *buffer) (int, *testErr) {
		for range n {
			if _, eof := b.Get(); eof != nil {
				return 0, eof
			}
		}
		return 0, err
	}
}

// cutOn consumes one token and returns it, failing fatally if it is n.
func cutOn(n int) backtrack.Func[int, int, *testErr] {
	return func(b *buffer) (int, *testErr) {
		tok, err := b.Get()
		if err == nil && tok == n {
			return 0, &testErr{msg: "cut", at: b.Index() - 1, fatal: true}
		}
		return tok, err
	}
}
