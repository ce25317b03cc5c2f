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
	"slices"
	"strings"
)

// Failure is a general-purpose error type satisfying [Error].
//
// Use [Failf] for ordinary mismatches and [Cutf] (or [Failure.AsCut]) once a
// production has been recognized and any further failure is authoritative.
type Failure struct {
	// Index of the token at which the failure was detected.
	Index int
	// Message describes what went wrong, e.g. "expected `)`".
	Message string
	// Cut marks this failure as fatal.
	Cut bool
	// Alternatives are the failures an aggregate was built from, in the
	// order they were tried. Nil for failures not built by Aggregate.
	Alternatives []*Failure

	eof bool
}

// *Failure must satisfy Error.
var _ = failed[*Failure]

// Failf returns an ordinary failure at the given token index.
func Failf(index int, format string, args ...any) *Failure {
	return &Failure{Index: index, Message: fmt.Sprintf(format, args...)}
}

// Cutf returns a fatal failure at the given token index.
func Cutf(index int, format string, args ...any) *Failure {
	return &Failure{Index: index, Message: fmt.Sprintf(format, args...), Cut: true}
}

// AsCut returns a fatal copy of f.
func (f *Failure) AsCut() *Failure {
	cut := *f
	cut.Cut = true
	return &cut
}

// Error implements [error].
func (f *Failure) Error() string {
	return fmt.Sprintf("token %d: %s", f.Index, f.Message)
}

// Fatal implements [Error].
func (f *Failure) Fatal() bool {
	return f != nil && f.Cut
}

// EOF implements [Error]. The result matches [ErrEndOfInput].
func (*Failure) EOF(index int) *Failure {
	return &Failure{Index: index, Message: ErrEndOfInput.Error(), eof: true}
}

// Aggregate implements [Error].
//
// The failures at the furthest index are considered the most relevant: the
// aggregate is placed at that index and its message lists their messages.
// All of errs is kept in Alternatives.
func (*Failure) Aggregate(errs []*Failure) *Failure {
	switch len(errs) {
	case 0:
		return &Failure{Message: "no alternatives"}
	case 1:
		return errs[0]
	}

	furthest := errs[0].Index
	for _, err := range errs[1:] {
		furthest = max(furthest, err.Index)
	}

	var messages []string
	for _, err := range errs {
		if err.Index == furthest && !slices.Contains(messages, err.Message) {
			messages = append(messages, err.Message)
		}
	}

	return &Failure{
		Index:        furthest,
		Message:      strings.Join(messages, " or "),
		Alternatives: slices.Clone(errs),
	}
}

// Is reports whether f is an end-of-input failure, for [errors.Is].
func (f *Failure) Is(target error) bool {
	return f.eof && target == ErrEndOfInput
}

// Unwrap returns the alternatives of an aggregate, for [errors.Is] and
// [errors.As].
func (f *Failure) Unwrap() []error {
	if len(f.Alternatives) == 0 {
		return nil
	}
	errs := make([]error, len(f.Alternatives))
	for i, alt := range f.Alternatives {
		errs[i] = alt
	}
	return errs
}
