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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/backtrack"
)

func TestFailure(t *testing.T) {
	t.Parallel()

	err := backtrack.Failf(3, "expected %q", "x")
	assert.Equal(t, `token 3: expected "x"`, err.Error())
	assert.False(t, err.Fatal())

	cut := err.AsCut()
	assert.True(t, cut.Fatal())
	assert.False(t, err.Fatal(), "AsCut must not modify its receiver")
	assert.Equal(t, err.Message, cut.Message)

	assert.True(t, backtrack.Cutf(0, "boom").Fatal())

	var nilFailure *backtrack.Failure
	assert.False(t, nilFailure.Fatal())
	assert.True(t, errors.Is(nilFailure.EOF(2), backtrack.ErrEndOfInput))
	assert.False(t, errors.Is(err, backtrack.ErrEndOfInput))
}

func TestFailureAggregate(t *testing.T) {
	t.Parallel()

	var zero *backtrack.Failure

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		agg := zero.Aggregate(nil)
		assert.Equal(t, "token 0: no alternatives", agg.Error())
	})

	t.Run("single", func(t *testing.T) {
		t.Parallel()

		only := backtrack.Failf(1, "expected a")
		assert.Same(t, only, zero.Aggregate([]*backtrack.Failure{only}))
	})

	t.Run("furthest", func(t *testing.T) {
		t.Parallel()

		errs := []*backtrack.Failure{
			backtrack.Failf(1, "expected a"),
			backtrack.Failf(4, "expected b"),
			backtrack.Failf(4, "expected c"),
			backtrack.Failf(4, "expected b"),
			backtrack.Failf(2, "expected d"),
		}
		agg := zero.Aggregate(errs)
		assert.Equal(t, "token 4: expected b or expected c", agg.Error())
		assert.Equal(t, errs, agg.Alternatives)
		assert.False(t, agg.Fatal())
	})

	t.Run("unwrap", func(t *testing.T) {
		t.Parallel()

		agg := zero.Aggregate([]*backtrack.Failure{
			backtrack.Failf(0, "expected a"),
			zero.EOF(0),
		})
		assert.True(t, errors.Is(agg, backtrack.ErrEndOfInput))
		assert.Equal(t, "token 0: expected a or unexpected end of input", agg.Error())
	})
}

// The ready-made error type drives the combinators end to end.
func TestFailureWithOr(t *testing.T) {
	t.Parallel()

	type buf = backtrack.Buffer[string, *backtrack.Failure]
	word := func(want string) backtrack.Func[string, string, *backtrack.Failure] {
		return func(b *buf) (string, *backtrack.Failure) {
			return backtrack.Satisfy(b,
				func(s string) bool { return s == want },
				func(_ string, index int) *backtrack.Failure {
					return backtrack.Failf(index, "expected %q", want)
				},
			)
		}
	}

	b := backtrack.NewBorrowed[*backtrack.Failure]([]string{"let", "x"})
	_, err := backtrack.Or(b, word("fn"), word("var"))
	require.Error(t, err)
	assert.Equal(t, `token 0: expected "fn" or expected "var"`, err.Error())

	got, err := backtrack.Or(b, word("fn"), word("let"))
	require.Nil(t, err)
	assert.Equal(t, "let", got)
	assert.Equal(t, 1, b.Index())
}
