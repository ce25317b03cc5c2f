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
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bufbuild/backtrack"
	"github.com/bufbuild/backtrack/graphemes"
	"github.com/bufbuild/backtrack/internal/corpora"
)

// TestCorpus parses the files in testdata/sexpr with a small s-expression
// grammar, and checks the resulting trees (as YAML) or errors.
func TestCorpus(t *testing.T) {
	t.Parallel()

	corpora.Corpus{
		Root:      "testdata/sexpr",
		Refresh:   "BACKTRACK_REFRESH",
		Extension: "sexpr",
		Outputs: []corpora.Output{
			{Extension: "yaml", Compare: sameYAML},
			{Extension: "stderr"},
		},
		Test: func(t *testing.T, path, text string) []string {
			b := backtrack.New[*backtrack.Failure](backtrack.Share[string](graphemes.Split(text)))
			forms, err := parseForms(b)
			if err != nil {
				return []string{"", err.Error() + "\n"}
			}

			out, yerr := yaml.Marshal(forms)
			require.NoError(t, yerr)
			return []string{string(out), ""}
		},
	}.Run(t)
}

// sameYAML compares two YAML documents by value, so that golden files are not
// sensitive to the encoder's layout choices.
func sameYAML(got, want string) string {
	if got == "" || want == "" {
		return corpora.Diff(got, want)
	}

	var g, w any
	if err := yaml.Unmarshal([]byte(got), &g); err != nil {
		return "could not decode output: " + err.Error()
	}
	if err := yaml.Unmarshal([]byte(want), &w); err != nil {
		return "could not decode golden file: " + err.Error()
	}
	return cmp.Diff(w, g)
}

type sexpr = backtrack.Buffer[string, *backtrack.Failure]

// parseForms parses a whole file of s-expressions. Lists become []any and
// atoms become strings.
func parseForms(b *sexpr) ([]any, *backtrack.Failure) {
	forms, err := backtrack.List(b, parseExpr)
	if err != nil {
		return nil, err
	}
	skipSpace(b)
	if tok, err := b.Peek(); err == nil {
		return nil, backtrack.Failf(b.Index(), "unexpected %q", tok)
	}
	if forms == nil {
		forms = []any{}
	}
	return forms, nil
}

func parseExpr(b *sexpr) (any, *backtrack.Failure) {
	skipSpace(b)
	return backtrack.Or(b, parseList, parseAtom)
}

func parseList(b *sexpr) (any, *backtrack.Failure) {
	if _, err := backtrack.Satisfy(b, is("("), expected("`(`")); err != nil {
		return nil, err
	}

	// Past the opening paren, this must be a list: a missing close paren is
	// a cut, not a reason to try parsing an atom instead.
	items, err := backtrack.List(b, parseExpr)
	if err != nil {
		return nil, err
	}
	skipSpace(b)
	if _, err := backtrack.Satisfy(b, is(")"), expected("`)`")); err != nil {
		return nil, backtrack.Cutf(b.Index(), "expected `)`")
	}

	if items == nil {
		items = []any{}
	}
	return items, nil
}

func parseAtom(b *sexpr) (any, *backtrack.Failure) {
	letters, err := backtrack.List1(b, func(b *sexpr) (string, *backtrack.Failure) {
		return backtrack.Satisfy(b, isLetter, expected("letter"))
	})
	if err != nil {
		return nil, err
	}
	return strings.Join(letters, ""), nil
}

func skipSpace(b *sexpr) {
	_, _ = backtrack.List(b, func(b *sexpr) (string, *backtrack.Failure) {
		return backtrack.Satisfy(b, isSpace, expected("whitespace"))
	})
}

func is(want string) func(string) bool {
	return func(s string) bool { return s == want }
}

func isLetter(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}

func expected(what string) func(string, int) *backtrack.Failure {
	return func(_ string, index int) *backtrack.Failure {
		return backtrack.Failf(index, "expected %s", what)
	}
}
