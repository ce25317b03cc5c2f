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

// Package corpora runs table-driven tests whose table lives in the file
// system: each test case is a file, and its expected outputs are files next
// to it.
package corpora

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a test data corpus.
type Corpus struct {
	// The root of the test data directory, relative to the file that calls
	// [Corpus.Run].
	Root string

	// An environment variable holding a glob. Test cases whose paths match it
	// have their expected outputs rewritten from the actual outputs instead of
	// being checked.
	Refresh string

	// The file extension (without a dot) of files which define a test case,
	// e.g. "sexpr".
	Extension string

	// Possible outputs of the test. For a case "foo.sexpr", output n is
	// expected in "foo.sexpr.<Outputs[n].Extension>". A missing file means
	// the output is expected to be empty.
	Outputs []Output

	// Test executes one test case and returns one string per element of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output represents one output of a test case.
type Output struct {
	// The suffix appended to the test case's file name to find this output.
	Extension string

	// The comparison function for this output. If nil, outputs are compared
	// byte-for-byte.
	Compare Compare
}

// Compare is a comparison function between strings, used in [Output].
//
// Returns the empty string if the strings match, otherwise a description of
// the mismatch.
type Compare func(got, want string) string

// Run executes every test case in the corpus as a subtest of t.
func (c Corpus) Run(t *testing.T) {
	t.Helper()

	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)
	cases := c.cases(t, root)
	if len(cases) == 0 {
		t.Fatalf("corpora: no *.%s files found in %q", c.Extension, root)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpora: invalid glob in %s: %q", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpora: refreshing test data because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, path := range cases {
		name, _ := filepath.Rel(testDir, path)
		refreshing, _ := doublestar.Match(refresh, filepath.ToSlash(name))
		t.Run(name, func(t *testing.T) {
			c.runCase(t, name, path, refreshing)
		})
	}
}

// cases finds the test case files under root.
func (c Corpus) cases(t *testing.T, root string) []string {
	var cases []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.TrimPrefix(filepath.Ext(path), ".") == c.Extension {
			cases = append(cases, path)
		}
		return nil
	})
	if err != nil {
		t.Fatal("corpora: error while walking test data:", err)
	}
	return cases
}

func (c Corpus) runCase(t *testing.T, name, path string, refresh bool) {
	input, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("corpora: error while loading input file %q: %v", path, err)
	}

	results := c.Test(t, name, string(input))
	if len(results) != len(c.Outputs) {
		t.Fatalf("corpora: test returned %d outputs, want %d", len(results), len(c.Outputs))
	}

	for i, output := range c.Outputs {
		path := fmt.Sprint(path, ".", output.Extension)
		if refresh {
			writeOutput(t, path, results[i])
			continue
		}

		want, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while loading output file %q: %v", path, err)
			continue
		}

		compare := output.Compare
		if compare == nil {
			compare = Diff
		}
		if mismatch := compare(results[i], string(want)); mismatch != "" {
			t.Errorf("corpora: output mismatch for %q:\n%s", path, mismatch)
		}
	}
}

// writeOutput replaces the expected output at path with got. An empty output
// is recorded by deleting the file.
func writeOutput(t *testing.T, path, got string) {
	if got == "" {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			t.Errorf("corpora: error while deleting output file %q: %v", path, err)
		}
		return
	}
	if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
		t.Errorf("corpora: error while writing output file %q: %v", path, err)
	}
}

var (
	added   = color.New(color.FgHiGreen, color.Bold)
	removed = color.New(color.FgHiRed, color.Bold)
)

// Diff is the default [Compare]: it requires an exact match and describes a
// mismatch as a colored unified diff.
func Diff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}

	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = added.Sprint(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = removed.Sprint(line)
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpora: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
