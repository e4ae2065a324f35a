// Copyright 2025-2026 Buf Technologies, Inc.
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

// Package corpus runs table-driven tests whose table lives in the
// filesystem: every file under a root directory with a given extension is
// one test case, and each case's expected outputs live next to it in
// golden files.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pmezard/go-difflib/difflib"
)

// A Corpus describes one directory of filesystem test cases.
type Corpus struct {
	// Root is the test data directory, relative to the source file that
	// calls [Corpus.Run].
	Root string

	// Refresh names an environment variable. When set, its value is a
	// doublestar glob of case names whose golden files are rewritten from
	// the current results instead of compared. A refresh run always fails
	// so that freshly written goldens cannot slip through as a green run.
	Refresh string

	// Extension (without the dot) marks the files under Root that define
	// a test case, e.g. "yaml".
	Extension string

	// Outputs are the expected outputs of each case, found at the case
	// file's path plus "." plus the output's extension. A missing golden
	// file is an expected-empty output.
	Outputs []Output

	// Test executes one case and returns one result string per entry of
	// Outputs.
	Test func(t *testing.T, path, text string) []string
}

// Output is one expected output of a test case.
type Output struct {
	// Extension is the golden file suffix: case foo.yaml with extension
	// "out" is compared against foo.yaml.out.
	Extension string

	// Compare overrides the comparison; nil means compare as text and
	// report a unified diff.
	Compare Compare
}

// Compare reports the difference between got and want, or "" when they
// match.
type Compare func(got, want string) string

// Run executes every case of the corpus as a subtest.
func (c Corpus) Run(t *testing.T) {
	testDir := callerDir(0)
	root := filepath.Join(testDir, c.Root)

	var cases []string
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.TrimPrefix(path.Ext(p), ".") == c.Extension {
			cases = append(cases, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("corpus: walking %q: %v", root, err)
	}

	var refresh string
	if c.Refresh != "" {
		refresh = os.Getenv(c.Refresh)
		if refresh != "" && !doublestar.ValidatePattern(refresh) {
			t.Fatalf("corpus: %s=%q is not a valid glob", c.Refresh, refresh)
		}
	}
	if refresh != "" {
		t.Logf("corpus: refreshing golden files because %s=%s", c.Refresh, refresh)
		t.Fail()
	}

	for _, casePath := range cases {
		name, err := filepath.Rel(testDir, casePath)
		if err != nil {
			t.Fatalf("corpus: resolving case name for %q: %v", casePath, err)
		}
		name = filepath.ToSlash(name)
		t.Run(name, func(t *testing.T) {
			text, err := os.ReadFile(casePath)
			if err != nil {
				t.Fatalf("corpus: loading case %q: %v", casePath, err)
			}
			results := c.Test(t, name, string(text))
			if len(results) != len(c.Outputs) {
				t.Fatalf("corpus: case returned %d results, want %d", len(results), len(c.Outputs))
			}

			refreshThis, _ := doublestar.Match(refresh, name)
			for i, output := range c.Outputs {
				goldenPath := fmt.Sprint(casePath, ".", output.Extension)
				if refreshThis {
					c.writeGolden(t, goldenPath, results[i])
					continue
				}
				want, err := os.ReadFile(goldenPath)
				if err != nil && !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("corpus: loading golden file %q: %v", goldenPath, err)
					continue
				}
				compare := output.Compare
				if compare == nil {
					compare = diffCompare
				}
				if diff := compare(results[i], string(want)); diff != "" {
					t.Errorf("corpus: mismatch against %q:\n%s", goldenPath, diff)
				}
			}
		})
	}
}

// writeGolden replaces the golden file with result; an empty result removes
// the file instead, matching how a missing golden reads back as empty.
func (c Corpus) writeGolden(t *testing.T, goldenPath, result string) {
	if result == "" {
		err := os.Remove(goldenPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("corpus: deleting golden file %q: %v", goldenPath, err)
		}
		return
	}
	if err := os.WriteFile(goldenPath, []byte(result), 0o644); err != nil {
		t.Errorf("corpus: writing golden file %q: %v", goldenPath, err)
	}
}

func diffCompare(got, want string) string {
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

	// Colorize so mismatches are easy to spot in test logs.
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+"):
			lines[i] = "\033[1;92m" + line + "\033[0m"
		case strings.HasPrefix(line, "-"):
			lines[i] = "\033[1;91m" + line + "\033[0m"
		}
	}
	return strings.Join(lines, "\n")
}

func callerDir(skip int) string {
	_, file, _, ok := runtime.Caller(skip + 2)
	if !ok {
		panic("corpus: could not determine test file's directory")
	}
	return filepath.Dir(file)
}
