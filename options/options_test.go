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

package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetPairs(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		opts []string
		want map[string]string
	}{
		{
			name: "single pair",
			opts: []string{"a=b"},
			want: map[string]string{"a": "b"},
		},
		{
			name: "value containing equals",
			opts: []string{"a=b=c"},
			want: map[string]string{"a": "b=c"},
		},
		{
			name: "last value wins",
			opts: []string{"a=1", "b=2", "a=3"},
			want: map[string]string{"a": "3", "b": "2"},
		},
		{
			name: "empty value",
			opts: []string{"a="},
			want: map[string]string{"a": ""},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			dst := map[string]string{}
			require.NoError(t, SetPairs(dst, testCase.opts))
			assert.Equal(t, testCase.want, dst)
		})
	}
}

func TestSetPairsSyntaxError(t *testing.T) {
	t.Parallel()
	dst := map[string]string{"keep": "me"}
	err := SetPairs(dst, []string{"valid=ok", "notapair"})
	require.Error(t, err)
	var pairErr *PairSyntaxError
	require.ErrorAs(t, err, &pairErr)
	assert.Equal(t, "notapair", pairErr.Option)
	assert.EqualError(t, err, `option "notapair" is not in the form key=value`)
	// The valid pair before the bad one was already folded in.
	assert.Equal(t, map[string]string{"keep": "me", "valid": "ok"}, dst)
}

func TestAddPairs(t *testing.T) {
	t.Parallel()
	dst := map[string][]string{}
	err := AddPairs(dst, []string{
		"foo.Bar=#[derive(Eq)]",
		"foo.Bar=#[serde(default)]",
		"other=x=y",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"foo.Bar": {"#[derive(Eq)]", "#[serde(default)]"},
		"other":   {"x=y"},
	}, dst)
}

func TestAddPairsSyntaxError(t *testing.T) {
	t.Parallel()
	err := AddPairs(map[string][]string{}, []string{"no separator"})
	var pairErr *PairSyntaxError
	require.ErrorAs(t, err, &pairErr)
	assert.Equal(t, "no separator", pairErr.Option)
}

func TestParseWrapSegments(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		input string
		want  []string
	}{
		{input: "a::b::c", want: []string{"a", "b", "c"}},
		{input: "a.b.c", want: []string{"a", "b", "c"}},
		{input: "a::b.c", want: []string{"a", "b", "c"}},
		{input: "solo", want: []string{"solo"}},
		{input: "", want: nil},
	}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, testCase.want, ParseWrapSegments(testCase.input))
		})
	}
}

func TestAddModuleRoutes(t *testing.T) {
	t.Parallel()
	config := New()
	err := config.AddModuleRoutes([]string{
		"foo.bar=src/foo_bar.rs",
		"foo::bar::baz=src/baz.rs",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"foo::bar":      "src/foo_bar.rs",
		"foo::bar::baz": "src/baz.rs",
	}, config.ModuleRoutes)

	// Both spellings address the same module, so the later one wins.
	require.NoError(t, config.AddModuleRoutes([]string{"foo::bar=src/other.rs"}))
	assert.Equal(t, "src/other.rs", config.ModuleRoutes["foo::bar"])
}

func TestAddFileWraps(t *testing.T) {
	t.Parallel()
	config := New()
	err := config.AddFileWraps([]string{
		"proto/widgets.proto=company::widgets",
		"proto/plain.proto=",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"proto/widgets.proto": {"company", "widgets"},
		"proto/plain.proto":   nil,
	}, config.WrapsByFile)
}

func TestAddModuleWraps(t *testing.T) {
	t.Parallel()
	config := New()
	err := config.AddModuleWraps([]string{"foo.bar=outer.inner"})
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{
		"foo::bar": {"outer", "inner"},
	}, config.WrapsByModule)
}

func TestAddModuleRoutesSyntaxError(t *testing.T) {
	t.Parallel()
	config := New()
	err := config.AddModuleRoutes([]string{"foo::bar"})
	require.Error(t, err)
	assert.True(t, errors.As(err, new(*PairSyntaxError)))
	assert.Empty(t, config.ModuleRoutes)
}
