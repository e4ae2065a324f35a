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

package protoroute

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoroute/internal/prototest"
	"github.com/bufbuild/protoroute/options"
)

func TestRunFullFlags(t *testing.T) {
	t.Parallel()
	set := prototest.Set(
		prototest.File("a.proto", "acme.a"),
		prototest.File("b.proto", "acme.b"),
		prototest.File("c.proto", "acme.c"),
		prototest.File("d.proto", "acme.d"),
		prototest.File("skip.proto", "skip"),
	)
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.rs")
	bPath := filepath.Join(dir, "b.rs")
	output := filepath.Join(dir, "nested", "gen.rs")

	var gotConfig *options.Config
	gen := GeneratorFunc(func(ctx context.Context, req *Request) ([]Unit, error) {
		gotConfig = req.Config
		return echoGenerator(ctx, req)
	})
	err := Run(context.Background(), []string{
		"--input", writeSet(t, set),
		"--output", output,
		"--output-map", "a.proto=" + aPath,
		"--module-output-map", "acme.b=" + bPath,
		"--module-in-file", "c.proto=outer",
		"--module-wrap", "acme::d=wrapped",
		"--extern-path", ".skip=::skip_types",
		"--type-attribute", ".acme.a.M=#[derive(Eq, Hash)]",
		"--create-directory",
	}, gen)
	require.NoError(t, err)

	assert.Equal(t, "// module acme::a\n", readFile(t, aPath))
	assert.Equal(t, "// module acme::b\n", readFile(t, bPath))
	assert.Equal(t,
		"pub mod outer {\n// module acme::c\n}\npub mod wrapped {\n// module acme::d\n}\n",
		readFile(t, output))

	// Attribute values keep their commas; repeated flags would be split
	// apart if these were comma-separated slice flags.
	require.NotNil(t, gotConfig)
	assert.Equal(t, []string{"#[derive(Eq, Hash)]"}, gotConfig.TypeAttributes[".acme.a.M"])
}

func TestRunMalformedOptionWritesNothing(t *testing.T) {
	t.Parallel()
	set := prototest.Set(prototest.File("a.proto", "acme.a"))
	dir := t.TempDir()

	var called bool
	gen := GeneratorFunc(func(_ context.Context, _ *Request) ([]Unit, error) {
		called = true
		return nil, nil
	})
	err := Run(context.Background(), []string{
		"--input", writeSet(t, set),
		"--output", filepath.Join(dir, "gen.rs"),
		"--output-map", "novalue",
	}, gen)
	require.Error(t, err)
	var pairErr *options.PairSyntaxError
	require.ErrorAs(t, err, &pairErr)
	assert.Equal(t, "novalue", pairErr.Option)
	assert.False(t, called)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries, "a malformed option must fail before any file is written")
}

func TestRunMissingInput(t *testing.T) {
	t.Parallel()
	err := Run(context.Background(), []string{"--output", "gen.rs"}, echoGenerator)
	require.Error(t, err)
	assert.ErrorContains(t, err, "input descriptor set is required")
}

func TestRunUnknownFlag(t *testing.T) {
	t.Parallel()
	err := Run(context.Background(), []string{"--bogus"}, echoGenerator)
	require.Error(t, err)
	assert.ErrorContains(t, err, "unknown flag")
}

func TestRunManifest(t *testing.T) {
	t.Parallel()
	set := prototest.Set(
		prototest.File("a.proto", "acme.a"),
		prototest.File("b.proto", "acme.b"),
	)
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.rs")
	output := filepath.Join(dir, "gen.rs")

	manifestPath := filepath.Join(dir, "protoroute.yaml")
	manifest := fmt.Sprintf(`
input: %s
output-map:
  a.proto: %s
type-attribute:
  acme.M:
    - '#[from(manifest)]'
`, writeSet(t, set), aPath)
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	var gotConfig *options.Config
	gen := GeneratorFunc(func(ctx context.Context, req *Request) ([]Unit, error) {
		gotConfig = req.Config
		return echoGenerator(ctx, req)
	})
	err := Run(context.Background(), []string{
		"--manifest", manifestPath,
		"--output", output,
		"--type-attribute", "acme.M=#[from(flag)]",
	}, gen)
	require.NoError(t, err)

	assert.Equal(t, "// module acme::a\n", readFile(t, aPath))
	assert.Equal(t, "// module acme::b\n", readFile(t, output))

	// Flag-supplied attributes append after the manifest's.
	require.NotNil(t, gotConfig)
	assert.Equal(t, []string{"#[from(manifest)]", "#[from(flag)]"}, gotConfig.TypeAttributes["acme.M"])
}

func TestRunManifestUnknownKey(t *testing.T) {
	t.Parallel()
	manifestPath := filepath.Join(t.TempDir(), "protoroute.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("outpt: typo.rs\n"), 0o644))
	err := Run(context.Background(), []string{"--manifest", manifestPath}, echoGenerator)
	require.Error(t, err)
	assert.ErrorContains(t, err, "field outpt not found")
}
