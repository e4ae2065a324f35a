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
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bufbuild/protoroute/internal/prototest"
)

func TestReadInputStdin(t *testing.T) {
	t.Parallel()
	data, err := readInput("-", strings.NewReader("descriptor bytes"))
	require.NoError(t, err)
	assert.Equal(t, []byte("descriptor bytes"), data)
}

func TestReadInputFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "set.binpb")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))
	data, err := readInput(path, bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestReadInputMissingFile(t *testing.T) {
	t.Parallel()
	_, err := readInput(filepath.Join(t.TempDir(), "nope.binpb"), nil)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadDescriptorSet(t *testing.T) {
	t.Parallel()
	want := prototest.Set(
		prototest.File("a.proto", "acme.a"),
		prototest.File("b.proto", "acme.b"),
	)
	set, err := loadDescriptorSet(prototest.MarshalSet(t, want))
	require.NoError(t, err)
	prototest.AssertMessagesEqual(t, want, set)
}

func TestLoadDescriptorSetEmpty(t *testing.T) {
	t.Parallel()
	set, err := loadDescriptorSet(nil)
	require.NoError(t, err)
	assert.Empty(t, set.GetFile())
}

func TestLoadDescriptorSetMalformed(t *testing.T) {
	t.Parallel()
	// Hand-assembled wire blobs that cannot be a descriptor set.
	testCases := []struct {
		name  string
		scope string
	}{
		{
			name:  "truncated tag",
			scope: "`0a`",
		},
		{
			name:  "length past end of input",
			scope: "`0a05` \"abc\"",
		},
		{
			name:  "field number zero",
			scope: "`00`",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			blob, err := protoscope.NewScanner(testCase.scope).Exec()
			require.NoError(t, err)
			_, err = loadDescriptorSet(blob)
			require.Error(t, err)
			assert.ErrorContains(t, err, "decoding descriptor set")
		})
	}
}
