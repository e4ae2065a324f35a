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
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bufbuild/protoroute/modpath"
)

// A Manifest is the YAML form of a Config. Every key mirrors the
// command-line flag of the same name, so a run can be described in a
// checked-in file instead of a long invocation. Flags given alongside a
// manifest are applied after it: scalars override, tables accumulate.
type Manifest struct {
	Input             string              `yaml:"input"`
	Output            string              `yaml:"output"`
	CreateDirectory   bool                `yaml:"create-directory"`
	ReflectionByteRef string              `yaml:"reflection-byte-reference"`
	ExternPath        map[string]string   `yaml:"extern-path"`
	FieldAttribute    map[string][]string `yaml:"field-attribute"`
	TypeAttribute     map[string][]string `yaml:"type-attribute"`
	MessageAttribute  map[string][]string `yaml:"message-attribute"`
	EnumAttribute     map[string][]string `yaml:"enum-attribute"`
	ClientAttribute   map[string][]string `yaml:"client-attribute"`
	ServerAttribute   map[string][]string `yaml:"server-attribute"`
	OutputMap         map[string]string   `yaml:"output-map"`
	ModuleOutputMap   map[string]string   `yaml:"module-output-map"`
	ModuleInFile      map[string]string   `yaml:"module-in-file"`
	ModuleWrap        map[string]string   `yaml:"module-wrap"`
}

// LoadManifest reads and decodes the manifest at path. Unknown keys are
// rejected rather than ignored, so a typo in a manifest fails the run
// instead of silently dropping configuration. An empty file is a valid,
// empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &Manifest{}, nil
		}
		return nil, fmt.Errorf("decoding manifest %s: %w", path, err)
	}
	return &m, nil
}

// Apply folds the manifest into c. Scalars are only written when the
// manifest sets them, so zero values in the manifest never clobber values
// already present; table entries are assigned key by key, with attribute
// values appended in manifest order.
func (m *Manifest) Apply(c *Config) {
	if m.Input != "" {
		c.Input = m.Input
	}
	if m.Output != "" {
		c.Output = m.Output
	}
	if m.CreateDirectory {
		c.CreateDirectory = true
	}
	if m.ReflectionByteRef != "" {
		c.ReflectionByteRef = m.ReflectionByteRef
	}
	for key, value := range m.ExternPath {
		c.ExternPaths[key] = value
	}
	applyAttrs(c.FieldAttributes, m.FieldAttribute)
	applyAttrs(c.TypeAttributes, m.TypeAttribute)
	applyAttrs(c.MessageAttributes, m.MessageAttribute)
	applyAttrs(c.EnumAttributes, m.EnumAttribute)
	applyAttrs(c.ClientAttributes, m.ClientAttribute)
	applyAttrs(c.ServerAttributes, m.ServerAttribute)
	for path, dest := range m.OutputMap {
		c.FileRoutes[path] = dest
	}
	for mod, dest := range m.ModuleOutputMap {
		c.ModuleRoutes[modpath.Parse(mod).String()] = dest
	}
	for path, wrap := range m.ModuleInFile {
		c.WrapsByFile[path] = ParseWrapSegments(wrap)
	}
	for mod, wrap := range m.ModuleWrap {
		c.WrapsByModule[modpath.Parse(mod).String()] = ParseWrapSegments(wrap)
	}
}

func applyAttrs(dst, src map[string][]string) {
	for key, values := range src {
		dst[key] = append(dst[key], values...)
	}
}
