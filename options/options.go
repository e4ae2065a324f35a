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

// Package options models the configuration of one generation run: the
// attribute and redirection tables handed to the generator, and the routing
// and wrapping tables consumed by the output router.
//
// Most of the surface is populated from repeated selector=value option
// strings. Splitting is always on the first '=' only, so values are free to
// contain further '=' characters; an option with no '=' at all is a
// configuration error.
package options

import (
	"fmt"
	"strings"

	"github.com/bufbuild/protoroute/modpath"
)

// Config carries every option for a single generation run.
//
// The attribute tables are keyed by fully-qualified entity paths (optionally
// carrying the leading-dot root marker) and their values are forwarded to
// the generator verbatim, preserving per-key registration order. The routing
// tables are consumed by the output router; see the router package for their
// precedence.
type Config struct {
	// Input selects the descriptor set source: "-" for standard input,
	// anything else a file path.
	Input string
	// Output is the shared fallback destination for modules that have no
	// explicit route. Empty means no fallback is configured.
	Output string
	// CreateDirectory makes the router create missing parent directories of
	// destination files.
	CreateDirectory bool
	// ReflectionByteRef names the externally defined byte symbol holding the
	// encoded descriptor set. When set, ApplyReflection decorates every
	// message type for runtime reflection support.
	ReflectionByteRef string

	// ExternPaths redirects whole packages to externally provided
	// implementations: selector → implementation path. Redirected packages
	// are excluded from generation; the table still travels to the generator
	// so that references into those packages resolve to the targets.
	ExternPaths map[string]string

	FieldAttributes   map[string][]string
	TypeAttributes    map[string][]string
	MessageAttributes map[string][]string
	EnumAttributes    map[string][]string
	ClientAttributes  map[string][]string
	ServerAttributes  map[string][]string

	// FileRoutes maps an input file path to an exclusive destination file.
	FileRoutes map[string]string
	// ModuleRoutes maps a canonical module path (modpath.Module.String) to
	// an exclusive destination file.
	ModuleRoutes map[string]string

	// WrapsByFile and WrapsByModule register the synthetic module segments a
	// unit's text is nested in before being written, keyed by input file
	// path and by canonical module path respectively.
	WrapsByFile   map[string][]string
	WrapsByModule map[string][]string
}

// New returns a Config with all tables allocated.
func New() *Config {
	return &Config{
		ExternPaths:       map[string]string{},
		FieldAttributes:   map[string][]string{},
		TypeAttributes:    map[string][]string{},
		MessageAttributes: map[string][]string{},
		EnumAttributes:    map[string][]string{},
		ClientAttributes:  map[string][]string{},
		ServerAttributes:  map[string][]string{},
		FileRoutes:        map[string]string{},
		ModuleRoutes:      map[string]string{},
		WrapsByFile:       map[string][]string{},
		WrapsByModule:     map[string][]string{},
	}
}

// A PairSyntaxError reports a repeated option value that is missing the '='
// separating its selector from its value.
type PairSyntaxError struct {
	Option string
}

func (e *PairSyntaxError) Error() string {
	return fmt.Sprintf("option %q is not in the form key=value", e.Option)
}

func splitPair(opt string) (key, value string, err error) {
	key, value, ok := strings.Cut(opt, "=")
	if !ok {
		return "", "", &PairSyntaxError{Option: opt}
	}
	return key, value, nil
}

// SetPairs folds repeated key=value options into dst. A key given more than
// once keeps its last value.
func SetPairs(dst map[string]string, opts []string) error {
	for _, opt := range opts {
		key, value, err := splitPair(opt)
		if err != nil {
			return err
		}
		dst[key] = value
	}
	return nil
}

// AddPairs folds repeated key=value options into dst, accumulating the
// values of a repeated key in the order given.
func AddPairs(dst map[string][]string, opts []string) error {
	for _, opt := range opts {
		key, value, err := splitPair(opt)
		if err != nil {
			return err
		}
		dst[key] = append(dst[key], value)
	}
	return nil
}

// ParseWrapSegments parses a module path written as a::b::c or a.b.c into
// its ordered segments. The empty string yields no segments, which the
// router treats as a pass-through.
func ParseWrapSegments(s string) []string {
	return modpath.Parse(s).Segments()
}

// AddModuleRoutes folds repeated module=destination options into the module
// route table, normalizing the module spelling so that a.b and a::b address
// the same module.
func (c *Config) AddModuleRoutes(opts []string) error {
	for _, opt := range opts {
		key, value, err := splitPair(opt)
		if err != nil {
			return err
		}
		c.ModuleRoutes[modpath.Parse(key).String()] = value
	}
	return nil
}

// AddFileWraps folds repeated file=modulepath options into the by-file wrap
// table.
func (c *Config) AddFileWraps(opts []string) error {
	for _, opt := range opts {
		key, value, err := splitPair(opt)
		if err != nil {
			return err
		}
		c.WrapsByFile[key] = ParseWrapSegments(value)
	}
	return nil
}

// AddModuleWraps folds repeated module=modulepath options into the by-module
// wrap table, normalizing the key spelling like AddModuleRoutes.
func (c *Config) AddModuleWraps(opts []string) error {
	for _, opt := range opts {
		key, value, err := splitPair(opt)
		if err != nil {
			return err
		}
		c.WrapsByModule[modpath.Parse(key).String()] = ParseWrapSegments(value)
	}
	return nil
}
