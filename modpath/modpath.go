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

// Package modpath defines the module identifier derived from a protobuf
// package name. The module is the unit of generation and of output routing:
// every file in a descriptor set resolves to exactly one module, and every
// generated unit is keyed by one.
package modpath

import "strings"

// Separator joins the segments of a module path in its canonical rendering,
// so the package a.b.c renders as the module a::b::c.
const Separator = "::"

// Module is the hierarchical identifier derived from a dotted protobuf
// package name. The zero value is the root module, which is what an empty
// package name resolves to.
//
// Module is a comparable value: two modules are equal exactly when their
// segment sequences are equal, so it can be used directly as a map key.
type Module struct {
	path string
}

// FromProtoPackage derives the module for a dotted protobuf package name.
// The empty package name yields the root module.
func FromProtoPackage(pkg string) Module {
	if pkg == "" {
		return Module{}
	}
	return Module{path: strings.ReplaceAll(pkg, ".", Separator)}
}

// Parse reads a module path written in either the canonical a::b::c form or
// the dotted a.b.c form used by protobuf package names. The two spellings of
// the same path parse to equal modules; the empty string parses to the root
// module.
func Parse(s string) Module {
	return FromProtoPackage(strings.ReplaceAll(s, Separator, "."))
}

// String returns the canonical ::-separated rendering of the module path.
// The root module renders as the empty string.
func (m Module) String() string {
	return m.path
}

// Segments returns the ordered path segments of the module. The root module
// has none.
func (m Module) Segments() []string {
	if m.path == "" {
		return nil
	}
	return strings.Split(m.path, Separator)
}

// IsRoot reports whether the module is the root module, i.e. whether it was
// derived from an empty package name.
func (m Module) IsRoot() bool {
	return m.path == ""
}
