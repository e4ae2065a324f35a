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

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoroute/modpath"
	"github.com/bufbuild/protoroute/options"
)

// Generator turns the descriptors of a run into source text, one unit per
// module. The driver treats the result as opaque: it never inspects or
// rewrites a unit's content beyond the module wrapping the router applies.
//
// Implementations must emit at most one unit per module and only for
// modules present in the request. The order of the returned units decides
// the order in which they are written, which matters when several units
// share the fallback output; a generator that wants deterministic output
// should return units in request order.
type Generator interface {
	Generate(ctx context.Context, req *Request) ([]Unit, error)
}

// GeneratorFunc is a func that implements the [Generator] interface.
type GeneratorFunc func(ctx context.Context, req *Request) ([]Unit, error)

var _ Generator = GeneratorFunc(nil)

// Generate invokes the function.
func (f GeneratorFunc) Generate(ctx context.Context, req *Request) ([]Unit, error) {
	return f(ctx, req)
}

// Request is everything a generator needs for one run: the input files, in
// descriptor-set order, and the configuration with the attribute and
// redirection tables the generator is expected to honor.
//
// Files whose package was redirected via an extern-path entry are absent
// from Files; their types are provided by an existing external crate, so no
// code is generated for them. The redirection table itself is available in
// Config for generators that need to resolve cross-package references.
type Request struct {
	Files  []*InputFile
	Config *options.Config
}

// InputFile is one descriptor of the input set together with its resolved
// module path.
type InputFile struct {
	// Module is derived from the descriptor's package name. Unique within
	// a run.
	Module modpath.Module

	// Path is the descriptor's source file path, the key used for
	// file-level routing and wrapping.
	Path string

	// Proto is the raw descriptor.
	Proto *descriptorpb.FileDescriptorProto
}

// Unit is the generated source text for one module.
type Unit struct {
	Module  modpath.Module
	Content string
}
