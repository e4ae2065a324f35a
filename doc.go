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

// Package protoroute provides the output half of a descriptor-driven code
// generation plugin: it reads an encoded descriptor set, resolves every
// file's package to a module path, invokes a code generator, and routes the
// generated source text to output files according to user-supplied routing
// and wrapping rules.
//
// The pipeline runs strictly left to right for one invocation: bytes are
// read from a file or standard input and decoded into file descriptors;
// each descriptor's dotted package name becomes a module path (a.b.c
// becomes a::b::c), with duplicate modules rejected before anything else
// happens; the generator produces one unit of source text per module; and
// the router writes each unit to exactly one destination.
//
// # Generators
//
// A Generator is the external collaborator that turns descriptors into
// source text. This package does not generate code itself; it hands the
// generator a Request carrying the input files and the configured attribute
// tables and consumes the returned units. Anything that can produce text
// per module can be a Generator, and GeneratorFunc adapts a plain function.
//
// # Drivers and the command line
//
// A Driver runs the pipeline once for a given Generator and configuration.
// Most plugin binaries never construct one directly and instead hand their
// generator to Main, which parses the command line, builds the
// configuration from flags and an optional YAML manifest, and executes the
// run:
//
//	func main() {
//		protoroute.Main(myGenerator)
//	}
//
// # Routing
//
// Every generated unit resolves its destination through a fixed priority
// chain: a route keyed by the unit's originating source file, then a route
// keyed by its module path, then the single shared fallback output. A unit
// that reaches the end of the chain with no fallback configured fails the
// run. Explicitly routed units each own their destination file; fallback
// units are concatenated into the shared file in generator-return order.
// Units can additionally be wrapped in nested module declarations, keyed by
// source file or module path. The router package implements this chain and
// documents its details.
package protoroute
