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

// Package router writes generated source text to its destination files.
//
// Destinations are resolved through a fixed priority chain: a route keyed by
// the entry's originating source file path, then a route keyed by its module
// path, then the single shared fallback output. Explicitly routed entries
// each get their own file, created fresh (truncating whatever was there) and
// closed as soon as the entry is written. The fallback output is opened
// lazily when the first unrouted entry arrives and stays open so that later
// unrouted entries append to it in arrival order; Close releases it.
//
// An entry may additionally be wrapped in nested module declarations before
// it is written. Wraps are registered by source file path or by module path
// independently of routing, with the file-path registration winning when
// both exist.
package router

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bufbuild/protoroute/modpath"
)

// ErrNoOutput is returned when an entry matches no route and no fallback
// output is configured.
var ErrNoOutput = errors.New("no output")

// A NoRouteError reports an entry that could not be routed anywhere. It
// unwraps to [ErrNoOutput].
type NoRouteError struct {
	// Module is the module path of the entry that had no destination.
	Module modpath.Module
}

func (e *NoRouteError) Error() string {
	return fmt.Sprintf("module %q has no output", e.Module)
}

func (e *NoRouteError) Unwrap() error {
	return ErrNoOutput
}

// Config describes where entries go.
//
// All tables may be nil. Destination paths are used as given, relative to
// the process working directory unless absolute.
type Config struct {
	// FileRoutes maps an entry's originating source file path to a
	// destination file. It is consulted first.
	FileRoutes map[string]string

	// ModuleRoutes maps a canonical module path (see [modpath.Module]) to a
	// destination file. It is consulted when no file route matches.
	ModuleRoutes map[string]string

	// Output is the shared fallback destination for entries with no
	// explicit route. Empty means no fallback is available and such
	// entries fail with a [NoRouteError].
	Output string

	// WrapsByFile and WrapsByModule register module-declaration wrapping,
	// keyed like FileRoutes and ModuleRoutes respectively. A by-file
	// registration takes precedence over a by-module one.
	WrapsByFile   map[string][]string
	WrapsByModule map[string][]string

	// CreateDirs makes the router create missing parent directories of a
	// destination before opening it. When false, a destination whose
	// parent does not exist is an I/O error.
	CreateDirs bool
}

// An Entry is one unit of generated output: the text produced for a single
// module, tagged with the module path and the source file it came from.
type Entry struct {
	Module     modpath.Module
	SourcePath string
	Content    string
}

// A Router routes entries to files per its Config. It is not safe for
// concurrent use; entries are written strictly in the order given, which is
// what makes shared fallback output deterministic.
type Router struct {
	config   Config
	fallback *os.File
}

// New returns a Router writing per config.
func New(config Config) *Router {
	return &Router{config: config}
}

// routeFunc is one strategy in the priority chain. It reports whether it
// claimed the entry; an unclaimed entry falls through to the next strategy.
type routeFunc func(*Router, Entry) (bool, error)

var routeChain = []routeFunc{
	(*Router).routeByFile,
	(*Router).routeByModule,
	(*Router).routeFallback,
}

// Route writes one entry to its resolved destination. The first error is
// final: the router makes no attempt to retry or reroute, and files written
// by earlier calls are left as they are.
func (r *Router) Route(entry Entry) error {
	for _, route := range routeChain {
		claimed, err := route(r, entry)
		if claimed || err != nil {
			return err
		}
	}
	return &NoRouteError{Module: entry.Module}
}

// Close closes the fallback output if any entry was routed to it. It is
// safe to call more than once; Route must not be called after Close.
func (r *Router) Close() error {
	if r.fallback == nil {
		return nil
	}
	f := r.fallback
	r.fallback = nil
	return f.Close()
}

func (r *Router) routeByFile(entry Entry) (bool, error) {
	dest, ok := r.config.FileRoutes[entry.SourcePath]
	if !ok {
		return false, nil
	}
	return true, r.writeExclusive(dest, entry)
}

func (r *Router) routeByModule(entry Entry) (bool, error) {
	dest, ok := r.config.ModuleRoutes[entry.Module.String()]
	if !ok {
		return false, nil
	}
	return true, r.writeExclusive(dest, entry)
}

func (r *Router) routeFallback(entry Entry) (bool, error) {
	if r.config.Output == "" {
		return false, nil
	}
	if r.fallback == nil {
		f, err := r.create(r.config.Output)
		if err != nil {
			return true, err
		}
		r.fallback = f
	}
	return true, writeWrapped(r.fallback, entry.Content, r.wrapFor(entry))
}

// writeExclusive writes entry to its own file at dest and closes it
// immediately. Explicit routes are exclusive, so any previous content of
// dest is discarded rather than appended to.
func (r *Router) writeExclusive(dest string, entry Entry) error {
	f, err := r.create(dest)
	if err != nil {
		return err
	}
	if err := writeWrapped(f, entry.Content, r.wrapFor(entry)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (r *Router) create(dest string) (*os.File, error) {
	if r.config.CreateDirs {
		if dir := filepath.Dir(dest); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	return os.Create(dest)
}

func (r *Router) wrapFor(entry Entry) []string {
	if segments, ok := r.config.WrapsByFile[entry.SourcePath]; ok {
		return segments
	}
	return r.config.WrapsByModule[entry.Module.String()]
}
