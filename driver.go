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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoroute/internal/pathtrie"
	"github.com/bufbuild/protoroute/modpath"
	"github.com/bufbuild/protoroute/options"
	"github.com/bufbuild/protoroute/router"
)

// A Driver executes generation runs. It loads and decodes the configured
// descriptor set, resolves each file's module, invokes the Generator, and
// routes every generated unit to its output file.
//
// The fields are not modified once Run is called, with one exception: when
// reflection decoration is enabled, Run appends the reflection attributes
// to Config's type attribute table before handing it to the generator, so a
// Config must not be reused across runs in that mode.
type Driver struct {
	// Generator produces the source text for each module. Required.
	Generator Generator

	// Config describes the run. Required; the zero Config reads no input,
	// so it is typically built by the command line or a manifest.
	Config *options.Config

	// Stdin is the stream read when Config.Input is "-". Defaults to
	// os.Stdin.
	Stdin io.Reader
}

// Run executes one generation run. Any failure aborts the run at the point
// of detection: files already written by earlier explicit routes are left
// in place, and nothing is written after the failure.
func (d *Driver) Run(ctx context.Context) (err error) {
	if d.Generator == nil {
		return errors.New("driver has no generator")
	}
	config := d.Config
	if config == nil {
		return errors.New("driver has no config")
	}
	stdin := d.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := readInput(config.Input, stdin)
	if err != nil {
		return err
	}
	set, err := loadDescriptorSet(data)
	if err != nil {
		return err
	}
	if config.ReflectionByteRef != "" {
		if err := config.ApplyReflection(set, config.ReflectionByteRef); err != nil {
			return err
		}
	}
	index, err := indexFiles(set)
	if err != nil {
		return err
	}
	req := buildRequest(set, config)
	units, err := d.Generator.Generate(ctx, req)
	if err != nil {
		return err
	}
	requested := make(map[modpath.Module]bool, len(req.Files))
	for _, file := range req.Files {
		requested[file.Module] = true
	}

	r := router.New(router.Config{
		FileRoutes:    config.FileRoutes,
		ModuleRoutes:  config.ModuleRoutes,
		Output:        config.Output,
		WrapsByFile:   config.WrapsByFile,
		WrapsByModule: config.WrapsByModule,
		CreateDirs:    config.CreateDirectory,
	})
	defer func() {
		if closeErr := r.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	for _, unit := range units {
		// A unit for a module outside the request would either have no
		// source file at all or belong to an extern-redirected package that
		// must not produce output.
		if !requested[unit.Module] {
			return fmt.Errorf("generator returned unknown module %q", unit.Module)
		}
		entry := router.Entry{
			Module:     unit.Module,
			SourcePath: index[unit.Module],
			Content:    unit.Content,
		}
		if err := r.Route(entry); err != nil {
			return err
		}
	}
	return nil
}

// buildRequest assembles the generator's view of the run: every file of the
// set, in set order, minus those whose package falls under an extern-path
// redirection. A redirected package's types come from an existing external
// import, so emitting code for it would collide with that import.
//
// Extern-path keys use the leading-dot root marker and match whole package
// prefixes on segment boundaries, so .a.b covers a.b and a.b.c but not
// a.bc.
func buildRequest(set *descriptorpb.FileDescriptorSet, config *options.Config) *Request {
	var externs pathtrie.Trie[string]
	for pkg, target := range config.ExternPaths {
		externs.Insert(strings.TrimPrefix(pkg, "."), target)
	}
	files := make([]*InputFile, 0, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		if _, _, ok := externs.Get(fd.GetPackage()); ok {
			continue
		}
		files = append(files, &InputFile{
			Module: modpath.FromProtoPackage(fd.GetPackage()),
			Path:   fd.GetName(),
			Proto:  fd,
		})
	}
	return &Request{Files: files, Config: config}
}
