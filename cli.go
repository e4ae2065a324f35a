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
	"os"

	"github.com/spf13/cobra"

	"github.com/bufbuild/protoroute/options"
)

// Main runs the command line around gen and exits the process when the run
// fails. A plugin binary's main function is typically just this:
//
//	func main() {
//		protoroute.Main(myGenerator)
//	}
func Main(gen Generator) {
	if err := Run(context.Background(), os.Args[1:], gen); err != nil {
		fmt.Fprintf(os.Stderr, "protoroute: %v\n", err)
		os.Exit(1)
	}
}

// Run parses args as command-line arguments and executes one generation run
// with gen. Malformed arguments fail the run before any input is read or
// any file is written.
func Run(ctx context.Context, args []string, gen Generator) error {
	cmd := newCommand(gen)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

type cliFlags struct {
	manifest          string
	input             string
	output            string
	externPath        []string
	fieldAttribute    []string
	typeAttribute     []string
	messageAttribute  []string
	enumAttribute     []string
	clientAttribute   []string
	serverAttribute   []string
	outputMap         []string
	moduleOutputMap   []string
	moduleInFile      []string
	moduleWrap        []string
	createDirectory   bool
	reflectionByteRef string
}

func newCommand(gen Generator) *cobra.Command {
	var flags cliFlags
	cmd := &cobra.Command{
		Use:   "protoroute",
		Short: "Generate source code from an encoded descriptor set and route it to files",
		Long: `protoroute runs an embedded code generator over an encoded descriptor set
and routes the generated source text to output files.

Each input file's package resolves to a module (a.b.c becomes a::b::c).
Generated text is routed per module: an --output-map route for the module's
source file wins, then a --module-output-map route for the module itself,
then everything left over is concatenated into the single --output file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			config, err := flags.build()
			if err != nil {
				return err
			}
			driver := &Driver{
				Generator: gen,
				Config:    config,
				Stdin:     cmd.InOrStdin(),
			}
			return driver.Run(cmd.Context())
		},
	}
	// Attribute and routing flags use StringArray, not StringSlice:
	// attribute values regularly contain commas.
	fs := cmd.Flags()
	fs.StringVar(&flags.manifest, "manifest", "", "YAML manifest supplying any of the other options")
	fs.StringVarP(&flags.input, "input", "i", "", `path to the encoded descriptor set, or "-" for standard input`)
	fs.StringVarP(&flags.output, "output", "o", "", "fallback output file for modules without an explicit route")
	fs.StringArrayVar(&flags.externPath, "extern-path", nil, "map a proto package to an external import path, as .a.b.c=::x::y")
	fs.StringArrayVar(&flags.fieldAttribute, "field-attribute", nil, "add an attribute to a field, as path=attribute")
	fs.StringArrayVar(&flags.typeAttribute, "type-attribute", nil, "add an attribute to a type, as path=attribute")
	fs.StringArrayVar(&flags.messageAttribute, "message-attribute", nil, "add an attribute to a message, as path=attribute")
	fs.StringArrayVar(&flags.enumAttribute, "enum-attribute", nil, "add an attribute to an enum, as path=attribute")
	fs.StringArrayVar(&flags.clientAttribute, "client-attribute", nil, "add an attribute to a generated client, as path=attribute")
	fs.StringArrayVar(&flags.serverAttribute, "server-attribute", nil, "add an attribute to a generated server, as path=attribute")
	fs.StringArrayVar(&flags.outputMap, "output-map", nil, "route an input file to an output file, as path/to/input.proto=path/to/output.rs")
	fs.StringArrayVar(&flags.moduleOutputMap, "module-output-map", nil, "route a module to an output file, as a::b=path/to/output.rs")
	fs.StringArrayVar(&flags.moduleInFile, "module-in-file", nil, "wrap an input file's output in module declarations, as path/to/input.proto=a::b")
	fs.StringArrayVar(&flags.moduleWrap, "module-wrap", nil, "wrap a module's output in module declarations, as a::b=x::y")
	fs.BoolVar(&flags.createDirectory, "create-directory", false, "create missing parent directories of output files")
	fs.StringVar(&flags.reflectionByteRef, "reflection-byte-reference", "", "decorate messages for reflection with the named byte symbol holding the encoded descriptor set, for example crate::PROTO_DEF")
	return cmd
}

// build assembles the run configuration. The manifest, when given, is
// applied first so that every flag can override or extend it.
func (f *cliFlags) build() (*options.Config, error) {
	config := options.New()
	if f.manifest != "" {
		manifest, err := options.LoadManifest(f.manifest)
		if err != nil {
			return nil, err
		}
		manifest.Apply(config)
	}
	if f.input != "" {
		config.Input = f.input
	}
	if f.output != "" {
		config.Output = f.output
	}
	if f.createDirectory {
		config.CreateDirectory = true
	}
	if f.reflectionByteRef != "" {
		config.ReflectionByteRef = f.reflectionByteRef
	}
	if err := options.SetPairs(config.ExternPaths, f.externPath); err != nil {
		return nil, err
	}
	attrTables := []struct {
		dst  map[string][]string
		opts []string
	}{
		{config.FieldAttributes, f.fieldAttribute},
		{config.TypeAttributes, f.typeAttribute},
		{config.MessageAttributes, f.messageAttribute},
		{config.EnumAttributes, f.enumAttribute},
		{config.ClientAttributes, f.clientAttribute},
		{config.ServerAttributes, f.serverAttribute},
	}
	for _, table := range attrTables {
		if err := options.AddPairs(table.dst, table.opts); err != nil {
			return nil, err
		}
	}
	if err := options.SetPairs(config.FileRoutes, f.outputMap); err != nil {
		return nil, err
	}
	if err := config.AddModuleRoutes(f.moduleOutputMap); err != nil {
		return nil, err
	}
	if err := config.AddFileWraps(f.moduleInFile); err != nil {
		return nil, err
	}
	if err := config.AddModuleWraps(f.moduleWrap); err != nil {
		return nil, err
	}
	if config.Input == "" {
		return nil, errors.New("an input descriptor set is required: pass --input or set input in the manifest")
	}
	return config, nil
}
