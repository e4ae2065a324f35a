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
	"fmt"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoroute/internal/protowalk"
)

// Attribute text understood by the canonical reflection-capable generator.
const (
	reflectDeriveAttr      = "#[derive(::prost_reflect::ReflectMessage)]"
	reflectMessageNameAttr = `#[prost_reflect(message_name = "%s")]`
	reflectByteRefAttr     = `#[prost_reflect(file_descriptor_set_bytes = "%s")]`
)

// ApplyReflection appends, for every message type in the set (nested types
// included), three type attributes enabling runtime introspection of the
// generated type: the reflection capability marker, the fully-qualified
// message name, and a reference to byteRef, the externally defined byte
// symbol holding this same set in encoded form.
//
// The set must be self-contained: assembling it into a descriptor pool is
// how message names are resolved, and a set with missing or invalid
// dependencies is a fatal configuration error. ApplyReflection appends
// unconditionally, so applying it twice to one Config is a caller error.
func (c *Config) ApplyReflection(set *descriptorpb.FileDescriptorSet, byteRef string) error {
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return fmt.Errorf("assembling descriptor pool: %w", err)
	}
	if c.TypeAttributes == nil {
		c.TypeAttributes = map[string][]string{}
	}
	byteRefAttr := fmt.Sprintf(reflectByteRefAttr, byteRef)
	var walkErr error
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		walkErr = protowalk.Messages(fd, func(md protoreflect.MessageDescriptor) error {
			name := string(md.FullName())
			c.TypeAttributes[name] = append(c.TypeAttributes[name],
				reflectDeriveAttr,
				fmt.Sprintf(reflectMessageNameAttr, name),
				byteRefAttr,
			)
			return nil
		})
		return walkErr == nil
	})
	return walkErr
}
