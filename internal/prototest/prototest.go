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

// Package prototest builds small descriptor sets for tests.
package prototest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/descriptorpb"
)

// File returns a proto3 file descriptor with the given path, package name,
// and top-level messages. The result is complete enough to survive
// protodesc validation, so tests can exercise the reflection pool path.
func File(name, pkg string, messages ...*descriptorpb.DescriptorProto) *descriptorpb.FileDescriptorProto {
	fd := &descriptorpb.FileDescriptorProto{
		Name:        proto.String(name),
		Syntax:      proto.String("proto3"),
		MessageType: messages,
	}
	if pkg != "" {
		fd.Package = proto.String(pkg)
	}
	return fd
}

// Message returns a message descriptor with the given name and nested
// messages.
func Message(name string, nested ...*descriptorpb.DescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name:       proto.String(name),
		NestedType: nested,
	}
}

// Set assembles files into a descriptor set, preserving order.
func Set(files ...*descriptorpb.FileDescriptorProto) *descriptorpb.FileDescriptorSet {
	return &descriptorpb.FileDescriptorSet{File: files}
}

// MarshalSet serializes the set into the wire format consumed by the loader.
func MarshalSet(t *testing.T, set *descriptorpb.FileDescriptorSet) []byte {
	t.Helper()
	data, err := proto.Marshal(set)
	require.NoError(t, err)
	return data
}

// AssertMessagesEqual fails the test with a field-level diff when the two
// messages differ.
func AssertMessagesEqual(t *testing.T, want, got proto.Message) {
	t.Helper()
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%v", diff)
	}
}
