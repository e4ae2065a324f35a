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

// Package protowalk traverses the message types declared in file
// descriptors, in declaration order, including nested declarations.
package protowalk

import "google.golang.org/protobuf/reflect/protoreflect"

// Messages calls fn for every message declared in fd, walking nested
// messages depth-first in declaration order, parents before children. It
// stops at the first error and returns it.
//
// Synthetic map-entry messages are part of the walk; callers that do not
// want them can check MessageDescriptor.IsMapEntry.
func Messages(fd protoreflect.FileDescriptor, fn func(protoreflect.MessageDescriptor) error) error {
	return messages(fd.Messages(), fn)
}

func messages(msgs protoreflect.MessageDescriptors, fn func(protoreflect.MessageDescriptor) error) error {
	for i := range msgs.Len() {
		msg := msgs.Get(i)
		if err := fn(msg); err != nil {
			return err
		}
		if err := messages(msg.Messages(), fn); err != nil {
			return err
		}
	}
	return nil
}
