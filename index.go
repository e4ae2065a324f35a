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
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/bufbuild/protoroute/modpath"
)

// A DuplicateModuleError reports two input files whose packages resolve to
// the same module. Generation for such a set would be ambiguous, so it is
// rejected before the generator runs.
type DuplicateModuleError struct {
	Module modpath.Module
	// First and Second are the source paths of the colliding files, in
	// input order.
	First, Second string
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("duplicate module %q: %q and %q both resolve to it", e.Module, e.First, e.Second)
}

// moduleIndex maps each module of a run back to the source path of the file
// that produced it. Routing needs the reverse direction because file-level
// routes and wraps are keyed by source path while generated units only
// carry their module.
type moduleIndex map[modpath.Module]string

// indexFiles resolves every file of the set to its module, rejecting
// duplicates. The whole set is indexed, including files a later step
// excludes from generation, so duplicate detection does not depend on
// configuration.
func indexFiles(set *descriptorpb.FileDescriptorSet) (moduleIndex, error) {
	index := make(moduleIndex, len(set.GetFile()))
	for _, fd := range set.GetFile() {
		module := modpath.FromProtoPackage(fd.GetPackage())
		if first, ok := index[module]; ok {
			return nil, &DuplicateModuleError{Module: module, First: first, Second: fd.GetName()}
		}
		index[module] = fd.GetName()
	}
	return index, nil
}
