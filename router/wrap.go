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

package router

import (
	"fmt"
	"io"
)

// writeWrapped writes content to w nested inside one module declaration per
// segment, outermost first, with matching closers in reverse order. The
// content itself is written verbatim plus a trailing newline; with no
// segments that is all that happens. Declarations are never indented, so
// the output is stable regardless of depth.
func writeWrapped(w io.Writer, content string, segments []string) error {
	for _, segment := range segments {
		if _, err := fmt.Fprintf(w, "pub mod %s {\n", segment); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, content); err != nil {
		return err
	}
	for range segments {
		if _, err := fmt.Fprintln(w, "}"); err != nil {
			return err
		}
	}
	return nil
}
