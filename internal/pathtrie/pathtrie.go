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

// Package pathtrie provides a map from dotted protobuf paths to values,
// where lookups return the value of the longest inserted path that is an
// ancestor of (or equal to) the query.
//
// Unlike a plain string-prefix trie, matching respects segment boundaries:
// the key a.b is a prefix of a.b.c but not of a.bc.
package pathtrie

import "strings"

// Trie maps dotted paths to values of type V.
//
// The zero value is empty and ready to use.
type Trie[V any] struct {
	root node[V]
}

type node[V any] struct {
	children map[string]*node[V]
	value    V
	set      bool
}

// Insert adds a value for the given dotted path, replacing any value already
// present for exactly that path. The empty path addresses the root, which
// every query matches.
func (t *Trie[V]) Insert(path string, value V) {
	n := &t.root
	for _, seg := range segments(path) {
		child := n.children[seg]
		if child == nil {
			child = &node[V]{}
			if n.children == nil {
				n.children = map[string]*node[V]{}
			}
			n.children[seg] = child
		}
		n = child
	}
	n.value = value
	n.set = true
}

// Get returns the key which is the longest inserted prefix of the dotted
// query path, along with its value. The match is exact when key == path.
//
// If no inserted key is a prefix of path, Get returns "" and the zero value,
// with ok false.
func (t *Trie[V]) Get(path string) (key string, value V, ok bool) {
	n := &t.root
	if n.set {
		key, value, ok = "", n.value, true
	}
	segs := segments(path)
	for i, seg := range segs {
		n = n.children[seg]
		if n == nil {
			break
		}
		if n.set {
			key, value, ok = strings.Join(segs[:i+1], "."), n.value, true
		}
	}
	return key, value, ok
}

func segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
