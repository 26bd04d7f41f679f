// Copyright 2026 Wollok-TS Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package werrors defines the error taxonomy for link-time and host-fatal
// failures. VM runtime errors that are user-catchable (EvaluationError,
// StackOverflowException) are NOT modeled here; those are ordinary
// runtime instances raised through the unwinding path in
// internal/core/eval. This package is reserved for failures that abort
// before or outside the interpreter loop: a small Error interface plus a
// List accumulator, so the linker can report every problem it finds in
// one pass instead of stopping at the first.
package werrors

import (
	"fmt"
	"strings"
)

// Error is the common interface for every werrors failure.
type Error interface {
	error
	Path() []string
}

// site is anything that can report where a failure occurred; ast.Node
// satisfies it without this package importing ast (avoids an import cycle
// with internal/core/ast, which has no need to know about werrors).
type Site interface {
	SiteDescription() string
}

// wrapped is a single-cause failure.
type wrapped struct {
	msg  string
	path []string
}

func (e *wrapped) Error() string  { return e.msg }
func (e *wrapped) Path() []string { return e.path }

// Newf builds a single Error from a format string.
func Newf(format string, args ...interface{}) Error {
	return &wrapped{msg: fmt.Sprintf(format, args...)}
}

// UnresolvedReference reports a Reference whose name could not be resolved
// against any scope level.
func UnresolvedReference(name string, site Site) Error {
	desc := ""
	if site != nil {
		desc = " at " + site.SiteDescription()
	}
	return &wrapped{
		msg:  fmt.Sprintf("unresolved reference %q%s", name, desc),
		path: []string{name},
	}
}

// MergeConflict reports an attempt to merge two members that share a name
// but not a mergeable kind.
func MergeConflict(name string, leftKind, rightKind string) Error {
	return &wrapped{
		msg: fmt.Sprintf("merge conflict for %q: cannot merge %s with %s",
			name, leftKind, rightKind),
		path: []string{name},
	}
}

// MalformedTree reports a structurally invalid input tree (e.g. a nil
// required child) discovered during linking.
func MalformedTree(reason string) Error {
	return Newf("malformed tree: %s", reason)
}

// Redeclaration reports a second `var` binding a name already bound
// within the same lexical block.
func Redeclaration(name string, site Site) Error {
	desc := ""
	if site != nil {
		desc = " at " + site.SiteDescription()
	}
	return &wrapped{
		msg:  fmt.Sprintf("%q is already declared in this scope%s", name, desc),
		path: []string{name},
	}
}

// List accumulates zero or more Errors. A List with no entries is not an
// error value; use List.Err() to obtain one (or nil).
type List []Error

func (l *List) Add(e Error) {
	if e != nil {
		*l = append(*l, e)
	}
}

func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns l as an error, or nil if l is empty.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
