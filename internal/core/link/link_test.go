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

package link

import (
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
)

// TestMergeConflictOnIncompatibleKinds checks that merging a class and a
// singleton declared under the same name fails with a MergeConflict rather
// than letting both members silently coexist.
func TestMergeConflictOnIncompatibleKinds(t *testing.T) {
	class := &ast.Class{Name: "Dup"}
	object := &ast.Singleton{Name: "Dup"}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{class, object}}

	_, err := Link([]*ast.Package{pkg}, nil)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	qt.Assert(t, qt.IsTrue(strings.Contains(err.Error(), "merge conflict")))
}

// TestRedeclarationOfLocalRejected checks that two `var` declarations
// sharing a name within the same block are reported, not silently
// shadowed.
func TestRedeclarationOfLocalRejected(t *testing.T) {
	object := &ast.Class{Name: "Object"}
	first := &ast.Variable{Name: "x", Value: &ast.Literal{LKind: ast.LiteralNumber, NumberVal: "1"}}
	second := &ast.Variable{Name: "x", Value: &ast.Literal{LKind: ast.LiteralNumber, NumberVal: "2"}}
	method := &ast.Method{Name: "m", Body: &ast.Body{Sentences: []ast.Node{first, second}}}
	class := &ast.Class{Name: "App", Super: &ast.Reference{Name: "Object"}, Meths: []ast.Node{method}}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{object, class}}

	_, err := Link([]*ast.Package{pkg}, nil)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	qt.Assert(t, qt.IsTrue(strings.Contains(err.Error(), `"x" is already declared`)))
}

// TestMalformedTryWithoutBodyRejected checks that a Try node missing its
// required Body is reported as a malformed tree instead of being silently
// skipped by Children().
func TestMalformedTryWithoutBodyRejected(t *testing.T) {
	object := &ast.Class{Name: "Object"}
	exception := &ast.Class{Name: "Exception", Super: &ast.Reference{Name: "Object"}}
	brokenTry := &ast.Try{Catches: []*ast.Catch{{Body: &ast.Body{}}}}
	method := &ast.Method{Name: "m", Body: &ast.Body{Sentences: []ast.Node{brokenTry}}}
	class := &ast.Class{Name: "App", Super: &ast.Reference{Name: "Object"}, Meths: []ast.Node{method}}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{object, exception, class}}

	_, err := Link([]*ast.Package{pkg}, nil)
	qt.Assert(t, qt.Not(qt.IsNil(err)))
	qt.Assert(t, qt.IsTrue(strings.Contains(err.Error(), "try statement with no body")))
}
