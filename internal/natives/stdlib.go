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

// Package natives implements the native-method calling contract: a
// minimal set of Go bodies for wollok.lang's well-known classes, plus the
// hand-built wollok.lang package tree those bodies attach to (no parser
// exists in this module, so the tree is built directly as ast nodes rather
// than parsed from source text).
package natives

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// StdlibPackage returns the unlinked wollok.lang package tree: Object at
// the root of the hierarchy, Boolean/Number/String/List/Set/Closure, and
// Exception with its two VM-raised subtypes. The embedder merges this into
// the same link.Link call as the user's own parsed packages, exactly like
// any other package; the linker assigns ids and wires scope for it the
// same way it does for user code.
func StdlibPackage() *ast.Package {
	object := &ast.Class{Name: "Object", Meths: []ast.Node{
		method("==", []string{"other"}),
		method("!=", []string{"other"}),
		method("hash", nil),
		method("toString", nil),
		method("messageNotUnderstood", []string{"message", "parameters"}),
	}}
	boolean := &ast.Class{Name: "Boolean", Super: ref("Object"), Meths: []ast.Node{
		method("&&", []string{"other"}),
		method("||", []string{"other"}),
		method("negate", nil),
		method("toString", nil),
	}}
	number := &ast.Class{Name: "Number", Super: ref("Object"), Meths: []ast.Node{
		method("+", []string{"other"}),
		method("-", []string{"other"}),
		method("*", []string{"other"}),
		method("/", []string{"other"}),
		method("%", []string{"other"}),
		method("<", []string{"other"}),
		method(">", []string{"other"}),
		method("<=", []string{"other"}),
		method(">=", []string{"other"}),
		method("==", []string{"other"}),
		method("negate", nil),
		method("toString", nil),
	}}
	str := &ast.Class{Name: "String", Super: ref("Object"), Meths: []ast.Node{
		method("+", []string{"other"}),
		method("==", []string{"other"}),
		method("length", nil),
		method("toString", nil),
	}}
	list := &ast.Class{Name: "List", Super: ref("Object"), Meths: []ast.Node{
		method("add", []string{"element"}),
		method("get", []string{"index"}),
		method("size", nil),
		method("toString", nil),
	}}
	set := &ast.Class{Name: "Set", Super: ref("Object"), Meths: []ast.Node{
		method("add", []string{"element"}),
		method("contains", []string{"element"}),
		method("size", nil),
		method("toString", nil),
	}}
	closure := &ast.Class{Name: "Closure", Super: ref("Object"), Meths: []ast.Node{
		method("toString", nil),
	}}
	exception := &ast.Class{Name: "Exception", Super: ref("Object"), Fields: []ast.Node{
		field("message", nil),
	}, Meths: []ast.Node{
		method("getMessage", nil),
	}}
	evalErr := &ast.Class{Name: "EvaluationError", Super: ref("Exception")}
	stackOverflow := &ast.Class{Name: "StackOverflowException", Super: ref("Exception")}

	console := &ast.Singleton{Name: "console", Super: ref("Object"), Meths: []ast.Node{
		method("println", []string{"value"}),
	}}

	return &ast.Package{Name: "wollok.lang", Files: []ast.Node{
		object, boolean, number, str, list, set, closure, exception, evalErr,
		stackOverflow, console,
	}}
}

func method(name string, params []string) *ast.Method {
	var ps []*ast.Parameter
	for _, p := range params {
		ps = append(ps, &ast.Parameter{Name: p})
	}
	return &ast.Method{Name: name, Params: ps, Native: true}
}

func field(name string, value ast.Node) *ast.Field {
	return &ast.Field{Name: name, Value: value, IsVar: true}
}

func ref(name string) *ast.Reference {
	return &ast.Reference{Name: name}
}
