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

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// indexFQN registers every Class/Mixin/named Singleton/Program/Variable/
// Describe under its fully-qualified dotted name (e.g. "wollok.lang.Object"),
// recursing into nested packages without registering the packages. prefix
// is the dotted path of pkg itself ("" for the synthetic root).
func indexFQN(pkg *ast.Package, prefix string, fqn map[string]ast.ID) {
	for _, m := range pkg.Files {
		switch v := m.(type) {
		case *ast.Package:
			indexFQN(v, join(prefix, v.Name), fqn)
		case *ast.Class:
			fqn[join(prefix, v.Name)] = v.ID
		case *ast.Mixin:
			fqn[join(prefix, v.Name)] = v.ID
		case *ast.Singleton:
			if v.Name != "" {
				fqn[join(prefix, v.Name)] = v.ID
			}
		case *ast.Program:
			fqn[join(prefix, v.Name)] = v.ID
		case *ast.Variable:
			fqn[join(prefix, v.Name)] = v.ID
		case *ast.Describe:
			fqn[join(prefix, v.Name)] = v.ID
		}
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// packagePath returns the dotted fully-qualified name of pkg itself, found
// by walking Parent pointers (assigned by assignIDsAndParents before this
// is ever called).
func packagePath(pkg *ast.Package) string {
	if pkg.Parent() == nil {
		return pkg.Name
	}
	parent, ok := pkg.Parent().(*ast.Package)
	if !ok || parent.Name == "" {
		return pkg.Name
	}
	return packagePath(parent) + "." + pkg.Name
}
