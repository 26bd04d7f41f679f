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

// indexPackages registers every Package node (including the synthetic root)
// by its dotted path, so wildcard imports (`import pkg`) can enumerate a
// target package's direct members.
func indexPackages(pkg *ast.Package, prefix string, idx map[string]*ast.Package) {
	path := prefix
	if pkg.Name != "" {
		path = join(prefix, pkg.Name)
	}
	idx[path] = pkg
	for _, m := range pkg.Files {
		if child, ok := m.(*ast.Package); ok {
			indexPackages(child, path, idx)
		}
	}
}
