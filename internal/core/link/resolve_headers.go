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
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/werrors"
)

// resolveModuleHeaders resolves every Class/Mixin/Singleton's Super and
// Mixin references, ahead of the general resolution pass. Linearization
// (computed next) needs these already resolved; ordinary member references
// inside bodies are resolved later, once module scopes (built from the
// linearization) exist. Header references use only package-local names or
// fully-qualified dotted names, never the module's own member scope, so
// resolving them first introduces no cycle.
func resolveModuleHeaders(root *ast.Package, env *Environment, errs *werrors.List) {
	walkPackages(root, func(pkg *ast.Package) {
		prefix := packagePath(pkg)
		for _, m := range pkg.Files {
			switch v := m.(type) {
			case *ast.Class:
				resolveHeaderRef(v.Super, prefix, env, errs)
				for _, mx := range v.Mixins {
					resolveHeaderRef(mx, prefix, env, errs)
				}
			case *ast.Mixin:
				for _, mx := range v.Mixins {
					resolveHeaderRef(mx, prefix, env, errs)
				}
			case *ast.Singleton:
				resolveHeaderRef(v.Super, prefix, env, errs)
				for _, mx := range v.Mixins {
					resolveHeaderRef(mx, prefix, env, errs)
				}
			}
		}
	})
}

func resolveHeaderRef(ref *ast.Reference, pkgPrefix string, env *Environment, errs *werrors.List) {
	if ref == nil {
		return
	}
	if id, ok := env.fqn[ref.Name]; ok {
		ref.TargetID = id
		return
	}
	if id, ok := env.fqn[join(pkgPrefix, ref.Name)]; ok {
		ref.TargetID = id
		return
	}
	errs.Add(werrors.UnresolvedReference(ref.Name, ref))
}

// walkPackages visits pkg and every nested package, depth-first.
func walkPackages(pkg *ast.Package, fn func(*ast.Package)) {
	fn(pkg)
	for _, m := range pkg.Files {
		if child, ok := m.(*ast.Package); ok {
			walkPackages(child, fn)
		}
	}
}
