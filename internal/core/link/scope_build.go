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

// buildScopes walks the linked tree assigning each node its lexical Scope:
// local block -> enclosing method/closure parameters -> enclosing module's
// fields/methods (via linearization) -> enclosing package -> imported
// packages -> root.
//
// Ambiguity note: a scope chain's description ends at "enclosing package",
// singular; this implementation chains a nested package's import scope to
// its *containing* package's scope rather than straight to the
// environment root, so a class nested two packages deep can still see
// names declared in either ancestor package without an explicit import.
// This is a judgment call recorded in DESIGN.md.
func buildScopes(n ast.Node, scope *ast.Scope, env *Environment, lz *linearizer, errs *werrors.List) {
	switch v := n.(type) {
	case *ast.Package:
		buildPackageScope(v, scope, env, lz, errs)

	case *ast.Class:
		buildModuleScope(v, v.ID, scope, env, lz, errs)
	case *ast.Mixin:
		buildModuleScope(v, v.ID, scope, env, lz, errs)
	case *ast.Singleton:
		buildModuleScope(v, v.ID, scope, env, lz, errs)

	case *ast.Describe:
		describeScope := ast.NewScope(scope)
		for _, f := range v.Fields {
			if field, ok := f.(*ast.Field); ok {
				describeScope.Bind(field.Name, field.ID)
			}
		}
		v.SetScope(describeScope)
		for _, f := range v.Fields {
			buildScopes(f, describeScope, env, lz, errs)
		}
		for _, t := range v.Tests {
			buildScopes(t, describeScope, env, lz, errs)
		}

	case *ast.Method:
		paramScope := ast.NewScope(scope)
		for _, p := range v.Params {
			paramScope.Bind(p.Name, p.ID)
			p.SetScope(paramScope)
		}
		v.SetScope(paramScope)
		if v.Body != nil {
			buildScopes(v.Body, paramScope, env, lz, errs)
		}

	case *ast.Constructor:
		paramScope := ast.NewScope(scope)
		for _, p := range v.Params {
			paramScope.Bind(p.Name, p.ID)
			p.SetScope(paramScope)
		}
		v.SetScope(paramScope)
		for _, a := range v.SuperArgs {
			buildScopes(a, paramScope, env, lz, errs)
		}
		if v.Body != nil {
			buildScopes(v.Body, paramScope, env, lz, errs)
		}

	case *ast.Closure:
		paramScope := ast.NewScope(scope)
		for _, p := range v.Params {
			paramScope.Bind(p.Name, p.ID)
			p.SetScope(paramScope)
		}
		v.SetScope(paramScope)
		if v.Body != nil {
			buildScopes(v.Body, paramScope, env, lz, errs)
		}

	case *ast.Body:
		blockScope := ast.NewScope(scope)
		v.SetScope(blockScope)
		for _, s := range v.Sentences {
			if vr, ok := s.(*ast.Variable); ok {
				// Bound before its own initializer is processed: a
				// redeclaration shadows starting at its point of
				// declaration. Rejected outright when it collides with
				// another local already bound at this exact level.
				if blockScope.BoundHere(vr.Name) {
					errs.Add(werrors.Redeclaration(vr.Name, vr))
				}
				blockScope.Bind(vr.Name, vr.ID)
				vr.SetScope(blockScope)
				if vr.Value != nil {
					buildScopes(vr.Value, blockScope, env, lz, errs)
				}
				continue
			}
			buildScopes(s, blockScope, env, lz, errs)
		}

	case *ast.Catch:
		catchScope := ast.NewScope(scope)
		if v.Parameter != nil {
			catchScope.Bind(v.Parameter.Name, v.Parameter.ID)
			v.Parameter.SetScope(catchScope)
		}
		v.SetScope(catchScope)
		if v.ExceptionType != nil {
			buildScopes(v.ExceptionType, scope, env, lz, errs)
		}
		if v.Body != nil {
			buildScopes(v.Body, catchScope, env, lz, errs)
		}

	default:
		n.SetScope(scope)
		for _, c := range n.Children() {
			buildScopes(c, scope, env, lz, errs)
		}
	}
}

func buildPackageScope(pkg *ast.Package, outer *ast.Scope, env *Environment, lz *linearizer, errs *werrors.List) {
	importScope := ast.NewScope(outer)
	bindImports(pkg, importScope, env)

	pkgScope := ast.NewScope(importScope)
	for _, m := range pkg.Files {
		if name, _, ok := memberKey(m); ok && name != "" {
			pkgScope.Bind(name, m.NodeID())
		}
	}
	pkg.SetScope(pkgScope)

	for _, m := range pkg.Files {
		buildScopes(m, pkgScope, env, lz, errs)
	}
}

func bindImports(pkg *ast.Package, importScope *ast.Scope, env *Environment) {
	for _, m := range pkg.Files {
		imp, ok := m.(*ast.Import)
		if !ok {
			continue
		}
		if imp.Name == "" {
			target, ok := env.pkgs[imp.PackagePath]
			if !ok {
				continue
			}
			for _, tm := range target.Files {
				if name, _, ok := memberKey(tm); ok && name != "" {
					importScope.Bind(name, tm.NodeID())
				}
			}
			continue
		}
		if id, ok := env.fqn[join(imp.PackagePath, imp.Name)]; ok {
			importScope.Bind(imp.Name, id)
		}
	}
}

// buildModuleScope builds the scope for a Class/Mixin/Singleton: bindings
// for every field/method reachable through its linearization, first
// occurrence wins (leftmost in hierarchy order), chained to the enclosing
// package scope.
func buildModuleScope(mod ast.Module, modID ast.ID, pkgScope *ast.Scope, env *Environment, lz *linearizer, errs *werrors.List) {
	modScope := ast.NewScope(pkgScope)
	for _, hid := range lz.Linearize(modID) {
		node, ok := env.Node(hid)
		if !ok {
			continue
		}
		hmod, ok := node.(ast.Module)
		if !ok {
			continue
		}
		for _, member := range hmod.Members() {
			name := memberSimpleName(member)
			if name != "" && !modScope.BoundHere(name) {
				modScope.Bind(name, member.NodeID())
			}
		}
	}
	mod.SetScope(modScope)
	for _, c := range mod.Children() {
		buildScopes(c, modScope, env, lz, errs)
	}
}

func memberSimpleName(n ast.Node) string {
	switch v := n.(type) {
	case *ast.Field:
		return v.Name
	case *ast.Method:
		return v.Name
	}
	return ""
}
