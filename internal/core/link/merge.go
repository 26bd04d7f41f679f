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

// mergeRoot folds packages (and base's existing tree, if any) into one
// synthetic root Package. The root itself has no name; its Files are the
// top-level packages, merged by name. Incompatible-kind collisions are
// recorded in errs rather than stopping the merge, so Link can report
// every conflict in one pass.
func mergeRoot(packages []*ast.Package, base *Environment, errs *werrors.List) *ast.Package {
	root := &ast.Package{Name: ""}
	if base != nil && base.Root != nil {
		root.Files = append(root.Files, base.Root.Files...)
	}
	for _, p := range packages {
		root.Files = mergeInto(root.Files, p, errs)
	}
	return root
}

// mergeInto merges pkg into files (a list of top-level or nested package
// members): packages with the same name at the same nesting merge
// recursively; other members replace on (kind, name) collision, last
// writer wins.
func mergeInto(files []ast.Node, pkg *ast.Package, errs *werrors.List) []ast.Node {
	for i, existing := range files {
		if ep, ok := existing.(*ast.Package); ok && ep.Name == pkg.Name {
			files[i] = mergePackages(ep, pkg, errs)
			return files
		}
		if n2, k2, ok2 := memberKey(existing); ok2 && n2 == pkg.Name && k2 != ast.KindPackage {
			errs.Add(werrors.MergeConflict(pkg.Name, k2.String(), ast.KindPackage.String()))
		}
	}
	return append(files, mergeChildPackages(pkg, errs))
}

// mergePackages merges b into a (b is the right-hand, more-recent tree) and
// returns the merged package. Nested packages merge recursively first
// (bottom-up); other members collide on (kind, name) with last-writer-wins.
func mergePackages(a, b *ast.Package, errs *werrors.List) *ast.Package {
	out := &ast.Package{Name: a.Name, Files: append([]ast.Node{}, a.Files...)}
	for _, m := range b.Files {
		if childPkg, ok := m.(*ast.Package); ok {
			out.Files = mergeInto(out.Files, childPkg, errs)
			continue
		}
		out.Files = replaceOrAppend(out.Files, m, errs)
	}
	return out
}

// mergeChildPackages recursively merges a brand-new package's own nested
// packages against each other (a package with no prior sibling to merge
// against may still declare the same nested package name twice across
// multiple input files).
func mergeChildPackages(pkg *ast.Package, errs *werrors.List) *ast.Package {
	out := &ast.Package{Name: pkg.Name}
	for _, m := range pkg.Files {
		if childPkg, ok := m.(*ast.Package); ok {
			out.Files = mergeInto(out.Files, mergeChildPackages(childPkg, errs), errs)
			continue
		}
		out.Files = replaceOrAppend(out.Files, m, errs)
	}
	return out
}

// replaceOrAppend implements "same kind+name -> right replaces left". A
// member sharing a name with an existing one but not its kind (e.g. `class
// C` merging against `object C`) is a MergeConflict: it is recorded
// in errs and appended alongside the original rather than silently
// replacing it, so Link ultimately fails instead of leaving both
// definitions to coexist unreported.
func replaceOrAppend(members []ast.Node, m ast.Node, errs *werrors.List) []ast.Node {
	name, kind, ok := memberKey(m)
	if !ok {
		return append(members, m)
	}
	for i, existing := range members {
		n2, k2, ok2 := memberKey(existing)
		if !ok2 || n2 != name {
			continue
		}
		if k2 != kind {
			errs.Add(werrors.MergeConflict(name, k2.String(), kind.String()))
			return append(members, m)
		}
		members[i] = m
		return members
	}
	return append(members, m)
}

func memberKey(n ast.Node) (name string, kind ast.Kind, ok bool) {
	switch v := n.(type) {
	case *ast.Package:
		return v.Name, ast.KindPackage, true
	case *ast.Class:
		return v.Name, ast.KindClass, true
	case *ast.Mixin:
		return v.Name, ast.KindMixin, true
	case *ast.Singleton:
		if v.Name == "" {
			return "", 0, false
		}
		return v.Name, ast.KindSingleton, true
	case *ast.Program:
		return v.Name, ast.KindProgram, true
	case *ast.Test:
		return v.Name, ast.KindTest, true
	case *ast.Describe:
		return v.Name, ast.KindDescribe, true
	case *ast.Variable:
		return v.Name, ast.KindVariable, true
	}
	return "", 0, false
}
