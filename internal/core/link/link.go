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

// Package link implements the linker: it merges parsed source
// trees into a single Environment, assigns every node a stable Id, wires
// parent pointers, and resolves every Reference to its target.
package link

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/werrors"
)

// Environment is the root linked tree: a synthetic root Package containing
// every user package plus the standard-library root (wollok), .
type Environment struct {
	Root *ast.Package

	// byID indexes every node in the Environment by its assigned Id, so the
	// compiler and VM can resolve a Reference's TargetID in O(1) without
	// re-walking the tree.
	byID map[ast.ID]ast.Node

	// fqn indexes every Class/Mixin/named Singleton/Program/Variable/Describe
	// by its fully-qualified dotted name, e.g. "wollok.lang.Object" (packages
	// themselves are indexed in pkgs instead). Used both
	// by cross-package Reference resolution and by the VM's native dispatch
	// (moduleFqn.methodName lookups) and well-known-class lookups.
	fqn map[string]ast.ID

	// pkgs indexes every Package by its dotted path, for wildcard imports.
	pkgs map[string]*ast.Package

	// linearizations caches every module's hierarchy order, computed
	// once at link time and reused by the VM's dispatch loop for method
	// and field lookup.
	linearizations map[ast.ID][]ast.ID

	// fqnByID is the reverse of fqn, for native dispatch which needs
	// to spell "<moduleFqn>.<methodName>" for the Id of the module that
	// declares the native method.
	fqnByID map[ast.ID]string
}

// Linearization returns the hierarchy order for the module with the given
// Id, as computed at link time.
func (e *Environment) Linearization(modID ast.ID) []ast.ID {
	return e.linearizations[modID]
}

// FQN returns the fully-qualified dotted name an Id was indexed under, if
// any (reverse of NodeByFQN). Used by native dispatch to name the module a
// method belongs to.
func (e *Environment) FQN(id ast.ID) (string, bool) {
	name, ok := e.fqnByID[id]
	return name, ok
}

// Node looks up a linked node by Id. Ok is false if id is unknown in this
// Environment (which would itself indicate a linker bug, since 
// invariant is that every linked Reference targets a live node).
func (e *Environment) Node(id ast.ID) (ast.Node, bool) {
	n, ok := e.byID[id]
	return n, ok
}

// NodeByFQN looks up a linked node by its fully-qualified dotted name.
func (e *Environment) NodeByFQN(fqn string) (ast.Node, bool) {
	id, ok := e.fqn[fqn]
	if !ok {
		return nil, false
	}
	return e.Node(id)
}

// Link merges packages (and, if non-nil, the contents of base) into a
// single Environment. Merge is applied bottom-up: nested packages merge
// before their containers. Link always terminates, even on input
// containing inheritance/mixin cycles; cycle *diagnosis* is left to the
// validator, which is out of scope here.
func Link(packages []*ast.Package, base *Environment) (*Environment, error) {
	var errs werrors.List

	root := mergeRoot(packages, base, &errs)

	assignIDsAndParents(root)
	validateTree(root, &errs)

	env := &Environment{
		Root:           root,
		byID:           map[ast.ID]ast.Node{},
		fqn:            map[string]ast.ID{},
		pkgs:           map[string]*ast.Package{},
		linearizations: map[ast.ID][]ast.ID{},
		fqnByID:        map[ast.ID]string{},
	}
	indexByID(root, env.byID)
	indexFQN(root, "", env.fqn)
	indexPackages(root, "", env.pkgs)
	for name, id := range env.fqn {
		env.fqnByID[id] = name
	}

	resolveModuleHeaders(root, env, &errs)

	lin := newLinearizer(env)

	buildScopes(root, nil, env, lin, &errs)

	resolveReferences(root, env, &errs)

	for id, order := range lin.cache {
		env.linearizations[id] = order
	}

	if err := errs.Err(); err != nil {
		return env, err
	}
	return env, nil
}
