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

package eval

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

func indexOf(xs []ast.ID, x ast.ID) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

// matchesArity implements CALL's "method whose fixed-arity is N, or whose
// variadic lower-bound <= N".
func matchesArity(params []*ast.Parameter, arity int) bool {
	if len(params) == 0 {
		return arity == 0
	}
	if last := params[len(params)-1]; last.Variadic {
		return arity >= len(params)-1
	}
	return arity == len(params)
}

// resolveMethod searches receiverModuleID's linearization for a Method
// named name matching arity, walking the hierarchy order so the first
// occurrence wins. If hasStart, the search begins immediately *after*
// startID's position instead of at the start, the convention used for
// Super dispatch.
func resolveMethod(env *link.Environment, receiverModuleID ast.ID, name string, arity int, hasStart bool, startID ast.ID) (ast.ID, *ast.Method, bool) {
	lin := env.Linearization(receiverModuleID)
	begin := 0
	if hasStart {
		idx := indexOf(lin, startID)
		if idx < 0 {
			return "", nil, false
		}
		begin = idx + 1
	}
	for _, modID := range lin[begin:] {
		node, ok := env.Node(modID)
		if !ok {
			continue
		}
		mod, ok := node.(ast.Module)
		if !ok {
			continue
		}
		for _, mem := range mod.Members() {
			m, ok := mem.(*ast.Method)
			if !ok || m.Name != name {
				continue
			}
			if matchesArity(m.Params, arity) {
				return modID, m, true
			}
		}
	}
	return "", nil, false
}

// resolveConstructor searches receiverModuleID's linearization for a
// Constructor of exactly arity params. If hasStart, the search begins *at*
// startID's position (inclusive), both the implicit supercall (starting at
// the immediate superclass) and an explicit `new T(...)` (starting at T
// itself) need their own module considered, unlike Super's CALL semantics.
func resolveConstructor(env *link.Environment, receiverModuleID ast.ID, hasStart bool, startID ast.ID, arity int) (ast.ID, *ast.Constructor, bool) {
	lin := env.Linearization(receiverModuleID)
	begin := 0
	if hasStart {
		idx := indexOf(lin, startID)
		if idx < 0 {
			return "", nil, false
		}
		begin = idx
	}
	for _, modID := range lin[begin:] {
		node, ok := env.Node(modID)
		if !ok {
			continue
		}
		mod, ok := node.(ast.Module)
		if !ok {
			continue
		}
		for _, mem := range mod.Members() {
			c, ok := mem.(*ast.Constructor)
			if !ok {
				continue
			}
			if len(c.Params) == arity {
				return modID, c, true
			}
		}
	}
	return "", nil, false
}
