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

// linearizer computes and memoizes module linearizations: the ordered
// hierarchy `[self, Mn, ..., M1, S, ...hierarchy(S)]`, duplicates removed
// keeping the leftmost occurrence. It tolerates self-inheritance and
// inheritance/mixin cycles by treating a module already being linearized
// (visiting) as having an empty further hierarchy, which guarantees
// termination without diagnosing the cycle, that is the
// validator's job.
type linearizer struct {
	env      *Environment
	cache    map[ast.ID][]ast.ID
	visiting map[ast.ID]bool
}

func newLinearizer(env *Environment) *linearizer {
	return &linearizer{
		env:      env,
		cache:    map[ast.ID][]ast.ID{},
		visiting: map[ast.ID]bool{},
	}
}

// Linearize returns the hierarchy order for the module with id modID.
func (lz *linearizer) Linearize(modID ast.ID) []ast.ID {
	if cached, ok := lz.cache[modID]; ok {
		return cached
	}
	if lz.visiting[modID] {
		return []ast.ID{modID}
	}
	lz.visiting[modID] = true
	defer delete(lz.visiting, modID)

	order := []ast.ID{modID}

	node, ok := lz.env.Node(modID)
	if !ok {
		lz.cache[modID] = order
		return order
	}
	mod, ok := node.(ast.Module)
	if !ok {
		lz.cache[modID] = order
		return order
	}

	mixins := mod.MixinRefs()
	for i := len(mixins) - 1; i >= 0; i-- {
		ref := mixins[i]
		if ref == nil || ref.TargetID == "" {
			continue
		}
		order = append(order, lz.Linearize(ref.TargetID)...)
	}

	if sup := mod.SuperRef(); sup != nil && sup.TargetID != "" {
		order = append(order, lz.Linearize(sup.TargetID)...)
	} else if isInstantiable(node) {
		if objID, ok := lz.env.fqn["wollok.lang.Object"]; ok && objID != modID {
			order = append(order, lz.Linearize(objID)...)
		}
	}

	result := dedupKeepFirst(order)
	lz.cache[modID] = result
	return result
}

func isInstantiable(n ast.Node) bool {
	switch n.(type) {
	case *ast.Class, *ast.Singleton:
		return true
	default:
		return false
	}
}

func dedupKeepFirst(ids []ast.ID) []ast.ID {
	seen := make(map[ast.ID]bool, len(ids))
	out := make([]ast.ID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
