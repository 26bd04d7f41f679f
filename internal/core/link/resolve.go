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

// resolveReferences walks the whole tree resolving every Reference not
// already resolved by resolveModuleHeaders. Resolution tries the
// node's own lexical scope chain first (covers locals, params, module
// members, package members, and imports); a name that still fails, or that
// was written as a fully-qualified dotted path, falls back to a direct
// lookup in the Environment's FQN index (covers references to
// well-known/standard-library modules that were never imported, e.g.
// "wollok.lang.Object" used directly in a literal).
func resolveReferences(n ast.Node, env *Environment, errs *werrors.List) {
	if ref, ok := n.(*ast.Reference); ok && ref.TargetID == "" {
		resolveOne(ref, env, errs)
	}
	for _, c := range n.Children() {
		resolveReferences(c, env, errs)
	}
}

func resolveOne(ref *ast.Reference, env *Environment, errs *werrors.List) {
	if scope := ref.Scope(); scope != nil {
		if id, ok := scope.Lookup(ref.Name); ok {
			ref.TargetID = id
			return
		}
	}
	if id, ok := env.fqn[ref.Name]; ok {
		ref.TargetID = id
		return
	}
	errs.Add(werrors.UnresolvedReference(ref.Name, ref))
}
