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
	"github.com/google/uuid"
)

// assignIDsAndParents walks the merged tree once, stamping every node with
// a fresh opaque Id and wiring its children's Parent pointer. The
// merged tree has no cycles yet (References don't carry resolved targets
// until resolveReferences), so a plain recursive walk is safe.
func assignIDsAndParents(n ast.Node) {
	stampID(n)
	for _, c := range n.Children() {
		c.SetParent(n)
		assignIDsAndParents(c)
	}
}

func stampID(n ast.Node) {
	switch v := n.(type) {
	case *ast.Package:
		v.ID = newID()
	case *ast.Class:
		v.ID = newID()
	case *ast.Mixin:
		v.ID = newID()
	case *ast.Singleton:
		v.ID = newID()
	case *ast.Method:
		v.ID = newID()
	case *ast.Constructor:
		v.ID = newID()
	case *ast.Field:
		v.ID = newID()
	case *ast.Variable:
		v.ID = newID()
	case *ast.Parameter:
		v.ID = newID()
	case *ast.Body:
		v.ID = newID()
	case *ast.Reference:
		v.ID = newID()
	case *ast.Literal:
		v.ID = newID()
	case *ast.Send:
		v.ID = newID()
	case *ast.Super:
		v.ID = newID()
	case *ast.Self:
		v.ID = newID()
	case *ast.New:
		v.ID = newID()
	case *ast.Assignment:
		v.ID = newID()
	case *ast.Return:
		v.ID = newID()
	case *ast.If:
		v.ID = newID()
	case *ast.Try:
		v.ID = newID()
	case *ast.Catch:
		v.ID = newID()
	case *ast.Throw:
		v.ID = newID()
	case *ast.Program:
		v.ID = newID()
	case *ast.Test:
		v.ID = newID()
	case *ast.Describe:
		v.ID = newID()
	case *ast.Import:
		v.ID = newID()
	case *ast.ParameterizedType:
		v.ID = newID()
	case *ast.NamedArgument:
		v.ID = newID()
	case *ast.Closure:
		v.ID = newID()
	}
}

func newID() ast.ID {
	return ast.ID(uuid.New().String())
}

// indexByID populates idx with every node in the tree, keyed by Id.
func indexByID(n ast.Node, idx map[ast.ID]ast.Node) {
	idx[n.NodeID()] = n
	for _, c := range n.Children() {
		indexByID(c, idx)
	}
}
