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

package adt

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// Context is a nested lexical environment: an optional parent, a name→
// instance locals mapping, and an optional exception-handler instruction
// index. Contexts form a DAG rooted at the Evaluation's
// root context; once constructed, a Context's parent never becomes nil.
type Context struct {
	parent *Context
	locals map[string]ast.ID

	// HandlerPC is the absolute instruction index to resume at when an
	// exception unwinds through this context, or -1 if this context has no
	// handler.
	HandlerPC int
}

func NewContext(parent *Context) *Context {
	return &Context{parent: parent, locals: map[string]ast.ID{}, HandlerPC: -1}
}

// Parent returns the enclosing context, or nil only for the Evaluation's
// root context.
func (c *Context) Parent() *Context { return c.parent }

// Bind creates name fresh in this context, shadowing any binding of the
// same name in an ancestor.
func (c *Context) Bind(name string, id ast.ID) {
	c.locals[name] = id
}

// Assign walks up from c looking for the nearest context that already
// binds name and overwrites it there; if no ancestor binds name, it binds
// fresh in c. This is the STORE{Lookup:true} semantics.
func (c *Context) Assign(name string, id ast.ID) {
	for cur := c; cur != nil; cur = cur.parent {
		if _, ok := cur.locals[name]; ok {
			cur.locals[name] = id
			return
		}
	}
	c.locals[name] = id
}

// Lookup walks the context chain for name, returning the bound instance id
// and the context that owns the binding (needed by the VM's lazy-init
// self-replacement, which must STORE back into that same context).
func (c *Context) Lookup(name string) (ast.ID, *Context, bool) {
	for cur := c; cur != nil; cur = cur.parent {
		if id, ok := cur.locals[name]; ok {
			return id, cur, true
		}
	}
	return "", nil, false
}

// BoundHere reports whether name is bound directly in c, not an ancestor.
func (c *Context) BoundHere(name string) bool {
	_, ok := c.locals[name]
	return ok
}

// Locals returns every instance id directly reachable from this context's
// own bindings (not ancestors), for the GC's mark phase.
func (c *Context) Locals() []ast.ID {
	ids := make([]ast.ID, 0, len(c.locals))
	for _, id := range c.locals {
		ids = append(ids, id)
	}
	return ids
}

// clone deep-copies c and its ancestry, memoized in cache so a context
// shared as the parent of several instances (e.g. several closures over the
// same enclosing scope) is cloned once and that sharing is preserved in the
// copy.
func (c *Context) clone(cache map[*Context]*Context) *Context {
	if c == nil {
		return nil
	}
	if existing, ok := cache[c]; ok {
		return existing
	}
	cp := &Context{
		parent:    nil,
		locals:    make(map[string]ast.ID, len(c.locals)),
		HandlerPC: c.HandlerPC,
	}
	cache[c] = cp
	for k, v := range c.locals {
		cp.locals[k] = v
	}
	cp.parent = c.parent.clone(cache)
	return cp
}
