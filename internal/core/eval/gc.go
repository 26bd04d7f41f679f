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
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/compile"
)

// GC runs a mark-and-sweep pass over the instance table. Roots
// are the global context plus every live frame's current context, operand
// stack, and any id baked directly into that frame's own instructions via
// PUSH; tracing follows a context's parent and locals, and an instance's own
// fields plus any InnerList/InnerSet element references.
func (ev *Evaluation) GC() {
	ev.trace(TraceEvent{Kind: "gc"})
	marked := make(map[ast.ID]bool)

	var markInstance func(id ast.ID)
	markCtx := func(c *adt.Context) {
		for cur := c; cur != nil; cur = cur.Parent() {
			for _, id := range cur.Locals() {
				markInstance(id)
			}
		}
	}
	markInstance = func(id ast.ID) {
		if id == "" || marked[id] {
			return
		}
		marked[id] = true
		inst, ok := ev.table.Get(id)
		if !ok {
			return
		}
		markCtx(inst.Context)
		for _, ref := range inst.Refs {
			markInstance(ref)
		}
	}

	markCtx(ev.root)
	for _, f := range ev.frames {
		markCtx(f.Current)
		for _, id := range f.Operand {
			markInstance(id)
		}
		for _, instr := range f.Instr {
			if instr.Op == compile.PUSH && instr.HasID {
				markInstance(instr.SentinelID)
			}
		}
	}

	for _, id := range ev.table.All() {
		if !marked[id] {
			ev.table.Delete(id)
		}
	}
}
