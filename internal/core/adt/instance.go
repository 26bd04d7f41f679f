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

// Package adt holds the VM's runtime value model: Instance,
// Context, and the interning tables that give numbers and strings stable ids
// within an Evaluation (null/true/false use the fixed ids of
// internal/core/ids instead). Nothing here executes bytecode;
// that is internal/core/eval's job, adt only describes what a value IS.
package adt

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/kr/pretty"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/compile"
)

// DecimalPrecision is the default number of significant digits numbers are
// rounded to before interning. Config.DecimalPrecision overrides this per
// Evaluation.
const DecimalPrecision = 5

// InnerKind mirrors compile.InnerKind for the inner value an Instance
// carries: string, number, list/set of instance ids, or opaque native
// handle.
type InnerKind = compile.InnerKind

const (
	InnerNone   = compile.InnerNone
	InnerString = compile.InnerString
	InnerNumber = compile.InnerNumber
	InnerList   = compile.InnerList
	InnerSet    = compile.InnerSet
)

// LazyInit is a not-yet-evaluated package-level constant initializer,
// installed as an Instance's Lazy field by eval.NewWithConfig. It is
// replaced by the real value the first time something LOADs the name.
type LazyInit struct {
	Expr ast.Node
}

// Instance is a Context plus a module reference, an optional inner value,
// and an optional lazy initializer.
type Instance struct {
	ID       ast.ID
	ModuleID ast.ID

	*Context

	Inner InnerKind

	Str  string
	Num  apd.Decimal
	Refs []ast.ID // InnerList/InnerSet: member instance ids, in order.
	Native any     // InnerNone with a non-nil Native: opaque handle for a native-backed instance.

	Lazy *LazyInit
}

// NewInstance allocates an Instance of the given module with a fresh
// Context parented on outer and no inner value, the shape produced by a
// plain INSTANTIATE of a user Class/Singleton.
func NewInstance(id, moduleID ast.ID, outer *Context) *Instance {
	return &Instance{ID: id, ModuleID: moduleID, Context: NewContext(outer)}
}

// Table is the Evaluation's id-keyed instance table.
// It also owns the interning maps, since interning is only meaningful
// relative to one Evaluation's instance space.
type Table struct {
	byID map[ast.ID]*Instance

	// strings interns InnerString instances by exact value.
	strings map[string]ast.ID
	// numbers interns InnerNumber instances by their DecimalPrecision-
	// rounded string form.
	numbers map[string]ast.ID

	next uint64

	round apd.Context
}

func NewTable() *Table {
	return NewTableWithPrecision(DecimalPrecision)
}

// NewTableWithPrecision is NewTable with an explicit DECIMAL_PRECISION,
// for Evaluations constructed from a non-default Config.
func NewTableWithPrecision(precision int32) *Table {
	round := apd.BaseContext
	round.Precision = precision
	return &Table{
		byID:    map[ast.ID]*Instance{},
		strings: map[string]ast.ID{},
		numbers: map[string]ast.ID{},
		round:   round,
	}
}

// DebugString formats inst for diagnostics (the optional Trace hook and test
// failure output) with kr/pretty's Sprint, which prints like fmt's %v: the
// id, module and inner value appear, while the embedded Context (and so the
// bound locals) appears only as a pointer.
func (inst *Instance) DebugString() string {
	return pretty.Sprint(inst)
}

func (t *Table) Get(id ast.ID) (*Instance, bool) {
	inst, ok := t.byID[id]
	return inst, ok
}

func (t *Table) Put(inst *Instance) {
	t.byID[inst.ID] = inst
}

func (t *Table) Delete(id ast.ID) {
	if inst, ok := t.byID[id]; ok {
		switch inst.Inner {
		case InnerString:
			if t.strings[inst.Str] == id {
				delete(t.strings, inst.Str)
			}
		case InnerNumber:
			if key := inst.Num.String(); t.numbers[key] == id {
				delete(t.numbers, key)
			}
		}
	}
	delete(t.byID, id)
}

// All returns every live id in the table, for the GC's mark-and-sweep walk.
func (t *Table) All() []ast.ID {
	ids := make([]ast.ID, 0, len(t.byID))
	for id := range t.byID {
		ids = append(ids, id)
	}
	return ids
}

// NewID mints a fresh, table-unique instance id. It never collides with the
// fixed sentinel ids (#null, #true, #false) or with a node's link-time Id
// (a bare uuid assigned by internal/core/link), since every id minted here
// starts with "inst:".
func (t *Table) NewID() ast.ID {
	t.next++
	return ast.ID(fmt.Sprintf("inst:%d:%s", t.next, uuid.NewString()))
}

// String interns moduleID's InnerString instance for s, creating it on
// first use.
func (t *Table) String(moduleID ast.ID, s string) *Instance {
	if id, ok := t.strings[s]; ok {
		return t.byID[id]
	}
	id := t.NewID()
	inst := &Instance{ID: id, ModuleID: moduleID, Context: NewContext(nil), Inner: InnerString, Str: s}
	t.byID[id] = inst
	t.strings[s] = id
	return inst
}

// Number interns moduleID's InnerNumber instance for d, rounding to
// DecimalPrecision before computing the interning key: numbers are
// interned by their string form rounded to a fixed decimal precision.
func (t *Table) Number(moduleID ast.ID, d apd.Decimal) *Instance {
	var rounded apd.Decimal
	t.round.Round(&rounded, &d)
	key := rounded.String()
	if id, ok := t.numbers[key]; ok {
		return t.byID[id]
	}
	id := t.NewID()
	inst := &Instance{ID: id, ModuleID: moduleID, Context: NewContext(nil), Inner: InnerNumber, Num: rounded}
	t.byID[id] = inst
	t.numbers[key] = id
	return inst
}

// Clone deep-copies every instance in the table plus root, which callers
// pass as the Evaluation's root context so that any instance Context whose
// ancestry reaches it shares the same clone. The copy is keyed on node ids
// and safe against reference cycles via a per-call cache. Instance identity
// (ID) is preserved, so references into the table from outside (a frame's
// operand stack, a Context's locals) remain valid against the clone without
// translation. Returns the cloned table and the cloned root.
func (t *Table) Clone(root *Context) (*Table, *Context) {
	ctxCache := map[*Context]*Context{}
	cp := &Table{
		byID:    make(map[ast.ID]*Instance, len(t.byID)),
		strings: make(map[string]ast.ID, len(t.strings)),
		numbers: make(map[string]ast.ID, len(t.numbers)),
		next:    t.next,
		round:   t.round,
	}
	newRoot := root.clone(ctxCache)
	for id, inst := range t.byID {
		clone := *inst
		clone.Context = inst.Context.clone(ctxCache)
		if inst.Refs != nil {
			clone.Refs = append([]ast.ID(nil), inst.Refs...)
		}
		cp.byID[id] = &clone
	}
	for k, v := range t.strings {
		cp.strings[k] = v
	}
	for k, v := range t.numbers {
		cp.numbers[k] = v
	}
	return cp, newRoot
}

// ParseNumber rounds and interns the decimal literal text src, as produced
// by compile.Instruction.Literal for an InnerNumber INSTANTIATE.
func (t *Table) ParseNumber(moduleID ast.ID, src string) (*Instance, error) {
	d, _, err := apd.NewFromString(src)
	if err != nil {
		return nil, fmt.Errorf("adt: malformed number literal %q: %w", src, err)
	}
	return t.Number(moduleID, *d), nil
}
