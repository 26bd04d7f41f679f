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

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/go-quicktest/qt"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
)

func TestTableStringInterning(t *testing.T) {
	tbl := NewTable()
	a := tbl.String("wollok.lang.String", "hello")
	b := tbl.String("wollok.lang.String", "hello")
	qt.Assert(t, qt.Equals(a.ID, b.ID))

	c := tbl.String("wollok.lang.String", "world")
	qt.Assert(t, qt.Not(qt.Equals(a.ID, c.ID)))
}

func TestTableNumberInterningRoundsToPrecision(t *testing.T) {
	tbl := NewTable()
	a, err := tbl.ParseNumber("wollok.lang.Number", "3.000001")
	qt.Assert(t, qt.IsNil(err))
	b, err := tbl.ParseNumber("wollok.lang.Number", "3.000002")
	qt.Assert(t, qt.IsNil(err))
	// Both round to 3.0000 at DecimalPrecision == 5, so they intern to the
	// same instance.
	qt.Assert(t, qt.Equals(a.ID, b.ID))

	d, _ := tbl.ParseNumber("wollok.lang.Number", "4")
	qt.Assert(t, qt.Not(qt.Equals(a.ID, d.ID)))
}

func TestContextAssignFindsNearestBinding(t *testing.T) {
	root := NewContext(nil)
	root.Bind("x", "outer-id")
	inner := NewContext(root)

	inner.Assign("x", "rebound-id")

	_, ok := inner.locals["x"]
	qt.Assert(t, qt.IsFalse(ok))
	id, owner, found := inner.Lookup("x")
	qt.Assert(t, qt.IsTrue(found))
	qt.Assert(t, qt.Equals(owner, root))
	qt.Assert(t, qt.Equals(id, ast.ID("rebound-id")))
}

func TestContextAssignBindsFreshWhenNoAncestorHasIt(t *testing.T) {
	root := NewContext(nil)
	inner := NewContext(root)

	inner.Assign("y", "fresh-id")

	qt.Assert(t, qt.IsTrue(inner.BoundHere("y")))
	qt.Assert(t, qt.IsFalse(root.BoundHere("y")))
}

func TestTableCloneIsIndependentButPreservesSharing(t *testing.T) {
	root := NewContext(nil)
	root.Bind("shared", "shared-id")

	tbl := NewTable()
	inst1 := NewInstance("i1", "Mod", root)
	inst2 := NewInstance("i2", "Mod", root)
	tbl.Put(inst1)
	tbl.Put(inst2)

	cp, newRoot := tbl.Clone(root)

	cloned1, ok := cp.Get("i1")
	qt.Assert(t, qt.IsTrue(ok))
	cloned2, ok := cp.Get("i2")
	qt.Assert(t, qt.IsTrue(ok))

	// Both instances' contexts shared `root` as their parent before the
	// clone; they must still share one (cloned) parent afterward, and that
	// parent must be newRoot, not the original root.
	qt.Assert(t, qt.Equals(cloned1.Context.Parent(), cloned2.Context.Parent()))
	qt.Assert(t, qt.Equals(cloned1.Context.Parent(), newRoot))
	qt.Assert(t, qt.Not(qt.Equals(newRoot, root)))

	// Mutating the clone must not affect the original.
	cloned1.Bind("local", "x")
	qt.Assert(t, qt.IsFalse(inst1.BoundHere("local")))
}

func TestNewInstanceHasNoInnerValueByDefault(t *testing.T) {
	inst := NewInstance("i1", "wollok.Foo", nil)
	qt.Assert(t, qt.Equals(inst.Inner, InnerNone))
	var zero apd.Decimal
	qt.Assert(t, qt.Equals(inst.Num.Cmp(&zero), 0))
}

func TestInstanceDebugStringMentionsModule(t *testing.T) {
	inst := NewInstance("i1", "wollok.lang.Foo", nil)
	s := inst.DebugString()
	qt.Assert(t, qt.StringContains(s, "wollok.lang.Foo"))
}

// TestTableStringInterningProducesStructurallyEqualInstances compares two
// independently-interned strings' instances field-by-field (module, inner
// kind, string value), ignoring Context's unexported locals/parent, the
// only parts that legitimately differ between two otherwise-identical
// instances are their ids and their fresh, unshared Contexts.
func TestTableStringInterningProducesStructurallyEqualInstances(t *testing.T) {
	tbl1 := NewTable()
	tbl2 := NewTable()
	a := tbl1.String("wollok.lang.String", "hello")
	b := tbl2.String("wollok.lang.String", "hello")

	qt.Assert(t, qt.CmpEquals(a, b, cmpopts.IgnoreUnexported(Context{}), cmpopts.IgnoreFields(Instance{}, "ID", "Num")))
}
