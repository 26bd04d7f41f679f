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
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

// minimalStdlib builds just enough of wollok.lang for an Evaluation to
// construct (Object, Boolean, primeSentinels needs both) plus Number,
// String, Exception and StackOverflowException for the tests in this file
// that instantiate literals or trigger the VM's own raised exceptions. No
// natives are registered; the tests here exercise dispatch, Super,
// closures, GC and stack-overflow handling, not native method bodies
// (internal/natives covers those, and cannot be imported here without an
// import cycle back into this package).
func minimalStdlib() *ast.Package {
	object := &ast.Class{Name: "Object"}
	boolean := &ast.Class{Name: "Boolean", Super: &ast.Reference{Name: "Object"}}
	number := &ast.Class{Name: "Number", Super: &ast.Reference{Name: "Object"}}
	str := &ast.Class{Name: "String", Super: &ast.Reference{Name: "Object"}}
	closure := &ast.Class{Name: "Closure", Super: &ast.Reference{Name: "Object"}}
	exception := &ast.Class{Name: "Exception", Super: &ast.Reference{Name: "Object"}}
	stackOverflow := &ast.Class{Name: "StackOverflowException", Super: &ast.Reference{Name: "Exception"}}
	return &ast.Package{Name: "wollok.lang", Files: []ast.Node{
		object, boolean, number, str, closure, exception, stackOverflow,
	}}
}

func newTestEvaluation(t *testing.T, extra ...*ast.Package) (*link.Environment, *Evaluation) {
	t.Helper()
	pkgs := append([]*ast.Package{minimalStdlib()}, extra...)
	env, err := link.Link(pkgs, nil)
	qt.Assert(t, qt.IsNil(err))
	ev, err := New(env, NativeTable{})
	qt.Assert(t, qt.IsNil(err))
	return env, ev
}

func strLiteral(s string) *ast.Literal {
	return &ast.Literal{LKind: ast.LiteralString, StringVal: s}
}

// TestSuperDispatchesToOverriddenAncestorMethod builds Base.label (returns
// a String literal) and Derived.label (overrides it, calling Super with no
// args), and checks the Super call actually resolves to Base's body rather
// than looping back into Derived's own override, the CALL-exclusive
// LookupStartID semantics resolveMethod relies on.
func TestSuperDispatchesToOverriddenAncestorMethod(t *testing.T) {
	baseMethod := &ast.Method{Name: "label", Body: &ast.Body{Sentences: []ast.Node{strLiteral("base")}}}
	baseClass := &ast.Class{Name: "Base", Meths: []ast.Node{baseMethod}}

	derivedMethod := &ast.Method{Name: "label", Body: &ast.Body{Sentences: []ast.Node{&ast.Super{}}}}
	derivedClass := &ast.Class{Name: "Derived", Super: &ast.Reference{Name: "Base"}, Meths: []ast.Node{derivedMethod}}

	pkg := &ast.Package{Name: "app", Files: []ast.Node{baseClass, derivedClass}}

	env, ev := newTestEvaluation(t, pkg)

	derivedNode, ok := env.NodeByFQN("app.Derived")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, derivedNode.NodeID(), nil))

	result, err := ev.SendMessage("label", instID)
	qt.Assert(t, qt.IsNil(err))
	resultInst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(resultInst.Str, "base"))
}

// TestClosureCapturesEnclosingScopeAtCreationTime builds a method that
// declares a local, creates a Closure referencing it, and returns the
// closure; sending "apply" (handled specially by execCall, not a native)
// must see the captured local's value.
func TestClosureCapturesEnclosingScopeAtCreationTime(t *testing.T) {
	closureNode := &ast.Closure{
		Body: &ast.Body{Sentences: []ast.Node{&ast.Reference{Name: "x"}}},
	}
	method := &ast.Method{
		Name: "makeClosure",
		Body: &ast.Body{Sentences: []ast.Node{
			&ast.Variable{Name: "x", Value: strLiteral("captured")},
			closureNode,
		}},
	}
	class := &ast.Class{Name: "Factory", Meths: []ast.Node{method}}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{class}}

	env, ev := newTestEvaluation(t, pkg)

	classNode, ok := env.NodeByFQN("app.Factory")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, classNode.NodeID(), nil))

	closureID, err := ev.SendMessage("makeClosure", instID)
	qt.Assert(t, qt.IsNil(err))

	applied, err := ev.SendMessage("apply", closureID)
	qt.Assert(t, qt.IsNil(err))
	appliedInst, ok := ev.Table().Get(applied)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(appliedInst.Str, "captured"))
}

// TestMixinMethodWinsOverSuperclassInLinearization builds a class whose
// superclass defines "greeting" and which also mixes in a Mixin overriding
// the same method, and checks the mixin's body wins: linearization places
// directly-mixed-in mixins ahead of the superclass.
func TestMixinMethodWinsOverSuperclassInLinearization(t *testing.T) {
	baseMethod := &ast.Method{Name: "greeting", Body: &ast.Body{Sentences: []ast.Node{strLiteral("from base")}}}
	baseClass := &ast.Class{Name: "Base", Meths: []ast.Node{baseMethod}}

	mixinMethod := &ast.Method{Name: "greeting", Body: &ast.Body{Sentences: []ast.Node{strLiteral("from mixin")}}}
	mixin := &ast.Mixin{Name: "Greeter", Meths: []ast.Node{mixinMethod}}

	derivedClass := &ast.Class{
		Name:   "Derived",
		Super:  &ast.Reference{Name: "Base"},
		Mixins: []*ast.Reference{{Name: "Greeter"}},
	}

	pkg := &ast.Package{Name: "app", Files: []ast.Node{baseClass, mixin, derivedClass}}

	env, ev := newTestEvaluation(t, pkg)

	derivedNode, ok := env.NodeByFQN("app.Derived")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, derivedNode.NodeID(), nil))

	result, err := ev.SendMessage("greeting", instID)
	qt.Assert(t, qt.IsNil(err))
	resultInst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(resultInst.Str, "from mixin"))
}

// TestPackageLevelConstantInitializesLazilyOnFirstLoad checks a top-level
// Variable is installed as a *adt.LazyInit (not eagerly evaluated) at
// construction time, and only gets its real value the first time something
// LOADs its FQN.
func TestPackageLevelConstantInitializesLazilyOnFirstLoad(t *testing.T) {
	constant := &ast.Variable{Name: "GREETING", Value: strLiteral("hello")}
	readRef := &ast.Reference{Name: "app.GREETING"}
	method := &ast.Method{Name: "read", Body: &ast.Body{Sentences: []ast.Node{readRef}}}
	class := &ast.Class{Name: "Reader", Meths: []ast.Node{method}}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{constant, class}}

	env, ev := newTestEvaluation(t, pkg)

	fqn, ok := env.FQN(constant.NodeID())
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(fqn, "app.GREETING"))
	lazyID, _, found := ev.root.Lookup(fqn)
	qt.Assert(t, qt.IsTrue(found))

	lazyInst, ok := ev.Table().Get(lazyID)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(lazyInst.Lazy != nil))

	readerNode, ok := env.NodeByFQN("app.Reader")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, readerNode.NodeID(), nil))

	result, err := ev.SendMessage("read", instID)
	qt.Assert(t, qt.IsNil(err))
	resultInst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(resultInst.Str, "hello"))

	afterID, _, found := ev.root.Lookup(fqn)
	qt.Assert(t, qt.IsTrue(found))
	afterInst, ok := ev.Table().Get(afterID)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.IsTrue(afterInst.Lazy == nil))
}

// TestPositionalNewDispatchesConstructorAgainstNewInstance builds `new
// Point(x)` with a one-arg constructor that assigns its parameter into a var
// field, and checks the constructor actually runs against the freshly
// INSTANTIATEd object rather than against its own argument, compileInstantiate
// must leave the instance below its positional args on the operand stack,
// the same shape compileConstructor's own supercall relies on.
func TestPositionalNewDispatchesConstructorAgainstNewInstance(t *testing.T) {
	field := &ast.Field{Name: "x", IsVar: true}
	ctor := &ast.Constructor{
		Params: []*ast.Parameter{{Name: "input"}},
		Body: &ast.Body{Sentences: []ast.Node{
			&ast.Assignment{Ref: &ast.Reference{Name: "x"}, Value: &ast.Reference{Name: "input"}},
		}},
	}
	getX := &ast.Method{Name: "getX", Body: &ast.Body{Sentences: []ast.Node{&ast.Reference{Name: "x"}}}}
	point := &ast.Class{Name: "Point", Fields: []ast.Node{field}, Ctors: []ast.Node{ctor}, Meths: []ast.Node{getX}}

	newPoint := &ast.New{ClassRef: &ast.Reference{Name: "Point"}, Args: []ast.Node{strLiteral("five")}, Named: false}
	makeMethod := &ast.Method{Name: "make", Body: &ast.Body{Sentences: []ast.Node{newPoint}}}
	factory := &ast.Class{Name: "Factory", Meths: []ast.Node{makeMethod}}

	pkg := &ast.Package{Name: "app", Files: []ast.Node{point, factory}}

	env, ev := newTestEvaluation(t, pkg)

	factoryNode, ok := env.NodeByFQN("app.Factory")
	qt.Assert(t, qt.IsTrue(ok))
	factoryID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(factoryID, factoryNode.NodeID(), nil))

	pointID, err := ev.SendMessage("make", factoryID)
	qt.Assert(t, qt.IsNil(err))

	pointNode, ok := env.NodeByFQN("app.Point")
	qt.Assert(t, qt.IsTrue(ok))
	pointInst, ok := ev.Table().Get(pointID)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(pointInst.ModuleID, pointNode.NodeID()))

	result, err := ev.SendMessage("getX", pointID)
	qt.Assert(t, qt.IsNil(err))
	resultInst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(resultInst.Str, "five"))
}

func TestGCSweepsOnlyUnreachableInstances(t *testing.T) {
	_, ev := newTestEvaluation(t)

	objMod, ok := ev.Env().NodeByFQN(ids.FQNObject)
	qt.Assert(t, qt.IsTrue(ok))

	reachable := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(reachable, objMod.NodeID(), nil))
	ev.root.Bind("kept", reachable)

	orphan := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(orphan, objMod.NodeID(), nil))

	ev.GC()

	_, ok = ev.Table().Get(reachable)
	qt.Assert(t, qt.IsTrue(ok))
	_, ok = ev.Table().Get(orphan)
	qt.Assert(t, qt.IsFalse(ok))
}

// TestUnboundedRecursionRaisesCatchableStackOverflow drives the frame stack
// past Config.MaxFrameStackSize via a method that unconditionally calls
// itself, and checks the VM raises a catchable StackOverflowException
// rather than a host Fault.
func TestUnboundedRecursionRaisesCatchableStackOverflow(t *testing.T) {
	loopMethod := &ast.Method{
		Name: "loop",
		Body: &ast.Body{Sentences: []ast.Node{
			&ast.Send{Receiver: &ast.Self{}, Message: "loop"},
		}},
	}
	class := &ast.Class{Name: "Looper", Meths: []ast.Node{loopMethod}}
	pkg := &ast.Package{Name: "app", Files: []ast.Node{class}}

	pkgs := []*ast.Package{minimalStdlib(), pkg}
	env, err := link.Link(pkgs, nil)
	qt.Assert(t, qt.IsNil(err))

	cfg := DefaultConfig(NativeTable{})
	cfg.MaxFrameStackSize = 16
	ev, err := NewWithConfig(env, cfg)
	qt.Assert(t, qt.IsNil(err))

	classNode, ok := env.NodeByFQN("app.Looper")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, classNode.NodeID(), nil))

	_, err = ev.SendMessage("loop", instID)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))

	exc, ok := ev.Table().Get(uncaught.Instance)
	qt.Assert(t, qt.IsTrue(ok))
	stackOverflowMod, ok := env.NodeByFQN(ids.FQNStackOverflow)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(exc.ModuleID, stackOverflowMod.NodeID()))
}

// TestOperandStackOverflowRaisesCatchableStackOverflow drives a frame's
// operand stack past Config.MaxOperandStackSize, distinct from the frame
// stack overflow above, and checks it is likewise turned into a catchable
// StackOverflowException rather than a host Fault (frame.go's
// errOperandStackFull, converted by stepOne).
func TestOperandStackOverflowRaisesCatchableStackOverflow(t *testing.T) {
	pkg := minimalStdlib()
	env, err := link.Link([]*ast.Package{pkg}, nil)
	qt.Assert(t, qt.IsNil(err))

	cfg := DefaultConfig(NativeTable{})
	cfg.MaxOperandStackSize = 1
	ev, err := NewWithConfig(env, cfg)
	qt.Assert(t, qt.IsNil(err))

	objMod, ok := env.NodeByFQN(ids.FQNObject)
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, objMod.NodeID(), nil))

	_, err = ev.SendMessage("==", instID, ids.True)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))

	exc, ok := ev.Table().Get(uncaught.Instance)
	qt.Assert(t, qt.IsTrue(ok))
	stackOverflowMod, ok := env.NodeByFQN(ids.FQNStackOverflow)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(exc.ModuleID, stackOverflowMod.NodeID()))
}

func TestDebugInstanceFormatsKnownAndUnknownIDs(t *testing.T) {
	_, ev := newTestEvaluation(t)

	objMod, _ := ev.Env().NodeByFQN(ids.FQNObject)
	id := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(id, objMod.NodeID(), nil))

	s := ev.DebugInstance(id)
	qt.Assert(t, qt.StringContains(s, string(objMod.NodeID())))

	qt.Assert(t, qt.Equals(ev.DebugInstance("missing-id"), "missing-id"))
}
