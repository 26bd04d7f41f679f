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

package wollok_test

import (
	"bytes"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/NicolasKalaydjian/wollok-ts"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
)

func TestNumberArithmeticThroughSendMessage(t *testing.T) {
	env, err := wollok.Link(nil)
	qt.Assert(t, qt.IsNil(err))
	ev, err := wollok.NewEvaluation(env)
	qt.Assert(t, qt.IsNil(err))

	numMod, ok := env.NodeByFQN(ids.FQNNumber)
	qt.Assert(t, qt.IsTrue(ok))

	three, err := ev.Table().ParseNumber(numMod.NodeID(), "3")
	qt.Assert(t, qt.IsNil(err))
	four, err := ev.Table().ParseNumber(numMod.NodeID(), "4")
	qt.Assert(t, qt.IsNil(err))

	result, err := ev.SendMessage("+", three.ID, four.ID)
	qt.Assert(t, qt.IsNil(err))

	seven, err := ev.Table().ParseNumber(numMod.NodeID(), "7")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result, seven.ID))
}

func TestNumberComparisonAndBooleanLogic(t *testing.T) {
	env, err := wollok.Link(nil)
	qt.Assert(t, qt.IsNil(err))
	ev, err := wollok.NewEvaluation(env)
	qt.Assert(t, qt.IsNil(err))

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	three, _ := ev.Table().ParseNumber(numMod.NodeID(), "3")
	four, _ := ev.Table().ParseNumber(numMod.NodeID(), "4")

	lt, err := ev.SendMessage("<", three.ID, four.ID)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(lt, ids.True))

	conj, err := ev.SendMessage("&&", ids.True, ids.False)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(conj, ids.False))
}

func TestDivisionByZeroRaisesCatchableException(t *testing.T) {
	env, err := wollok.Link(nil)
	qt.Assert(t, qt.IsNil(err))
	ev, err := wollok.NewEvaluation(env)
	qt.Assert(t, qt.IsNil(err))

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	three, _ := ev.Table().ParseNumber(numMod.NodeID(), "3")
	zero, _ := ev.Table().ParseNumber(numMod.NodeID(), "0")

	_, err = ev.SendMessage("/", three.ID, zero.ID)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *wollok.Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))

	exc, ok := ev.Table().Get(uncaught.Instance)
	qt.Assert(t, qt.IsTrue(ok))
	evalErrMod, _ := env.NodeByFQN(ids.FQNEvaluationError)
	qt.Assert(t, qt.Equals(exc.ModuleID, evalErrMod.NodeID()))
}

func TestListAddGetSizeAndToString(t *testing.T) {
	env, err := wollok.Link(nil)
	qt.Assert(t, qt.IsNil(err))
	ev, err := wollok.NewEvaluation(env)
	qt.Assert(t, qt.IsNil(err))

	listMod, ok := env.NodeByFQN(ids.FQNList)
	qt.Assert(t, qt.IsTrue(ok))
	listID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(listID, listMod.NodeID(), nil))

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	one, _ := ev.Table().ParseNumber(numMod.NodeID(), "1")
	two, _ := ev.Table().ParseNumber(numMod.NodeID(), "2")

	_, err = ev.SendMessage("add", listID, one.ID)
	qt.Assert(t, qt.IsNil(err))
	_, err = ev.SendMessage("add", listID, two.ID)
	qt.Assert(t, qt.IsNil(err))

	size, err := ev.SendMessage("size", listID)
	qt.Assert(t, qt.IsNil(err))
	sizeInst, ok := ev.Table().Get(size)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(sizeInst.Num.String(), "2"))

	got, err := ev.SendMessage("get", listID, func() ast.ID {
		idx, _ := ev.Table().ParseNumber(numMod.NodeID(), "0")
		return idx.ID
	}())
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(got, one.ID))

	str, err := ev.SendMessage("toString", listID)
	qt.Assert(t, qt.IsNil(err))
	strInst, ok := ev.Table().Get(str)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(strInst.Str, "[1, 2]"))
}

func TestConsolePrintlnWritesToConfiguredStdout(t *testing.T) {
	env, err := wollok.Link(nil)
	qt.Assert(t, qt.IsNil(err))

	var buf bytes.Buffer
	cfg := wollok.DefaultConfig(nil)
	cfg.Stdout = &buf
	ev, err := wollok.NewEvaluationWithConfig(env, cfg)
	qt.Assert(t, qt.IsNil(err))

	consoleMod, ok := env.NodeByFQN("wollok.lang.console")
	qt.Assert(t, qt.IsTrue(ok))

	strMod, _ := env.NodeByFQN(ids.FQNString)
	greeting := ev.Table().String(strMod.NodeID(), "hi")

	_, err = ev.SendMessage("println", consoleMod.NodeID(), greeting.ID)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(buf.String(), "hi\n"))
}

// TestUserClassCatchesRaisedException hand-builds a class whose method
// throws a wollok.lang.Exception (constructed via the full
// INSTANTIATE/INIT_NAMED/INIT pipeline, not adt.NewInstance directly) and
// catches it in the same try, returning its message. The class lives in
// its own package, with no import of wollok.lang; "Exception" is written
// as the literal fully-qualified name so reference resolution falls back
// to the Environment's FQN index rather than relying on scope.
func TestUserClassCatchesRaisedException(t *testing.T) {
	excRef := &ast.Reference{Name: "wollok.lang.Exception"}
	msgArg := &ast.NamedArgument{
		Name:  "message",
		Value: &ast.Literal{LKind: ast.LiteralString, StringVal: "boom"},
	}
	throwExc := &ast.New{ClassRef: excRef, Args: []ast.Node{msgArg}, Named: true}

	catchParam := &ast.Parameter{Name: "e"}
	catchBody := &ast.Body{Sentences: []ast.Node{
		&ast.Send{
			Receiver: &ast.Reference{Name: "e"},
			Message:  "getMessage",
		},
	}}

	tryNode := &ast.Try{
		Body: &ast.Body{Sentences: []ast.Node{&ast.Throw{Value: throwExc}}},
		Catches: []*ast.Catch{
			{Parameter: catchParam, Body: catchBody},
		},
	}

	method := &ast.Method{
		Name:   "riskyDivide",
		Params: nil,
		Body:   &ast.Body{Sentences: []ast.Node{tryNode}},
	}
	class := &ast.Class{Name: "Thrower", Meths: []ast.Node{method}}
	pkg := &ast.Package{Name: "testpkg", Files: []ast.Node{class}}

	env, err := wollok.Link([]*ast.Package{pkg})
	qt.Assert(t, qt.IsNil(err))
	ev, err := wollok.NewEvaluation(env)
	qt.Assert(t, qt.IsNil(err))

	classNode, ok := env.NodeByFQN("testpkg.Thrower")
	qt.Assert(t, qt.IsTrue(ok))
	instID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(instID, classNode.NodeID(), nil))

	result, err := ev.SendMessage("riskyDivide", instID)
	qt.Assert(t, qt.IsNil(err))

	resultInst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(resultInst.Str, "boom"))
}
