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

package natives_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
	"github.com/NicolasKalaydjian/wollok-ts/internal/natives"
)

func newEvaluation(t *testing.T) (*link.Environment, *eval.Evaluation) {
	t.Helper()
	env, err := link.Link([]*ast.Package{natives.StdlibPackage()}, nil)
	qt.Assert(t, qt.IsNil(err))
	table, err := natives.New(env)
	qt.Assert(t, qt.IsNil(err))
	ev, err := eval.New(env, table)
	qt.Assert(t, qt.IsNil(err))
	return env, ev
}

func TestObjectMessageNotUnderstoodNamesReceiverClassAndMessage(t *testing.T) {
	env, ev := newEvaluation(t)

	objMod, ok := env.NodeByFQN(ids.FQNObject)
	qt.Assert(t, qt.IsTrue(ok))
	id := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(id, objMod.NodeID(), nil))

	_, err := ev.SendMessage("frobnicate", id)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *eval.Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))

	exc, ok := ev.Table().Get(uncaught.Instance)
	qt.Assert(t, qt.IsTrue(ok))
	msgID, _, ok := exc.Lookup("message")
	qt.Assert(t, qt.IsTrue(ok))
	msg, ok := ev.Table().Get(msgID)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(msg.Str, "Object does not understand frobnicate"))
}

func TestObjectToStringNamesReceiverClass(t *testing.T) {
	env, ev := newEvaluation(t)

	objMod, _ := env.NodeByFQN(ids.FQNObject)
	id := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(id, objMod.NodeID(), nil))

	result, err := ev.SendMessage("toString", id)
	qt.Assert(t, qt.IsNil(err))
	inst, ok := ev.Table().Get(result)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inst.Str, "a Object"))
}

func TestObjectHashIsStableForSameInstance(t *testing.T) {
	_, ev := newEvaluation(t)

	objMod, _ := ev.Env().NodeByFQN(ids.FQNObject)
	id := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(id, objMod.NodeID(), nil))

	a, err := ev.SendMessage("hash", id)
	qt.Assert(t, qt.IsNil(err))
	b, err := ev.SendMessage("hash", id)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(a, b))
}

func TestSetAddDeduplicatesByEquality(t *testing.T) {
	env, ev := newEvaluation(t)

	setMod, ok := env.NodeByFQN(ids.FQNSet)
	qt.Assert(t, qt.IsTrue(ok))
	setID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(setID, setMod.NodeID(), nil))

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	one, _ := ev.Table().ParseNumber(numMod.NodeID(), "1")
	oneAgain, _ := ev.Table().ParseNumber(numMod.NodeID(), "1")

	_, err := ev.SendMessage("add", setID, one.ID)
	qt.Assert(t, qt.IsNil(err))
	_, err = ev.SendMessage("add", setID, oneAgain.ID)
	qt.Assert(t, qt.IsNil(err))

	size, err := ev.SendMessage("size", setID)
	qt.Assert(t, qt.IsNil(err))
	sizeInst, ok := ev.Table().Get(size)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(sizeInst.Num.String(), "1"))

	contains, err := ev.SendMessage("contains", setID, one.ID)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(contains, ids.True))
}

func TestListGetOutOfRangeRaisesCatchableException(t *testing.T) {
	env, ev := newEvaluation(t)

	listMod, ok := env.NodeByFQN(ids.FQNList)
	qt.Assert(t, qt.IsTrue(ok))
	listID := ev.Table().NewID()
	ev.Table().Put(adt.NewInstance(listID, listMod.NodeID(), nil))

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	five, _ := ev.Table().ParseNumber(numMod.NodeID(), "5")

	_, err := ev.SendMessage("get", listID, five.ID)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *eval.Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))
	evalErrMod, _ := env.NodeByFQN(ids.FQNEvaluationError)
	exc, ok := ev.Table().Get(uncaught.Instance)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(exc.ModuleID, evalErrMod.NodeID()))
}

func TestStringConcatenationRejectsNonStringArgument(t *testing.T) {
	env, ev := newEvaluation(t)

	strMod, ok := env.NodeByFQN(ids.FQNString)
	qt.Assert(t, qt.IsTrue(ok))
	greeting := ev.Table().String(strMod.NodeID(), "hi ")

	numMod, _ := env.NodeByFQN(ids.FQNNumber)
	three, _ := ev.Table().ParseNumber(numMod.NodeID(), "3")

	_, err := ev.SendMessage("+", greeting.ID, three.ID)
	qt.Assert(t, qt.IsNotNil(err))

	var uncaught *eval.Uncaught
	qt.Assert(t, qt.ErrorAs(err, &uncaught))
}

func TestBooleanNegateAndLogicOperators(t *testing.T) {
	_, ev := newEvaluation(t)

	neg, err := ev.SendMessage("negate", ids.True)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(neg, ids.False))

	disj, err := ev.SendMessage("||", ids.False, ids.True)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(disj, ids.True))

	str, err := ev.SendMessage("toString", ids.True)
	qt.Assert(t, qt.IsNil(err))
	inst, ok := ev.Table().Get(str)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(inst.Str, "true"))
}
