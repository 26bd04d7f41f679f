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

package natives

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

// Table is an alias for eval.NativeTable, not a distinct type, so there is
// nothing to convert at the Config boundary.
type Table = eval.NativeTable

// wellKnown is every module id a native body needs, resolved once against
// the linked Environment when the table is built rather than re-resolved
// by FQN on every call.
type wellKnown struct {
	object, boolean, number, str, list, set, exception, evalErr ast.ID
}

func resolveWellKnown(env *link.Environment) (wellKnown, error) {
	var wk wellKnown
	for _, pair := range []struct {
		fqn string
		out *ast.ID
	}{
		{ids.FQNObject, &wk.object},
		{ids.FQNBoolean, &wk.boolean},
		{ids.FQNNumber, &wk.number},
		{ids.FQNString, &wk.str},
		{ids.FQNList, &wk.list},
		{ids.FQNSet, &wk.set},
		{ids.FQNException, &wk.exception},
		{ids.FQNEvaluationError, &wk.evalErr},
	} {
		n, ok := env.NodeByFQN(pair.fqn)
		if !ok {
			return wk, errMissing(pair.fqn)
		}
		*pair.out = n.NodeID()
	}
	return wk, nil
}

type errMissing string

func (e errMissing) Error() string { return "natives: missing well-known module " + string(e) }

// arith is the apd.Context every arithmetic native rounds through before a
// result is interned; interning itself re-rounds to the Evaluation's
// configured DECIMAL_PRECISION (adt.Table.Number), so this only needs
// headroom wide enough not to lose digits before that second rounding.
var arith = newArithContext()

func newArithContext() apd.Context {
	ctx := apd.BaseContext
	ctx.Precision = 40
	return ctx
}

func boolID(b bool) ast.ID {
	if b {
		return ids.True
	}
	return ids.False
}

func truthy(id ast.ID) bool { return id == ids.True }

// num reads the underlying decimal of a Number instance. Dispatch's own
// method lookup only reaches a Number native through a receiver whose
// class is Number (or a subclass), so ok is false only for a receiver
// forged directly by another native.
func num(ev *eval.Evaluation, id ast.ID) (apd.Decimal, bool) {
	inst, ok := ev.Table().Get(id)
	if !ok {
		return apd.Decimal{}, false
	}
	return inst.Num, true
}

func str(ev *eval.Evaluation, id ast.ID) (string, bool) {
	inst, ok := ev.Table().Get(id)
	if !ok {
		return "", false
	}
	return inst.Str, inst.Inner == adt.InnerString
}

func (wk wellKnown) pushNumber(ev *eval.Evaluation, d apd.Decimal) {
	_ = ev.Push(ev.Table().Number(wk.number, d).ID)
}

func (wk wellKnown) pushString(ev *eval.Evaluation, s string) {
	_ = ev.Push(ev.Table().String(wk.str, s).ID)
}

func (wk wellKnown) pushBool(ev *eval.Evaluation, b bool) {
	_ = ev.Push(boolID(b))
}

// raiseError builds an EvaluationError instance carrying message as its
// "message" field and hands it to the unwinding loop, for the natives that
// detect a user-reachable problem themselves (division by zero, an
// out-of-range collection index) rather than leaving it to dispatch.
func (wk wellKnown) raiseError(ev *eval.Evaluation, message string) {
	msgInst := ev.Table().String(wk.str, message)
	id := ev.Table().NewID()
	inst := adt.NewInstance(id, wk.evalErr, nil)
	inst.Bind("message", msgInst.ID)
	ev.Table().Put(inst)
	_ = ev.Raise(id)
}

func apdFromUint(v uint32) *apd.Decimal {
	return apd.New(int64(v), 0)
}

func apdInt(v int) *apd.Decimal {
	return apd.New(int64(v), 0)
}

func moduleName(ev *eval.Evaluation, modID ast.ID) string {
	n, ok := ev.Env().Node(modID)
	if !ok {
		return "?"
	}
	if m, ok := n.(interface{ ModuleName() string }); ok {
		return m.ModuleName()
	}
	return "?"
}
