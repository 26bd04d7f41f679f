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
	"hash/fnv"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
)

// addObjectNatives registers wollok.lang.Object's natives: identity
// equality, a default hash derived from that identity, a default toString
// that names the receiver's class, and the messageNotUnderstood fallback
// every failed CALL dispatch resolves to.
func addObjectNatives(t Table, wk wellKnown) {
	t["wollok.lang.Object.=="] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, self == args[0])
	}
	t["wollok.lang.Object.!="] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, self != args[0])
	}
	t["wollok.lang.Object.hash"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(self))
		wk.pushNumber(ev, *apdFromUint(h.Sum32()))
	}
	t["wollok.lang.Object.toString"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			wk.pushString(ev, "an Object")
			return
		}
		wk.pushString(ev, "a "+moduleName(ev, inst.ModuleID))
	}
	t["wollok.lang.Object.messageNotUnderstood"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		name, _ := str(ev, args[0])
		inst, ok := ev.Table().Get(self)
		recvClass := "?"
		if ok {
			recvClass = moduleName(ev, inst.ModuleID)
		}
		wk.raiseError(ev, recvClass+" does not understand "+name)
	}
}
