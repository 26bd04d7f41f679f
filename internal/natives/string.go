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

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
)

// addStringNatives registers wollok.lang.String's natives: concatenation,
// value equality (overriding Object's identity default, though interning
// already makes equal-valued strings share an id, see adt.Table.String),
// length, and toString (identity: a String's toString is itself).
func addStringNatives(t Table, wk wellKnown) {
	t["wollok.lang.String.+"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		a, _ := str(ev, self)
		b, ok := str(ev, args[0])
		if !ok {
			wk.raiseError(ev, "+ requires a String argument")
			return
		}
		wk.pushString(ev, a+b)
	}
	t["wollok.lang.String.=="] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, self == args[0])
	}
	t["wollok.lang.String.length"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		s, _ := str(ev, self)
		wk.pushNumber(ev, *apd.New(int64(len(s)), 0))
	}
	t["wollok.lang.String.toString"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		_ = ev.Push(self)
	}
}
