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
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
)

// addBooleanNatives registers wollok.lang.Boolean's natives. && and || are
// eager here (both operands already evaluated before CALL), unlike the
// lazy and/or a surface language would usually desugar to an If, this
// stdlib class only ever receives an already-computed Boolean argument, so
// eagerness is observably identical and needs no special compiler support.
func addBooleanNatives(t Table, wk wellKnown) {
	t["wollok.lang.Boolean.&&"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, truthy(self) && truthy(args[0]))
	}
	t["wollok.lang.Boolean.||"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, truthy(self) || truthy(args[0]))
	}
	t["wollok.lang.Boolean.negate"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		wk.pushBool(ev, !truthy(self))
	}
	t["wollok.lang.Boolean.toString"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		if truthy(self) {
			wk.pushString(ev, "true")
			return
		}
		wk.pushString(ev, "false")
	}
}
