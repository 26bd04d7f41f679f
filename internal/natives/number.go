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

// addNumberNatives registers wollok.lang.Number's arithmetic and
// comparison natives. Every result is rounded through arith before
// adt.Table.Number interns it (which applies the Evaluation's configured
// DECIMAL_PRECISION on top): decimal arithmetic always routes through one
// shared apd.Context rather than operating on *apd.Decimal ad hoc at each
// call site.
func addNumberNatives(t Table, wk wellKnown) {
	binop := func(op string, fn func(z, x, y *apd.Decimal) (apd.Condition, error)) {
		t["wollok.lang.Number."+op] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
			x, _ := num(ev, self)
			y, ok := num(ev, args[0])
			if !ok {
				wk.raiseError(ev, op+" requires a Number argument")
				return
			}
			var d apd.Decimal
			cond, err := fn(&d, &x, &y)
			if err != nil || cond.DivisionByZero() {
				wk.raiseError(ev, "division by zero")
				return
			}
			wk.pushNumber(ev, d)
		}
	}
	binop("+", arith.Add)
	binop("-", arith.Sub)
	binop("*", arith.Mul)
	binop("/", arith.Quo)
	binop("%", arith.Rem)

	cmp := func(op string, accept func(c int) bool) {
		t["wollok.lang.Number."+op] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
			x, _ := num(ev, self)
			y, ok := num(ev, args[0])
			if !ok {
				wk.pushBool(ev, false)
				return
			}
			wk.pushBool(ev, accept(x.Cmp(&y)))
		}
	}
	cmp("<", func(c int) bool { return c < 0 })
	cmp(">", func(c int) bool { return c > 0 })
	cmp("<=", func(c int) bool { return c <= 0 })
	cmp(">=", func(c int) bool { return c >= 0 })
	cmp("==", func(c int) bool { return c == 0 })

	t["wollok.lang.Number.negate"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		d, _ := num(ev, self)
		if !d.IsZero() {
			d.Negative = !d.Negative
		}
		wk.pushNumber(ev, d)
	}
	t["wollok.lang.Number.toString"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		x, _ := num(ev, self)
		wk.pushString(ev, x.String())
	}
}
