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

// addExceptionNatives registers wollok.lang.Exception's one native:
// getMessage reads the "message" field INIT_NAMED bound at construction
// time (a plain Context lookup, since Instance IS-A Context).
func addExceptionNatives(t Table, wk wellKnown) {
	t["wollok.lang.Exception.getMessage"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			wk.pushString(ev, "")
			return
		}
		if id, _, ok := inst.Lookup("message"); ok {
			_ = ev.Push(id)
			return
		}
		wk.pushString(ev, "")
	}
}
