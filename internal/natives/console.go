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
	"fmt"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
)

// addConsoleNatives registers the console singleton's one native:
// println writes value's toString to the Evaluation's configured
// io.Writer (Config.Stdout), the only point anywhere in the VM where
// output reaches an io.Writer directly.
func addConsoleNatives(t Table, wk wellKnown) {
	t["wollok.lang.console.println"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		fmt.Fprintln(ev.Stdout(), elemToString(ev, args[0]))
		_ = ev.Push(ids.Null)
	}
}
