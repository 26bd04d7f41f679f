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
	"strings"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
)

// addCollectionNatives registers wollok.lang.List's and wollok.lang.Set's
// natives. Both share the same Inner:adt.InnerList/InnerSet + Refs
// representation (an ordered instance-id slice) that CALL's variadic
// parameter bundling and messageNotUnderstood's argument list already
// build natively, so List and Set differ only in whether add dedups.
func addCollectionNatives(t Table, wk wellKnown) {
	t["wollok.lang.List.add"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			return
		}
		inst.Refs = append(inst.Refs, args[0])
		_ = ev.Push(args[0])
	}
	t["wollok.lang.List.get"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			return
		}
		idx, ok := indexOf(ev, args[0])
		if !ok || idx < 0 || idx >= len(inst.Refs) {
			wk.raiseError(ev, "index out of range")
			return
		}
		_ = ev.Push(inst.Refs[idx])
	}
	t["wollok.lang.List.size"] = listSize(wk)
	t["wollok.lang.List.toString"] = listToString(wk, "[", "]")

	t["wollok.lang.Set.add"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			return
		}
		if !containsElement(ev, inst, args[0]) {
			inst.Refs = append(inst.Refs, args[0])
		}
		_ = ev.Push(args[0])
	}
	t["wollok.lang.Set.contains"] = func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			wk.pushBool(ev, false)
			return
		}
		wk.pushBool(ev, containsElement(ev, inst, args[0]))
	}
	t["wollok.lang.Set.size"] = listSize(wk)
	t["wollok.lang.Set.toString"] = listToString(wk, "#{", "}")
}

func listSize(wk wellKnown) eval.Native {
	return func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			return
		}
		wk.pushNumber(ev, *apdInt(len(inst.Refs)))
	}
}

func listToString(wk wellKnown, open, shut string) eval.Native {
	return func(ev *eval.Evaluation, self ast.ID, args []ast.ID) {
		inst, ok := ev.Table().Get(self)
		if !ok {
			wk.pushString(ev, open+shut)
			return
		}
		parts := make([]string, len(inst.Refs))
		for i, id := range inst.Refs {
			parts[i] = elemToString(ev, id)
		}
		wk.pushString(ev, open+strings.Join(parts, ", ")+shut)
	}
}

// elemToString sends "toString" to id through the ordinary dispatch loop
// (not a direct field read), so a user-overridden toString is honored for
// elements just like it would be anywhere else.
func elemToString(ev *eval.Evaluation, id ast.ID) string {
	result, err := ev.SendMessage("toString", id)
	if err != nil {
		return "?"
	}
	s, ok := str(ev, result)
	if !ok {
		return "?"
	}
	return s
}

// containsElement mirrors elemToString: equality is dispatched through
// "==" rather than compared by id, so a user-overridden == is honored.
func containsElement(ev *eval.Evaluation, inst *adt.Instance, target ast.ID) bool {
	for _, id := range inst.Refs {
		result, err := ev.SendMessage("==", id, target)
		if err == nil && truthy(result) {
			return true
		}
	}
	return false
}

func indexOf(ev *eval.Evaluation, id ast.ID) (int, bool) {
	d, ok := num(ev, id)
	if !ok {
		return 0, false
	}
	i, err := d.Int64()
	if err != nil {
		return 0, false
	}
	return int(i), true
}
