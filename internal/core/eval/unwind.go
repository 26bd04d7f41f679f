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

package eval

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
)

// raise implements the unwinding loop: pop nested contexts off the
// top frame looking for one with a handler; if found, resume there with
// <exception> bound to instanceID. If the top frame exhausts its nested
// contexts, pop the whole frame and retry against the new top. If the frame
// stack empties, the exception escapes to the embedder as *Uncaught.
func (ev *Evaluation) raise(instanceID ast.ID) error {
	ev.trace(TraceEvent{Kind: "raise", Instance: instanceID})
	for len(ev.frames) > 0 {
		f := ev.top()
		for f.Current != f.Base {
			if f.Current.HandlerPC >= 0 {
				handlerPC := f.Current.HandlerPC
				f.Current = f.Current.Parent()
				f.Current.Bind("<exception>", instanceID)
				f.PC = handlerPC
				ev.trace(TraceEvent{Kind: "catch", Instance: instanceID})
				return errUnwound
			}
			f.Current = f.Current.Parent()
		}
		ev.frames = ev.frames[:len(ev.frames)-1]
	}
	return &Uncaught{Instance: instanceID}
}

// raiseStackOverflow constructs a StackOverflowException instance and raises
// it: frame-stack and operand-stack overflow both take this path rather than
// surfacing as a host Fault.
func (ev *Evaluation) raiseStackOverflow() error {
	modID, err := ev.wellKnown(ids.FQNStackOverflow)
	if err != nil {
		return err
	}
	id := ev.table.NewID()
	ev.table.Put(adt.NewInstance(id, modID, nil))
	return ev.raise(id)
}

// raiseEvaluationError constructs an EvaluationError instance carrying
// message as its "message" field and raises it: non-boolean conditions,
// missing non-optional constructors, and similar dispatch-loop problems are
// user-catchable exceptions, not host Faults.
func (ev *Evaluation) raiseEvaluationError(message string) error {
	modID, err := ev.wellKnown(ids.FQNEvaluationError)
	if err != nil {
		return err
	}
	strModID, err := ev.wellKnown(ids.FQNString)
	if err != nil {
		return err
	}
	msgInst := ev.table.String(strModID, message)
	id := ev.table.NewID()
	inst := adt.NewInstance(id, modID, nil)
	inst.Bind("message", msgInst.ID)
	ev.table.Put(inst)
	return ev.raise(id)
}
