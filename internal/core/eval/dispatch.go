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
	"strconv"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/compile"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
)

// stepOne executes the single instruction at the top frame's PC (spec
// /), converting an operand- or frame-stack overflow into a raised
// StackOverflowException rather than letting it surface as a host Fault.
func (ev *Evaluation) stepOne() error {
	f := ev.top()
	if f == nil {
		return fault("step with no active frame")
	}
	if f.Finished() {
		return fault("frame ran off the end of its instructions without RETURN")
	}
	pc := f.PC
	instr := f.Instr[pc]
	f.PC = pc + 1

	err := ev.dispatch(f, instr)
	if _, ok := err.(*stackOverflow); ok {
		return ev.raiseStackOverflow()
	}
	return err
}

func (ev *Evaluation) dispatch(f *Frame, instr compile.Instruction) error {
	switch instr.Op {
	case compile.LOAD:
		return ev.execLoad(f, instr)
	case compile.STORE:
		val, err := f.pop()
		if err != nil {
			return err
		}
		if instr.Lookup {
			f.Current.Assign(instr.Name, val)
		} else {
			f.Current.Bind(instr.Name, val)
		}
		return nil
	case compile.PUSH:
		if instr.HasID {
			return f.push(instr.SentinelID)
		}
		return f.push(ids.Null)
	case compile.POP:
		_, err := f.pop()
		return err
	case compile.PUSH_CONTEXT:
		f.pushContext(instr.Handler)
		return nil
	case compile.POP_CONTEXT:
		return f.popContext()
	case compile.SWAP:
		return execSwap(f, instr.Depth)
	case compile.DUP:
		top, err := f.peek(0)
		if err != nil {
			return err
		}
		return f.push(top)
	case compile.INSTANTIATE:
		return ev.execInstantiate(f, instr)
	case compile.INHERITS:
		return ev.execInherits(f, instr)
	case compile.JUMP:
		f.PC = instr.Target
		return nil
	case compile.CONDITIONAL_JUMP:
		return ev.execConditionalJump(f, instr)
	case compile.CALL:
		return ev.execCall(f, instr)
	case compile.INIT:
		return ev.execInit(f, instr)
	case compile.INIT_NAMED:
		return ev.execInitNamed(f, instr)
	case compile.INTERRUPT:
		excID, err := f.pop()
		if err != nil {
			return err
		}
		return ev.raise(excID)
	case compile.RETURN:
		return ev.execReturn(f)
	default:
		return fault("unknown opcode %s", instr.Op)
	}
}

func execSwap(f *Frame, depth int) error {
	n := len(f.Operand)
	topIdx := n - 1
	otherIdx := topIdx - (depth + 1)
	if otherIdx < 0 || topIdx < 0 {
		return fault("SWAP depth %d out of range", depth)
	}
	f.Operand[topIdx], f.Operand[otherIdx] = f.Operand[otherIdx], f.Operand[topIdx]
	return nil
}

// execLoad resolves instr.Name through f.Current's context chain. If the
// binding is a not-yet-evaluated lazy global, its initializer is run as a
// nested synchronous sub-evaluation and the result replaces the lazy
// binding in place, so later LOADs of the same name skip straight to the
// value.
func (ev *Evaluation) execLoad(f *Frame, instr compile.Instruction) error {
	id, owner, found := f.Current.Lookup(instr.Name)
	if !found {
		return fault("unresolved name %q", instr.Name)
	}
	inst, ok := ev.table.Get(id)
	if ok && inst.Lazy != nil {
		sub := ev.compiler.CompileExpr(inst.Lazy.Expr)
		subFrame := NewFrame(sub, adt.NewContext(ev.root), f.maxOperand)
		val, err := ev.runFrame(subFrame)
		if err != nil {
			return err
		}
		owner.Bind(instr.Name, val)
		return f.push(val)
	}
	return f.push(id)
}

func (ev *Evaluation) execInherits(f *Frame, instr compile.Instruction) error {
	selfID, err := f.pop()
	if err != nil {
		return err
	}
	inst, ok := ev.table.Get(selfID)
	if !ok {
		return fault("INHERITS: unknown instance %s", selfID)
	}
	lin := ev.env.Linearization(inst.ModuleID)
	result := ids.False
	if indexOf(lin, instr.ModuleID) >= 0 {
		result = ids.True
	}
	return f.push(result)
}

func (ev *Evaluation) execConditionalJump(f *Frame, instr compile.Instruction) error {
	condID, err := f.pop()
	if err != nil {
		return err
	}
	switch condID {
	case ids.True:
		f.PC = instr.Target
		return nil
	case ids.False:
		return nil
	default:
		return ev.raiseEvaluationError("non-boolean value used as a condition")
	}
}

func (ev *Evaluation) execReturn(f *Frame) error {
	val, err := f.pop()
	if err != nil {
		return err
	}
	ev.frames = ev.frames[:len(ev.frames)-1]
	ev.lastResult = val
	ev.trace(TraceEvent{Kind: "frame_pop"})
	if caller := ev.top(); caller != nil {
		return caller.push(val)
	}
	return nil
}

// execInstantiate allocates a fresh user-object instance, or, for the one
// primitive-literal case, interns it; for a named singleton's own module it
// returns the already-primed interned instance instead of allocating a new
// one. Exactly one instance of a named singleton ever exists, interned by
// id at evaluation construction.
func (ev *Evaluation) execInstantiate(f *Frame, instr compile.Instruction) error {
	if instr.ModuleID != "" {
		if node, ok := ev.env.Node(instr.ModuleID); ok {
			if s, ok := node.(*ast.Singleton); ok && s.Name != "" {
				return f.push(instr.ModuleID)
			}
			if cl, ok := node.(*ast.Closure); ok {
				return ev.instantiateClosure(f, cl)
			}
		}
		id := ev.table.NewID()
		ev.table.Put(adt.NewInstance(id, instr.ModuleID, nil))
		return f.push(id)
	}

	modID, err := ev.wellKnown(instr.FQN)
	if err != nil {
		return err
	}
	switch instr.Inner {
	case compile.InnerNumber:
		inst, err := ev.table.ParseNumber(modID, instr.Literal)
		if err != nil {
			return fault("%s", err)
		}
		return f.push(inst.ID)
	case compile.InnerString:
		inst := ev.table.String(modID, instr.Literal)
		return f.push(inst.ID)
	default:
		return fault("INSTANTIATE: unsupported primitive inner kind %d", instr.Inner)
	}
}

// instantiateClosure allocates a wollok.lang.Closure instance whose Context
// is parented directly on f.Current, the context in effect when the
// closure literal is evaluated, so that "apply" resolves free variables by
// lexical capture, not by whatever context happens to be current when apply
// is later sent: the enclosing context is captured at closure creation
// time, not at call time.
func (ev *Evaluation) instantiateClosure(f *Frame, cl *ast.Closure) error {
	modID, err := ev.wellKnown(ids.FQNClosure)
	if err != nil {
		return err
	}
	id := ev.table.NewID()
	ev.table.Put(&adt.Instance{ID: id, ModuleID: modID, Context: adt.NewContext(f.Current), Native: cl})
	return f.push(id)
}

func (ev *Evaluation) execInitNamed(f *Frame, instr compile.Instruction) error {
	instID, err := f.pop()
	if err != nil {
		return err
	}
	values, err := f.popN(len(instr.Names))
	if err != nil {
		return err
	}
	if err := ev.initNamed(instID, instr.Names, values, f.maxOperand); err != nil {
		return err
	}
	return f.push(instID)
}

// initNamed zeroes every field reachable through inst's linearization to
// null, binds the named arguments, then runs the initializer of every
// remaining (non-named) field that declares one, first occurrence in the
// linearization wins, same rule as method lookup.
func (ev *Evaluation) initNamed(instID ast.ID, names []string, values []ast.ID, maxOperand int) error {
	inst, ok := ev.table.Get(instID)
	if !ok {
		return fault("INIT_NAMED: unknown instance %s", instID)
	}

	var fields []*ast.Field
	seen := map[string]bool{}
	for _, modID := range ev.env.Linearization(inst.ModuleID) {
		node, ok := ev.env.Node(modID)
		if !ok {
			continue
		}
		mod, ok := node.(ast.Module)
		if !ok {
			continue
		}
		for _, mem := range mod.Members() {
			fld, ok := mem.(*ast.Field)
			if !ok || seen[fld.Name] {
				continue
			}
			seen[fld.Name] = true
			fields = append(fields, fld)
		}
	}

	for _, fld := range fields {
		inst.Bind(fld.Name, ids.Null)
	}

	named := map[string]bool{}
	for i, name := range names {
		inst.Bind(name, values[i])
		named[name] = true
	}

	for _, fld := range fields {
		if named[fld.Name] || fld.Value == nil {
			continue
		}
		sub := ev.compiler.CompileExpr(fld.Value)
		base := adt.NewContext(inst.Context)
		base.Bind("self", instID)
		subFrame := NewFrame(sub, base, maxOperand)
		val, err := ev.runFrame(subFrame)
		if err != nil {
			return err
		}
		inst.Bind(fld.Name, val)
	}
	return nil
}

func (ev *Evaluation) execCall(f *Frame, instr compile.Instruction) error {
	args, err := f.popN(instr.Arity)
	if err != nil {
		return err
	}
	recv, err := f.pop()
	if err != nil {
		return err
	}
	inst, ok := ev.table.Get(recv)
	if !ok {
		return fault("CALL: unknown receiver %s", recv)
	}
	ev.trace(TraceEvent{Kind: "send", Message: instr.Name, Receiver: recv})

	if cl, ok := inst.Native.(*ast.Closure); ok && instr.Name == "apply" {
		return ev.invokeClosure(cl, recv, args)
	}

	modID, method, found := resolveMethod(ev.env, inst.ModuleID, instr.Name, len(args), instr.HasLookupStartID, instr.LookupStartID)
	if found {
		return ev.invoke(modID, method, recv, args)
	}

	mnuModID, mnu, mok := resolveMethod(ev.env, inst.ModuleID, "messageNotUnderstood", 2, false, "")
	if !mok {
		return ev.raiseEvaluationError("no method " + instr.Name + " on " + string(inst.ModuleID) + " and no messageNotUnderstood")
	}
	strModID, err := ev.wellKnown(ids.FQNString)
	if err != nil {
		return err
	}
	msgInst := ev.table.String(strModID, instr.Name)
	listModID, err := ev.wellKnown(ids.FQNList)
	if err != nil {
		return err
	}
	argsListID := ev.table.NewID()
	ev.table.Put(&adt.Instance{ID: argsListID, ModuleID: listModID, Context: adt.NewContext(nil), Inner: adt.InnerList, Refs: args})
	return ev.invoke(mnuModID, mnu, recv, []ast.ID{msgInst.ID, argsListID})
}

// invoke runs method against recv with args already evaluated: natives run
// inline against the calling frame's operand stack (they Push their own
// result); user methods get a fresh Frame pushed, parented on recv's own
// Context, since an Instance is a Context plus a module reference, so
// plain-name field access resolves through it.
func (ev *Evaluation) invoke(definingModuleID ast.ID, method *ast.Method, recv ast.ID, args []ast.ID) error {
	if method.Native {
		fqn, ok := ev.env.FQN(definingModuleID)
		if !ok {
			return fault("native method %s has no enclosing FQN", method.Name)
		}
		key := fqn + "." + method.Name
		native, ok := ev.config.Natives[key]
		if !ok {
			return fault("no native registered for %s", key)
		}
		native(ev, recv, args)
		return nil
	}

	bound, err := bindParams(ev, method.Params, args)
	if err != nil {
		return err
	}
	inst, ok := ev.table.Get(recv)
	if !ok {
		return fault("invoke: unknown receiver %s", recv)
	}
	base := adt.NewContext(inst.Context)
	base.Bind("self", recv)
	for name, val := range bound {
		base.Bind(name, val)
	}
	frame := NewFrame(ev.compiler.Compile(method), base, ev.config.MaxOperandStackSize)
	return ev.pushFrame(frame)
}

// bindParams binds method's fixed parameters positionally; if the last
// parameter is variadic, the remaining trailing args are bundled into a
// fresh wollok.lang.List instance bound to that parameter's name.
func bindParams(ev *Evaluation, params []*ast.Parameter, args []ast.ID) (map[string]ast.ID, error) {
	out := map[string]ast.ID{}
	if len(params) == 0 {
		return out, nil
	}
	last := params[len(params)-1]
	if last.Variadic {
		fixed := params[:len(params)-1]
		if len(args) < len(fixed) {
			return nil, fault("arity mismatch binding variadic parameters")
		}
		for i, p := range fixed {
			out[p.Name] = args[i]
		}
		rest := append([]ast.ID(nil), args[len(fixed):]...)
		listModID, err := ev.wellKnown(ids.FQNList)
		if err != nil {
			return nil, err
		}
		listID := ev.table.NewID()
		ev.table.Put(&adt.Instance{ID: listID, ModuleID: listModID, Context: adt.NewContext(nil), Inner: adt.InnerList, Refs: rest})
		out[last.Name] = listID
		return out, nil
	}
	if len(args) != len(params) {
		return nil, fault("arity mismatch binding parameters")
	}
	for i, p := range params {
		out[p.Name] = args[i]
	}
	return out, nil
}

// invokeClosure runs cl's body against args, parented on recv's captured
// enclosing context (not the call site's), per closure capture semantics.
func (ev *Evaluation) invokeClosure(cl *ast.Closure, recv ast.ID, args []ast.ID) error {
	bound, err := bindClosureParams(ev, cl, args)
	if err != nil {
		return err
	}
	inst, ok := ev.table.Get(recv)
	if !ok {
		return fault("invokeClosure: unknown receiver %s", recv)
	}
	base := adt.NewContext(inst.Context)
	base.Bind("self", recv)
	for name, val := range bound {
		base.Bind(name, val)
	}
	frame := NewFrame(ev.compiler.Compile(cl), base, ev.config.MaxOperandStackSize)
	return ev.pushFrame(frame)
}

// bindClosureParams mirrors bindParams, but a Closure's variadic flag lives
// on the Closure itself (ast.Closure.Variadic) rather than on its last
// Parameter. Unlike CALL, nothing upstream of invokeClosure checks arity
// first, so a mismatch here is a genuine user-reachable error.
func bindClosureParams(ev *Evaluation, cl *ast.Closure, args []ast.ID) (map[string]ast.ID, error) {
	params := cl.Params
	out := map[string]ast.ID{}
	if cl.Variadic && len(params) > 0 {
		fixed := params[:len(params)-1]
		if len(args) < len(fixed) {
			return nil, ev.raiseEvaluationError("closure arity mismatch")
		}
		for i, p := range fixed {
			out[p.Name] = args[i]
		}
		rest := append([]ast.ID(nil), args[len(fixed):]...)
		listModID, err := ev.wellKnown(ids.FQNList)
		if err != nil {
			return nil, err
		}
		listID := ev.table.NewID()
		ev.table.Put(&adt.Instance{ID: listID, ModuleID: listModID, Context: adt.NewContext(nil), Inner: adt.InnerList, Refs: rest})
		out[params[len(params)-1].Name] = listID
		return out, nil
	}
	if len(args) != len(params) {
		return nil, ev.raiseEvaluationError("closure arity mismatch")
	}
	for i, p := range params {
		out[p.Name] = args[i]
	}
	return out, nil
}

func (ev *Evaluation) execInit(f *Frame, instr compile.Instruction) error {
	args, err := f.popN(instr.Arity)
	if err != nil {
		return err
	}
	recv, err := f.pop()
	if err != nil {
		return err
	}
	inst, ok := ev.table.Get(recv)
	if !ok {
		return fault("INIT: unknown instance %s", recv)
	}

	hasStart := instr.HasLookupStartID
	startID := instr.LookupStartID
	if !hasStart {
		hasStart, startID = true, inst.ModuleID
	}
	modID, ctor, found := resolveConstructor(ev.env, inst.ModuleID, hasStart, startID, len(args))
	if !found {
		if instr.Optional {
			return f.push(recv)
		}
		return ev.raiseEvaluationError("no constructor with arity " + strconv.Itoa(len(args)))
	}
	_ = modID

	bound, err := bindConstructorParams(ctor.Params, args)
	if err != nil {
		return err
	}
	base := adt.NewContext(inst.Context)
	base.Bind("self", recv)
	for name, val := range bound {
		base.Bind(name, val)
	}
	cframe := NewFrame(ev.compiler.Compile(ctor), base, ev.config.MaxOperandStackSize)
	if _, err := ev.runFrame(cframe); err != nil {
		return err
	}
	return f.push(recv)
}

func bindConstructorParams(params []*ast.Parameter, args []ast.ID) (map[string]ast.ID, error) {
	if len(params) != len(args) {
		return nil, fault("constructor arity mismatch")
	}
	out := map[string]ast.ID{}
	for i, p := range params {
		out[p.Name] = args[i]
	}
	return out, nil
}
