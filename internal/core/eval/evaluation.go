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

// Package eval is the Virtual Machine: a stack-based bytecode
// interpreter with a frame stack, operand stack, nested lexical contexts,
// exception unwinding, lazy global initialization, mixin-aware dynamic
// dispatch, garbage collection, and a native-method escape hatch.
package eval

import (
	"io"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/adt"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/compile"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

// Evaluation is the VM state: the environment, a root context
// holding globals, a bounded frame stack, an instance table, and a
// per-node code cache (carried by the embedded *compile.Compiler).
type Evaluation struct {
	env      *link.Environment
	compiler *compile.Compiler
	config   Config

	root   *adt.Context
	table  *adt.Table
	frames []*Frame

	// lastResult is set by every RETURN; it is only meaningful to read
	// immediately after a run loop (Step/StepAll/runFrame) brings the frame
	// stack back down to the depth it started at.
	lastResult ast.ID
}

// New constructs a ready Evaluation with DefaultConfig's tunables. Use
// NewWithConfig to override them.
func New(env *link.Environment, natives NativeTable) (*Evaluation, error) {
	return NewWithConfig(env, DefaultConfig(natives))
}

// NewWithConfig primes null/true/false, every named singleton, and every
// package-level constant (as a lazy initializer), then runs a bootstrap
// frame that self-initializes every named singleton; stepAll runs it, then
// the bootstrap frame is popped. After this the Evaluation is "ready".
func NewWithConfig(env *link.Environment, cfg Config) (*Evaluation, error) {
	ev := &Evaluation{
		env:      env,
		compiler: compile.New(env),
		config:   cfg,
		table:    adt.NewTableWithPrecision(cfg.DecimalPrecision),
		root:     adt.NewContext(nil),
	}

	if err := ev.primeSentinels(); err != nil {
		return nil, err
	}
	singletons := collectNamedSingletons(env.Root)
	for _, s := range singletons {
		ev.table.Put(adt.NewInstance(s.NodeID(), s.NodeID(), nil))
		if fqn, ok := env.FQN(s.NodeID()); ok {
			ev.root.Bind(fqn, s.NodeID())
		}
	}
	for _, v := range collectPackageVariables(env.Root) {
		fqn, ok := env.FQN(v.NodeID())
		if !ok {
			continue
		}
		lazyID := ev.table.NewID()
		ev.table.Put(&adt.Instance{ID: lazyID, Context: adt.NewContext(nil), Lazy: &adt.LazyInit{Expr: v.Value}})
		ev.root.Bind(fqn, lazyID)
	}

	if err := ev.bootstrap(singletons); err != nil {
		return nil, err
	}
	return ev, nil
}

func (ev *Evaluation) primeSentinels() error {
	objID, err := ev.wellKnown(ids.FQNObject)
	if err != nil {
		return err
	}
	boolID, err := ev.wellKnown(ids.FQNBoolean)
	if err != nil {
		return err
	}
	ev.table.Put(&adt.Instance{ID: ids.Null, ModuleID: objID, Context: adt.NewContext(nil)})
	ev.table.Put(&adt.Instance{ID: ids.True, ModuleID: boolID, Context: adt.NewContext(nil)})
	ev.table.Put(&adt.Instance{ID: ids.False, ModuleID: boolID, Context: adt.NewContext(nil)})
	return nil
}

func (ev *Evaluation) wellKnown(fqn string) (ast.ID, error) {
	n, ok := ev.env.NodeByFQN(fqn)
	if !ok {
		return "", fault("well-known module %q missing from Environment", fqn)
	}
	return n.NodeID(), nil
}

func (ev *Evaluation) bootstrap(singletons []*ast.Singleton) error {
	b := compile.Instructions{}
	for _, s := range singletons {
		b = append(b, ev.compiler.CompileSingletonInit(s)...)
	}
	b = append(b, compile.Instruction{Op: compile.PUSH})
	b = append(b, compile.Instruction{Op: compile.RETURN})

	frame := NewFrame(b, adt.NewContext(ev.root), ev.config.MaxOperandStackSize)
	_, err := ev.runFrame(frame)
	return err
}

func collectNamedSingletons(n ast.Node) []*ast.Singleton {
	var out []*ast.Singleton
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if s, ok := n.(*ast.Singleton); ok && s.Name != "" {
			out = append(out, s)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

func collectPackageVariables(n ast.Node) []*ast.Variable {
	var out []*ast.Variable
	pkg, ok := n.(*ast.Package)
	if !ok {
		return out
	}
	for _, f := range pkg.Files {
		switch v := f.(type) {
		case *ast.Variable:
			out = append(out, v)
		case *ast.Package:
			out = append(out, collectPackageVariables(v)...)
		}
	}
	return out
}

// Table exposes the instance table for natives and embedders that need to
// construct or inspect runtime values directly.
func (ev *Evaluation) Table() *adt.Table { return ev.table }

// Env exposes the linked Environment, for natives that need well-known
// module ids or FQN lookups.
func (ev *Evaluation) Env() *link.Environment { return ev.env }

// Stdout exposes the configured output writer, for the console.println
// native, the only place the VM's own output ever reaches an io.Writer.
func (ev *Evaluation) Stdout() io.Writer { return ev.config.stdout() }

// DebugInstance formats the instance behind id via adt.Instance.DebugString,
// for a Trace hook (or a failing test) that wants to render a TraceEvent's
// Instance/Receiver field as more than a bare id.
func (ev *Evaluation) DebugInstance(id ast.ID) string {
	inst, ok := ev.table.Get(id)
	if !ok {
		return string(id)
	}
	return inst.DebugString()
}

func (ev *Evaluation) pushFrame(f *Frame) error {
	if len(ev.frames) >= ev.config.MaxFrameStackSize {
		return ev.raiseStackOverflow()
	}
	ev.frames = append(ev.frames, f)
	ev.trace(TraceEvent{Kind: "frame_push"})
	return nil
}

// trace fires the ambient Trace hook, if configured. The VM never writes
// to an io.Writer itself except through the console.println native.
func (ev *Evaluation) trace(e TraceEvent) {
	if ev.config.Trace != nil {
		ev.config.Trace(e)
	}
}

func (ev *Evaluation) top() *Frame {
	if len(ev.frames) == 0 {
		return nil
	}
	return ev.frames[len(ev.frames)-1]
}

// Push pushes id onto the current frame's operand stack. Natives call this
// to leave their one required result value.
func (ev *Evaluation) Push(id ast.ID) error {
	f := ev.top()
	if f == nil {
		return fault("Push with no active frame")
	}
	return f.push(id)
}

// Step executes exactly one instruction of the top frame. An
// instruction that raises an exception still counts as one completed step,
// even though it may leave a different frame on top than the one Step was
// called with.
func (ev *Evaluation) Step() error {
	if err := ev.stepOne(); err != nil && err != errUnwound {
		return err
	}
	return nil
}

// StepAll loops Step until the frame that was on top when StepAll was
// called has finished, including everything it transitively
// called via CALL/INIT.
func (ev *Evaluation) StepAll() error {
	if len(ev.frames) == 0 {
		return nil
	}
	depth := len(ev.frames) - 1
	for len(ev.frames) > depth {
		err := ev.stepOne()
		if err == errUnwound {
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// runFrame pushes frame, runs it (and anything it transitively calls) to
// completion, and returns the value its RETURN left behind, without
// disturbing whatever frame was on top before the call. If an exception
// unwinds past frame entirely (to a handler further up, or out altogether),
// runFrame reports errUnwound (or the terminal *Uncaught) instead of a
// result, so its caller aborts rather than treating a stale lastResult as
// real.
func (ev *Evaluation) runFrame(frame *Frame) (ast.ID, error) {
	depth := len(ev.frames)
	if err := ev.pushFrame(frame); err != nil {
		return "", err
	}
	for len(ev.frames) > depth {
		err := ev.stepOne()
		if err == errUnwound {
			if len(ev.frames) <= depth {
				return "", errUnwound
			}
			continue
		}
		if err != nil {
			return "", err
		}
	}
	if len(ev.frames) < depth {
		return "", errUnwound
	}
	// RETURN also pushed the result onto the frame underneath; the caller
	// receives it as the return value instead, so drop that copy.
	if caller := ev.top(); caller != nil {
		if _, err := caller.pop(); err != nil {
			return "", err
		}
	}
	return ev.lastResult, nil
}

// Raise triggers the unwinding loop for instanceID, as if an INTERRUPT
// had just executed. Natives use this to signal a user-level exception
// instead of returning a value via Push.
func (ev *Evaluation) Raise(instanceID ast.ID) error {
	return ev.raise(instanceID)
}

// SendMessage pushes a synthesized frame that PUSHes receiver and args and
// CALLs msg, running until the frame stack returns to its pre-call depth.
func (ev *Evaluation) SendMessage(msg string, receiver ast.ID, args ...ast.ID) (ast.ID, error) {
	// This instruction slice is built fresh for this one call and never
	// cached or shared across Evaluations, so, unlike compile.Compile's
	// memoized output, it is safe to bake live runtime instance ids
	// straight into its PUSH operands.
	instr := compile.Instructions{
		{Op: compile.PUSH, SentinelID: receiver, HasID: true},
	}
	for _, a := range args {
		instr = append(instr, compile.Instruction{Op: compile.PUSH, SentinelID: a, HasID: true})
	}
	instr = append(instr, compile.Instruction{Op: compile.CALL, Name: msg, Arity: len(args)})
	instr = append(instr, compile.Instruction{Op: compile.RETURN})

	frame := NewFrame(instr, adt.NewContext(ev.root), ev.config.MaxOperandStackSize)
	return ev.runFrame(frame)
}
