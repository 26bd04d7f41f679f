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

package compile

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ids"
)

// compileExpr lowers a single expression or statement node, per the rules
// in . It always leaves exactly one value on the operand stack.
func (c *Compiler) compileExpr(b *builder, n ast.Node, fr frame) {
	switch v := n.(type) {
	case *ast.Variable:
		c.compileExpr(b, valueOrNull(v.Value), fr)
		b.emit(Instruction{Op: STORE, Name: v.Name, Lookup: false})
		c.pushUndef(b)

	case *ast.Return:
		c.compileExpr(b, valueOrNull(v.Value), fr)
		b.emit(Instruction{Op: RETURN})

	case *ast.Assignment:
		c.compileExpr(b, v.Value, fr)
		b.emit(Instruction{Op: STORE, Name: v.Ref.Name, Lookup: true})
		c.pushUndef(b)

	case *ast.Self:
		b.emit(Instruction{Op: LOAD, Name: "self"})

	case *ast.Reference:
		c.compileReference(b, v)

	case *ast.Literal:
		c.compileLiteral(b, v, fr)

	case *ast.Send:
		c.compileExpr(b, v.Receiver, fr)
		for _, a := range v.Args {
			c.compileExpr(b, a, fr)
		}
		b.emit(Instruction{Op: CALL, Name: v.Message, Arity: len(v.Args)})

	case *ast.Super:
		b.emit(Instruction{Op: LOAD, Name: "self"})
		for _, a := range v.Args {
			c.compileExpr(b, a, fr)
		}
		// lookupStart is the enclosing module: dispatch resumes the
		// linearization search immediately *after* it, so a supercall never
		// re-resolves back to the overriding method it was called from.
		call := Instruction{Op: CALL, Name: fr.methodName, Arity: len(v.Args)}
		if fr.moduleID != "" {
			call.HasLookupStartID, call.LookupStartID = true, fr.moduleID
		}
		b.emit(call)

	case *ast.New:
		c.compileInstantiate(b, v.ClassRef.TargetID, v.Args, v.Named, fr)

	case *ast.Closure:
		// The closure's own node id stands in for a module id here; eval's
		// INSTANTIATE resolves it to a *ast.Closure (not a Class/Singleton)
		// and captures the currently-executing frame's context as the new
		// instance's enclosing scope, fixed at creation time.
		b.emit(Instruction{Op: INSTANTIATE, ModuleID: v.NodeID()})

	case *ast.If:
		c.compileIf(b, v, fr)

	case *ast.Try:
		c.compileTry(b, v, fr)

	case *ast.Throw:
		c.compileExpr(b, v.Value, fr)
		b.emit(Instruction{Op: INTERRUPT})

	default:
		panic("compile: unsupported expression kind " + n.NodeKind().String())
	}
}

func valueOrNull(n ast.Node) ast.Node {
	if n != nil {
		return n
	}
	return &ast.Literal{LKind: ast.LiteralNull}
}

// compileReference implements: "LOAD r.fully-qualified-name if target is a
// Module or a package-level Variable; else LOAD r.name."
func (c *Compiler) compileReference(b *builder, ref *ast.Reference) {
	if target, ok := c.env.Node(ref.TargetID); ok {
		if _, isModule := target.(ast.Module); isModule {
			if fqn, ok := c.env.FQN(ref.TargetID); ok {
				b.emit(Instruction{Op: LOAD, Name: fqn})
				return
			}
		}
		if vr, ok := target.(*ast.Variable); ok {
			if _, topLevel := vr.Parent().(*ast.Package); topLevel {
				if fqn, ok := c.env.FQN(ref.TargetID); ok {
					b.emit(Instruction{Op: LOAD, Name: fqn})
					return
				}
			}
		}
	}
	b.emit(Instruction{Op: LOAD, Name: ref.Name})
}

func (c *Compiler) compileLiteral(b *builder, lit *ast.Literal, fr frame) {
	switch lit.LKind {
	case ast.LiteralNull:
		b.emit(Instruction{Op: PUSH, SentinelID: ids.Null, HasID: true})
	case ast.LiteralBool:
		id := ids.False
		if lit.BoolVal {
			id = ids.True
		}
		b.emit(Instruction{Op: PUSH, SentinelID: id, HasID: true})
	case ast.LiteralNumber:
		b.emit(Instruction{Op: INSTANTIATE, FQN: ids.FQNNumber, Inner: InnerNumber, Literal: lit.NumberVal})
	case ast.LiteralString:
		b.emit(Instruction{Op: INSTANTIATE, FQN: ids.FQNString, Inner: InnerString, Literal: lit.StringVal})
	case ast.LiteralSingleton:
		c.compileInstantiate(b, lit.Object.NodeID(), lit.Object.SuperArgs, true, fr)
	}
}

// compileInstantiate lowers both `New` and object-literal instantiation:
// compile the named-argument values, INSTANTIATE the module, zero/assign/
// run-initializers for every field via INIT_NAMED, then INIT the
// constructor chain. named controls whether args are *ast.NamedArgument
// (New with named args, or a Singleton's super-args) or plain positional
// expressions.
func (c *Compiler) compileInstantiate(b *builder, moduleID ast.ID, args []ast.Node, named bool, fr frame) {
	var names []string
	if named {
		for _, a := range args {
			na, ok := a.(*ast.NamedArgument)
			if !ok {
				continue
			}
			c.compileExpr(b, na.Value, fr)
			names = append(names, na.Name)
		}
	}

	b.emit(Instruction{Op: INSTANTIATE, ModuleID: moduleID})
	b.emit(Instruction{Op: INIT_NAMED, Names: names})

	// Positional args are compiled only now, after INIT_NAMED has popped and
	// re-pushed the instance alone, INIT expects [recv, args...] with the
	// args on top (the same shape compileConstructor's own supercall leaves),
	// not [args..., recv].
	positional := 0
	if !named {
		for _, a := range args {
			c.compileExpr(b, a, fr)
		}
		positional = len(args)
	}

	init := Instruction{
		Op: INIT, Arity: positional,
		HasLookupStartID: true, LookupStartID: moduleID,
		Optional: positional == 0,
	}
	b.emit(init)
}

func (c *Compiler) compileIf(b *builder, v *ast.If, fr frame) {
	c.compileExpr(b, v.Cond, fr)
	b.emit(Instruction{Op: PUSH_CONTEXT, Handler: -1})
	condJump := b.emit(Instruction{Op: CONDITIONAL_JUMP})
	// false branch (fallthrough)
	c.compileExprClause(b, v.Else, fr)
	elseJump := b.emit(Instruction{Op: JUMP})
	// true branch
	thenStart := b.pos()
	b.instr[condJump].Target = thenStart
	c.compileExprClause(b, v.Then, fr)
	endPos := b.pos()
	b.instr[elseJump].Target = endPos
	b.emit(Instruction{Op: POP_CONTEXT})
}

// compileTry lowers Try/Catch/Always to a prelude of <exception> and
// <result> locals, the body under a handler-bearing context, then each
// catch as an INHERITS test, then the always block unconditionally, with a
// re-raise if <exception> is still set once every catch has been tried.
func (c *Compiler) compileTry(b *builder, v *ast.Try, fr frame) {
	b.emit(Instruction{Op: PUSH, HasID: true, SentinelID: ids.False})
	b.emit(Instruction{Op: STORE, Name: "<exception>"})
	c.pushUndef(b)
	b.emit(Instruction{Op: STORE, Name: "<result>"})

	handlerFixup := b.emit(Instruction{Op: PUSH_CONTEXT})
	c.compileExprClause(b, v.Body, fr)
	b.emit(Instruction{Op: STORE, Name: "<result>", Lookup: true})
	b.emit(Instruction{Op: POP_CONTEXT})
	afterBodyJump := b.emit(Instruction{Op: JUMP})

	handlerPC := b.pos()
	b.instr[handlerFixup].Handler = handlerPC
	// Control arrives here via the VM's unwinding loop, which has
	// already popped the body's nested context and bound <exception>
	// directly in the now-current (prelude) context, no STORE needed.

	var catchEndJumps []int
	for _, catch := range v.Catches {
		b.emit(Instruction{Op: LOAD, Name: "<exception>"})
		excModuleID := exceptionTypeID(catch.ExceptionType, c)
		b.emit(Instruction{Op: INHERITS, ModuleID: excModuleID})
		skipJump := b.emit(Instruction{Op: CONDITIONAL_JUMP})
		afterSkip := b.emit(Instruction{Op: JUMP})
		b.instr[skipJump].Target = b.pos()

		b.emit(Instruction{Op: PUSH_CONTEXT, Handler: -1})
		if catch.Parameter != nil {
			b.emit(Instruction{Op: LOAD, Name: "<exception>"})
			b.emit(Instruction{Op: STORE, Name: catch.Parameter.Name})
		}
		c.compileExprClause(b, catch.Body, fr)
		b.emit(Instruction{Op: STORE, Name: "<result>", Lookup: true})
		b.emit(Instruction{Op: POP_CONTEXT})
		b.emit(Instruction{Op: PUSH, HasID: true, SentinelID: ids.False})
		b.emit(Instruction{Op: STORE, Name: "<exception>", Lookup: true})
		catchEndJumps = append(catchEndJumps, b.emit(Instruction{Op: JUMP}))

		b.instr[afterSkip].Target = b.pos()
	}
	for _, j := range catchEndJumps {
		b.instr[j].Target = b.pos()
	}

	b.instr[afterBodyJump].Target = b.pos()

	if v.Always != nil {
		c.compileStatements(b, bodySentences(v.Always), fr)
	}

	b.emit(Instruction{Op: LOAD, Name: "<exception>"})
	b.emit(Instruction{Op: INHERITS, ModuleID: exceptionTypeID(nil, c)})
	reraiseSkip := b.emit(Instruction{Op: CONDITIONAL_JUMP})
	afterReraiseJump := b.emit(Instruction{Op: JUMP})
	b.instr[reraiseSkip].Target = b.pos()
	b.emit(Instruction{Op: LOAD, Name: "<exception>"})
	b.emit(Instruction{Op: INTERRUPT})
	b.instr[afterReraiseJump].Target = b.pos()

	b.emit(Instruction{Op: LOAD, Name: "<result>"})
}

func exceptionTypeID(ref *ast.Reference, c *Compiler) ast.ID {
	if ref != nil && ref.TargetID != "" {
		return ref.TargetID
	}
	if n, ok := c.env.NodeByFQN(ids.FQNException); ok {
		return n.NodeID()
	}
	return ""
}
