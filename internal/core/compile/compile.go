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
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

// Compiler lowers linked nodes into Instructions, memoizing by node Id so a
// body shared across dispatch sites is only ever lowered once.
type Compiler struct {
	env   *link.Environment
	cache map[ast.ID]Instructions
}

func New(env *link.Environment) *Compiler {
	return &Compiler{env: env, cache: map[ast.ID]Instructions{}}
}

// frame tracks the lexical context the compiler needs to lower Self/Super
// correctly: the message name currently being compiled (for Super) and the
// enclosing module (for Super's lookup start and implicit supercalls).
type frame struct {
	methodName string
	moduleID   ast.ID
}

// Compile lowers a Method, Constructor, Program, Test, or Closure into its
// Instructions, from cache if already compiled.
func (c *Compiler) Compile(n ast.Node) Instructions {
	if cached, ok := c.cache[n.NodeID()]; ok {
		return cached
	}
	b := &builder{}
	switch v := n.(type) {
	case *ast.Method:
		fr := frame{methodName: v.Name, moduleID: enclosingModuleID(v)}
		c.compileExprClause(b, v.Body, fr)
		b.emit(Instruction{Op: RETURN})
	case *ast.Constructor:
		fr := frame{methodName: "constructor", moduleID: enclosingModuleID(v)}
		c.compileConstructor(b, v, fr)
	case *ast.Program:
		fr := frame{moduleID: enclosingModuleID(v)}
		c.compileStatements(b, bodySentences(v.Body), fr)
		c.pushUndef(b)
		b.emit(Instruction{Op: RETURN})
	case *ast.Test:
		fr := frame{moduleID: enclosingModuleID(v)}
		c.compileStatements(b, bodySentences(v.Body), fr)
		c.pushUndef(b)
		b.emit(Instruction{Op: RETURN})
	case *ast.Closure:
		fr := frame{methodName: "apply", moduleID: ""}
		c.compileExprClause(b, v.Body, fr)
		b.emit(Instruction{Op: RETURN})
	default:
		// Compile-time assertion: a node kind the compiler does
		// not know how to produce a callable body for.
		panic("compile: unsupported top-level node kind " + n.NodeKind().String())
	}
	result := Instructions(b.instr)
	c.cache[n.NodeID()] = result
	return result
}

func bodySentences(b *ast.Body) []ast.Node {
	if b == nil {
		return nil
	}
	return b.Sentences
}

// compileConstructor lowers the implicit-or-explicit supercall followed by
// the constructor's own body. Constructors never leave a value on the
// caller's stack beyond the implicit undefined RETURN.
func (c *Compiler) compileConstructor(b *builder, v *ast.Constructor, fr frame) {
	superID, hasSuper := superclassOf(fr.moduleID, c.env)
	b.emit(Instruction{Op: LOAD, Name: "self"})
	for _, a := range v.SuperArgs {
		c.compileExpr(b, a, fr)
	}
	init := Instruction{Op: INIT, Arity: len(v.SuperArgs), Optional: true}
	if hasSuper {
		init.HasLookupStartID, init.LookupStartID = true, superID
	}
	b.emit(init)
	c.compileStatements(b, bodySentences(v.Body), fr)
	c.pushUndef(b)
	b.emit(Instruction{Op: RETURN})
}

// compileStatements compiles a sequence of statements in "discard all
// results" mode: every sentence's value, including the last, is popped.
func (c *Compiler) compileStatements(b *builder, sentences []ast.Node, fr frame) {
	for _, s := range sentences {
		c.compileExpr(b, s, fr)
		b.emit(Instruction{Op: POP})
	}
}

// compileExprClause compiles a Body as an expression-clause: every
// sentence but the last is popped; the last sentence's value is left on
// the stack, or PUSH undefined if the body is empty.
func (c *Compiler) compileExprClause(b *builder, body *ast.Body, fr frame) {
	sentences := bodySentences(body)
	if len(sentences) == 0 {
		c.pushUndef(b)
		return
	}
	for _, s := range sentences[:len(sentences)-1] {
		c.compileExpr(b, s, fr)
		b.emit(Instruction{Op: POP})
	}
	c.compileExpr(b, sentences[len(sentences)-1], fr)
}

func (c *Compiler) pushUndef(b *builder) {
	b.emit(Instruction{Op: PUSH, HasID: false})
}

type builder struct {
	instr Instructions
}

func (b *builder) emit(i Instruction) int {
	b.instr = append(b.instr, i)
	return len(b.instr) - 1
}

func (b *builder) pos() int { return len(b.instr) }

func enclosingModuleID(n ast.Node) ast.ID {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch cur.(type) {
		case *ast.Class, *ast.Mixin, *ast.Singleton:
			return cur.NodeID()
		}
	}
	return ""
}

func superclassOf(moduleID ast.ID, env *link.Environment) (ast.ID, bool) {
	node, ok := env.Node(moduleID)
	if !ok {
		return "", false
	}
	mod, ok := node.(ast.Module)
	if !ok {
		return "", false
	}
	sup := mod.SuperRef()
	if sup == nil || sup.TargetID == "" {
		if objID, ok := env.NodeByFQN(ids.FQNObject); ok && objID.NodeID() != moduleID {
			return objID.NodeID(), true
		}
		return "", false
	}
	return sup.TargetID, true
}
