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

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// CompileExpr lowers a single, stand-alone expression, a field initializer
// or a package-level constant's initializer, into a callable body that
// leaves exactly one value on the stack before RETURNing it. Used by
// internal/core/eval for lazy globals and field initialization.
func (c *Compiler) CompileExpr(n ast.Node) Instructions {
	if cached, ok := c.cache[n.NodeID()]; ok {
		return cached
	}
	b := &builder{}
	fr := frame{moduleID: enclosingModuleID(n)}
	c.compileExpr(b, n, fr)
	b.emit(Instruction{Op: RETURN})
	result := Instructions(b.instr)
	c.cache[n.NodeID()] = result
	return result
}

// CompileSingletonInit lowers a named singleton's self-initialization
// sequence, its supercall and field initialization, run once by the
// VM's bootstrap frame: the bootstrap frame runs the INIT sequence for
// every named singleton so they self-initialize.
func (c *Compiler) CompileSingletonInit(s *ast.Singleton) Instructions {
	if cached, ok := c.cache[s.NodeID()]; ok {
		return cached
	}
	b := &builder{}
	fr := frame{moduleID: s.NodeID()}
	c.compileInstantiate(b, s.NodeID(), s.SuperArgs, true, fr)
	b.emit(Instruction{Op: POP})
	result := Instructions(b.instr)
	c.cache[s.NodeID()] = result
	return result
}
