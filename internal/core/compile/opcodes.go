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

// Package compile lowers a linked method/constructor/initializer/program
// body into a linear Instructions sequence for the stack machine, per spec
//  Compile is memoized per ast.ID so a method shared by many call
// sites is lowered once per Compiler.
package compile

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// Opcode is one of the 17 instructions of 
type Opcode byte

const (
	LOAD Opcode = iota
	STORE
	PUSH
	POP
	PUSH_CONTEXT
	POP_CONTEXT
	SWAP
	DUP
	INSTANTIATE
	INHERITS
	JUMP
	CONDITIONAL_JUMP
	CALL
	INIT
	INIT_NAMED
	INTERRUPT
	RETURN
)

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "UNKNOWN"
}

var opcodeNames = [...]string{
	"LOAD", "STORE", "PUSH", "POP", "PUSH_CONTEXT", "POP_CONTEXT", "SWAP",
	"DUP", "INSTANTIATE", "INHERITS", "JUMP", "CONDITIONAL_JUMP", "CALL",
	"INIT", "INIT_NAMED", "INTERRUPT", "RETURN",
}

// InnerKind discriminates the runtime inner-value shape an INSTANTIATE
// produces.
type InnerKind int

const (
	InnerNone InnerKind = iota
	InnerString
	InnerNumber
	InnerList
	InnerSet
)

// Instruction is a single bytecode operation plus whichever operands its
// Opcode uses; see the field comments for which Opcode reads which field.
type Instruction struct {
	Op Opcode

	// LOAD/STORE: local/field name, looked up by name through the current
	// Context chain (not by id, the same compiled body runs against many
	// instances, each with its own field values under the same names).
	Name string
	// STORE: true => assign in the nearest context that already binds
	// Name; false => bind Name fresh in the current context.
	Lookup bool

	// PUSH: a fixed, cross-Evaluation-stable sentinel id (null/true/false),
	// or empty for "undefined".
	SentinelID ast.ID
	HasID      bool

	// PUSH_CONTEXT: absolute instruction index of the exception handler,
	// or -1 for none.
	Handler int

	// SWAP: depth n (swap top with the element n+1 deep).
	Depth int

	// INSTANTIATE: ModuleID names a user Class/Singleton to instantiate
	// (resolved at compile time); FQN names a well-known primitive class
	// instead (mutually exclusive with ModuleID). Inner/Literal carry a
	// primitive's source-text payload.
	ModuleID ast.ID
	FQN      string
	Inner    InnerKind
	Literal  string

	// JUMP/CONDITIONAL_JUMP: absolute instruction index to jump to.
	Target int

	// CALL/INIT: message/constructor arity.
	Arity int
	// CALL: true for Super dispatch, start the linearization search
	// immediately after LookupStartID in the receiver's own hierarchy,
	// instead of at the receiver's concrete module.
	LookupStartID    ast.ID
	HasLookupStartID bool
	// INIT: true => silently skip if no constructor of this arity exists
	// (used for the implicit super() call to classes with no declared
	// constructors).
	Optional bool

	// INIT_NAMED: field names being assigned, popped off the stack in this
	// order (so the first name listed is the deepest/first-pushed value).
	Names []string
}

// Instructions is the compiled, immutable body of one method, constructor,
// initializer, Program, or Test.
type Instructions []Instruction
