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

// Package ast defines the tagged-variant node tree shared by the linker,
// compiler and VM: every node carries an opaque Id, a parent
// back-reference, a lexical Scope, and an optional source map. The parser
// (out of scope) produces trees of these shapes; the linker
// (internal/core/link) is the only thing that assigns Ids, wires Parent,
// and populates Scope.
package ast

import "fmt"

// ID is an opaque, stable identifier assigned by the linker. Uniqueness
// across a single Environment is the only requirement.
type ID string

// Kind discriminates the tagged variant a Node holds.
type Kind int

const (
	KindPackage Kind = iota
	KindClass
	KindMixin
	KindSingleton
	KindMethod
	KindConstructor
	KindField
	KindVariable
	KindParameter
	KindBody
	KindReference
	KindLiteral
	KindSend
	KindSuper
	KindSelf
	KindNew
	KindAssignment
	KindReturn
	KindIf
	KindTry
	KindCatch
	KindThrow
	KindProgram
	KindTest
	KindDescribe
	KindImport
	KindParameterizedType
	KindNamedArgument
	KindClosure
)

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

var kindNames = [...]string{
	"Package", "Class", "Mixin", "Singleton", "Method", "Constructor",
	"Field", "Variable", "Parameter", "Body", "Reference", "Literal",
	"Send", "Super", "Self", "New", "Assignment", "Return", "If", "Try",
	"Catch", "Throw", "Program", "Test", "Describe", "Import",
	"ParameterizedType", "NamedArgument", "Closure",
}

// Node is the common interface every tagged variant satisfies. Identity,
// parentage, scope, and source position are carried by embedding Base;
// Children exposes the variant's payload generically so the linker can walk
// any node without a type switch for the structural passes (id assignment,
// parent wiring).
type Node interface {
	NodeID() ID
	NodeKind() Kind
	Parent() Node
	SetParent(Node)
	Scope() *Scope
	SetScope(*Scope)
	SourceMap() SourceMap
	Children() []Node
}

// Base is embedded by every concrete node type. NodeKind is implemented by
// each concrete type individually (not stored here) so a struct literal
// built by hand, as parser-less tests must do, can never forget to set
// it and end up with a mismatched tag.
type Base struct {
	ID     ID
	P      Node
	Sc     *Scope
	Source SourceMap
}

func (b *Base) NodeID() ID           { return b.ID }
func (b *Base) Parent() Node         { return b.P }
func (b *Base) SetParent(n Node)     { b.P = n }
func (b *Base) Scope() *Scope        { return b.Sc }
func (b *Base) SetScope(s *Scope)    { b.Sc = s }
func (b *Base) SourceMap() SourceMap { return b.Source }

// SiteDescription satisfies werrors.Site without internal/core/ast needing
// to import internal/werrors.
func (b *Base) SiteDescription() string {
	if !b.Source.Valid() {
		return string(b.ID)
	}
	return fmt.Sprintf("%d:%d", b.Source.Start.Line, b.Source.Start.Column)
}

