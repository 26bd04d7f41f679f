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

package ast

// Module is implemented by the three node kinds that participate in
// linearization: Class, Mixin, Singleton. The linker consults it to
// build the hierarchy order; it never mutates through this interface.
type Module interface {
	Node
	ModuleName() string
	SuperRef() *Reference
	MixinRefs() []*Reference
	Members() []Node
}

// Package is a namespace node; merges by name, bottom-up.
type Package struct {
	Base
	Name  string
	Files []Node // Package/Class/Mixin/Singleton/Program/Test/Describe/Import/Variable
}

func (n *Package) Children() []Node { return n.Files }

// Class has a single optional superclass and zero or more mixins.
type Class struct {
	Base
	Name   string
	Super  *Reference // nil => implicitly wollok.lang.Object
	Mixins []*Reference
	Fields []Node // *Field
	Ctors  []Node // *Constructor
	Meths  []Node // *Method
}

func (n *Class) ModuleName() string    { return n.Name }
func (n *Class) SuperRef() *Reference  { return n.Super }
func (n *Class) MixinRefs() []*Reference { return n.Mixins }
func (n *Class) Members() []Node {
	out := make([]Node, 0, len(n.Fields)+len(n.Ctors)+len(n.Meths))
	out = append(out, n.Fields...)
	out = append(out, n.Ctors...)
	out = append(out, n.Meths...)
	return out
}
func (n *Class) Children() []Node {
	out := []Node{}
	if n.Super != nil {
		out = append(out, n.Super)
	}
	for _, m := range n.Mixins {
		out = append(out, m)
	}
	return append(out, n.Members()...)
}

// Mixin composes into classes via linearization; has no superclass of its
// own but may itself mix in other mixins.
type Mixin struct {
	Base
	Name   string
	Mixins []*Reference
	Fields []Node
	Meths  []Node
}

func (n *Mixin) ModuleName() string      { return n.Name }
func (n *Mixin) SuperRef() *Reference    { return nil }
func (n *Mixin) MixinRefs() []*Reference { return n.Mixins }
func (n *Mixin) Members() []Node {
	out := make([]Node, 0, len(n.Fields)+len(n.Meths))
	out = append(out, n.Fields...)
	out = append(out, n.Meths...)
	return out
}
func (n *Mixin) Children() []Node {
	out := []Node{}
	for _, m := range n.Mixins {
		out = append(out, m)
	}
	return append(out, n.Members()...)
}

// Singleton is a named ("object X") or unnamed (literal) object: exactly one
// instance is interned at evaluation construction if Name != "".
type Singleton struct {
	Base
	Name      string // "" for an unnamed literal singleton
	Super     *Reference
	SuperArgs []Node // *NamedArgument, evaluated against the supercall
	Mixins    []*Reference
	Fields    []Node
	Meths     []Node
}

func (n *Singleton) ModuleName() string      { return n.Name }
func (n *Singleton) SuperRef() *Reference    { return n.Super }
func (n *Singleton) MixinRefs() []*Reference { return n.Mixins }
func (n *Singleton) Members() []Node {
	out := make([]Node, 0, len(n.Fields)+len(n.Meths))
	out = append(out, n.Fields...)
	out = append(out, n.Meths...)
	return out
}
func (n *Singleton) Children() []Node {
	out := []Node{}
	if n.Super != nil {
		out = append(out, n.Super)
	}
	for _, m := range n.Mixins {
		out = append(out, m)
	}
	out = append(out, n.SuperArgs...)
	return append(out, n.Members()...)
}

// Method: Native == true means the body is looked up in the native table
// (Body is then nil).
// The last Parameter may be Variadic.
type Method struct {
	Base
	Name   string
	Params []*Parameter
	Body   *Body
	Native bool
}

func (n *Method) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// Constructor: SuperArgs feed the implicit supercall emitted by INIT, as
// positional arguments; nil SuperArgs means "no explicit super(...) call".
type Constructor struct {
	Base
	Params    []*Parameter
	SuperArgs []Node // plain expressions; the compiler does not accept *NamedArgument here
	Body      *Body
}

func (n *Constructor) Children() []Node {
	out := make([]Node, 0, len(n.Params)+len(n.SuperArgs)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	out = append(out, n.SuperArgs...)
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

// Field is a module-level slot; Value is its initializer expression
// (optional, a nil Value compiles to an implicit null initializer).
type Field struct {
	Base
	Name  string
	Value Node
	IsVar bool
}

func (n *Field) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// Variable is a local `var`/`const` declaration.
type Variable struct {
	Base
	Name  string
	Value Node
	IsVar bool
}

func (n *Variable) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// Parameter is a method/closure formal; the last one in a list may be
// Variadic ("...").
type Parameter struct {
	Base
	Name     string
	Variadic bool
}

func (n *Parameter) Children() []Node { return nil }

// Body is a sequence of sentences (statements/expressions).
type Body struct {
	Base
	Sentences []Node
}

func (n *Body) Children() []Node { return n.Sentences }

// Reference carries a symbolic name; after linking, TargetID names the
// resolved definition.
type Reference struct {
	Base
	Name     string
	TargetID ID
}

func (n *Reference) Children() []Node { return nil }

// LiteralKind discriminates the primitive shapes a Literal may hold.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralBool
	LiteralNumber
	LiteralString
	LiteralSingleton // object literal (closures are their own Closure node)
)

// Literal holds an interned primitive, or (for LiteralSingleton) an inline
// anonymous Singleton node.
type Literal struct {
	Base
	LKind     LiteralKind
	BoolVal   bool
	NumberVal string // decimal source text, precision applied at intern time
	StringVal string
	Object    *Singleton
}

func (n *Literal) Children() []Node {
	if n.LKind == LiteralSingleton && n.Object != nil {
		return []Node{n.Object}
	}
	return nil
}

// Send is a message send: receiver.message(args...).
type Send struct {
	Base
	Receiver Node
	Message  string
	Args     []Node
}

func (n *Send) Children() []Node {
	out := make([]Node, 0, len(n.Args)+1)
	if n.Receiver != nil {
		out = append(out, n.Receiver)
	}
	return append(out, n.Args...)
}

// Super is a supercall inside an overriding method body (distinct from a
// constructor's implicit supercall, which lives on Constructor.SuperArgs).
type Super struct {
	Base
	Args []Node
}

func (n *Super) Children() []Node { return n.Args }

// Self references the receiver of the enclosing method/constructor.
type Self struct {
	Base
}

func (n *Self) Children() []Node { return nil }

// New instantiates a class, optionally with named arguments.
type New struct {
	Base
	ClassRef *Reference
	Args     []Node // *NamedArgument when Named, plain expressions otherwise
	Named    bool
}

func (n *New) Children() []Node {
	out := make([]Node, 0, len(n.Args)+1)
	if n.ClassRef != nil {
		out = append(out, n.ClassRef)
	}
	return append(out, n.Args...)
}

// Assignment stores Value into the variable/field Ref names.
type Assignment struct {
	Base
	Ref   *Reference
	Value Node
}

func (n *Assignment) Children() []Node {
	out := []Node{}
	if n.Ref != nil {
		out = append(out, n.Ref)
	}
	if n.Value != nil {
		out = append(out, n.Value)
	}
	return out
}

// Return exits the enclosing method/closure with an optional value.
type Return struct {
	Base
	Value Node // nil => returns undefined (null)
}

func (n *Return) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

// If is the only conditional form; Else may be an empty Body (never nil).
type If struct {
	Base
	Cond Node
	Then *Body
	Else *Body
}

func (n *If) Children() []Node {
	out := []Node{n.Cond}
	if n.Then != nil {
		out = append(out, n.Then)
	}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

// Try/Catch/Throw implement exception handling.
type Try struct {
	Base
	Body    *Body
	Catches []*Catch
	Always  *Body // nil => no always block
}

func (n *Try) Children() []Node {
	out := []Node{}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	for _, c := range n.Catches {
		out = append(out, c)
	}
	if n.Always != nil {
		out = append(out, n.Always)
	}
	return out
}

type Catch struct {
	Base
	Parameter     *Parameter
	ExceptionType *Reference // nil => catches wollok.lang.Exception
	Body          *Body
}

func (n *Catch) Children() []Node {
	out := []Node{}
	if n.Parameter != nil {
		out = append(out, n.Parameter)
	}
	if n.ExceptionType != nil {
		out = append(out, n.ExceptionType)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

type Throw struct {
	Base
	Value Node
}

func (n *Throw) Children() []Node { return []Node{n.Value} }

// Program is a top-level runnable entry point.
type Program struct {
	Base
	Name string
	Body *Body
}

func (n *Program) Children() []Node {
	if n.Body == nil {
		return nil
	}
	return []Node{n.Body}
}

// Test is a single assertion block, optionally grouped under a Describe.
type Test struct {
	Base
	Name string
	Body *Body
}

func (n *Test) Children() []Node {
	if n.Body == nil {
		return nil
	}
	return []Node{n.Body}
}

// Describe groups Tests and may itself declare Fields shared across them.
type Describe struct {
	Base
	Name   string
	Fields []Node
	Tests  []Node // *Test
}

func (n *Describe) Children() []Node {
	out := make([]Node, 0, len(n.Fields)+len(n.Tests))
	out = append(out, n.Fields...)
	out = append(out, n.Tests...)
	return out
}

// Import resolves to either every public member of a package (Name == "")
// or a single named member.
type Import struct {
	Base
	PackagePath string
	Name        string // "" => wildcard `import pkg.*`
}

func (n *Import) Children() []Node { return nil }

// ParameterizedType names a generic instantiation such as `List<String>`;
// the core treats the type arguments as unchecked decoration (no type
// inference) but keeps them for the pretty-printer.
type ParameterizedType struct {
	Base
	Name string
	Args []Node // *Reference/*ParameterizedType
}

func (n *ParameterizedType) Children() []Node { return n.Args }

// NamedArgument is `name = value` inside a New/Literal-Singleton supercall.
type NamedArgument struct {
	Base
	Name  string
	Value Node
}

func (n *NamedArgument) Children() []Node { return []Node{n.Value} }

// Closure behaves like an unnamed Singleton with a single `apply` method,
// but neither the linker nor the compiler desugars it: the compiler emits
// an INSTANTIATE of the Closure node itself and the VM special-cases
// `apply` on the resulting instance. Closures participate in ordinary
// scope resolution as their own lexical level.
type Closure struct {
	Base
	Params   []*Parameter
	Body     *Body
	Variadic bool // true if the last Param is variadic
}

func (n *Closure) Children() []Node {
	out := make([]Node, 0, len(n.Params)+1)
	for _, p := range n.Params {
		out = append(out, p)
	}
	if n.Body != nil {
		out = append(out, n.Body)
	}
	return out
}

func (n *Package) NodeKind() Kind           { return KindPackage }
func (n *Class) NodeKind() Kind             { return KindClass }
func (n *Mixin) NodeKind() Kind             { return KindMixin }
func (n *Singleton) NodeKind() Kind         { return KindSingleton }
func (n *Method) NodeKind() Kind            { return KindMethod }
func (n *Constructor) NodeKind() Kind       { return KindConstructor }
func (n *Field) NodeKind() Kind             { return KindField }
func (n *Variable) NodeKind() Kind          { return KindVariable }
func (n *Parameter) NodeKind() Kind         { return KindParameter }
func (n *Body) NodeKind() Kind              { return KindBody }
func (n *Reference) NodeKind() Kind         { return KindReference }
func (n *Literal) NodeKind() Kind           { return KindLiteral }
func (n *Send) NodeKind() Kind              { return KindSend }
func (n *Super) NodeKind() Kind             { return KindSuper }
func (n *Self) NodeKind() Kind              { return KindSelf }
func (n *New) NodeKind() Kind               { return KindNew }
func (n *Assignment) NodeKind() Kind        { return KindAssignment }
func (n *Return) NodeKind() Kind            { return KindReturn }
func (n *If) NodeKind() Kind                { return KindIf }
func (n *Try) NodeKind() Kind               { return KindTry }
func (n *Catch) NodeKind() Kind             { return KindCatch }
func (n *Throw) NodeKind() Kind             { return KindThrow }
func (n *Program) NodeKind() Kind           { return KindProgram }
func (n *Test) NodeKind() Kind              { return KindTest }
func (n *Describe) NodeKind() Kind          { return KindDescribe }
func (n *Import) NodeKind() Kind            { return KindImport }
func (n *ParameterizedType) NodeKind() Kind { return KindParameterizedType }
func (n *NamedArgument) NodeKind() Kind     { return KindNamedArgument }
func (n *Closure) NodeKind() Kind           { return KindClosure }
