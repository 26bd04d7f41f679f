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

// Package ids holds the handful of Id constants that must mean the same
// thing to both internal/core/compile (which bakes them into PUSH
// instructions) and internal/core/eval (which seeds them into every fresh
// Evaluation's instance table). Splitting this out keeps compile from
// depending on the runtime packages just to agree on these ids.
package ids

import "github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"

// Fixed sentinel ids primed into every Evaluation's instance table before
// anything else runs: null, true, and false are singletons, so
// PUSH can reference them directly without running through INSTANTIATE's
// interning logic.
const (
	Null  ast.ID = "#null"
	True  ast.ID = "#true"
	False ast.ID = "#false"
)

// Well-known module fully-qualified names the VM depends on.
const (
	FQNObject          = "wollok.lang.Object"
	FQNBoolean         = "wollok.lang.Boolean"
	FQNNumber          = "wollok.lang.Number"
	FQNString          = "wollok.lang.String"
	FQNList            = "wollok.lang.List"
	FQNSet             = "wollok.lang.Set"
	FQNClosure         = "wollok.lang.Closure"
	FQNException       = "wollok.lang.Exception"
	FQNEvaluationError = "wollok.lang.EvaluationError"
	FQNStackOverflow   = "wollok.lang.StackOverflowException"
)
