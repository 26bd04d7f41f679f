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

// Package wollok is the embedder-facing entry point: link a set of parsed
// packages against the standard library, then construct a ready Evaluation
// to run them. A host program embeds the Linker, Compiler, and Virtual
// Machine behind this small Go API.
package wollok

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/eval"
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
	"github.com/NicolasKalaydjian/wollok-ts/internal/natives"
)

// Environment re-exports the linker's result type so callers never need to
// import internal/core/link directly.
type Environment = link.Environment

// Evaluation re-exports the VM's state type.
type Evaluation = eval.Evaluation

// Config re-exports the VM's tunable-parameters struct.
type Config = eval.Config

// TraceEvent re-exports the VM's ambient trace-hook payload.
type TraceEvent = eval.TraceEvent

// NativeTable re-exports the native-method dictionary type, for embedders
// who register their own natives alongside the standard library's.
type NativeTable = eval.NativeTable

// Uncaught re-exports the VM's fatal-to-the-embedder exception type: an
// exception that unwound past every frame without a handler.
type Uncaught = eval.Uncaught

// Fault re-exports the VM's host-level structural failure type:
// never catchable by Wollok code, and a sign the Evaluation must be
// discarded rather than continued.
type Fault = eval.Fault

// DefaultConfig re-exports the VM's default tunables.
func DefaultConfig(extra NativeTable) Config {
	return eval.DefaultConfig(extra)
}

// Link merges packages with the standard library (wollok.lang) into a
// single Environment. The stdlib tree is merged in the very
// same call as the caller's own packages, so it receives ids and scope the
// same way any user package does, never a special pre-linked Environment.
func Link(packages []*ast.Package) (*Environment, error) {
	pkgs := make([]*ast.Package, 0, len(packages)+1)
	pkgs = append(pkgs, packages...)
	pkgs = append(pkgs, natives.StdlibPackage())
	return link.Link(pkgs, nil)
}

// NewEvaluation builds a ready Evaluation against env (produced by Link),
// with the standard library's native bodies already registered
// and every other tunable at its default.
func NewEvaluation(env *Environment) (*Evaluation, error) {
	table, err := natives.New(env)
	if err != nil {
		return nil, err
	}
	return eval.New(env, table)
}

// NewEvaluationWithConfig is NewEvaluation, but lets the caller override
// the default tunables (decimal precision, stack sizes, Stdout, Trace),
// and register additional natives of their own. cfg.Natives, if non-nil,
// is merged over the standard library's own entries so a caller-supplied
// native with a colliding key wins.
func NewEvaluationWithConfig(env *Environment, cfg Config) (*Evaluation, error) {
	stdlib, err := natives.New(env)
	if err != nil {
		return nil, err
	}
	merged := make(NativeTable, len(stdlib)+len(cfg.Natives))
	for k, v := range stdlib {
		merged[k] = v
	}
	for k, v := range cfg.Natives {
		merged[k] = v
	}
	cfg.Natives = merged
	return eval.NewWithConfig(env, cfg)
}
