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

// Package natives implements the native-method calling contract: a
// minimal set of Go bodies for wollok.lang's well-known classes, plus the
// hand-built wollok.lang package tree those bodies attach to (no parser
// exists in this module, so the tree is built directly as ast nodes rather
// than parsed from source text).
package natives

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/link"
)

// New resolves every well-known module this package's bodies depend on and
// returns the populated native dictionary an Evaluation's Config.Natives
// expects. env must already include the tree returned by
// StdlibPackage, merged in the same link.Link call as the caller's own
// packages.
func New(env *link.Environment) (Table, error) {
	wk, err := resolveWellKnown(env)
	if err != nil {
		return nil, err
	}
	t := Table{}
	addObjectNatives(t, wk)
	addBooleanNatives(t, wk)
	addNumberNatives(t, wk)
	addStringNatives(t, wk)
	addCollectionNatives(t, wk)
	addExceptionNatives(t, wk)
	addConsoleNatives(t, wk)
	return t, nil
}
