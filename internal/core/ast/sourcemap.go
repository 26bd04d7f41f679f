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

// SourceOffset is a single point in source text. It is opaque to the core:
// the linker, compiler, and VM carry it through but never inspect its
// fields. The parser (out of scope) is the only producer.
type SourceOffset struct {
	Offset int
	Line   int
	Column int
}

// SourceMap is the optional {start, end} pair every Node may carry, by
// contract with the parser. A zero SourceMap means "no position available".
type SourceMap struct {
	Start SourceOffset
	End   SourceOffset
}

// Valid reports whether m carries real position information.
func (m SourceMap) Valid() bool {
	return m.Start.Line > 0
}
