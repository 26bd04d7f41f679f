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

package link

import (
	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
	"github.com/NicolasKalaydjian/wollok-ts/internal/werrors"
)

// validateTree walks the merged tree looking for structurally invalid
// nodes that Children() silently tolerates (a nil Body is simply omitted
// from the slice, so a missing one never crashes a walk, it just produces
// a tree the rest of the linker can't make sense of). Reported as
// MalformedTree rather than stopping the merge, so it joins whatever
// UnresolvedReference/MergeConflict errors the same Link call accumulates.
func validateTree(n ast.Node, errs *werrors.List) {
	switch v := n.(type) {
	case *ast.Try:
		if v.Body == nil {
			errs.Add(werrors.MalformedTree("try statement with no body at " + v.SiteDescription()))
		}
		if len(v.Catches) == 0 && v.Always == nil {
			errs.Add(werrors.MalformedTree("try statement with neither a catch nor an always block at " + v.SiteDescription()))
		}
	case *ast.Catch:
		if v.Body == nil {
			errs.Add(werrors.MalformedTree("catch block with no body at " + v.SiteDescription()))
		}
	}
	for _, c := range n.Children() {
		validateTree(c, errs)
	}
}
