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

package eval

import (
	"fmt"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
)

// Fault is a host-level structural failure: a corrupted frame stack, a
// missing well-known class, an unresolvable name. Unlike an Uncaught
// exception, a Fault can never be caught by user code; it means this
// Evaluation must be discarded.
type Fault struct {
	msg string
}

func (f *Fault) Error() string { return f.msg }

func fault(format string, args ...any) error {
	return &Fault{msg: fmt.Sprintf("eval: %s", fmt.Sprintf(format, args...))}
}

// Uncaught is a user-level exception that unwound past every frame without
// finding a handler: once the frame stack empties, the exception is fatal
// and propagated to the embedder.
type Uncaught struct {
	Instance ast.ID
}

func (u *Uncaught) Error() string {
	return fmt.Sprintf("eval: uncaught exception (instance %s)", u.Instance)
}

// errUnwound is returned by a run loop (Step/StepAll/runFrame) to mean "the
// frame stack changed shape because raise found a handler, not because of a
// plain RETURN", never a real failure. Every run loop swallows it and lets
// its own `for` condition decide whether to keep stepping or stop, which is
// what lets an exception legitimately unwind past a nested synchronous
// sub-evaluation (a lazy global's initializer, a field initializer, a
// constructor call) without that sub-evaluation mistaking the unwind for its
// own normal completion.
var errUnwound = &unwoundSignal{}

type unwoundSignal struct{}

func (*unwoundSignal) Error() string { return "eval: exception unwound" }
