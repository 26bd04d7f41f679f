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
	"io"
	"os"

	"github.com/NicolasKalaydjian/wollok-ts/internal/core/ast"
)

// Native is a native-method body: it receives the receiver
// and argument instance ids plus the Evaluation they live in, and must
// leave exactly one value on the current frame's operand stack, either by
// calling Push, or by calling Raise to signal a user exception instead.
type Native func(ev *Evaluation, self ast.ID, args []ast.ID)

// NativeTable maps "<moduleFqn>.<methodName>" to its native body, where
// moduleFqn names the module that declares the native method (found by the
// ordinary linearization lookup). The VM consults it only for methods marked
// Native; a native method with no entry here is a Fault.
type NativeTable map[string]Native

// TraceEvent is fired on the ambient-stack Trace hook instead of logging
// to stdout directly: frame push/pop, message send, exception raise/catch,
// and GC run.
type TraceEvent struct {
	Kind     string // "frame_push", "frame_pop", "send", "raise", "catch", "gc"
	Message  string // CALL's message name, for "send"
	Receiver ast.ID
	Instance ast.ID // the exception instance, for "raise"/"catch"
}

// Config is the single tunable-parameters struct: decimal precision,
// frame- and operand-stack size limits, the native dictionary, the
// output writer, and an optional trace hook.
type Config struct {
	DecimalPrecision    int32
	MaxFrameStackSize   int
	MaxOperandStackSize int
	Natives             NativeTable
	Stdout              io.Writer
	Trace               func(TraceEvent)
}

// DefaultConfig fills in the tunables at their standard defaults.
func DefaultConfig(natives NativeTable) Config {
	return Config{
		DecimalPrecision:    5,
		MaxFrameStackSize:   1000,
		MaxOperandStackSize: 10000,
		Natives:             natives,
		Stdout:              os.Stdout,
	}
}

func (c Config) stdout() io.Writer {
	if c.Stdout != nil {
		return c.Stdout
	}
	return os.Stdout
}
