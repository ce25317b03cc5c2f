// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backtrack

import (
	"strings"

	"github.com/tliron/commonlog"
)

// Tracer observes the speculative attempts combinators make on a [Buffer].
//
// op is the name of the combinator making the attempt ("rollback", "option",
// "list", "or", "lookahead" or "not"), and depth is how many speculative
// copies deep the attempt runs.
type Tracer interface {
	// Speculate is called before an attempt starts at index.
	Speculate(op string, depth, index int)
	// Commit is called when an attempt succeeds, moving the buffer from one
	// index to another.
	Commit(op string, depth, from, to int)
	// Discard is called when an attempt fails with err. index is where the
	// speculative copy stopped.
	Discard(op string, depth, index int, err error, fatal bool)
}

// LogTracer returns a [Tracer] that writes every event to logger at debug
// level, indented by depth.
func LogTracer(logger commonlog.Logger) Tracer {
	return logTracer{logger}
}

type logTracer struct {
	log commonlog.Logger
}

func (t logTracer) Speculate(op string, depth, index int) {
	if !t.log.AllowLevel(commonlog.Debug) {
		return
	}
	t.log.Debugf("%s%s: speculate at %d", indent(depth), op, index)
}

func (t logTracer) Commit(op string, depth, from, to int) {
	if !t.log.AllowLevel(commonlog.Debug) {
		return
	}
	t.log.Debugf("%s%s: commit %d -> %d", indent(depth), op, from, to)
}

func (t logTracer) Discard(op string, depth, index int, err error, fatal bool) {
	if !t.log.AllowLevel(commonlog.Debug) {
		return
	}
	kind := "discard"
	if fatal {
		kind = "abort"
	}
	t.log.Debugf("%s%s: %s at %d: %v", indent(depth), op, kind, index, err)
}

func indent(depth int) string {
	return strings.Repeat("  ", max(depth-1, 0))
}
