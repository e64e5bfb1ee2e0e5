// Copyright 2015 Google Inc. All rights reserved
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

package slavegen

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// EmitOptions configures rendering of a compiled Graph into source text.
// The zero value is valid: TabSize defaults to 4.
type EmitOptions struct {
	TabSize int
}

func (o EmitOptions) unit() string {
	n := o.TabSize
	if n <= 0 {
		n = 4
	}
	return strings.Repeat(" ", n)
}

// Generate compiles spec and renders it in one step, the path the CLI
// uses: diagnostics from Compile are returned unwrapped so callers can
// type-assert *CompileError without unwrapping an emit-stage error too.
func Generate(spec *Spec, opts EmitOptions) (*Graph, []byte, error) {
	graph, err := Compile(spec)
	if err != nil {
		return nil, nil, err
	}
	var b strings.Builder
	if err := Emit(&b, spec, graph, opts); err != nil {
		return graph, nil, err
	}
	return graph, []byte(b.String()), nil
}

// Emit renders graph, compiled from spec, as the fixed C++ artifact of
// §6, substituting the seven markers of codeTemplate. It never fails on
// a well-formed Graph; the error return exists only to surface the
// underlying Writer's.
func Emit(w io.Writer, spec *Spec, graph *Graph, opts EmitOptions) error {
	unit := opts.unit()
	caseIndent := strings.Repeat(unit, 3)
	bodyIndent := strings.Repeat(unit, 4)
	enumIndent := strings.Repeat(unit, 2)

	var enums, cases, callbacks, incomplete strings.Builder
	opCount := 0

	for _, s := range graph.States {
		fmt.Fprintf(&enums, "%s%s,\n", enumIndent, s.Name)

		if s.IsOperation() {
			opCount++
			fmt.Fprintf(&callbacks, "%scase state_t::%s:\n", caseIndent, s.Name)
			fmt.Fprintf(&callbacks, "%s%s(%s);\n", bodyIndent, s.Op.Callback, strings.Join(argExprs(s.Op.Args), ", "))
			fmt.Fprintf(&callbacks, "%sbreak;\n", bodyIndent)
			continue
		}

		fmt.Fprintf(&incomplete, "%scase state_t::%s:\n", caseIndent, s.Name)
		fmt.Fprintf(&cases, "%scase state_t::%s:\n", caseIndent, s.Name)
		if len(s.Transitions) == 0 {
			fmt.Fprintf(&cases, "%sbreak;\n", bodyIndent)
			continue
		}
		for _, grp := range groupTransitions(s.Transitions) {
			cases.WriteString(renderGroup(grp, s.Pos, graph, bodyIndent, unit))
		}
		fmt.Fprintf(&cases, "%sbreak;\n", bodyIndent)
	}
	glog.V(1).Infof("emit: rendered %d states (%d operation, bufsize %d)", len(graph.States), opCount, computeBufSize(spec))

	names := make([]string, 0, len(spec.Callbacks))
	for name := range spec.Callbacks {
		names = append(names, name)
	}
	sort.Strings(names)
	var prototypes strings.Builder
	for _, name := range names {
		fmt.Fprintf(&prototypes, "%s%s\n", unit, renderPrototype(name, spec.Callbacks[name]))
	}

	out := codeTemplate
	out = strings.ReplaceAll(out, "@NAMESPACE@", spec.namespace())
	out = strings.ReplaceAll(out, "@BUFSIZE@", strconv.Itoa(computeBufSize(spec)))
	out = strings.ReplaceAll(out, "@PROTOTYPES@", strings.TrimRight(prototypes.String(), "\n"))
	out = strings.ReplaceAll(out, "@ENUMS@", strings.TrimRight(enums.String(), "\n"))
	out = strings.ReplaceAll(out, "@CASES@", strings.TrimRight(cases.String(), "\n"))
	out = strings.ReplaceAll(out, "@CALLBACKS@", strings.TrimRight(callbacks.String(), "\n"))
	out = strings.ReplaceAll(out, "@INCOMPLETE@", strings.TrimRight(incomplete.String(), "\n"))

	_, err := io.WriteString(w, out)
	return err
}

// computeBufSize implements §4.3's sizing rule: the configured hint, or
// the largest frame any single command can produce, whichever is bigger.
// Device address, function code, and the CRC tail contribute the fixed 4.
func computeBufSize(spec *Spec) int {
	best := spec.BufferSize
	for _, dev := range spec.Devices {
		for _, cmd := range dev.Commands {
			total := 4
			for _, f := range cmd.Fields {
				total += f.Type.Size()
			}
			if total > best {
				best = total
			}
		}
	}
	return best
}

// orderDefaultsLast stably moves every predicate-less transition (Any,
// or the synthetic CrcTerminal) to the end of the group. renderGroup
// stops emitting as soon as it hits a predicate-less transition, since
// that branch is unconditional; a predicate-less transition declared
// before a tested sibling would otherwise make that sibling unreachable
// and silently drop it from the generated switch.
func orderDefaultsLast(group []Transition) []Transition {
	ordered := make([]Transition, 0, len(group))
	var defaults []Transition
	for _, t := range group {
		if _, ok := t.Matcher.Predicate("c"); ok {
			ordered = append(ordered, t)
		} else {
			defaults = append(defaults, t)
		}
	}
	return append(ordered, defaults...)
}

// groupTransitions buckets a state's transitions by matcher byte-size,
// preserving the first-appearance order of each size and the relative
// order of transitions within a size, per §4.3.1.
func groupTransitions(trs []Transition) [][]Transition {
	index := make(map[int]int, len(trs))
	var groups [][]Transition
	for _, t := range trs {
		sz := t.Matcher.Type.Size()
		i, ok := index[sz]
		if !ok {
			i = len(groups)
			index[sz] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], t)
	}
	return groups
}

// renderGroup renders one size-grouped transition list as a gated
// if/else-if chain, decoding the just-completed field into c when any
// transition in the group actually tests it. A transition whose matcher
// has no predicate (Any, or the synthetic CrcTerminal) is rendered as an
// unconditional final branch and suppresses the generic error fallback,
// matching §4.3.1's "else branch is omitted" rule.
func renderGroup(group []Transition, pos int, graph *Graph, indent, unit string) string {
	group = orderDefaultsLast(group)
	size := group[0].Matcher.Type.Size()
	var b strings.Builder
	fmt.Fprintf(&b, "%sif (cnt == %d) {\n", indent, pos+size)
	inner := indent + unit

	hasTest := false
	for _, t := range group {
		if _, ok := t.Matcher.Predicate("c"); ok {
			hasTest = true
			break
		}
	}
	if hasTest {
		switch size {
		case 2:
			fmt.Fprintf(&b, "%sauto c = ntoh(cnt - 2);\n\n", inner)
		case 4:
			fmt.Fprintf(&b, "%sauto c = ntohl(cnt - 4);\n\n", inner)
		}
	}

	chained := false
	defaultRendered := false
	for _, t := range group {
		next := graph.States[t.Next].Name
		pred, ok := t.Matcher.Predicate("c")
		if !ok {
			if chained {
				fmt.Fprintf(&b, " else {\n%s%sstate = state_t::%s;\n%s}\n", inner, unit, next, inner)
			} else {
				fmt.Fprintf(&b, "%sstate = state_t::%s;\n", inner, next)
			}
			defaultRendered = true
			break
		}
		if !chained {
			fmt.Fprintf(&b, "%sif (%s) {\n%s%sstate = state_t::%s;\n%s}", inner, pred, inner, unit, next, inner)
		} else {
			fmt.Fprintf(&b, " else if (%s) {\n%s%sstate = state_t::%s;\n%s}", pred, inner, unit, next, inner)
		}
		chained = true
	}

	if hasTest && !defaultRendered {
		errName, errState := positionError(pos)
		fmt.Fprintf(&b, " else {\n%s%serror = error_t::%s;\n%s%sstate = state_t::%s;\n%s}\n", inner, unit, errName, inner, unit, errState, inner)
	} else if chained {
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "%s}\n", indent)
	return b.String()
}

// positionError maps a branch state's frame position to the exception it
// raises when nothing in its transition group matches: byte 0 is simply
// not addressed to us, byte 1 names an unsupported function, anything
// deeper is a malformed value within an otherwise-recognized command.
func positionError(pos int) (errName, state string) {
	switch pos {
	case 0:
		return "ignore_frame", "IGNORE"
	case 1:
		return "illegal_function_code", "ERROR"
	default:
		return "illegal_data_value", "ERROR"
	}
}

func argExprs(args []Arg) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = argExpr(a)
	}
	return out
}

// argExpr renders the buffer read for one bound argument: a single byte
// is read directly, wider fields go through the big-endian decoders the
// template defines.
func argExpr(a Arg) string {
	switch a.Size {
	case 2:
		return fmt.Sprintf("ntoh(%d)", a.Offset)
	case 4:
		return fmt.Sprintf("ntohl(%d)", a.Offset)
	default:
		return fmt.Sprintf("buffer[%d]", a.Offset)
	}
}

// renderPrototype renders one callback's forward declaration. Parameters
// without a name (captured positionally, per §7's resolved open
// question) render as a bare type.
func renderPrototype(name string, proto Prototype) string {
	parts := make([]string, len(proto))
	for i, p := range proto {
		if p.Name != "" {
			parts[i] = p.Type.CType + " " + p.Name
		} else {
			parts[i] = p.Type.CType
		}
	}
	return fmt.Sprintf("void %s(%s);", name, strings.Join(parts, ", "))
}
