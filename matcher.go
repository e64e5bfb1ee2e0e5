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

import "fmt"

// Shape is the constraint a Matcher places on the field's wire value.
type Shape int

const (
	ShapeAny Shape = iota
	ShapeExact
	ShapeOneOf
	ShapeRange
	ShapeCrcTerminal
)

// Matcher is a value (type, shape, alias, pos): it constrains one on-wire
// field of a command. pos, the frame byte-position of the last byte this
// matcher consumes, is assigned by the trie compiler, not by the caller.
type Matcher struct {
	Type  Integral
	Shape Shape
	// Exact holds the literal for ShapeExact; Lo/Hi for ShapeRange;
	// OneOf for ShapeOneOf. Unused fields are zero for other shapes.
	Exact int64
	Lo    int64
	Hi    int64
	OneOf []int64

	Alias string
	Pos   int
}

// Any accepts every value of t and emits no predicate.
func Any(t Integral) Matcher { return Matcher{Type: t, Shape: ShapeAny} }

// AnyAlias is Any with an alias, for deriving state names off an unnamed
// wildcard field.
func AnyAlias(t Integral, alias string) Matcher {
	return Matcher{Type: t, Shape: ShapeAny, Alias: alias}
}

// ExactMatcher accepts exactly v.
func ExactMatcher(t Integral, v int64, alias string) (Matcher, error) {
	if !t.InRange(v) {
		return Matcher{}, &CompileError{Kind: BadMatcherLiteral, Literal: fmt.Sprintf("%d", v), TypeName: t.CType}
	}
	return Matcher{Type: t, Shape: ShapeExact, Exact: v, Alias: alias}, nil
}

// OneOfMatcher accepts any vᵢ.
func OneOfMatcher(t Integral, alias string, vs ...int64) (Matcher, error) {
	for _, v := range vs {
		if !t.InRange(v) {
			return Matcher{}, &CompileError{Kind: BadMatcherLiteral, Literal: fmt.Sprintf("%d", v), TypeName: t.CType}
		}
	}
	cp := make([]int64, len(vs))
	copy(cp, vs)
	return Matcher{Type: t, Shape: ShapeOneOf, OneOf: cp, Alias: alias}, nil
}

// RangeMatcher accepts [lo,hi] inclusive.
func RangeMatcher(t Integral, lo, hi int64, alias string) (Matcher, error) {
	if !t.InRange(lo) {
		return Matcher{}, &CompileError{Kind: BadMatcherLiteral, Literal: fmt.Sprintf("%d", lo), TypeName: t.CType}
	}
	if !t.InRange(hi) {
		return Matcher{}, &CompileError{Kind: BadMatcherLiteral, Literal: fmt.Sprintf("%d", hi), TypeName: t.CType}
	}
	return Matcher{Type: t, Shape: ShapeRange, Lo: lo, Hi: hi, Alias: alias}, nil
}

// crcTerminal is the synthetic two-byte matcher consumed by the CRC tail;
// the runtime validates the CRC itself, so this never emits a predicate.
func crcTerminal() Matcher {
	return Matcher{Type: CRC, Shape: ShapeCrcTerminal}
}

// Equal reports whether m and o constrain the same bytes the same way —
// same type, shape, and literal values — which is the prefix-merge
// equality the trie compiler uses to decide whether two commands share a
// transition. Alias and Pos are not part of the identity: two commands
// may name the same field differently and still share the state.
func (m Matcher) Equal(o Matcher) bool {
	if m.Type != o.Type || m.Shape != o.Shape {
		return false
	}
	switch m.Shape {
	case ShapeAny, ShapeCrcTerminal:
		return true
	case ShapeExact:
		return m.Exact == o.Exact
	case ShapeRange:
		return m.Lo == o.Lo && m.Hi == o.Hi
	case ShapeOneOf:
		if len(m.OneOf) != len(o.OneOf) {
			return false
		}
		for i, v := range m.OneOf {
			if o.OneOf[i] != v {
				return false
			}
		}
		return true
	}
	return false
}

// Fits reports whether param can losslessly receive every value m admits.
func (m Matcher) Fits(param Integral) bool {
	if param.Size() >= m.Type.Size() {
		return true
	}
	switch m.Shape {
	case ShapeRange:
		return param.InRange(m.Lo) && param.InRange(m.Hi)
	case ShapeOneOf:
		for _, v := range m.OneOf {
			if !param.InRange(v) {
				return false
			}
		}
		return true
	case ShapeExact:
		return param.InRange(m.Exact)
	default: // ShapeAny, ShapeCrcTerminal
		return false
	}
}

// Predicate renders the acceptance predicate against the integer-valued
// variable v (a just-received byte for 1-byte matchers, a just-decoded
// word otherwise). ok is false for Any and CrcTerminal, which admit any
// value and emit no test.
func (m Matcher) Predicate(v string) (text string, ok bool) {
	switch m.Shape {
	case ShapeAny, ShapeCrcTerminal:
		return "", false
	case ShapeExact:
		return fmt.Sprintf("%s == %s", v, literalText(m.Exact, m.Type)), true
	case ShapeRange:
		if m.Lo == 0 && m.Type.Kind == KindUnsigned {
			return fmt.Sprintf("%s <= %s", v, literalText(m.Hi, m.Type)), true
		}
		return fmt.Sprintf("%s >= %s && %s <= %s", v, literalText(m.Lo, m.Type), v, literalText(m.Hi, m.Type)), true
	case ShapeOneOf:
		parts := make([]string, len(m.OneOf))
		for i, val := range m.OneOf {
			parts[i] = fmt.Sprintf("%s == %s", v, literalText(val, m.Type))
		}
		text := parts[0]
		for _, p := range parts[1:] {
			text += " || " + p
		}
		return text, true
	}
	return "", false
}

func literalText(v int64, t Integral) string {
	if t.Bits == 8 {
		return fmt.Sprintf("0x%02x", uint64(v)&0xff)
	}
	return fmt.Sprintf("%d", v)
}
