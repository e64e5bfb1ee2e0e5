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

// Kind classifies how an Integral's bits are interpreted.
type Kind int

const (
	KindUnsigned Kind = iota
	KindSigned
	KindFloat
	KindCRC
)

// Integral describes one wire-level scalar type: its bit-width, its
// signedness, and the C type name the emitter renders for it. CRC is a
// distinct kind: 16 bits, little-endian on the wire (every other kind is
// big-endian), and never value-checked by generated predicates.
type Integral struct {
	Bits int
	Kind Kind
	// CType is the emitted host type name; purely informational, never
	// interpreted by the compiler.
	CType string
}

var (
	U8  = Integral{Bits: 8, Kind: KindUnsigned, CType: "uint8_t"}
	U16 = Integral{Bits: 16, Kind: KindUnsigned, CType: "uint16_t"}
	U32 = Integral{Bits: 32, Kind: KindUnsigned, CType: "uint32_t"}
	S8  = Integral{Bits: 8, Kind: KindSigned, CType: "int8_t"}
	S16 = Integral{Bits: 16, Kind: KindSigned, CType: "int16_t"}
	S32 = Integral{Bits: 32, Kind: KindSigned, CType: "int32_t"}
	F32 = Integral{Bits: 32, Kind: KindFloat, CType: "float"}
	CRC = Integral{Bits: 16, Kind: KindCRC, CType: "uint16_t"}
)

// Size returns the byte-size of the type (Bits/8).
func (t Integral) Size() int { return t.Bits / 8 }

// Min returns the smallest representable value, or 0 for Float/CRC (which
// have no useful ordering for range checks).
func (t Integral) Min() int64 {
	switch t.Kind {
	case KindSigned:
		return -(int64(1) << uint(t.Bits-1))
	default:
		return 0
	}
}

// Max returns the largest representable value; for Float and CRC it is
// the largest unsigned value of the type's width (2^Bits-1).
func (t Integral) Max() int64 {
	switch t.Kind {
	case KindSigned:
		return (int64(1) << uint(t.Bits-1)) - 1
	default:
		return (int64(1) << uint(t.Bits)) - 1
	}
}

// InRange reports whether v is representable by t.
func (t Integral) InRange(v int64) bool {
	return v >= t.Min() && v <= t.Max()
}
