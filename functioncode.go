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

// Modbus RTU function codes this generator recognizes. The function code
// is always the second byte of a request and is matched with an 8-bit
// Exact matcher.
const (
	// ReadCoils reads a contiguous block of coils (1-bit writable
	// registers).
	ReadCoils byte = 0x01
	// ReadDiscreteInputs reads a contiguous block of discrete inputs
	// (1-bit read-only registers).
	ReadDiscreteInputs byte = 0x02
	// ReadHoldingRegisters reads a contiguous block of 16-bit
	// read-write registers.
	ReadHoldingRegisters byte = 0x03
	// ReadInputRegisters reads a contiguous block of 16-bit read-only
	// registers.
	ReadInputRegisters byte = 0x04
	// WriteSingleCoil writes one coil.
	WriteSingleCoil byte = 0x05
	// WriteSingleRegister writes one holding register.
	WriteSingleRegister byte = 0x06
	// WriteMultipleCoils writes a contiguous block of coils.
	WriteMultipleCoils byte = 0x0F
	// WriteMultipleRegisters writes a contiguous block of holding
	// registers.
	WriteMultipleRegisters byte = 0x10
	// ReadWriteMultipleRegisters atomically reads one block and writes
	// another in a single request.
	ReadWriteMultipleRegisters byte = 0x17
)

var functionCodeNames = map[byte]string{
	ReadCoils:                  "read_coils",
	ReadDiscreteInputs:         "read_discrete_inputs",
	ReadHoldingRegisters:       "read_holding_registers",
	ReadInputRegisters:         "read_input_registers",
	WriteSingleCoil:            "write_single_coil",
	WriteSingleRegister:        "write_single_register",
	WriteMultipleCoils:         "write_multiple_coils",
	WriteMultipleRegisters:     "write_multiple_registers",
	ReadWriteMultipleRegisters: "read_write_multiple_registers",
}

// FunctionCodeName returns the canonical lower_snake_case name for a
// recognized function code, or "" if fc isn't one of the nine codes this
// generator supports.
func FunctionCodeName(fc byte) string {
	return functionCodeNames[fc]
}

// FunctionCodeMatcher builds the always-present, always-Exact, always-u8
// matcher that selects a command by its function code byte.
func FunctionCodeMatcher(fc byte) Matcher {
	m, err := ExactMatcher(U8, int64(fc), FunctionCodeName(fc))
	if err != nil {
		// U8's range covers every byte value; this cannot fail.
		panic(err)
	}
	return m
}
