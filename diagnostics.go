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

// ErrorKind tags the fatal condition a CompileError reports. Every kind
// terminates compilation; the emitter is never reached once one is
// raised.
type ErrorKind int

const (
	MissingCallbacks ErrorKind = iota
	UnknownCallback
	InvalidCallbackName
	MalformedDeviceAddress
	DeviceAddressTooLarge
	UnfittableArgument
	DuplicatePath
	BadMatcherLiteral
)

// CompileError is a structured, fatal diagnostic raised by the compiler.
// Not every field is set for every Kind; see the Error method for which
// fields each kind uses.
type CompileError struct {
	Kind ErrorKind

	Callback string
	Param    string
	Key      string
	Name     string
	Literal  string
	TypeName string
	N        int
}

// Error implements the builtin error interface, naming the offending
// identifier the way the compiler's own diagnostics are required to.
func (e *CompileError) Error() string {
	prefix := "slavegen: "
	switch e.Kind {
	case MissingCallbacks:
		return prefix + "specification has no callbacks table"
	case UnknownCallback:
		return prefix + fmt.Sprintf("unknown callback %q: must be declared in the callbacks table", e.Callback)
	case InvalidCallbackName:
		return prefix + fmt.Sprintf("callback name %q is not a valid identifier", e.Name)
	case MalformedDeviceAddress:
		return prefix + fmt.Sprintf("malformed device address %q", e.Key)
	case DeviceAddressTooLarge:
		return prefix + fmt.Sprintf("device address %d exceeds 255", e.N)
	case UnfittableArgument:
		return prefix + fmt.Sprintf("cannot fit matched value into parameter %q of callback %q", e.Param, e.Callback)
	case DuplicatePath:
		return prefix + fmt.Sprintf("duplicate path: callback %q is reachable by a byte sequence already bound to another command", e.Callback)
	case BadMatcherLiteral:
		return prefix + fmt.Sprintf("literal %s is not representable by type %s", e.Literal, e.TypeName)
	}
	return prefix + fmt.Sprintf("unknown diagnostic %d", int(e.Kind))
}
