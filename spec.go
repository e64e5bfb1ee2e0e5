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

// Command is one device command: a function-code matcher, its ordered
// field matchers, and the name of the callback it dispatches to.
type Command struct {
	FunctionCode Matcher
	Fields       []Matcher
	Callback     string
}

// DeviceSpec is one declared slave device: its address and the ordered
// list of commands it answers to. Devices are kept as a slice, not a
// map, because §4.2 requires they be compiled "in source order." Address
// is the raw address text (decimal or 0x-prefixed hex, e.g. "37" or
// "0x25"); the trie compiler parses and range-checks it, per §4.2 step 3.
type DeviceSpec struct {
	Address  string
	Commands []Command
}

// Spec is the top-level specification: a buffer-size hint, an emitter
// namespace, the callback prototype table, and the devices to compile.
// Spec values are constructed once and handed to Compile; nothing in this
// package mutates a Spec after compilation starts.
type Spec struct {
	BufferSize int
	Namespace  string
	Callbacks  Callbacks
	Devices    []DeviceSpec
}

// DefaultNamespace is used when a Spec leaves Namespace empty.
const DefaultNamespace = "slave"

func (s *Spec) namespace() string {
	if s.Namespace == "" {
		return DefaultNamespace
	}
	return s.Namespace
}
