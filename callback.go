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

import "regexp"

// validIdentifier matches a valid target-language (C/C++) identifier.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// IsValidIdentifier reports whether s is usable as a callback or
// parameter name in the generated code.
func IsValidIdentifier(s string) bool {
	return validIdentifier.MatchString(s)
}

// Param is one callback parameter: a type, and an optional name used only
// for error messages and prototype rendering.
type Param struct {
	Type Integral
	Name string // "" if positional-only
}

// Prototype is the ordered parameter list of a callback.
type Prototype []Param

// Callbacks maps a callback name to its prototype.
type Callbacks map[string]Prototype
