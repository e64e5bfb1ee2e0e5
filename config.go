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
	"os"

	"gopkg.in/yaml.v3"
)

// fileField is one on-wire field of a command, as written in YAML. Of
// exact/range/one_of at most one should be set; an empty field (all
// three absent) matches any value of its type.
type fileField struct {
	Type  string  `yaml:"type"`
	Alias string  `yaml:"alias"`
	Exact *int64  `yaml:"exact"`
	Range []int64 `yaml:"range"`
	OneOf []int64 `yaml:"one_of"`
}

type fileCommand struct {
	Function string      `yaml:"function"`
	Fields   []fileField `yaml:"fields"`
	Callback string      `yaml:"callback"`
}

type fileDevice struct {
	Address  string        `yaml:"address"`
	Commands []fileCommand `yaml:"commands"`
}

type fileParam struct {
	Type string `yaml:"type"`
	Name string `yaml:"name"`
}

type fileSpec struct {
	BufferSize int                    `yaml:"buffer_size"`
	Namespace  string                 `yaml:"namespace"`
	Callbacks  map[string][]fileParam `yaml:"callbacks"`
	Devices    []fileDevice           `yaml:"devices"`
}

// LoadFile reads and decodes the device specification at path, per the
// YAML shape of §6. I/O errors, malformed YAML, and unknown type or
// function names are returned as plain errors; a field literal outside
// its type's range is returned as a *CompileError of kind
// BadMatcherLiteral, as the matcher constructors report it.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("slavegen: reading %s: %w", path, err)
	}
	var fs fileSpec
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("slavegen: parsing %s: %w", path, err)
	}
	return fs.toSpec()
}

func (fs *fileSpec) toSpec() (*Spec, error) {
	callbacks := make(Callbacks, len(fs.Callbacks))
	for name, params := range fs.Callbacks {
		proto := make(Prototype, len(params))
		for i, p := range params {
			t, err := integralByName(p.Type)
			if err != nil {
				return nil, err
			}
			proto[i] = Param{Type: t, Name: p.Name}
		}
		callbacks[name] = proto
	}

	devices := make([]DeviceSpec, len(fs.Devices))
	for i, fd := range fs.Devices {
		commands := make([]Command, len(fd.Commands))
		for j, fc := range fd.Commands {
			fn, err := functionCodeByName(fc.Function)
			if err != nil {
				return nil, err
			}
			fields := make([]Matcher, len(fc.Fields))
			for k, ff := range fc.Fields {
				m, err := ff.toMatcher()
				if err != nil {
					return nil, err
				}
				fields[k] = m
			}
			commands[j] = Command{
				FunctionCode: FunctionCodeMatcher(fn),
				Fields:       fields,
				Callback:     fc.Callback,
			}
		}
		devices[i] = DeviceSpec{Address: fd.Address, Commands: commands}
	}

	return &Spec{
		BufferSize: fs.BufferSize,
		Namespace:  fs.Namespace,
		Callbacks:  callbacks,
		Devices:    devices,
	}, nil
}

func (ff *fileField) toMatcher() (Matcher, error) {
	t, err := integralByName(ff.Type)
	if err != nil {
		return Matcher{}, err
	}
	switch {
	case ff.Exact != nil:
		return ExactMatcher(t, *ff.Exact, ff.Alias)
	case len(ff.Range) == 2:
		return RangeMatcher(t, ff.Range[0], ff.Range[1], ff.Alias)
	case len(ff.OneOf) > 0:
		return OneOfMatcher(t, ff.Alias, ff.OneOf...)
	default:
		return AnyAlias(t, ff.Alias), nil
	}
}

func integralByName(name string) (Integral, error) {
	switch name {
	case "u8":
		return U8, nil
	case "u16":
		return U16, nil
	case "u32":
		return U32, nil
	case "s8":
		return S8, nil
	case "s16":
		return S16, nil
	case "s32":
		return S32, nil
	case "f32":
		return F32, nil
	}
	return Integral{}, fmt.Errorf("slavegen: unknown field type %q", name)
}

var functionCodeByYAMLName = func() map[string]byte {
	m := make(map[string]byte, len(functionCodeNames))
	for fc, name := range functionCodeNames {
		m[name] = fc
	}
	return m
}()

func functionCodeByName(name string) (byte, error) {
	fc, ok := functionCodeByYAMLName[name]
	if !ok {
		return 0, fmt.Errorf("slavegen: unknown function %q", name)
	}
	return fc, nil
}
