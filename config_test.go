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
	"os"
	"path/filepath"
	"testing"
)

const testYAML = `
buffer_size: 8
namespace: console
callbacks:
  on_get_sw_status: []
  on_read_leds:
    - {type: u8, name: addr}
    - {type: u8, name: qty}
  on_write_leds:
    - {type: u16, name: data}
devices:
  - address: "37"
    commands:
      - function: read_discrete_inputs
        fields:
          - {type: u16, exact: 0, alias: from}
          - {type: u16, exact: 4, alias: qty}
        callback: on_get_sw_status
      - function: read_coils
        fields:
          - {type: u16, range: [0, 11], alias: from}
          - {type: u16, range: [1, 12], alias: qty}
        callback: on_read_leds
`

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "datagram.yaml")
	if err := os.WriteFile(path, []byte(testYAML), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	if spec.BufferSize != 8 {
		t.Errorf("BufferSize = %d, want 8", spec.BufferSize)
	}
	if spec.Namespace != "console" {
		t.Errorf("Namespace = %q, want console", spec.Namespace)
	}
	if len(spec.Callbacks) != 3 {
		t.Fatalf("len(Callbacks) = %d, want 3", len(spec.Callbacks))
	}
	proto, ok := spec.Callbacks["on_read_leds"]
	if !ok || len(proto) != 2 || proto[0].Name != "addr" || proto[1].Name != "qty" {
		t.Errorf("on_read_leds prototype = %+v", proto)
	}

	if len(spec.Devices) != 1 || spec.Devices[0].Address != "37" {
		t.Fatalf("Devices = %+v", spec.Devices)
	}
	cmds := spec.Devices[0].Commands
	if len(cmds) != 2 {
		t.Fatalf("len(Commands) = %d, want 2", len(cmds))
	}
	if cmds[1].FunctionCode.Exact != int64(ReadCoils) {
		t.Errorf("second command function code = %d, want %d", cmds[1].FunctionCode.Exact, ReadCoils)
	}
	if got := cmds[1].Fields[0]; got.Shape != ShapeRange || got.Lo != 0 || got.Hi != 11 {
		t.Errorf("first field = %+v, want range [0,11]", got)
	}

	// The loaded spec must compile cleanly end to end.
	if _, err := Compile(spec); err != nil {
		t.Errorf("Compile(loaded spec): %v", err)
	}
}

func TestLoadFileUnknownFunction(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	body := `
callbacks:
  cb: []
devices:
  - address: "1"
    commands:
      - function: not_a_real_function
        callback: cb
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("LoadFile() with unknown function name: want error, got nil")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/path/to/spec.yaml"); err == nil {
		t.Error("LoadFile() on nonexistent path: want error, got nil")
	}
}
