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
	"strings"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func consoleSpec() *Spec {
	return &Spec{
		BufferSize: 8,
		Namespace:  "console",
		Callbacks: Callbacks{
			"on_get_sw_status": Prototype{},
			"on_read_leds":     Prototype{{Type: U8, Name: "addr"}, {Type: U8, Name: "qty"}},
			"on_write_leds":    Prototype{{Type: U16, Name: "data"}},
		},
		Devices: []DeviceSpec{
			{
				Address: "37",
				Commands: []Command{
					{
						FunctionCode: FunctionCodeMatcher(ReadDiscreteInputs),
						Fields: []Matcher{
							mustExactAlias(U16, 0, "from"),
							mustExactAlias(U16, 4, "qty"),
						},
						Callback: "on_get_sw_status",
					},
					readCoilsCommand(1, 12, "on_read_leds"),
				},
			},
		},
	}
}

func mustExactAlias(t Integral, v int64, alias string) Matcher {
	m, err := ExactMatcher(t, v, alias)
	if err != nil {
		panic(err)
	}
	return m
}

// TestGenerateEndToEnd compiles and emits the §6 console example and
// checks the handful of structural properties a generated runtime
// depends on: the namespace and buffer size are threaded through, both
// callbacks get prototypes and bodies, and the output is well-formed
// C++ braces (balanced, not asserted byte-for-byte against a golden
// file since the template itself is the contract).
func TestGenerateEndToEnd(t *testing.T) {
	spec := consoleSpec()
	_, src, err := Generate(spec, EmitOptions{TabSize: 4})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	out := string(src)

	if !strings.Contains(out, "namespace console {") {
		t.Error("output missing namespace console")
	}
	if !strings.Contains(out, "uint8_t buffer[8];") {
		t.Error("output missing sized buffer (configured buffer_size=8, no command exceeds it)")
	}
	if !strings.Contains(out, "void on_get_sw_status();") {
		t.Error("output missing zero-arg prototype")
	}
	if !strings.Contains(out, "void on_read_leds(uint8_t addr, uint8_t qty);") {
		t.Error("output missing two-arg prototype")
	}
	if !strings.Contains(out, "on_get_sw_status();") {
		t.Error("output missing zero-arg call site")
	}
	if !strings.Contains(out, "on_read_leds(buffer[3], buffer[5]);") {
		t.Error("output missing bound call site with expected offsets")
	}
	if strings.Count(out, "{") != strings.Count(out, "}") {
		t.Error("unbalanced braces in generated output")
	}
}

// TestGenerateIdempotent runs the pipeline twice from the same Spec and
// requires byte-identical output, the determinism testable property:
// nothing in Compile or Emit may depend on map iteration order or any
// other unstable ordering.
func TestGenerateIdempotent(t *testing.T) {
	spec := consoleSpec()
	_, first, err := Generate(spec, EmitOptions{TabSize: 4})
	if err != nil {
		t.Fatalf("Generate (first): %v", err)
	}
	spec2 := consoleSpec()
	_, second, err := Generate(spec2, EmitOptions{TabSize: 4})
	if err != nil {
		t.Fatalf("Generate (second): %v", err)
	}
	if string(first) != string(second) {
		dmp := diffmatchpatch.New()
		diffs := dmp.DiffMain(string(first), string(second), true)
		diffs = dmp.DiffCleanupSemantic(diffs)
		t.Errorf("Generate is not idempotent:\n%s", dmp.DiffPrettyText(diffs))
	}
}

func TestComputeBufSizeTakesLargestCommand(t *testing.T) {
	spec := &Spec{
		BufferSize: 4,
		Callbacks:  basicCallbacks(),
		Devices: []DeviceSpec{
			{Address: "37", Commands: []Command{readCoilsCommand(1, 12, "on_read_leds")}},
		},
	}
	// device(1) + function(1) + from(2) + qty(2) + crc(2) = 8, larger than
	// the configured hint of 4.
	if got := computeBufSize(spec); got != 8 {
		t.Errorf("computeBufSize = %d, want 8", got)
	}
}

// TestRenderGroupDefaultBeforeSiblingIsReordered guards against the
// defect where a predicate-less (Any) transition declared before a
// tested sibling of the same byte-size would render as an unconditional
// branch and silently drop everything after it from the generated
// switch.
func TestRenderGroupDefaultBeforeSiblingIsReordered(t *testing.T) {
	g := &Graph{}
	anyTarget := g.newState("TARGET_ANY", 1)
	exactTarget := g.newState("TARGET_EXACT", 1)

	group := []Transition{
		{Matcher: Any(U8), Next: anyTarget.Index},
		{Matcher: mustExact(U8, 5), Next: exactTarget.Index},
	}

	out := renderGroup(group, 0, g, "", "    ")

	if !strings.Contains(out, "TARGET_EXACT") {
		t.Fatalf("renderGroup dropped the tested sibling; got:\n%s", out)
	}
	if !strings.Contains(out, "TARGET_ANY") {
		t.Fatalf("renderGroup dropped the default branch; got:\n%s", out)
	}
	if strings.Index(out, "TARGET_EXACT") > strings.Index(out, "TARGET_ANY") {
		t.Errorf("tested sibling must render before the default branch; got:\n%s", out)
	}
}

func TestRenderPrototypePositionalParams(t *testing.T) {
	proto := Prototype{{Type: U8}, {Type: U16, Name: "qty"}}
	got := renderPrototype("on_mixed", proto)
	want := "void on_mixed(uint8_t, uint16_t qty);"
	if got != want {
		t.Errorf("renderPrototype() = %q, want %q", got, want)
	}
}
