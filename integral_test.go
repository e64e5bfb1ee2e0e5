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

import "testing"

func TestIntegralRange(t *testing.T) {
	for _, tc := range []struct {
		name string
		t    Integral
		min  int64
		max  int64
	}{
		{name: "u8", t: U8, min: 0, max: 255},
		{name: "u16", t: U16, min: 0, max: 65535},
		{name: "u32", t: U32, min: 0, max: 4294967295},
		{name: "s8", t: S8, min: -128, max: 127},
		{name: "s16", t: S16, min: -32768, max: 32767},
		{name: "s32", t: S32, min: -2147483648, max: 2147483647},
	} {
		if got := tc.t.Min(); got != tc.min {
			t.Errorf("%s.Min() = %d, want %d", tc.name, got, tc.min)
		}
		if got := tc.t.Max(); got != tc.max {
			t.Errorf("%s.Max() = %d, want %d", tc.name, got, tc.max)
		}
	}
}

func TestIntegralInRange(t *testing.T) {
	for _, tc := range []struct {
		t    Integral
		v    int64
		want bool
	}{
		{t: U8, v: 0, want: true},
		{t: U8, v: 255, want: true},
		{t: U8, v: 256, want: false},
		{t: U8, v: -1, want: false},
		{t: S8, v: -128, want: true},
		{t: S8, v: -129, want: false},
		{t: U16, v: 65535, want: true},
		{t: U16, v: 65536, want: false},
	} {
		if got := tc.t.InRange(tc.v); got != tc.want {
			t.Errorf("%+v.InRange(%d) = %v, want %v", tc.t, tc.v, got, tc.want)
		}
	}
}

func TestIntegralSize(t *testing.T) {
	for _, tc := range []struct {
		t    Integral
		want int
	}{
		{U8, 1}, {S8, 1}, {U16, 2}, {S16, 2}, {U32, 4}, {S32, 4}, {F32, 4}, {CRC, 2},
	} {
		if got := tc.t.Size(); got != tc.want {
			t.Errorf("%+v.Size() = %d, want %d", tc.t, got, tc.want)
		}
	}
}
