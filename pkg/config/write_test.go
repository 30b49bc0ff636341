// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"bufio"
	"bytes"
	"math"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestWriteString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no quotes needed", "hello", `"hello"`},
		{"prefers double quotes", "it's", `"it's"`},
		{"switches to single when double is more frequent", `say "hi"`, `'say "hi"'`},
		{"escapes chosen quote by doubling", `it's "x"`, `'it''s "x"'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			writeString(w, tt.in)
			w.Flush()
			if got := buf.String(); got != tt.want {
				t.Errorf("writeString(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestWriteNumber(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"integral gets .0", 3, "3.0"},
		{"fraction kept as-is", 3.5, "3.5"},
		{"NaN", math.NaN(), "NaN"},
		{"negative infinity", math.Inf(-1), "-Infinity"},
		{"positive infinity", math.Inf(1), "Infinity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			writeNumber(w, tt.in)
			w.Flush()
			if got := buf.String(); got != tt.want {
				t.Errorf("writeNumber(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"a = 1\nb = \"two\"\nc = 3.5\nd = true\n",
		"nums = ( 1, 2, 3 )\n",
		"outer {\n\tinner {\n\t\tx = 1\n\t}\n}\n",
	}
	for _, in := range tests {
		root, err := Parse(in, "test", Options{})
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		var buf bytes.Buffer
		if err := Write(&buf, root); err != nil {
			t.Fatalf("Write: %v", err)
		}
		reparsed, err := Parse(buf.String(), "test", Options{})
		if err != nil {
			t.Fatalf("Parse(written output %q): %v", buf.String(), err)
		}
		if !Equal(root, reparsed) {
			var rewritten bytes.Buffer
			Write(&rewritten, reparsed)
			if diff := pretty.Compare(in, rewritten.String()); diff != "" {
				t.Errorf("round trip mismatch, diff(-original,+written):\n%s", diff)
			} else {
				t.Errorf("round trip mismatch: original %q, written %q", in, buf.String())
			}
		}
	}
}

func TestRoundTripPlistReloadsEqual(t *testing.T) {
	plistSrc := "%p = 1\n%p = 2\n"
	root, err := Parse(plistSrc, "test", Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, root); err != nil {
		t.Fatalf("Write: %v", err)
	}
	reparsed, err := Parse(buf.String(), "test", Options{})
	if err != nil {
		t.Fatalf("Parse(written output): %v", err)
	}
	if !Equal(root, reparsed) {
		var rewritten bytes.Buffer
		Write(&rewritten, reparsed)
		if diff := pretty.Compare(plistSrc, rewritten.String()); diff != "" {
			t.Errorf("plist round trip mismatch, diff(-original,+written):\n%s", diff)
		} else {
			t.Errorf("plist round trip mismatch: written %q", buf.String())
		}
	}
}
