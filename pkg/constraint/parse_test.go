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

package constraint

import "testing"

func TestParseValid(t *testing.T) {
	tests := []string{
		"foo",
		"foo = 1",
		"foo != \"bar\"",
		"% > 0",
		"#(a, b, c)",
		"#/some/list",
		"/owners/[car]/name",
		"a & b | c",
		"!a",
		"{human readable label}a = 1",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err != nil {
				t.Errorf("Parse(%q): %v", in, err)
			}
		})
	}
}

func TestParseLabel(t *testing.T) {
	e, err := Parse("{must be positive}% > 0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Label != "must be positive" {
		t.Errorf("Label = %q, want %q", e.Label, "must be positive")
	}
	if e.Expr.kind != nRel {
		t.Errorf("Expr.kind = %v, want nRel", e.Expr.kind)
	}
}

func TestParseSingleSegmentCollapsesToIdent(t *testing.T) {
	e, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Expr.kind != nIdent || e.Expr.ident != "foo" {
		t.Errorf("Parse(%q) = %+v, want nIdent foo", "foo", e.Expr)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []string{
		"",
		"(a",
		"a =",
		"a == b",
		"#(",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			if _, err := Parse(in); err == nil {
				t.Errorf("Parse(%q): got nil error, want one", in)
			}
		})
	}
}
