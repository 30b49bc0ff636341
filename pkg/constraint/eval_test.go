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

import (
	"testing"

	"github.com/tildetoolkit/gocfg/pkg/config"
)

func mustParseCfg(t *testing.T, in string) *config.Value {
	t.Helper()
	root, err := config.Parse(in, "test", config.Options{})
	if err != nil {
		t.Fatalf("config.Parse(%q): %v", in, err)
	}
	return root
}

func TestEvaluateIdentPresence(t *testing.T) {
	root := mustParseCfg(t, "foo = 1\n")
	ctx := &EvalContext{Section: root, Root: root}

	e, err := Parse("foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Expr.Evaluate(ctx) {
		t.Error("foo: want present")
	}

	e, err = Parse("bar")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Expr.Evaluate(ctx) {
		t.Error("bar: want absent")
	}
}

func TestEvaluateRelational(t *testing.T) {
	tests := []struct {
		name string
		cfg  string
		expr string
		want bool
	}{
		{"int greater than", "n = 5\n", "n > 1", true},
		{"int not greater than", "n = 0\n", "n > 1", false},
		{"string equality", `s = "x"` + "\n", `s = "x"`, true},
		{"string inequality", `s = "x"` + "\n", `s != "x"`, false},
		{"number comparison", "f = 3.5\n", "f >= 3.5", true},
		{"bool equality", "b = true\n", "b = true", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParseCfg(t, tt.cfg)
			ctx := &EvalContext{Section: root, Root: root}
			e, err := Parse(tt.expr)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.expr, err)
			}
			if got := e.Expr.Evaluate(ctx); got != tt.want {
				t.Errorf("Evaluate(%q) against %q = %v, want %v", tt.expr, tt.cfg, got, tt.want)
			}
		})
	}
}

func TestEvaluateRelationalAbsentIsFalse(t *testing.T) {
	root := mustParseCfg(t, "n = 5\n")
	ctx := &EvalContext{Section: root, Root: root}
	e, err := Parse("missing > 1")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Expr.Evaluate(ctx) {
		t.Error("relation over an absent operand: want false")
	}
}

func TestEvaluatePercent(t *testing.T) {
	root := mustParseCfg(t, "version = 0\n")
	current := root.Get("version")
	ctx := &EvalContext{Section: root, Root: root, Current: current}

	e, err := Parse("% > 0")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Expr.Evaluate(ctx) {
		t.Error("version=0, %% > 0: want false")
	}

	root = mustParseCfg(t, "version = 1\n")
	current = root.Get("version")
	ctx = &EvalContext{Section: root, Root: root, Current: current}
	if !e.Expr.Evaluate(ctx) {
		t.Error("version=1, %% > 0: want true")
	}
}

func TestEvaluatePathAbsoluteWithBracketDereference(t *testing.T) {
	root := mustParseCfg(t, `
car {
	owner = "bob"
}
owners {
	bob {
		name = "Bob"
	}
}
`)
	car := root.Get("car")
	ctx := &EvalContext{Section: car, Root: root}

	e, err := Parse("/owners/[owner]/name")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Expr.Evaluate(ctx) {
		t.Error("dereferenced path: want present")
	}
}

func TestEvaluateCountForms(t *testing.T) {
	root := mustParseCfg(t, `
a = 1
b = 2
list {
	x = 1
	y = 2
	z = 3
}
`)
	ctx := &EvalContext{Section: root, Root: root}

	e, err := Parse("#(a, b, c)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Expr.Evaluate(ctx) {
		t.Error("#(a, b, c) with a, b present: want true")
	}

	e, err = Parse("#(missing1, missing2)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if e.Expr.Evaluate(ctx) {
		t.Error("#(missing1, missing2): want false")
	}

	e, err = Parse("#list > 2")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !e.Expr.Evaluate(ctx) {
		t.Error("#list > 2 with 3 entries: want true")
	}
}

func TestEvaluateBooleanCombinators(t *testing.T) {
	root := mustParseCfg(t, "a = 1\n")
	ctx := &EvalContext{Section: root, Root: root}

	tests := []struct {
		expr string
		want bool
	}{
		{"a & missing", false},
		{"a | missing", true},
		{"a ^ missing", true},
		{"a ^ a", false},
		{"!missing", true},
	}
	for _, tt := range tests {
		e, err := Parse(tt.expr)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tt.expr, err)
		}
		if got := e.Expr.Evaluate(ctx); got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}
