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
	"math"
	"testing"
)

func TestLexOperators(t *testing.T) {
	tests := []struct {
		in   string
		want tokKind
	}{
		{"(", tokLParen}, {")", tokRParen},
		{"[", tokLBracket}, {"]", tokRBracket},
		{"{", tokLBrace}, {"}", tokRBrace},
		{"/", tokSlash}, {",", tokComma},
		{"%", tokPercent}, {"#", tokHash},
		{"&", tokAnd}, {"|", tokOr}, {"^", tokXor},
		{"!", tokNot}, {"!=", tokNe},
		{"=", tokEq},
		{"<", tokLt}, {"<=", tokLe},
		{">", tokGt}, {">=", tokGe},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tok := newCLexer(tt.in).next()
			if tok.kind != tt.want {
				t.Errorf("next(%q).kind = %v, want %v", tt.in, tok.kind, tt.want)
			}
		})
	}
}

func TestLexIdentAndBool(t *testing.T) {
	tests := []struct {
		in       string
		wantKind tokKind
		wantBool bool
	}{
		{"foo", tokIdent, false},
		{"foo-bar_baz", tokIdent, false},
		{"true", tokBool, true},
		{"false", tokBool, false},
		{"yes", tokBool, true},
		{"no", tokBool, false},
	}
	for _, tt := range tests {
		tok := newCLexer(tt.in).next()
		if tok.kind != tt.wantKind {
			t.Errorf("next(%q).kind = %v, want %v", tt.in, tok.kind, tt.wantKind)
			continue
		}
		if tok.kind == tokBool && tok.bval != tt.wantBool {
			t.Errorf("next(%q).bval = %v, want %v", tt.in, tok.bval, tt.wantBool)
		}
	}
}

func TestLexNumbers(t *testing.T) {
	tests := []struct {
		in       string
		wantKind tokKind
		wantInt  int64
		wantNum  float64
	}{
		{"42", tokInt, 42, 0},
		{"-7", tokInt, -7, 0},
		{"0x1F", tokInt, 31, 0},
		{"3.5", tokNumber, 0, 3.5},
		{"-3.5", tokNumber, 0, -3.5},
		{"1e3", tokNumber, 0, 1000},
		{"Infinity", tokNumber, 0, math.Inf(1)},
		{"-Infinity", tokNumber, 0, math.Inf(-1)},
		{"inf", tokNumber, 0, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tok := newCLexer(tt.in).next()
			if tok.kind != tt.wantKind {
				t.Fatalf("next(%q).kind = %v, want %v", tt.in, tok.kind, tt.wantKind)
			}
			switch tt.wantKind {
			case tokInt:
				if tok.ival != tt.wantInt {
					t.Errorf("next(%q).ival = %d, want %d", tt.in, tok.ival, tt.wantInt)
				}
			case tokNumber:
				if tok.fval != tt.wantNum && !(math.IsInf(tok.fval, 0) && tok.fval == tt.wantNum) {
					t.Errorf("next(%q).fval = %v, want %v", tt.in, tok.fval, tt.wantNum)
				}
			}
		})
	}
}

func TestLexNumberNaN(t *testing.T) {
	tok := newCLexer("NaN").next()
	if tok.kind != tokNumber || !math.IsNaN(tok.fval) {
		t.Errorf("next(NaN) = %+v, want a NaN tokNumber", tok)
	}
}

func TestLexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"hello"`, "hello"},
		{`'hello'`, "hello"},
		{`"it""s"`, `it"s`},
	}
	for _, tt := range tests {
		tok := newCLexer(tt.in).next()
		if tok.kind != tokString || tok.text != tt.want {
			t.Errorf("next(%q) = %+v, want tokString %q", tt.in, tok, tt.want)
		}
	}
}

func TestLexStringUnterminated(t *testing.T) {
	tok := newCLexer(`"hello`).next()
	if tok.kind != tokError {
		t.Errorf("next(unterminated string) = %+v, want tokError", tok)
	}
}

func TestLexSequence(t *testing.T) {
	l := newCLexer("a = 1")
	kinds := []tokKind{tokIdent, tokEq, tokInt, tokEOF}
	for i, want := range kinds {
		if got := l.next().kind; got != want {
			t.Errorf("token %d: got %v, want %v", i, got, want)
		}
	}
}
