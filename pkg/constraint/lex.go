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

// Package constraint implements the constraint mini-language attached to
// schema nodes (spec.md §4.E): a small boolean expression grammar over
// key presence, scalar comparison, path dereference, and sibling counts.
// It is kept as its own package, with its own lexer and parser, rather
// than reusing pkg/config's token set -- the two grammars share little
// beyond scalar literal syntax, and the original t3config library ships
// its constraint compiler (expression.c) as a wholly separate translation
// unit with its own generated scanner for the same reason.
package constraint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokError
	tokIdent
	tokInt
	tokNumber
	tokString
	tokBool

	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokLBrace
	tokRBrace
	tokSlash
	tokComma
	tokPercent
	tokHash
	tokNot
	tokAnd
	tokOr
	tokXor
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
)

type tok struct {
	kind tokKind
	text string
	bval bool
	ival int64
	fval float64
}

type clexer struct {
	input string
	pos   int
}

func newCLexer(input string) *clexer { return &clexer{input: input} }

func (l *clexer) errorf(format string, v ...interface{}) tok {
	return tok{kind: tokError, text: fmt.Sprintf(format, v...)}
}

func (l *clexer) peekByte() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *clexer) skipSpace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\r':
			l.pos++
		default:
			return
		}
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9') || c == '-'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

var reservedBool = map[string]bool{"yes": true, "no": true, "true": true, "false": true}
var boolValue = map[string]bool{"yes": true, "true": true, "no": false, "false": false}

// next returns the next token, consuming it.
func (l *clexer) next() tok {
	l.skipSpace()
	if l.pos >= len(l.input) {
		return tok{kind: tokEOF}
	}
	c := l.input[l.pos]
	switch c {
	case '(':
		l.pos++
		return tok{kind: tokLParen}
	case ')':
		l.pos++
		return tok{kind: tokRParen}
	case '[':
		l.pos++
		return tok{kind: tokLBracket}
	case ']':
		l.pos++
		return tok{kind: tokRBracket}
	case '{':
		l.pos++
		return tok{kind: tokLBrace}
	case '}':
		l.pos++
		return tok{kind: tokRBrace}
	case '/':
		l.pos++
		return tok{kind: tokSlash}
	case ',':
		l.pos++
		return tok{kind: tokComma}
	case '%':
		l.pos++
		return tok{kind: tokPercent}
	case '#':
		l.pos++
		return tok{kind: tokHash}
	case '&':
		l.pos++
		return tok{kind: tokAnd}
	case '|':
		l.pos++
		return tok{kind: tokOr}
	case '^':
		l.pos++
		return tok{kind: tokXor}
	case '!':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return tok{kind: tokNe}
		}
		return tok{kind: tokNot}
	case '=':
		l.pos++
		return tok{kind: tokEq}
	case '<':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return tok{kind: tokLe}
		}
		return tok{kind: tokLt}
	case '>':
		l.pos++
		if l.peekByte() == '=' {
			l.pos++
			return tok{kind: tokGe}
		}
		return tok{kind: tokGt}
	case '"', '\'':
		return l.lexString(c)
	}
	if isDigit(c) || c == '.' || c == '-' || c == '+' {
		return l.lexNumber()
	}
	if isIdentStart(c) {
		return l.lexIdent()
	}
	l.pos++
	return l.errorf("unexpected character %q", c)
}

func (l *clexer) lexString(quote byte) tok {
	l.pos++ // opening quote
	var b strings.Builder
	for {
		if l.pos >= len(l.input) {
			return l.errorf("missing closing %c", quote)
		}
		c := l.input[l.pos]
		if c == quote {
			if l.pos+1 < len(l.input) && l.input[l.pos+1] == quote {
				b.WriteByte(quote)
				l.pos += 2
				continue
			}
			l.pos++
			return tok{kind: tokString, text: b.String()}
		}
		if c == '\n' {
			return l.errorf("newline in string literal")
		}
		b.WriteByte(c)
		l.pos++
	}
}

func (l *clexer) lexIdent() tok {
	start := l.pos
	for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
		l.pos++
	}
	text := l.input[start:l.pos]
	if reservedBool[text] {
		return tok{kind: tokBool, bval: boolValue[text]}
	}
	lower := strings.ToLower(text)
	if lower == "nan" || lower == "inf" || lower == "infinity" {
		f, _ := parseFloatKeyword(lower, false)
		return tok{kind: tokNumber, fval: f}
	}
	return tok{kind: tokIdent, text: text}
}

func parseFloatKeyword(lower string, neg bool) (float64, error) {
	var f float64
	switch lower {
	case "nan":
		f = math.NaN()
	case "inf", "infinity":
		f = math.Inf(1)
	default:
		return 0, fmt.Errorf("not a float keyword")
	}
	if neg {
		f = -f
	}
	return f, nil
}

func (l *clexer) lexNumber() tok {
	start := l.pos
	if c := l.peekByte(); c == '+' || c == '-' {
		l.pos++
	}
	if isIdentStart(l.peekByte()) {
		identStart := l.pos
		for l.pos < len(l.input) && isIdentCont(l.input[l.pos]) {
			l.pos++
		}
		word := strings.ToLower(l.input[identStart:l.pos])
		neg := l.input[start] == '-'
		if word == "nan" || word == "inf" || word == "infinity" {
			f, _ := parseFloatKeyword(word, neg)
			return tok{kind: tokNumber, fval: f}
		}
		return l.errorf("malformed number literal")
	}
	isNumber := false
	if l.peekByte() == '0' && (l.pos+1 < len(l.input)) && (l.input[l.pos+1] == 'x' || l.input[l.pos+1] == 'X') {
		l.pos += 2
		for l.pos < len(l.input) && isHexDigit(l.input[l.pos]) {
			l.pos++
		}
		n, err := strconv.ParseInt(l.input[start:l.pos], 0, 64)
		if err != nil {
			return l.errorf("malformed number literal")
		}
		return tok{kind: tokInt, ival: n}
	}
	for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
		l.pos++
	}
	if l.peekByte() == '.' {
		isNumber = true
		l.pos++
		for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
			l.pos++
		}
	}
	if c := l.peekByte(); c == 'e' || c == 'E' {
		save := l.pos
		l.pos++
		if c2 := l.peekByte(); c2 == '+' || c2 == '-' {
			l.pos++
		}
		if isDigit(l.peekByte()) {
			isNumber = true
			for l.pos < len(l.input) && isDigit(l.input[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}
	text := l.input[start:l.pos]
	if isNumber {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return l.errorf("malformed number literal")
		}
		return tok{kind: tokNumber, fval: f}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return l.errorf("malformed number literal")
	}
	return tok{kind: tokInt, ival: n}
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
