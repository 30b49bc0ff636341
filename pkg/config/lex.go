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

// This file implements the lexical tokenization of the configuration
// language (spec.md §4.B). The lexer returns a series of tokens with one of
// the following codes:
//
//    tError      // an error was encountered
//    tEOF        // end of file
//    tString     // a de-quoted string
//    tIdent      // a key-name-grammar identifier
//    tBool       // yes/no/true/false
//    tInt        // a decimal or 0x-prefixed integer literal
//    tNumber     // a floating point literal, or nan/inf/infinity
//    '{' '}' '(' ')' ',' '=' '%' ';' '+' '\n'

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	eof = 0x7fffffff // end of file, also an invalid rune

	openBrace  = '{'
	closeBrace = '}'
	openParen  = '('
	closeParen = ')'
)

// stateFn represents a state in the lexer as a function, returning the next
// state the lexer should move to.
type stateFn func(*lexer) stateFn

// A code is a token code. Single character tokens (punctuation) are
// represented by their Unicode code point.
type code int

const (
	tEOF    = code(-1 - iota) // reached end of file
	tError                    // a lexical error
	tString                   // a de-quoted string
	tIdent                    // a key-name-grammar identifier
	tBool                     // a boolean literal
	tInt                      // an integer literal
	tNumber                   // a floating point literal
)

func (c code) String() string {
	switch c {
	case tEOF:
		return "EOF"
	case tError:
		return "error"
	case tString:
		return "string"
	case tIdent:
		return "identifier"
	case tBool:
		return "bool"
	case tInt:
		return "int"
	case tNumber:
		return "number"
	}
	if c < 0 || c > utf8.MaxRune {
		return fmt.Sprintf("code(%d)", int(c))
	}
	return fmt.Sprintf("%q", rune(c))
}

// token is one lexical unit read from the input. Line is 1-based.
type token struct {
	code code
	text string
	line int
}

func (t *token) Code() code {
	if t == nil {
		return tEOF
	}
	return t.code
}

func (t *token) String() string {
	if t == nil {
		return "<eof>"
	}
	if t.text == "" {
		return fmt.Sprintf("%d: %v", t.line, t.code)
	}
	return fmt.Sprintf("%d: %v %q", t.line, t.code, t.text)
}

// lexer holds the internal state of the lexer. A lexer is used for exactly
// one file or in-memory buffer; nothing here is shared package-level state,
// so two parses may run concurrently on independent trees (spec.md §5, §9).
type lexer struct {
	input string
	start int // start of the unconsumed/current token
	pos   int // scan cursor
	width int // width of the last rune returned by next

	line  int // current line (1-based)
	sline int // line the current token started on

	state stateFn
	items []*token
}

func newLexer(input string) *lexer {
	return &lexer{
		input: input,
		line:  1,
		state: lexGround,
	}
}

// NextToken returns the next token from the input, or a tEOF token once
// exhausted.
func (l *lexer) NextToken() *token {
	for len(l.items) == 0 {
		if l.state == nil {
			return &token{code: tEOF, line: l.line}
		}
		l.state = l.state(l)
	}
	t := l.items[0]
	l.items = l.items[1:]
	return t
}

func (l *lexer) emit(c code) {
	l.emitText(c, l.input[l.start:l.pos])
}

func (l *lexer) emitText(c code, text string) {
	l.items = append(l.items, &token{code: c, text: text, line: l.sline})
	l.consume()
}

func (l *lexer) consume() { l.start = l.pos }

func (l *lexer) backup() {
	l.pos -= l.width
	if l.width > 0 && l.input[l.pos] == '\n' {
		l.line--
	}
}

func (l *lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// peek2 looks at the rune following the next one, without consuming any
// input. It snapshots and restores position directly rather than chaining
// backup() calls, since backup() only supports undoing a single next().
func (l *lexer) peek2() rune {
	savedPos, savedLine, savedWidth := l.pos, l.line, l.width
	l.next()
	r := l.next()
	l.pos, l.line, l.width = savedPos, savedLine, savedWidth
	return r
}

func (l *lexer) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += w
	l.width = w
	if r == '\n' {
		l.line++
	}
	return r
}

func (l *lexer) acceptRun(valid string) bool {
	ret := false
	for strings.IndexRune(valid, l.next()) >= 0 {
		ret = true
	}
	l.backup()
	return ret
}

func (l *lexer) isDigit(r rune) bool { return r >= '0' && r <= '9' }

// errorf records a lexical error as a tError token carrying the message as
// its text and the current token's start line; the parser turns this into a
// *Error when it sees the token.
func (l *lexer) errorf(format string, v ...interface{}) {
	l.emitText(tError, fmt.Sprintf(format, v...))
}

// skipWhitespaceAndComments advances over spaces, tabs, bare/paired CRs
// (CR before LF is ignored at tokenization, per spec.md §6), and '#'
// comments, without consuming newlines (a newline is itself a token).
func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.next()
			continue
		case '#':
			for {
				r := l.next()
				if r == '\n' || r == eof {
					l.backup()
					break
				}
			}
			continue
		}
		return
	}
}

// lexGround is the state when the lexer is not in the middle of a token.
func lexGround(l *lexer) stateFn {
	l.skipWhitespaceAndComments()
	l.consume()
	l.sline = l.line

	switch c := l.peek(); c {
	case eof:
		return nil
	case '\n', ';', openBrace, closeBrace, openParen, closeParen, ',', '=', '%':
		l.next()
		l.emit(code(c))
		return lexGround
	case '+':
		// '+' is only meaningful as string concatenation, unless a digit or
		// '.' follows it: then it starts a signed number literal, handed to
		// lexNumber, which special-cases a leading sign.
		if isDigitOrDot(l.peek2()) {
			return lexNumber
		}
		l.next()
		l.emit(code(c))
		return lexGround
	case '-':
		return lexNumber
	case '"', '\'':
		return lexString
	default:
		if l.isDigit(c) || c == '.' {
			return lexNumber
		}
		if isIdentStart(c) {
			return lexIdentOrKeyword
		}
		l.next()
		l.errorf("unexpected character %q", c)
		return lexGround
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '-'
}

func isDigitOrDot(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.'
}

// lexString handles both '"'- and '\''-delimited strings. The delimiter is
// doubled to embed it literally; newlines inside the delimiters are errors
// (spec.md §4.B).
func lexString(l *lexer) stateFn {
	quote := l.next() // consume opening delimiter
	var text []rune
	for {
		switch r := l.next(); r {
		case eof:
			l.errorf("missing closing %c", quote)
			return nil
		case '\n':
			l.errorf("newline in string literal")
			return lexGround
		case quote:
			if l.peek() == quote {
				l.next()
				text = append(text, quote)
				continue
			}
			l.emitText(tString, string(text))
			return lexGround
		default:
			text = append(text, r)
		}
	}
}

// reservedBool and boolValue classify the boolean reserved words of spec.md
// §3, matched case-sensitively (yes/no/true/false); lexIdentOrKeyword
// matches nan/inf/infinity case-insensitively.
var reservedBool = map[string]bool{"yes": true, "no": true, "true": true, "false": true}
var boolValue = map[string]bool{"yes": true, "true": true, "no": false, "false": false}

// lexIdentOrKeyword reads an identifier and reclassifies it as a boolean or
// number token if it matches a reserved word.
func lexIdentOrKeyword(l *lexer) stateFn {
	l.next() // already know it's an ident start
	for isIdentCont(l.peek()) {
		l.next()
	}
	text := l.input[l.start:l.pos]
	if reservedBool[text] {
		l.emit(tBool)
		return lexGround
	}
	lower := strings.ToLower(text)
	if lower == "nan" || lower == "inf" || lower == "infinity" {
		l.emit(tNumber)
		return lexGround
	}
	l.emit(tIdent)
	return lexGround
}

// lexNumber reads an INT or NUMBER token (spec.md §4.B): optional sign,
// then either decimal/hex digits (INT) or a mandatory '.' with optional
// fraction and exponent (NUMBER).
func lexNumber(l *lexer) stateFn {
	isNumber := false
	if c := l.peek(); c == '+' || c == '-' {
		l.next()
	}
	if isIdentStart(l.peek()) {
		// A signed nan/inf/infinity keyword (the writer emits "-Infinity",
		// which must round-trip back through the reader).
		for isIdentCont(l.peek()) {
			l.next()
		}
		word := strings.ToLower(l.input[l.start:l.pos])
		word = strings.TrimLeft(word, "+-")
		if word == "nan" || word == "inf" || word == "infinity" {
			l.emit(tNumber)
			return lexGround
		}
		l.errorf("malformed number literal")
		return lexGround
	}
	if !l.isDigit(l.peek()) && l.peek() != '.' {
		l.errorf("malformed number literal")
		return lexGround
	}
	if l.peek() == '0' {
		l.next()
		if c := l.peek(); c == 'x' || c == 'X' {
			l.next()
			l.acceptRun("0123456789abcdefABCDEF")
			l.emit(tInt)
			return lexGround
		}
	}
	l.acceptRun("0123456789")
	if l.peek() == '.' {
		isNumber = true
		l.next()
		l.acceptRun("0123456789")
	}
	if c := l.peek(); c == 'e' || c == 'E' {
		save := l.pos
		l.next()
		if c2 := l.peek(); c2 == '+' || c2 == '-' {
			l.next()
		}
		if l.isDigit(l.peek()) {
			isNumber = true
			l.acceptRun("0123456789")
		} else {
			l.pos = save
		}
	}
	if isNumber {
		l.emit(tNumber)
	} else {
		l.emit(tInt)
	}
	return lexGround
}
