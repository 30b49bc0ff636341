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
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tildetoolkit/gocfg/pkg/atomicfile"
)

// Write serializes v, which must be a Section (typically the root returned
// by Parse/Read/New), to w in canonical form: tab-indented, one item per
// line, quote-minimized strings, and a forced ".0" suffix on any Number
// whose text would otherwise look like an integer.
func Write(w io.Writer, v *Value) error {
	if v.Kind() != KindSection {
		return &Error{Kind: ErrBadArg}
	}
	bw := bufio.NewWriter(w)
	writeSection(bw, v.children, 0)
	if err := bw.Flush(); err != nil {
		return &Error{Kind: ErrIO}
	}
	return nil
}

// WriteFile atomically replaces path with the canonical serialization of v,
// writing to a temporary sibling file and renaming it into place so that a
// reader never observes a partially written file (spec.md §6).
func WriteFile(path string, v *Value) error {
	f, err := atomicfile.Create(path)
	if err != nil {
		return &Error{Kind: ErrIO}
	}
	if err := Write(f, v); err != nil {
		f.Cancel()
		return err
	}
	if err := f.Commit(); err != nil {
		return &Error{Kind: ErrIO}
	}
	return nil
}

func writeIndent(w *bufio.Writer, indent int) {
	for i := 0; i < indent; i++ {
		w.WriteByte('\t')
	}
}

func writeInt(w *bufio.Writer, value int64) {
	w.WriteString(strconv.FormatInt(value, 10))
}

// writeNumber mirrors original_source/src/write.c's write_number: NaN and
// Infinity are spelled out (with a leading '-' for a negative sign bit, so
// that -0 and negative NaN payloads round-trip), and any value that prints
// without a decimal point has ".0" appended. Go's strconv is always
// locale-independent, so unlike the C original no LC_NUMERIC dance is
// needed here.
func writeNumber(w *bufio.Writer, value float64) {
	if math.IsNaN(value) {
		if math.Signbit(value) {
			w.WriteByte('-')
		}
		w.WriteString("NaN")
		return
	}
	if math.IsInf(value, 0) {
		if value < 0 {
			w.WriteByte('-')
		}
		w.WriteString("Infinity")
		return
	}
	s := strconv.FormatFloat(value, 'g', 18, 64)
	// Unlike write_number, skip the ".0" suffix when the value printed in
	// exponential form: a bare mantissa there is still a valid NUMBER
	// token, but "1e+20.0" is not one our lexer can read back.
	if !strings.ContainsRune(s, '.') && !strings.ContainsAny(s, "eE") {
		s += ".0"
	}
	w.WriteString(s)
}

// writeString quotes value with whichever of '"' or '\'' occurs less often
// in it, doubling that delimiter wherever it occurs so it escapes without
// a backslash -- the same quote-minimization write_string uses.
func writeString(w *bufio.Writer, value string) {
	quote := byte('"')
	if doubleCount := strings.Count(value, `"`); doubleCount != 0 {
		if strings.Count(value, `'`) < doubleCount {
			quote = '\''
		}
	}
	w.WriteByte(quote)
	for i := 0; i < len(value); i++ {
		if value[i] == quote {
			w.WriteByte(quote)
			w.WriteByte(quote)
		} else {
			w.WriteByte(value[i])
		}
	}
	w.WriteByte(quote)
}

// writeValue writes v's payload, with no leading name and no trailing
// newline; indent is the nesting depth to use for a Section/List's own
// inner lines.
func writeValue(w *bufio.Writer, v *Value, indent int) {
	switch v.kind {
	case KindBool:
		if v.boolVal {
			w.WriteString("true")
		} else {
			w.WriteString("false")
		}
	case KindInt:
		writeInt(w, v.intVal)
	case KindNumber:
		writeNumber(w, v.numberVal)
	case KindString:
		writeString(w, v.strVal)
	case KindList, KindPlist:
		w.WriteString("( ")
		first := true
		for c := v.children; c != nil; c = c.next {
			if !first {
				w.WriteString(", ")
			}
			first = false
			writeValue(w, c, indent+1)
		}
		w.WriteString(" )")
	case KindSection:
		w.WriteString("{\n")
		writeSection(w, v.children, indent+1)
		writeIndent(w, indent)
		w.WriteByte('}')
	default:
		panic(fmt.Sprintf("config: cannot write value of kind %v", v.kind))
	}
}

// writeSection writes the children of a Section (or the document root),
// emitting a Plist as repeated "%name = value" lines at the position of
// its single node, and every other item as "name = value" or "name { ...
// }", per original_source/src/write.c's write_section/write_plist.
func writeSection(w *bufio.Writer, children *Value, indent int) {
	for c := children; c != nil; c = c.next {
		if c.kind == KindPlist {
			writePlist(w, c, indent)
			continue
		}
		writeIndent(w, indent)
		w.WriteString(c.name)
		if c.kind == KindSection {
			w.WriteByte(' ')
			writeValue(w, c, indent)
		} else {
			w.WriteString(" = ")
			writeValue(w, c, indent)
		}
		w.WriteByte('\n')
	}
}

func writePlist(w *bufio.Writer, plist *Value, indent int) {
	for c := plist.children; c != nil; c = c.next {
		writeIndent(w, indent)
		w.WriteByte('%')
		w.WriteString(plist.name)
		w.WriteString(" = ")
		writeValue(w, c, indent)
		w.WriteByte('\n')
	}
}
