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
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

func TestParseBasic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want func(t *testing.T, root *Value)
	}{{
		name: "scalars",
		in: `flag = true
count = 42
pi = 3.5
label = "hello"
`,
		want: func(t *testing.T, root *Value) {
			if !root.Get("flag").Bool() {
				t.Error("flag: got false, want true")
			}
			if got := root.Get("count").Int(); got != 42 {
				t.Errorf("count: got %d, want 42", got)
			}
			if got := root.Get("pi").Number(); got != 3.5 {
				t.Errorf("pi: got %v, want 3.5", got)
			}
			if got := root.Get("label").String(); got != "hello" {
				t.Errorf("label: got %q, want hello", got)
			}
		},
	}, {
		name: "nested section",
		in: `outer {
	inner {
		x = 1
	}
}
`,
		want: func(t *testing.T, root *Value) {
			inner := root.Get("outer").Get("inner")
			if inner.Kind() != KindSection {
				t.Fatalf("inner: got kind %v, want Section", inner.Kind())
			}
			if got := inner.Get("x").Int(); got != 1 {
				t.Errorf("x: got %d, want 1", got)
			}
		},
	}, {
		name: "list and plist",
		in: `nums = ( 1, 2, 3 )
%tag = "a"
%tag = "b"
`,
		want: func(t *testing.T, root *Value) {
			nums := root.Get("nums")
			if nums.Kind() != KindList || nums.Len() != 3 {
				t.Fatalf("nums: got kind %v len %d, want List len 3", nums.Kind(), nums.Len())
			}
			tag := root.Get("tag")
			if tag.Kind() != KindPlist || tag.Len() != 2 {
				t.Fatalf("tag: got kind %v len %d, want Plist len 2", tag.Kind(), tag.Len())
			}
			if got := tag.GetIndex(0).String(); got != "a" {
				t.Errorf("tag[0]: got %q, want a", got)
			}
		},
	}, {
		name: "comment and blank lines ignored",
		in: "# a comment\n\nx = 1 # trailing\n",
		want: func(t *testing.T, root *Value) {
			if got := root.Get("x").Int(); got != 1 {
				t.Errorf("x: got %d, want 1", got)
			}
		},
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse(tt.in, "test", Options{})
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			tt.want(t, root)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantKind ErrorKind
	}{
		{"duplicate key", "x = 1\nx = 2\n", ErrDuplicateKey},
		{"plist collides with key", "x = 1\n%x = 2\n", ErrDuplicateKey},
		{"bad syntax", "x = \n", ErrParseError},
		{"unterminated section", "x {\n", ErrParseError},
		{"int out of range", "x = 99999999999999999999\n", ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in, "test", Options{})
			if err == nil {
				t.Fatal("Parse: got nil error, want one")
			}
			cerr, ok := err.(*Error)
			if !ok {
				t.Fatalf("Parse: got error of type %T, want *Error", err)
			}
			if cerr.Kind != tt.wantKind {
				want := &Error{Kind: tt.wantKind, Line: cerr.Line, Extra: cerr.Extra, FileName: cerr.FileName}
				t.Errorf("Parse: wrong error kind, diff(-got,+want):\n%s", pretty.Compare(cerr, want))
			}
		})
	}
}

func openFromMap(files map[string]string) func(string, interface{}) (io.ReadCloser, error) {
	return func(name string, _ interface{}) (io.ReadCloser, error) {
		data, ok := files[name]
		if !ok {
			return nil, errors.New("not found")
		}
		return io.NopCloser(strings.NewReader(data)), nil
	}
}

func TestParseInclude(t *testing.T) {
	files := map[string]string{
		"a.cfg": "top = 1\n%include = \"b.cfg\"\n",
		"b.cfg": "nested = 2\n",
	}
	root, err := Parse(files["a.cfg"], "a.cfg", Options{
		IncludeUser: true,
		OpenInclude: openFromMap(files),
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := root.Get("top").Int(); got != 1 {
		t.Errorf("top: got %d, want 1", got)
	}
	if got := root.Get("nested").Int(); got != 2 {
		t.Errorf("nested: got %d, want 2", got)
	}
}

func TestParseIncludeCycle(t *testing.T) {
	files := map[string]string{
		"a.cfg": "%include = \"b.cfg\"\n",
		"b.cfg": "%include = \"a.cfg\"\n",
	}
	_, err := Parse(files["a.cfg"], "a.cfg", Options{
		IncludeUser: true,
		OpenInclude: openFromMap(files),
	})
	cerr, ok := err.(*Error)
	if !ok {
		t.Fatalf("Parse: got error %v (%T), want *Error", err, err)
	}
	if cerr.Kind != ErrRecursiveInclude {
		want := &Error{Kind: ErrRecursiveInclude, Line: cerr.Line, Extra: cerr.Extra, FileName: cerr.FileName}
		t.Errorf("Parse: wrong error kind, diff(-got,+want):\n%s", pretty.Compare(cerr, want))
	}
}
