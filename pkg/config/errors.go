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

import "fmt"

// ErrorKind identifies the category of a configuration error, matching the
// taxonomy of the reader, writer, and schema engine.
type ErrorKind int

// The error kinds surfaced by this module and by pkg/schema.
const (
	ErrNone ErrorKind = iota
	ErrOutOfMemory
	ErrBadArg
	ErrIO
	ErrParseError
	ErrDuplicateKey
	ErrOutOfRange
	ErrRecursiveInclude
	ErrInvalidKey
	ErrInvalidKeyType
	ErrConstraintViolation
	ErrInvalidConstraint
	ErrRecursiveType
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "no error"
	case ErrOutOfMemory:
		return "out of memory"
	case ErrBadArg:
		return "bad argument"
	case ErrIO:
		return "I/O error"
	case ErrParseError:
		return "parse error"
	case ErrDuplicateKey:
		return "duplicate key"
	case ErrOutOfRange:
		return "value out of range"
	case ErrRecursiveInclude:
		return "recursive include"
	case ErrInvalidKey:
		return "invalid key"
	case ErrInvalidKeyType:
		return "invalid key type"
	case ErrConstraintViolation:
		return "constraint violation"
	case ErrInvalidConstraint:
		return "invalid constraint"
	case ErrRecursiveType:
		return "recursive type"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the structured error record returned by this module and by
// pkg/schema. Extra and FileName are populated only when the Options that
// produced the error requested VerboseError / ErrorFileName respectively.
type Error struct {
	Kind     ErrorKind
	Line     int
	Extra    string
	FileName string
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.FileName != "" && e.Line > 0:
		loc = fmt.Sprintf("%s:%d: ", e.FileName, e.Line)
	case e.Line > 0:
		loc = fmt.Sprintf("%d: ", e.Line)
	case e.FileName != "":
		loc = fmt.Sprintf("%s: ", e.FileName)
	}
	if e.Extra != "" {
		return fmt.Sprintf("%s%s: %s", loc, e.Kind, e.Extra)
	}
	return fmt.Sprintf("%s%s", loc, e.Kind)
}

// newError builds an *Error of the given kind at the given line, applying
// opts to decide whether Extra/FileName are populated.
func newError(opts Options, kind ErrorKind, line int, extra, fileName string) *Error {
	e := &Error{Kind: kind, Line: line}
	if opts.VerboseError {
		e.Extra = extra
	}
	if opts.ErrorFileName {
		e.FileName = fileName
	}
	return e
}
