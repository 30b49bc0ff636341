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

package schema

import "github.com/tildetoolkit/gocfg/pkg/config"

// newSchemaError builds a *config.Error the same way pkg/config's own
// parser and writer do, so schema-load and validation failures are
// indistinguishable in shape from a parse error to a caller switching on
// Kind.
func newSchemaError(opts config.Options, kind config.ErrorKind, line int, extra string) *config.Error {
	return newSchemaErrorAt(opts, kind, line, extra, "")
}

func newSchemaErrorAt(opts config.Options, kind config.ErrorKind, line int, extra, fileName string) *config.Error {
	e := &config.Error{Kind: kind, Line: line}
	if opts.VerboseError {
		e.Extra = extra
	}
	if opts.ErrorFileName {
		e.FileName = fileName
	}
	return e
}

func badArg() *config.Error { return &config.Error{Kind: config.ErrBadArg} }
