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
	"io"
	"os"

	"github.com/tildetoolkit/gocfg/pkg/pathsearch"
)

// openFile opens path for reading using the default OS filesystem. It is
// used by ReadFile; include files are opened by openInclude instead.
func openFile(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// doInclude resolves and parses the file named by an `%include = "..."`
// directive, splicing its top-level items directly into target (an
// %include is textually equivalent to pasting the included file's
// contents in place, per spec.md §4.C).
//
// Cycle detection walks p.includeStack, the list of files currently open
// on the inclusion chain leading to this point. The error is reported at
// line, the line of the offending (inner) %include statement, not the
// line of the file that started the chain -- matching
// original_source/src/pathsearch.c's resolve-at-point-of-failure
// behavior, confirmed against spec.md's scenario 3 (a.cfg including
// b.cfg including a.cfg reports the cycle from b.cfg's %include line).
func (p *parser) doInclude(target *Value, name string, line int) error {
	resolved, rc, err := p.openInclude(name)
	if err != nil {
		return p.errAt(ErrIO, line, name)
	}
	defer rc.Close()

	for _, already := range p.includeStack {
		if already == resolved {
			return p.errAt(ErrRecursiveInclude, line, resolved)
		}
	}

	data, err := io.ReadAll(rc)
	if err != nil {
		return p.errAt(ErrIO, line, name)
	}

	child := &parser{
		opts:         p.opts,
		lex:          newLexer(string(data)),
		fileName:     resolved,
		file:         &fileRef{name: resolved},
		includeStack: append(append([]string{}, p.includeStack...), resolved),
	}
	return child.parseItems(target, false)
}

// openInclude locates the named include file, using Options.OpenInclude if
// supplied, else pkg/pathsearch against Options.SearchPath.
func (p *parser) openInclude(name string) (resolvedName string, rc io.ReadCloser, err error) {
	if p.opts.OpenInclude != nil {
		rc, err := p.opts.OpenInclude(name, p.opts.Opaque)
		return name, rc, err
	}
	f, resolved, err := pathsearch.Open(name, p.opts.SearchPath, p.opts.SplitPath, p.opts.CleanName)
	if err != nil {
		return name, nil, err
	}
	return resolved, f, nil
}
