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

import (
	_ "embed"
	"io"
	"sync"

	"github.com/tildetoolkit/gocfg/pkg/config"
)

//go:embed meta_schema.cfg
var metaSchemaSource string

var (
	metaOnce   sync.Once
	metaSchema *config.Value
	metaErr    error
)

// compiledMetaSchema lazily parses and compiles the built-in meta-schema
// exactly once, the Go equivalent of original_source/src/schema.c's
// static meta_schema_buffer (there generated at build time from
// meta_schema.bytes; here embedded as source text and compiled on first
// use, since this module's reader already does the job the original's
// separate code generator performed).
func compiledMetaSchema() (*config.Value, error) {
	metaOnce.Do(func() {
		root, err := config.Parse(metaSchemaSource, "<meta-schema>", config.Options{})
		if err != nil {
			metaErr = err
			return
		}
		if err := compileConstraints(config.Options{}, root, root.Get("types")); err != nil {
			metaErr = err
			return
		}
		if err := config.MarkSchema(root); err != nil {
			metaErr = err
			return
		}
		metaSchema = root
	})
	return metaSchema, metaErr
}

// Load reads r as a schema document and validates it into a usable schema
// (spec.md §4.E):
//
//  1. parse the document,
//  2. validate its shape against the compiled-in meta-schema,
//  3. reject a recursive `types` definition,
//  4. compile and type-check every constraint, replacing each constraint
//     string in place with its compiled form,
//  5. retag the root as config.KindSchema.
//
// The returned *config.Value is ready to pass to Validate.
func Load(r io.Reader, fileName string, opts config.Options) (*config.Value, error) {
	candidate, err := config.Read(r, fileName, opts)
	if err != nil {
		return nil, err
	}
	return finishLoad(candidate, opts)
}

// LoadFile opens and loads the named schema file.
func LoadFile(path string, opts config.Options) (*config.Value, error) {
	candidate, err := config.ReadFile(path, opts)
	if err != nil {
		return nil, err
	}
	return finishLoad(candidate, opts)
}

func finishLoad(candidate *config.Value, opts config.Options) (*config.Value, error) {
	meta, err := compiledMetaSchema()
	if err != nil {
		return nil, err
	}
	if err := Validate(candidate, meta, opts); err != nil {
		return nil, err
	}

	types := candidate.Get("types")
	if line, name, looped := hasLoops(types); looped {
		return nil, newSchemaError(opts, config.ErrRecursiveType, line, name)
	}

	if err := compileConstraints(opts, candidate, types); err != nil {
		return nil, err
	}

	if err := config.MarkSchema(candidate); err != nil {
		return nil, err
	}
	return candidate, nil
}
