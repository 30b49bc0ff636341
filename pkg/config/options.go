// Copyright 2017 Google Inc.
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

import "io"

// Options controls the behavior of Read and ReadFile.
type Options struct {
	// VerboseError populates the Extra field of any returned *Error with
	// contextual text (key name, constraint label, or type name).
	VerboseError bool
	// ErrorFileName populates the FileName field of any returned *Error.
	ErrorFileName bool

	// IncludeDefault enables %include directives, resolving file names via
	// SearchPath using pkg/pathsearch.
	IncludeDefault bool
	// SearchPath is the list of directories consulted when IncludeDefault is
	// set. An absolute name is used directly unless CleanName rejects it.
	SearchPath []string
	// CleanName rejects absolute include names and names containing any
	// ".." path segment.
	CleanName bool
	// SplitPath treats each SearchPath entry as a colon/semicolon separated
	// list of directories in its own right.
	SplitPath bool

	// IncludeUser enables %include directives, resolving file names by
	// invoking OpenInclude instead of searching SearchPath.
	IncludeUser bool
	// OpenInclude is called for every %include directive when IncludeUser
	// is set. It returns the stream to parse, or an error.
	OpenInclude func(name string, opaque interface{}) (io.ReadCloser, error)
	// Opaque is passed verbatim to OpenInclude.
	Opaque interface{}
}

// includesEnabled reports whether any include mechanism is active.
func (o Options) includesEnabled() bool {
	return o.IncludeDefault || o.IncludeUser
}
