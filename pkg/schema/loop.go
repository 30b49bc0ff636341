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

// hasLoops rejects any `types` entry that transitively names itself via its
// "type" key with no intervening basic type (spec.md §4.E step 3). It
// checks every entry in turn, reporting the first offending declaration's
// line.
//
// original_source/src/schema.c's check_type_for_loop marks visited nodes by
// overwriting their line_number field with a sentinel and restoring it
// afterward; Go has no spare field to borrow for that, so this walk instead
// carries an explicit visited set, as noted in DESIGN.md.
func hasLoops(types *config.Value) (line int, name string, looped bool) {
	if types == nil {
		return 0, "", false
	}
	for entry := types.Get(""); entry != nil; entry = entry.Next() {
		if checkTypeForLoop(entry.Name(), types, map[string]bool{}) {
			return entry.Line(), entry.Name(), true
		}
	}
	return 0, "", false
}

// checkTypeForLoop reports whether following typeName's "type" chain
// through types revisits a name already in visited.
func checkTypeForLoop(typeName string, types *config.Value, visited map[string]bool) bool {
	if visited[typeName] {
		return true
	}
	visited[typeName] = true
	entry := types.Get(typeName)
	if entry == nil {
		// typeName is a basic type (or unresolvable, caught later by
		// resolveType at validation time) -- either way, not a loop.
		return false
	}
	next := entry.Get("type").String()
	if str2type(next) != bNone {
		return false
	}
	return checkTypeForLoop(next, types, visited)
}
