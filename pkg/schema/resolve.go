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

// resolveType walks typeName through types until it bottoms out at a basic
// type, following original_source/src/schema.c's resolve_type: each step
// reads the current candidate's "type" field, and the walk stops as soon as
// that field names a basic type.
//
// The second return is the schema node that carries the nested
// allowed-keys/item-type/constraint for the resolved kind. If typeName
// already names a basic type directly, no indirection through types
// happened, so fallback -- the node the caller read typeName from, e.g. an
// allowed-keys entry, or nil for a bare item-type string -- is returned
// unchanged, exactly as original resolve_type leaves its by-reference
// *schema output untouched on that early-return path.
//
// resolveType assumes types has already passed hasLoops; called on a
// genuinely cyclic chain it would not terminate.
func resolveType(typeName string, types *config.Value, fallback *config.Value) (basicType, *config.Value) {
	if b := str2type(typeName); b != bNone {
		return b, fallback
	}
	for {
		typeSchema := types.Get(typeName)
		if typeSchema == nil {
			return bNone, fallback
		}
		typeName = typeSchema.Get("type").String()
		if b := str2type(typeName); b != bNone {
			return b, typeSchema
		}
	}
}
