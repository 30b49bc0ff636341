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

// Package schema implements the meta-schema-validated schema loader and
// validator of spec.md §4.E: loading a schema document, resolving
// user-defined types, and checking a subject configuration against it.
package schema

import "github.com/tildetoolkit/gocfg/pkg/config"

// basicType is the small set of type names a schema's "type" field may
// name directly (as opposed to naming a user-defined entry in "types"),
// mirroring original_source/src/config_internal.h's t3_config_type_t.
type basicType int

const (
	bNone basicType = iota
	bBool
	bInt
	bString
	bNumber
	bList
	bSection
	bAny
)

var basicTypeNames = map[string]basicType{
	"bool":    bBool,
	"int":     bInt,
	"string":  bString,
	"number":  bNumber,
	"list":    bList,
	"section": bSection,
	"any":     bAny,
}

func str2type(name string) basicType {
	return basicTypeNames[name]
}

// kindFromBasic maps a resolved basicType to the config.Kind it requires a
// subject node to have. bAny and bNone both report config.KindNone: bAny
// because it matches every kind (handled as a special case in validateKey,
// not by kind equality), bNone because it denotes "could not resolve" and
// callers treat it the same way for static type-checking purposes.
func kindFromBasic(b basicType) config.Kind {
	switch b {
	case bBool:
		return config.KindBool
	case bInt:
		return config.KindInt
	case bString:
		return config.KindString
	case bNumber:
		return config.KindNumber
	case bList:
		return config.KindList
	case bSection:
		return config.KindSection
	default:
		return config.KindNone
	}
}
