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
	"github.com/tildetoolkit/gocfg/pkg/config"
	"github.com/tildetoolkit/gocfg/pkg/constraint"
)

// validator holds the state threaded through one Validate call:
// root is the subject's top node (every absolute path in a constraint
// evaluates from here), types is the schema's "types" section, and opts
// controls error verbosity -- the Go equivalent of
// original_source/src/schema.c's validation_context_t.
type validator struct {
	root  *config.Value
	types *config.Value
	opts  config.Options
}

// Validate checks subject against schema, which must be a document
// previously returned by Load or LoadFile, implementing spec.md §4.E's
// validation walk (grounded on original_source/src/schema.c's
// t3_config_validate / validate_aggregate_keys / validate_key /
// validate_constraints):
//
//  1. schema must carry config.KindSchema, otherwise BadArg.
//  2. a subject node's kind must match its schema node's resolved type
//     (a List schema also accepts a Plist subject, and a schema type of
//     "any" matches every kind), otherwise InvalidKeyType.
//  3. a Section schema's subject children must each appear in
//     allowed-keys or, failing that, match the enclosing item-type;
//     otherwise InvalidKey.
//  4. a List/Plist schema with item-type validates every element against
//     the named type.
//  5. every constraint attached at the current level is evaluated against
//     the subject node; the first failure is ConstraintViolation.
func Validate(subject, schema *config.Value, opts config.Options) error {
	if schema.Kind() != config.KindSchema {
		return badArg()
	}
	v := &validator{root: subject, types: schema.Get("types"), opts: opts}
	return v.validateAggregateKeys(subject, schema)
}

// validateKey checks configPart's kind against kind/detail and, for
// container kinds, recurses into its contents.
func (v *validator) validateKey(configPart *config.Value, kind basicType, detail *config.Value) error {
	actual := configPart.Kind()
	ok := kind == bAny ||
		kindFromBasic(kind) == actual ||
		(kind == bList && actual == config.KindPlist)
	if !ok {
		return newSchemaErrorAt(v.opts, config.ErrInvalidKeyType, configPart.Line(), configPart.Name(), configPart.FileName())
	}

	switch {
	case kind == bSection:
		return v.validateAggregateKeys(configPart, detail)
	case kind == bList && detail.Get("item-type") != nil:
		return v.validateAggregateKeys(configPart, detail)
	default:
		return v.validateConstraints(configPart, detail)
	}
}

// validateAggregateKeys checks configPart's children against schemaPart's
// allowed-keys/item-type, then evaluates schemaPart's own constraints
// against configPart as a whole.
func (v *validator) validateAggregateKeys(configPart, schemaPart *config.Value) error {
	allowedKeys := schemaPart.Get("allowed-keys")
	itemType := schemaPart.Get("item-type")

	if allowedKeys != nil || itemType != nil {
		for subPart := configPart.Get(""); subPart != nil; subPart = subPart.Next() {
			var kind basicType
			var detail *config.Value
			switch subSchema := allowedKeys.Get(subPart.Name()); {
			case allowedKeys != nil && subSchema != nil:
				kind, detail = resolveType(subSchema.Get("type").String(), v.types, subSchema)
			case itemType != nil:
				kind, detail = resolveType(itemType.String(), v.types, nil)
			default:
				return newSchemaErrorAt(v.opts, config.ErrInvalidKey, subPart.Line(), subPart.Name(), subPart.FileName())
			}
			if err := v.validateKey(subPart, kind, detail); err != nil {
				return err
			}
		}
	}

	return v.validateConstraints(configPart, schemaPart)
}

// validateConstraints evaluates every compiled constraint attached directly
// to schemaPart against configPart.
func (v *validator) validateConstraints(configPart, schemaPart *config.Value) error {
	for c := schemaPart.Get("constraint").Get(""); c != nil; c = c.Next() {
		if c.Kind() != config.KindExpression {
			continue
		}
		compiled, label := c.Expression()
		expr, ok := compiled.(*constraint.Expression)
		if !ok {
			continue
		}
		ctx := &constraint.EvalContext{Section: configPart, Current: configPart, Root: v.root}
		if !expr.Expr.Evaluate(ctx) {
			return newSchemaErrorAt(v.opts, config.ErrConstraintViolation, configPart.Line(), label, configPart.FileName())
		}
	}
	return nil
}
