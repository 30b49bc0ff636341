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

// nodeCtx implements constraint.TypeContext against a single schema node
// (a "types" entry, an "allowed-keys" entry, or the schema root), mirroring
// original_source/src/expression.c's operand_type_meta, which consults
// exactly the same two sources.
type nodeCtx struct {
	node  *config.Value
	types *config.Value
}

func (c *nodeCtx) KeyType(name string) (config.Kind, bool) {
	if allowed := c.node.Get("allowed-keys"); allowed != nil {
		key := allowed.Get(name)
		if key == nil {
			return config.KindNone, false
		}
		b, _ := resolveType(key.Get("type").String(), c.types, key)
		return kindFromBasic(b), true
	}
	if itemType := c.node.Get("item-type"); itemType != nil {
		b, _ := resolveType(itemType.String(), c.types, nil)
		return kindFromBasic(b), true
	}
	return config.KindNone, false
}

func (c *nodeCtx) CurrentType() (config.Kind, bool) {
	typeNode := c.node.Get("type")
	if typeNode == nil {
		return config.KindNone, false
	}
	b, _ := resolveType(typeNode.String(), c.types, c.node)
	switch k := kindFromBasic(b); k {
	case config.KindBool, config.KindInt, config.KindString, config.KindNumber:
		return k, true
	}
	return config.KindNone, false
}

// compileConstraints parses, type-checks, and in-place replaces every
// "constraint" string reachable from node (spec.md §4.E step 4), recursing
// into every nested schema-part section the way
// original_source/src/schema.c's parse_constraints does: a node's own
// "constraint" list is compiled against node's own context, then every
// Section-kind child of node is visited in turn (this naturally walks both
// `types` entries and nested `allowed-keys` entries without special-casing
// either).
func compileConstraints(opts config.Options, node, types *config.Value) error {
	if clist := node.Get("constraint"); clist != nil {
		ctx := &nodeCtx{node: node, types: types}
		for c := clist.Get(""); c != nil; c = c.Next() {
			if c.Kind() != config.KindString {
				continue
			}
			text := c.String()
			line := c.Line()
			expr, err := constraint.Parse(text)
			if err != nil {
				return newSchemaError(opts, config.ErrInvalidConstraint, line, text)
			}
			if err := expr.Expr.Validate(ctx); err != nil {
				return newSchemaError(opts, config.ErrInvalidConstraint, line, err.Error())
			}
			label := expr.Label
			if label == "" {
				label = text
			}
			compiled := config.NewExpression("", expr, label)
			if err := clist.ReplaceInPlace(c, compiled); err != nil {
				return err
			}
			c = compiled
		}
	}
	for child := node.Get(""); child != nil; child = child.Next() {
		if child.Kind() != config.KindSection {
			continue
		}
		if err := compileConstraints(opts, child, types); err != nil {
			return err
		}
	}
	return nil
}
