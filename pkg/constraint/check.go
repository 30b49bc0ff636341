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

package constraint

import "github.com/tildetoolkit/gocfg/pkg/config"

// TypeContext supplies the static type information the checker needs to
// type-check IDENT and '%' operands, mirroring
// original_source/src/expression.c's operand_type_meta: it consults the
// enclosing schema node's allowed-keys (by name) or item-type.
type TypeContext interface {
	// KeyType returns the declared type of name under the enclosing
	// schema node (via allowed-keys or item-type), and whether it could
	// be determined at all.
	KeyType(name string) (config.Kind, bool)
	// CurrentType returns the declared type of the enclosing scalar key
	// itself, for a '%' operand; ok is false outside a scalar context.
	CurrentType() (config.Kind, bool)
}

// Validate statically type-checks e in ctx, as required before a schema is
// accepted (spec.md §4.E, "Static check"). It returns an error describing
// the first problem found; the caller maps this to InvalidConstraint.
func (e *Expr) Validate(ctx TypeContext) error {
	switch e.kind {
	case nOr, nXor, nAnd:
		if err := e.left.Validate(ctx); err != nil {
			return err
		}
		return e.right.Validate(ctx)
	case nNot:
		return e.left.Validate(ctx)
	case nRel:
		lt, lok := staticType(e.left, ctx)
		rt, rok := staticType(e.right, ctx)
		if !lok || !rok || lt != rt {
			return errInvalidConstraint("mismatched or unresolvable operand types")
		}
		switch lt {
		case config.KindString, config.KindBool:
			if e.op != relEq && e.op != relNe {
				return errInvalidConstraint("strings and booleans support only = and !=")
			}
			return nil
		case config.KindInt, config.KindNumber:
			return nil
		default:
			return errInvalidConstraint("operand type does not support comparison")
		}
	case nIdent:
		if _, ok := ctx.KeyType(e.ident); !ok {
			return errInvalidConstraint("unknown identifier " + e.ident)
		}
		return nil
	case nPercent:
		if _, ok := ctx.CurrentType(); !ok {
			return errInvalidConstraint("'%' used outside a scalar constraint")
		}
		return nil
	case nPath, nCountAll, nCountPath, nIntConst, nNumberConst, nStringConst, nBoolConst:
		return nil
	default:
		return errInvalidConstraint("unrecognized constraint expression")
	}
}

// staticType infers e's type for the purposes of comparison type-checking.
// Paths are not locally resolvable against a single schema node (their
// target may live several sections away), so they report "unknown" here,
// and Validate therefore rejects a comparison with a path operand; a bare
// path (a presence test) is still accepted. Counting forms are always Int.
func staticType(e *Expr, ctx TypeContext) (config.Kind, bool) {
	switch e.kind {
	case nIntConst:
		return config.KindInt, true
	case nNumberConst:
		return config.KindNumber, true
	case nStringConst:
		return config.KindString, true
	case nBoolConst:
		return config.KindBool, true
	case nIdent:
		return ctx.KeyType(e.ident)
	case nPercent:
		return ctx.CurrentType()
	case nCountAll, nCountPath:
		return config.KindInt, true
	default:
		return config.KindNone, false
	}
}

type invalidConstraintError string

func (e invalidConstraintError) Error() string { return string(e) }

func errInvalidConstraint(msg string) error { return invalidConstraintError(msg) }
