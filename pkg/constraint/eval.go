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

// EvalContext supplies the three reference points a constraint evaluates
// against: Section is where a bare IDENT or a relative path begins its
// lookup (spec.md: "an IDENT ... is present in the subject section"), Root
// is where an absolute ('/...') path begins, and Current is the scalar
// node a '%' refers to -- nil outside a scalar's own `%constraint`.
//
// This three-way split has no analog in original_source/src/expression.c,
// whose grammar only ever evaluates against a single `config` node (it has
// no path, '%', or '#' operators at all); it is this module's own design
// to support spec.md's richer grammar, recorded in DESIGN.md.
type EvalContext struct {
	Section *config.Value
	Current *config.Value
	Root    *config.Value
}

// Evaluate reports whether e holds against ctx, implementing the
// short-circuit order of original_source/src/expression.c's
// _t3_config_evaluate_expr (AND/OR short-circuit, XOR does not) extended
// with this grammar's path/percent/count forms.
func (e *Expr) Evaluate(ctx *EvalContext) bool {
	switch e.kind {
	case nOr:
		return e.left.Evaluate(ctx) || e.right.Evaluate(ctx)
	case nXor:
		return e.left.Evaluate(ctx) != e.right.Evaluate(ctx)
	case nAnd:
		return e.left.Evaluate(ctx) && e.right.Evaluate(ctx)
	case nNot:
		return !e.left.Evaluate(ctx)
	case nRel:
		return evalRel(e, ctx)
	case nIdent:
		return resolveNode(ctx.Section, e.ident) != nil
	case nPath:
		return resolvePath(ctx, e.p) != nil
	case nPercent:
		return ctx.Current != nil
	case nCountAll:
		n := 0
		for _, id := range e.idents {
			if resolveNode(ctx.Section, id) != nil {
				n++
			}
		}
		return n != 0
	case nCountPath:
		return countAt(ctx, e.p) != 0
	case nBoolConst:
		return e.bval
	case nIntConst:
		return e.ival != 0
	case nNumberConst:
		return e.fval != 0
	case nStringConst:
		return e.sval != ""
	default:
		return false
	}
}

func resolveNode(section *config.Value, name string) *config.Value {
	if section == nil {
		return nil
	}
	return section.Get(name)
}

// resolvePath walks p from ctx.Root or ctx.Section, following bracket
// segments by dereferencing a string-valued sibling for the next step
// name (spec.md §4.E).
func resolvePath(ctx *EvalContext, p path) *config.Value {
	cur := ctx.Section
	if p.absolute {
		cur = ctx.Root
	}
	for _, seg := range p.segments {
		if cur == nil {
			return nil
		}
		name := seg.name
		if seg.bracket {
			ref := cur.Get(seg.name)
			if ref.Kind() != config.KindString {
				return nil
			}
			name = ref.String()
		}
		cur = cur.Get(name)
	}
	return cur
}

func countAt(ctx *EvalContext, p path) int {
	v := resolvePath(ctx, p)
	return v.Len()
}

// isPresent mirrors original_source/src/expression.c's is_present: only an
// identifier-like operand (IDENT or the path forms this grammar adds) can
// be "absent"; every other operand kind is always considered present.
func isPresent(e *Expr, ctx *EvalContext) bool {
	switch e.kind {
	case nIdent:
		return resolveNode(ctx.Section, e.ident) != nil
	case nPath:
		return resolvePath(ctx, e.p) != nil
	default:
		return true
	}
}

func operandType(e *Expr, ctx *EvalContext) config.Kind {
	switch e.kind {
	case nStringConst:
		return config.KindString
	case nIntConst:
		return config.KindInt
	case nNumberConst:
		return config.KindNumber
	case nBoolConst:
		return config.KindBool
	case nIdent:
		return resolveNode(ctx.Section, e.ident).Kind()
	case nPath:
		return resolvePath(ctx, e.p).Kind()
	case nPercent:
		return ctx.Current.Kind()
	case nCountAll, nCountPath:
		return config.KindInt
	default:
		return config.KindNone
	}
}

func stringOperand(e *Expr, ctx *EvalContext) string {
	if e.kind == nIdent {
		return resolveNode(ctx.Section, e.ident).String()
	}
	if e.kind == nPath {
		return resolvePath(ctx, e.p).String()
	}
	if e.kind == nPercent {
		return ctx.Current.String()
	}
	return e.sval
}

func boolOperand(e *Expr, ctx *EvalContext) bool {
	if e.kind == nIdent {
		return resolveNode(ctx.Section, e.ident).Bool()
	}
	if e.kind == nPath {
		return resolvePath(ctx, e.p).Bool()
	}
	if e.kind == nPercent {
		return ctx.Current.Bool()
	}
	return e.bval
}

func intOperand(e *Expr, ctx *EvalContext) int64 {
	switch e.kind {
	case nIdent:
		return resolveNode(ctx.Section, e.ident).Int()
	case nPath:
		return resolvePath(ctx, e.p).Int()
	case nPercent:
		return ctx.Current.Int()
	case nCountAll:
		n := int64(0)
		for _, id := range e.idents {
			if resolveNode(ctx.Section, id) != nil {
				n++
			}
		}
		return n
	case nCountPath:
		return int64(countAt(ctx, e.p))
	default:
		return e.ival
	}
}

func numberOperand(e *Expr, ctx *EvalContext) float64 {
	if e.kind == nIdent {
		return resolveNode(ctx.Section, e.ident).Number()
	}
	if e.kind == nPath {
		return resolvePath(ctx, e.p).Number()
	}
	if e.kind == nPercent {
		return ctx.Current.Number()
	}
	return e.fval
}

func evalRel(e *Expr, ctx *EvalContext) bool {
	if !isPresent(e.left, ctx) || !isPresent(e.right, ctx) {
		return false
	}
	typ := operandType(e.left, ctx)
	switch e.op {
	case relLt, relLe, relGt, relGe:
		switch typ {
		case config.KindInt:
			l, r := intOperand(e.left, ctx), intOperand(e.right, ctx)
			return compareOrdered(e.op, float64(l), float64(r))
		case config.KindNumber:
			l, r := numberOperand(e.left, ctx), numberOperand(e.right, ctx)
			return compareOrdered(e.op, l, r)
		default:
			return false
		}
	case relEq, relNe:
		var eq bool
		switch typ {
		case config.KindString:
			eq = stringOperand(e.left, ctx) == stringOperand(e.right, ctx)
		case config.KindBool:
			eq = boolOperand(e.left, ctx) == boolOperand(e.right, ctx)
		case config.KindInt:
			eq = intOperand(e.left, ctx) == intOperand(e.right, ctx)
		case config.KindNumber:
			eq = numberOperand(e.left, ctx) == numberOperand(e.right, ctx)
		default:
			return false
		}
		return eq != (e.op == relNe)
	default:
		return false
	}
}

func compareOrdered(op relOp, l, r float64) bool {
	switch op {
	case relLt:
		return l < r
	case relLe:
		return l <= r
	case relGt:
		return l > r
	case relGe:
		return l >= r
	default:
		return false
	}
}
