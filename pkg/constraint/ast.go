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

// nodeKind identifies the shape of an Expr node, mirroring
// original_source/src/parser.y's expr_node_t tag, extended with the path,
// percent, and count forms spec.md's grammar adds beyond the original.
type nodeKind int

const (
	nOr nodeKind = iota
	nXor
	nAnd
	nNot
	nRel // op in {=, !=, <, <=, >, >=}
	nIntConst
	nNumberConst
	nStringConst
	nBoolConst
	nIdent
	nPath
	nPercent
	nCountAll  // #(k1, k2, ...)
	nCountPath // # path
)

type relOp int

const (
	relEq relOp = iota
	relNe
	relLt
	relLe
	relGt
	relGe
)

func (o relOp) String() string {
	switch o {
	case relEq:
		return "="
	case relNe:
		return "!="
	case relLt:
		return "<"
	case relLe:
		return "<="
	case relGt:
		return ">"
	case relGe:
		return ">="
	default:
		return "?"
	}
}

// pathSegment is either a literal key name (bracket == false) or a
// bracket-dereferenced one: the named sibling's string value supplies the
// actual key name to descend into (spec.md §4.E, "Bracket segments [k]
// dereference a sibling whose value must be a string; the string names the
// next path step").
type pathSegment struct {
	name    string
	bracket bool
}

// path is a sequence of segments, optionally rooted at the document root
// (a leading '/').
type path struct {
	absolute bool
	segments []pathSegment
}

// Expr is a compiled constraint expression.
type Expr struct {
	kind nodeKind

	left, right *Expr // nOr, nXor, nAnd, nNot (left only), nRel
	op          relOp

	ival int64
	fval float64
	sval string
	bval bool

	ident string // nIdent
	p     path   // nPath, nCountPath
	idents []string // nCountAll
}

// Expression is a compiled constraint together with its human-readable
// `{label}` prefix; Label is "" when the source supplied none (pkg/schema
// then uses the constraint source text as the diagnostic description).
type Expression struct {
	Expr  *Expr
	Label string
}
