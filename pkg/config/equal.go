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

package config

import "github.com/google/go-cmp/cmp"

// Equal reports whether a and b describe the same tree: same kind, name,
// and payload at every node, in the same child order. It implements the
// round-trip equality law of spec.md §8: a Plist reloads as a Plist, and a
// List and a Plist holding equal elements also compare equal to each other.
// If a or b has following siblings, those are compared as well.
//
// Equal is built on cmp.Equal with a Comparer, the same technique
// pkg/yang/yangtype.go used to compare its own recursive EnumType values
// without tripping over go-cmp's default unexported-field panic. Because the
// Comparer covers every *Value, cmp does not descend into a node's fields
// on its own: valuesEqual compares one node's kind/name/payload and then
// calls cmp.Equal again on a.children/b.children and on a.next/b.next, so
// the recursive, child-order-sensitive walk is driven by valuesEqual.
func Equal(a, b *Value) bool {
	return cmp.Equal(a, b, cmp.Comparer(valuesEqual))
}

func valuesEqual(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name {
		return false
	}
	if !kindsCompatible(a.kind, b.kind) {
		return false
	}
	switch a.kind {
	case KindBool:
		if a.boolVal != b.boolVal {
			return false
		}
	case KindInt:
		if a.intVal != b.intVal {
			return false
		}
	case KindString:
		if a.strVal != b.strVal {
			return false
		}
	case KindNumber:
		if !sameBits(a.numberVal, b.numberVal) {
			return false
		}
	case KindList, KindPlist, KindSection, KindSchema:
		if !cmp.Equal(a.children, b.children, cmp.Comparer(valuesEqual)) {
			return false
		}
	}
	// A node's own equality says nothing about whether it occupies the
	// same position in its parent's child sequence; let cmp continue the
	// walk along the sibling chain so order mismatches are still caught.
	return cmp.Equal(a.next, b.next, cmp.Comparer(valuesEqual))
}

// kindsCompatible treats List and Plist as the same shape for equality, per
// the Plist round-trip caveat: writing a Plist yields repeated "%name = v"
// lines which reload as a Plist again, but a List and a Plist holding
// otherwise-identical elements are also considered equal since nothing
// about their payload differs, only their surface syntax.
func kindsCompatible(a, b Kind) bool {
	if a == b {
		return true
	}
	if (a == KindList || a == KindPlist) && (b == KindList || b == KindPlist) {
		return true
	}
	return false
}

// sameBits compares float64s by bit pattern rather than by ==, so that two
// NaN payloads (which otherwise never compare equal) are treated as equal
// when they round-tripped from the same source, per spec.md §8.
func sameBits(a, b float64) bool {
	return f64bits(a) == f64bits(b)
}
