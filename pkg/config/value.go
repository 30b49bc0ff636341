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

// Package config implements the reader, writer, and in-memory value tree of
// a small human-editable configuration language: a tree of named keys whose
// leaves carry scalars (bool, int, string, number) and whose interior nodes
// are sections (unique-keyed mappings), lists (positional sequences), or
// plists (the repeated "%key = value" syntactic variant of a list).
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Kind identifies the type of payload carried by a Value node.
type Kind int

// The kinds a Value node can hold.
const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindString
	KindNumber
	KindList
	KindSection
	KindPlist
	KindSchema
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindSection:
		return "section"
	case KindPlist:
		return "plist"
	case KindSchema:
		return "schema"
	case KindExpression:
		return "expression"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// reserved words that may never be used as a key name, matched
// case-insensitively as required by the key-name grammar.
var reservedWords = map[string]bool{
	"yes": true, "no": true, "true": true, "false": true,
	"nan": true, "inf": true, "infinity": true,
}

var keyNameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidName reports whether name is a legal key name: it must match
// [A-Za-z_][A-Za-z0-9_-]* and must not equal, case-insensitively, one of the
// reserved words yes/no/true/false/nan/inf/infinity.
func ValidName(name string) bool {
	if !keyNameRE.MatchString(name) {
		return false
	}
	return !reservedWords[strings.ToLower(name)]
}

// fileRef is the shared, reference-counted-by-pointer-identity file-name
// back-reference of spec.md §3. All nodes parsed from the same file or
// include point at the same *fileRef; Go's GC reclaims it once the last
// node referencing it is gone, so no explicit refcount is kept.
type fileRef struct {
	name string
}

// Value is a node of the configuration value tree (spec.md §3, Component A).
// A Value is either a root (owned by the caller) or is reachable as exactly
// one parent's child.
type Value struct {
	kind Kind
	name string // empty when this node has no name (list/plist element)

	boolVal   bool
	intVal    int64
	strVal    string
	numberVal float64

	// exprOperand0/exprOperand1 hold the operands of a KindExpression node: a compiled
	// constraint and the textual description used for diagnostics. This
	// module does not know the constraint AST's concrete type; pkg/schema
	// stores it behind this interface{} to avoid an import cycle.
	exprOperand0 interface{}
	exprOperand1 string

	children    *Value // head of the child list, for List/Plist/Section/Schema
	childrenEnd *Value // tail, for O(1) append
	next        *Value // next sibling

	line int      // 1-based source line, 0 if constructed programmatically
	file *fileRef // nil if constructed programmatically
}

// New creates a new, empty root Section.
func New() *Value {
	return &Value{kind: KindSection}
}

// Kind returns v's kind. A nil Value reports KindNone.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNone
	}
	return v.kind
}

// Name returns v's key name, or "" if v is unnamed (a list/plist element or
// a root).
func (v *Value) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

// Line returns v's 1-based source line number, or 0 for a node that was not
// produced by the parser.
func (v *Value) Line() int {
	if v == nil {
		return 0
	}
	return v.line
}

// FileName returns the name of the file v was parsed from, or "" if v was
// constructed programmatically or has no file back-reference.
func (v *Value) FileName() string {
	if v == nil || v.file == nil {
		return ""
	}
	return v.file.name
}

// Next returns v's next sibling, or nil if v is the last child of its
// parent or has no parent.
func (v *Value) Next() *Value {
	if v == nil {
		return nil
	}
	return v.next
}

// isContainer reports whether v's kind owns a child sequence.
func (k Kind) isContainer() bool {
	switch k {
	case KindList, KindSection, KindPlist, KindSchema:
		return true
	default:
		return false
	}
}

// Len returns the number of children of v. It is 0 for scalars or nil.
func (v *Value) Len() int {
	if v == nil || !v.kind.isContainer() {
		return 0
	}
	n := 0
	for c := v.children; c != nil; c = c.next {
		n++
	}
	return n
}

// Get returns the first child of v (name == ""), or, for a Section parent,
// the named child (name != ""). It returns nil if parent is nil, is not a
// container, or has no matching child. Lists and Plists never match a named
// lookup.
func (v *Value) Get(name string) *Value {
	if v == nil || !v.kind.isContainer() {
		return nil
	}
	if name == "" {
		return v.children
	}
	if v.kind == KindList {
		return nil
	}
	for c := v.children; c != nil; c = c.next {
		if c.name == name {
			return c
		}
	}
	return nil
}

// GetIndex returns the i'th child (0-based) of v, or nil if out of range.
func (v *Value) GetIndex(i int) *Value {
	if v == nil || i < 0 {
		return nil
	}
	c := v.children
	for ; c != nil && i > 0; i-- {
		c = c.next
	}
	return c
}

// Bool returns v's boolean payload, or false if v is nil or not a Bool.
func (v *Value) Bool() bool { return v.BoolDflt(false) }

// BoolDflt returns v's boolean payload, or dflt if v is nil or not a Bool.
func (v *Value) BoolDflt(dflt bool) bool {
	if v == nil || v.kind != KindBool {
		return dflt
	}
	return v.boolVal
}

// Int returns v's integer payload, or 0 if v is nil or not an Int.
func (v *Value) Int() int64 { return v.IntDflt(0) }

// IntDflt returns v's integer payload, or dflt if v is nil or not an Int.
func (v *Value) IntDflt(dflt int64) int64 {
	if v == nil || v.kind != KindInt {
		return dflt
	}
	return v.intVal
}

// Number returns v's floating-point payload, or 0.0 if v is nil or not a
// Number.
func (v *Value) Number() float64 { return v.NumberDflt(0) }

// NumberDflt returns v's floating-point payload, or dflt if v is nil or not
// a Number.
func (v *Value) NumberDflt(dflt float64) float64 {
	if v == nil || v.kind != KindNumber {
		return dflt
	}
	return v.numberVal
}

// String returns v's string payload, or "" if v is nil or not a String.
func (v *Value) String() string { return v.StringDflt("") }

// StringDflt returns v's string payload, or dflt if v is nil or not a
// String.
func (v *Value) StringDflt(dflt string) string {
	if v == nil || v.kind != KindString {
		return dflt
	}
	return v.strVal
}

// appendChild links c as the new last child of parent. c must not already
// be linked.
func (parent *Value) appendChild(c *Value) {
	if parent.children == nil {
		parent.children = c
	} else {
		parent.childrenEnd.next = c
	}
	parent.childrenEnd = c
}

// removeChild unlinks c from parent's child sequence. It is the caller's
// responsibility to ensure c is actually a child of parent.
func (parent *Value) removeChild(c *Value) {
	if parent.children == c {
		parent.children = c.next
		if parent.childrenEnd == c {
			parent.childrenEnd = nil
		}
		c.next = nil
		return
	}
	for p := parent.children; p != nil; p = p.next {
		if p.next == c {
			p.next = c.next
			if parent.childrenEnd == c {
				parent.childrenEnd = p
			}
			c.next = nil
			return
		}
	}
}

// replaceNamed removes and returns the existing child of parent named name,
// if any, so its slot can be replaced by a new add.
func (parent *Value) replaceNamed(name string) *Value {
	existing := parent.Get(name)
	if existing != nil {
		parent.removeChild(existing)
	}
	return existing
}

func validateAddName(parent *Value, name string) error {
	if parent == nil || !parent.kind.isContainer() {
		return &Error{Kind: ErrBadArg}
	}
	switch parent.kind {
	case KindList, KindPlist:
		if name != "" {
			return &Error{Kind: ErrBadArg}
		}
	default:
		if name == "" || !ValidName(name) {
			return &Error{Kind: ErrBadArg}
		}
	}
	return nil
}

func newLeaf(kind Kind, name string) *Value {
	return &Value{kind: kind, name: name}
}

// AddBool appends (or, for an existing name, replaces) a Bool child of
// parent and returns it.
func (parent *Value) AddBool(name string, value bool) (*Value, error) {
	if err := validateAddName(parent, name); err != nil {
		return nil, err
	}
	parent.replaceNamed(name)
	v := newLeaf(KindBool, name)
	v.boolVal = value
	parent.appendChild(v)
	return v, nil
}

// AddInt appends (or replaces) an Int child of parent and returns it.
func (parent *Value) AddInt(name string, value int64) (*Value, error) {
	if err := validateAddName(parent, name); err != nil {
		return nil, err
	}
	parent.replaceNamed(name)
	v := newLeaf(KindInt, name)
	v.intVal = value
	parent.appendChild(v)
	return v, nil
}

// AddNumber appends (or replaces) a Number child of parent and returns it.
func (parent *Value) AddNumber(name string, value float64) (*Value, error) {
	if err := validateAddName(parent, name); err != nil {
		return nil, err
	}
	parent.replaceNamed(name)
	v := newLeaf(KindNumber, name)
	v.numberVal = value
	parent.appendChild(v)
	return v, nil
}

// AddString appends (or replaces) a String child of parent and returns it.
// It fails with ErrBadArg if value contains a newline.
func (parent *Value) AddString(name, value string) (*Value, error) {
	if strings.ContainsAny(value, "\n\r") {
		return nil, &Error{Kind: ErrBadArg}
	}
	if err := validateAddName(parent, name); err != nil {
		return nil, err
	}
	parent.replaceNamed(name)
	v := newLeaf(KindString, name)
	v.strVal = value
	parent.appendChild(v)
	return v, nil
}

// AddList appends (or replaces) an empty List child of parent and returns
// it for further population.
func (parent *Value) AddList(name string) (*Value, error) {
	return parent.addContainer(name, KindList)
}

// AddPlist appends (or replaces) an empty Plist child of parent and returns
// it for further population.
func (parent *Value) AddPlist(name string) (*Value, error) {
	return parent.addContainer(name, KindPlist)
}

// AddSection appends (or replaces) an empty Section child of parent and
// returns it for further population.
func (parent *Value) AddSection(name string) (*Value, error) {
	return parent.addContainer(name, KindSection)
}

func (parent *Value) addContainer(name string, kind Kind) (*Value, error) {
	if err := validateAddName(parent, name); err != nil {
		return nil, err
	}
	parent.replaceNamed(name)
	v := newLeaf(kind, name)
	parent.appendChild(v)
	return v, nil
}

// AddExisting re-parents the orphan node child under parent with the given
// name, renaming it. child must not already be linked to a parent (it must
// have no next-sibling link and must not appear as any container's head);
// this is a lighter check than full ownership tracking, matching the
// original C API's own reliance on the caller not double-linking a node.
func (parent *Value) AddExisting(name string, child *Value) error {
	if child == nil {
		return &Error{Kind: ErrBadArg}
	}
	if err := validateAddName(parent, name); err != nil {
		return err
	}
	if child.next != nil {
		return &Error{Kind: ErrBadArg}
	}
	parent.replaceNamed(name)
	child.name = name
	parent.appendChild(child)
	return nil
}

// Unlink removes and returns the named child of a Section parent, leaving
// it orphaned (no parent, no siblings). It returns nil if there is no such
// child.
func (parent *Value) Unlink(name string) *Value {
	if parent == nil || parent.kind != KindSection {
		return nil
	}
	c := parent.Get(name)
	if c == nil {
		return nil
	}
	parent.removeChild(c)
	return c
}

// UnlinkFromList removes node by identity from any ordered container
// (List, Plist, or Section), leaving it orphaned. It is a no-op if node is
// not a child of container.
func (container *Value) UnlinkFromList(node *Value) {
	if container == nil || node == nil {
		return
	}
	for c := container.children; c != nil; c = c.next {
		if c == node {
			container.removeChild(node)
			return
		}
	}
}

// Erase unlinks and recursively deletes the named child of a Section
// parent.
func (parent *Value) Erase(name string) {
	_ = parent.Unlink(name)
}

// EraseFromList unlinks and recursively deletes node from container.
func (container *Value) EraseFromList(node *Value) {
	container.UnlinkFromList(node)
}

// SetListType switches node between List and Plist without touching its
// children. It returns ErrBadArg, leaving node unchanged, if node is not a
// List or Plist or if newKind is neither.
func (node *Value) SetListType(newKind Kind) error {
	if node == nil || (node.kind != KindList && node.kind != KindPlist) {
		return &Error{Kind: ErrBadArg}
	}
	if newKind != KindList && newKind != KindPlist {
		return &Error{Kind: ErrBadArg}
	}
	node.kind = newKind
	return nil
}

// Predicate is called by Find for each candidate child, along with the data
// passed to Find.
type Predicate func(child *Value, data interface{}) bool

// Find returns the first child of container satisfying pred, starting after
// startFrom if non-nil (so that repeated calls enumerate all matches), or
// from the first child if startFrom is nil.
func (container *Value) Find(pred Predicate, data interface{}, startFrom *Value) *Value {
	if container == nil {
		return nil
	}
	c := container.children
	if startFrom != nil {
		c = startFrom.next
	}
	for ; c != nil; c = c.next {
		if pred(c, data) {
			return c
		}
	}
	return nil
}

// TakeString transfers ownership of node's string payload out, retagging
// node as KindNone in place. It returns "" if node is not a String.
func (node *Value) TakeString() string {
	if node == nil || node.kind != KindString {
		return ""
	}
	s := node.strVal
	node.strVal = ""
	node.kind = KindNone
	return s
}

// MarkSchema retags a Section root as Schema, the final step of schema
// loading (spec.md §4.E step 5) once the document has passed meta-schema
// validation, loop detection, and constraint compilation.
func MarkSchema(v *Value) error {
	if v.Kind() != KindSection {
		return &Error{Kind: ErrBadArg}
	}
	v.kind = KindSchema
	return nil
}

// NewExpression builds a KindExpression node wrapping a schema engine's
// compiled constraint. compiled is opaque to this package (pkg/schema
// stores its own *constraint.Expression behind it, avoiding an import
// cycle); text is the constraint's original source, used for diagnostics
// when no human-readable label was supplied.
func NewExpression(name string, compiled interface{}, text string) *Value {
	v := newLeaf(KindExpression, name)
	v.exprOperand0 = compiled
	v.exprOperand1 = text
	return v
}

// Expression returns the opaque compiled payload and diagnostic text of a
// KindExpression node, or (nil, "") if v is not one.
func (v *Value) Expression() (interface{}, string) {
	if v == nil || v.kind != KindExpression {
		return nil, ""
	}
	return v.exprOperand0, v.exprOperand1
}

// ReplaceInPlace swaps parent's child old for replacement at old's
// position, preserving sibling order, name, source line, and file
// back-reference. replacement must not already be linked into a
// container. It is used by the schema loader to retag a constraint's
// String child as a compiled Expression without disturbing its position.
func (parent *Value) ReplaceInPlace(old, replacement *Value) error {
	if parent == nil || old == nil || replacement == nil {
		return &Error{Kind: ErrBadArg}
	}
	replacement.name = old.name
	replacement.line = old.line
	replacement.file = old.file
	if parent.children == old {
		replacement.next = old.next
		parent.children = replacement
		if parent.childrenEnd == old {
			parent.childrenEnd = replacement
		}
		old.next = nil
		return nil
	}
	for p := parent.children; p != nil; p = p.next {
		if p.next == old {
			replacement.next = old.next
			p.next = replacement
			if parent.childrenEnd == old {
				parent.childrenEnd = replacement
			}
			old.next = nil
			return nil
		}
	}
	return &Error{Kind: ErrBadArg}
}
