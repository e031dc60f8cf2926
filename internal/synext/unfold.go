// Package synext provides helpers over syntax trees for derive-style code
// generation: flattening a type into parent/child pairs, deciding whether a
// type is concrete, and renaming identifiers for generated code.
package synext

import (
	"slices"

	"github.com/seitarof/synext/internal/syntax"
)

// Child is one type node reached while unfolding, with its nearest
// enclosing type node. Parent is nil for the root.
//
// Children returned by Unfold share nodes with the unfolded tree (a view).
// Use Owned for a snapshot that is independent of it.
type Child struct {
	Parent syntax.Type
	Ty     syntax.Type
}

// Owned returns a copy of c whose parent and type are deep clones.
func (c Child) Owned() Child {
	return Child{
		Parent: syntax.CloneType(c.Parent),
		Ty:     syntax.CloneType(c.Ty),
	}
}

// IsRoot reports whether the child has no parent.
func (c Child) IsRoot() bool {
	return c.Parent == nil
}

func (c Child) String() string {
	if c.Parent == nil {
		return c.Ty.String()
	}
	return c.Parent.String() + " > " + c.Ty.String()
}

// OwnedChildren snapshots every child.
func OwnedChildren(children []Child) []Child {
	out := make([]Child, len(children))
	for i, c := range children {
		out[i] = c.Owned()
	}
	return out
}

// Unfold lists ty and every type nested in it in pre-order, each paired
// with its parent.
func Unfold(ty syntax.Type) []Child {
	return UnfoldWithKnownMacros(ty, nil)
}

// UnfoldWithKnownMacros is Unfold, except that macro types whose name is in
// knownMacros and whose tokens parse as a type are replaced by that type.
// The expansion takes the macro's place: it gets the macro's parent, and the
// macro node itself is never listed. Macros that fail to parse are listed
// like any other type.
func UnfoldWithKnownMacros(ty syntax.Type, knownMacros []string) []Child {
	u := &unfolder{knownMacros: knownMacros}
	u.visit(ty)
	return u.children
}

type unfolder struct {
	parents     []syntax.Type
	children    []Child
	knownMacros []string
}

func (u *unfolder) visit(ty syntax.Type) {
	var parent syntax.Type
	if n := len(u.parents); n > 0 {
		parent = u.parents[n-1]
	}

	if m, ok := ty.(*syntax.TypeMacro); ok {
		if inner, ok := knownMacroInnerType(m, u.knownMacros); ok {
			sub := &unfolder{knownMacros: u.knownMacros}
			if parent != nil {
				sub.parents = append(sub.parents, parent)
			}
			sub.visit(inner)
			u.children = append(u.children, sub.children...)
			return
		}
	}

	u.children = append(u.children, Child{Parent: parent, Ty: ty})
	u.parents = append(u.parents, ty)
	for _, sub := range syntax.SubTypes(ty) {
		u.visit(sub)
	}
	u.parents = u.parents[:len(u.parents)-1]
}

func knownMacroInnerType(m *syntax.TypeMacro, known []string) (syntax.Type, bool) {
	if !isKnownMacro(m, known) {
		return nil, false
	}

	ty, err := syntax.ParseType(m.Mac.Tokens)
	if err != nil {
		return nil, false
	}
	return ty, true
}

// UnexpandedKnownMacros returns the children that are invocations of a known
// macro. After unfolding these are exactly the known macros whose tokens did
// not parse as a type.
func UnexpandedKnownMacros(children []Child, knownMacros []string) []Child {
	var out []Child
	for _, c := range children {
		if m, ok := c.Ty.(*syntax.TypeMacro); ok && isKnownMacro(m, knownMacros) {
			out = append(out, c)
		}
	}
	return out
}

func isKnownMacro(m *syntax.TypeMacro, known []string) bool {
	name, ok := m.Mac.Path.LastIdent()
	return ok && slices.Contains(known, name.String())
}
