package resolver

import (
	"slices"

	"github.com/seitarof/synext/internal/syntax"
)

// Scope is what the rules know about the item being resolved.
type Scope struct {
	Generics    []syntax.Ident
	KnownMacros []string
}

// IsGeneric reports whether ty is exactly one of the generic parameters.
func (s Scope) IsGeneric(ty syntax.Type) bool {
	p, ok := ty.(*syntax.TypePath)
	if !ok {
		return false
	}
	return slices.ContainsFunc(s.Generics, p.Path.IsIdent)
}

// ScopeAware can consume the scope of the item being resolved.
type ScopeAware interface {
	SetScope(Scope)
}
