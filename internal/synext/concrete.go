package synext

import "github.com/seitarof/synext/internal/syntax"

// IsConcrete reports whether ty names a fully known type: it contains no
// path equal to one of generics, no impl Trait, no _ and no macro type.
// Function pointers and ! are concrete whatever they contain.
func IsConcrete(ty syntax.Type, generics []syntax.Ident) bool {
	switch t := ty.(type) {
	case *syntax.TypePath:
		for _, g := range generics {
			if t.Path.IsIdent(g) {
				return false
			}
		}
	case *syntax.TypeImplTrait, *syntax.TypeInfer, *syntax.TypeMacro:
		return false
	case *syntax.TypeBareFn, *syntax.TypeNever:
		return true
	}

	for _, sub := range syntax.SubTypes(ty) {
		if !IsConcrete(sub, generics) {
			return false
		}
	}
	return true
}
