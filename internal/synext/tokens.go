package synext

import "github.com/seitarof/synext/internal/syntax"

// Respanned returns a copy of ts with every token, including tokens inside
// groups, moved to span.
func Respanned(ts syntax.TokenStream, span syntax.Span) syntax.TokenStream {
	if ts == nil {
		return nil
	}
	out := make(syntax.TokenStream, len(ts))
	for i, tok := range ts {
		tok.Span = span
		if tok.Kind == syntax.TokenGroup {
			tok.Inner = Respanned(tok.Inner, span)
		}
		out[i] = tok
	}
	return out
}

// TypedArg returns the name and type of a parameter bound to a plain
// identifier pattern, such as id: u64.
func TypedArg(arg syntax.FnArg) (syntax.Ident, syntax.Type, bool) {
	pt, ok := arg.(*syntax.PatType)
	if !ok {
		return syntax.Ident{}, nil, false
	}
	pat, ok := pt.Pat.(*syntax.PatIdent)
	if !ok {
		return syntax.Ident{}, nil, false
	}
	return pat.Ident, pt.Ty, true
}

// WildArg returns the wildcard pattern of a parameter written _: T.
func WildArg(arg syntax.FnArg) (*syntax.PatWild, bool) {
	pt, ok := arg.(*syntax.PatType)
	if !ok {
		return nil, false
	}
	wild, ok := pt.Pat.(*syntax.PatWild)
	return wild, ok
}

// ReturnTy returns the declared return type, or false for the implicit
// unit return.
func ReturnTy(ret syntax.ReturnType) (syntax.Type, bool) {
	return ret.Ty, ret.Ty != nil
}
