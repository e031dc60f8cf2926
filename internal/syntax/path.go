package syntax

import "strings"

// Path is a sequence of segments separated by ::.
type Path struct {
	Span         Span
	LeadingColon bool
	Segments     []PathSegment
}

// PathSegment is one segment of a path with its optional arguments.
type PathSegment struct {
	Ident     Ident
	Arguments PathArguments // nil without arguments
}

// PathArguments is *AngleBracketedArgs or *ParenthesizedArgs.
type PathArguments interface {
	String() string
	pathArgs()
}

// AngleBracketedArgs are generic arguments: <T, 'a, N = U>.
type AngleBracketedArgs struct {
	Turbofish bool // written as ::<...>
	Args      []GenericArgument
}

// ParenthesizedArgs are function-trait arguments: Fn(A, B) -> C.
type ParenthesizedArgs struct {
	Inputs []Type
	Output ReturnType
}

func (*AngleBracketedArgs) pathArgs() {}
func (*ParenthesizedArgs) pathArgs()  {}

// GenericArgument is one entry of angle-bracketed arguments: TypeArg,
// Lifetime, ConstArg, *AssocType or *AssocConstraint.
type GenericArgument interface {
	String() string
	genericArg()
}

// TypeArg is a type in argument position.
type TypeArg struct {
	Ty Type
}

// ConstArg is a const generic argument, kept as tokens.
type ConstArg struct {
	Tokens TokenStream
}

// AssocType binds an associated type: Item = T.
type AssocType struct {
	Ident Ident
	Ty    Type
}

// AssocConstraint bounds an associated type: Item: Bound.
type AssocConstraint struct {
	Ident  Ident
	Bounds []TypeParamBound
}

func (TypeArg) genericArg()          {}
func (Lifetime) genericArg()         {}
func (ConstArg) genericArg()         {}
func (*AssocType) genericArg()       {}
func (*AssocConstraint) genericArg() {}

// TypeParamBound is a *TraitBound or a Lifetime.
type TypeParamBound interface {
	String() string
	bound()
}

// TraitBound is a trait in bound position: ?Sized, for<'a> Fn(&'a u8).
type TraitBound struct {
	Paren     bool
	Maybe     bool
	Lifetimes []Lifetime
	Path      Path
}

// Lifetime is a named lifetime such as 'a or 'static.
type Lifetime struct {
	Ident Ident
	Span  Span
}

func (*TraitBound) bound() {}
func (Lifetime) bound()    {}

// IsIdent reports whether the path is exactly the single identifier id,
// with no leading colon and no arguments.
func (p Path) IsIdent(id Ident) bool {
	return !p.LeadingColon &&
		len(p.Segments) == 1 &&
		p.Segments[0].Arguments == nil &&
		p.Segments[0].Ident.Equal(id)
}

// LastIdent returns the identifier of the final segment.
func (p Path) LastIdent() (Ident, bool) {
	if len(p.Segments) == 0 {
		return Ident{}, false
	}
	return p.Segments[len(p.Segments)-1].Ident, true
}

func (p Path) String() string {
	var b strings.Builder
	if p.LeadingColon {
		b.WriteString("::")
	}
	for i, seg := range p.Segments {
		if i > 0 {
			b.WriteString("::")
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

func (s PathSegment) String() string {
	if s.Arguments == nil {
		return s.Ident.String()
	}
	return s.Ident.String() + s.Arguments.String()
}

func (a *AngleBracketedArgs) String() string {
	parts := make([]string, len(a.Args))
	for i, arg := range a.Args {
		parts[i] = arg.String()
	}
	prefix := "<"
	if a.Turbofish {
		prefix = "::<"
	}
	return prefix + strings.Join(parts, ", ") + ">"
}

func (a *ParenthesizedArgs) String() string {
	parts := make([]string, len(a.Inputs))
	for i, in := range a.Inputs {
		parts[i] = in.String()
	}
	return "(" + strings.Join(parts, ", ") + ")" + a.Output.String()
}

func (a TypeArg) GetSpan() Span  { return a.Ty.GetSpan() }
func (a ConstArg) GetSpan() Span { return a.Tokens.Span() }

func (a TypeArg) String() string  { return a.Ty.String() }
func (a ConstArg) String() string { return a.Tokens.String() }
func (l Lifetime) String() string { return "'" + l.Ident.String() }

func (a *AssocType) String() string {
	return a.Ident.String() + " = " + a.Ty.String()
}

func (a *AssocConstraint) String() string {
	return a.Ident.String() + ": " + joinBounds(a.Bounds)
}

func (t *TraitBound) String() string {
	var b strings.Builder
	if t.Paren {
		b.WriteByte('(')
	}
	if t.Maybe {
		b.WriteByte('?')
	}
	if len(t.Lifetimes) > 0 {
		b.WriteString("for<")
		b.WriteString(joinLifetimes(t.Lifetimes))
		b.WriteString("> ")
	}
	b.WriteString(t.Path.String())
	if t.Paren {
		b.WriteByte(')')
	}
	return b.String()
}

func joinBounds(bounds []TypeParamBound) string {
	parts := make([]string, len(bounds))
	for i, bd := range bounds {
		parts[i] = bd.String()
	}
	return strings.Join(parts, " + ")
}

func joinLifetimes(lts []Lifetime) string {
	parts := make([]string, len(lts))
	for i, lt := range lts {
		parts[i] = lt.String()
	}
	return strings.Join(parts, ", ")
}
