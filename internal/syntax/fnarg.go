package syntax

import "strings"

// FnArg is a function parameter: *Receiver or *PatType.
type FnArg interface {
	Node
	fnArg()
}

// Receiver is a self parameter: self, &'a mut self, self: Box<Self>.
type Receiver struct {
	Span      Span
	Reference bool
	Lifetime  *Lifetime
	Mutable   bool
	Ty        Type // explicit type, nil for the shorthand forms
}

// PatType is a typed parameter: pat: Type.
type PatType struct {
	Span Span
	Pat  Pat
	Ty   Type
}

func (r *Receiver) GetSpan() Span { return r.Span }
func (p *PatType) GetSpan() Span  { return p.Span }
func (*Receiver) fnArg()          {}
func (*PatType) fnArg()           {}

func (r *Receiver) String() string {
	var b strings.Builder
	if r.Reference {
		b.WriteByte('&')
		if r.Lifetime != nil {
			b.WriteString(r.Lifetime.String())
			b.WriteByte(' ')
		}
	}
	if r.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString("self")
	if r.Ty != nil {
		b.WriteString(": ")
		b.WriteString(r.Ty.String())
	}
	return b.String()
}

func (p *PatType) String() string {
	return p.Pat.String() + ": " + p.Ty.String()
}

// Pat is a parameter pattern: *PatIdent, *PatWild, *PatTuple or *PatRef.
type Pat interface {
	Node
	patNode()
}

// PatIdent binds a name: ref mut x.
type PatIdent struct {
	Span  Span
	ByRef bool
	Mut   bool
	Ident Ident
}

// PatWild is the wildcard pattern _.
type PatWild struct {
	Span Span
}

// PatTuple destructures a tuple: (a, _, b).
type PatTuple struct {
	Span  Span
	Elems []Pat
}

// PatRef matches through a reference: &x or &mut x.
type PatRef struct {
	Span    Span
	Mutable bool
	Pat     Pat
}

func (p *PatIdent) GetSpan() Span { return p.Span }
func (p *PatWild) GetSpan() Span  { return p.Span }
func (p *PatTuple) GetSpan() Span { return p.Span }
func (p *PatRef) GetSpan() Span   { return p.Span }

func (*PatIdent) patNode() {}
func (*PatWild) patNode()  {}
func (*PatTuple) patNode() {}
func (*PatRef) patNode()   {}

func (p *PatIdent) String() string {
	s := p.Ident.String()
	if p.Mut {
		s = "mut " + s
	}
	if p.ByRef {
		s = "ref " + s
	}
	return s
}

func (p *PatWild) String() string { return "_" }

func (p *PatTuple) String() string {
	parts := make([]string, len(p.Elems))
	for i, e := range p.Elems {
		parts[i] = e.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (p *PatRef) String() string {
	if p.Mutable {
		return "&mut " + p.Pat.String()
	}
	return "&" + p.Pat.String()
}
