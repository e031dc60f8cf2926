package syntax

import "strings"

// GenericParamKind distinguishes lifetime, type and const parameters.
type GenericParamKind int

const (
	GenericLifetime GenericParamKind = iota
	GenericType
	GenericConst
)

// GenericParam is one parameter of an item's generics.
type GenericParam struct {
	Kind    GenericParamKind
	Ident   Ident            // 'a is stored as a
	Bounds  []TypeParamBound // type and lifetime params
	Ty      Type             // const params
	Default Node             // Type for type params, ConstArg for const params
}

// Generics is the <...> parameter list of an item.
type Generics struct {
	Params []GenericParam
}

// TypeIdents returns the names of type and const parameters, in order.
// Lifetimes are not included.
func (g *Generics) TypeIdents() []Ident {
	if g == nil {
		return nil
	}
	out := make([]Ident, 0, len(g.Params))
	for _, p := range g.Params {
		if p.Kind == GenericLifetime {
			continue
		}
		out = append(out, p.Ident)
	}
	return out
}

func (g *Generics) String() string {
	if g == nil || len(g.Params) == 0 {
		return ""
	}
	parts := make([]string, len(g.Params))
	for i, p := range g.Params {
		parts[i] = p.String()
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func (p GenericParam) String() string {
	var b strings.Builder
	switch p.Kind {
	case GenericLifetime:
		b.WriteString("'" + p.Ident.String())
	case GenericConst:
		b.WriteString("const " + p.Ident.String() + ": " + p.Ty.String())
	default:
		b.WriteString(p.Ident.String())
	}
	if len(p.Bounds) > 0 {
		b.WriteString(": ")
		b.WriteString(joinBounds(p.Bounds))
	}
	if p.Default != nil {
		b.WriteString(" = ")
		b.WriteString(p.Default.String())
	}
	return b.String()
}

// ParseGenerics parses an optional <...> parameter list. Without a leading
// < it consumes nothing and returns empty generics.
func (c *Cursor) ParseGenerics() (*Generics, error) {
	g := &Generics{}
	if !c.EatPunct("<") {
		return g, nil
	}
	for !c.EatPunct(">") {
		c.skipAttributes()
		param, err := c.parseGenericParam()
		if err != nil {
			return nil, err
		}
		g.Params = append(g.Params, param)
		if c.EatPunct(",") {
			continue
		}
		if err := c.expectPunct(">"); err != nil {
			return nil, err
		}
		break
	}
	return g, nil
}

func (c *Cursor) parseGenericParam() (GenericParam, error) {
	tok, ok := c.Peek()
	if !ok {
		return GenericParam{}, c.unexpected("generic parameter")
	}

	if tok.Kind == TokenLifetime {
		c.Next()
		param := GenericParam{Kind: GenericLifetime, Ident: lifetimeFromToken(tok).Ident}
		if c.EatPunct(":") {
			for {
				lt, ok := c.Peek()
				if !ok || lt.Kind != TokenLifetime {
					return GenericParam{}, c.unexpected("lifetime")
				}
				c.Next()
				param.Bounds = append(param.Bounds, lifetimeFromToken(lt))
				if !c.EatPunct("+") {
					break
				}
			}
		}
		return param, nil
	}

	if c.EatKeyword("const") {
		id, err := c.ParseIdent()
		if err != nil {
			return GenericParam{}, err
		}
		if err := c.expectPunct(":"); err != nil {
			return GenericParam{}, err
		}
		ty, err := c.parseType(true)
		if err != nil {
			return GenericParam{}, err
		}
		param := GenericParam{Kind: GenericConst, Ident: id, Ty: ty}
		if c.EatPunct("=") {
			arg, err := c.parseGenericArg()
			if err != nil {
				return GenericParam{}, err
			}
			node, ok := arg.(Node)
			if !ok {
				return GenericParam{}, errorf(c.prev, "invalid const parameter default %q", arg.String())
			}
			param.Default = node
		}
		return param, nil
	}

	id, err := c.ParseIdent()
	if err != nil {
		return GenericParam{}, err
	}
	param := GenericParam{Kind: GenericType, Ident: id}
	if c.EatPunct(":") && !c.peekPunct(",") && !c.peekPunct(">") && !c.peekPunct("=") {
		bounds, err := c.parseBounds(true)
		if err != nil {
			return GenericParam{}, err
		}
		param.Bounds = bounds
	}
	if c.EatPunct("=") {
		ty, err := c.parseType(true)
		if err != nil {
			return GenericParam{}, err
		}
		param.Default = ty
	}
	return param, nil
}
