package syntax

// CloneType returns a deep copy of t sharing no mutable state with it.
func CloneType(t Type) Type {
	switch t := t.(type) {
	case nil:
		return nil
	case *TypeArray:
		return &TypeArray{Span: t.Span, Elem: CloneType(t.Elem), Len: t.Len.Clone()}
	case *TypeBareFn:
		out := &TypeBareFn{
			Span:      t.Span,
			Lifetimes: cloneSlice(t.Lifetimes),
			Unsafe:    t.Unsafe,
			Variadic:  t.Variadic,
			Output:    ReturnType{Ty: CloneType(t.Output.Ty)},
		}
		if t.Abi != nil {
			abi := *t.Abi
			out.Abi = &abi
		}
		if t.Inputs != nil {
			out.Inputs = make([]BareFnArg, len(t.Inputs))
			for i, in := range t.Inputs {
				arg := BareFnArg{Ty: CloneType(in.Ty)}
				if in.Name != nil {
					name := *in.Name
					arg.Name = &name
				}
				out.Inputs[i] = arg
			}
		}
		return out
	case *TypeImplTrait:
		return &TypeImplTrait{Span: t.Span, Bounds: cloneBounds(t.Bounds)}
	case *TypeInfer:
		return &TypeInfer{Span: t.Span}
	case *TypeMacro:
		return &TypeMacro{Span: t.Span, Mac: Macro{
			Path:   ClonePath(t.Mac.Path),
			Delim:  t.Mac.Delim,
			Tokens: t.Mac.Tokens.Clone(),
		}}
	case *TypeNever:
		return &TypeNever{Span: t.Span}
	case *TypeParen:
		return &TypeParen{Span: t.Span, Elem: CloneType(t.Elem)}
	case *TypePath:
		out := &TypePath{Span: t.Span, Path: ClonePath(t.Path)}
		if t.QSelf != nil {
			out.QSelf = &QSelf{Ty: CloneType(t.QSelf.Ty), Position: t.QSelf.Position}
		}
		return out
	case *TypePtr:
		return &TypePtr{Span: t.Span, Mutable: t.Mutable, Elem: CloneType(t.Elem)}
	case *TypeReference:
		out := &TypeReference{Span: t.Span, Mutable: t.Mutable, Elem: CloneType(t.Elem)}
		if t.Lifetime != nil {
			lt := *t.Lifetime
			out.Lifetime = &lt
		}
		return out
	case *TypeSlice:
		return &TypeSlice{Span: t.Span, Elem: CloneType(t.Elem)}
	case *TypeTraitObject:
		return &TypeTraitObject{Span: t.Span, Dyn: t.Dyn, Bounds: cloneBounds(t.Bounds)}
	case *TypeTuple:
		out := &TypeTuple{Span: t.Span}
		if t.Elems != nil {
			out.Elems = make([]Type, len(t.Elems))
			for i, e := range t.Elems {
				out.Elems[i] = CloneType(e)
			}
		}
		return out
	}
	panic("syntax: unknown type node")
}

// ClonePath returns a deep copy of p.
func ClonePath(p Path) Path {
	out := Path{Span: p.Span, LeadingColon: p.LeadingColon}
	if p.Segments == nil {
		return out
	}
	out.Segments = make([]PathSegment, len(p.Segments))
	for i, seg := range p.Segments {
		out.Segments[i] = PathSegment{Ident: seg.Ident, Arguments: cloneArguments(seg.Arguments)}
	}
	return out
}

func cloneArguments(args PathArguments) PathArguments {
	switch a := args.(type) {
	case *AngleBracketedArgs:
		out := &AngleBracketedArgs{Turbofish: a.Turbofish}
		if a.Args != nil {
			out.Args = make([]GenericArgument, len(a.Args))
			for i, arg := range a.Args {
				out.Args[i] = cloneGenericArg(arg)
			}
		}
		return out
	case *ParenthesizedArgs:
		out := &ParenthesizedArgs{Output: ReturnType{Ty: CloneType(a.Output.Ty)}}
		if a.Inputs != nil {
			out.Inputs = make([]Type, len(a.Inputs))
			for i, in := range a.Inputs {
				out.Inputs[i] = CloneType(in)
			}
		}
		return out
	}
	return nil
}

func cloneGenericArg(arg GenericArgument) GenericArgument {
	switch a := arg.(type) {
	case TypeArg:
		return TypeArg{Ty: CloneType(a.Ty)}
	case ConstArg:
		return ConstArg{Tokens: a.Tokens.Clone()}
	case *AssocType:
		return &AssocType{Ident: a.Ident, Ty: CloneType(a.Ty)}
	case *AssocConstraint:
		return &AssocConstraint{Ident: a.Ident, Bounds: cloneBounds(a.Bounds)}
	}
	return arg
}

func cloneBounds(bounds []TypeParamBound) []TypeParamBound {
	if bounds == nil {
		return nil
	}
	out := make([]TypeParamBound, len(bounds))
	for i, b := range bounds {
		if tb, ok := b.(*TraitBound); ok {
			out[i] = &TraitBound{
				Paren:     tb.Paren,
				Maybe:     tb.Maybe,
				Lifetimes: cloneSlice(tb.Lifetimes),
				Path:      ClonePath(tb.Path),
			}
			continue
		}
		out[i] = b
	}
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	return append([]T(nil), s...)
}
