package syntax

// SubTypes returns the type expressions directly nested in t, in source
// order. Non-type nodes in between (paths, bounds, generic arguments) are
// looked through; macro tokens and array lengths are not parsed.
func SubTypes(t Type) []Type {
	var out []Type
	switch t := t.(type) {
	case *TypeArray:
		out = append(out, t.Elem)
	case *TypeBareFn:
		for _, in := range t.Inputs {
			out = append(out, in.Ty)
		}
		if t.Output.Ty != nil {
			out = append(out, t.Output.Ty)
		}
	case *TypeImplTrait:
		out = appendBoundTypes(out, t.Bounds)
	case *TypeMacro:
		out = appendPathTypes(out, t.Mac.Path)
	case *TypeParen:
		out = append(out, t.Elem)
	case *TypePath:
		if t.QSelf != nil {
			out = append(out, t.QSelf.Ty)
		}
		out = appendPathTypes(out, t.Path)
	case *TypePtr:
		out = append(out, t.Elem)
	case *TypeReference:
		out = append(out, t.Elem)
	case *TypeSlice:
		out = append(out, t.Elem)
	case *TypeTraitObject:
		out = appendBoundTypes(out, t.Bounds)
	case *TypeTuple:
		out = append(out, t.Elems...)
	}
	return out
}

func appendPathTypes(out []Type, p Path) []Type {
	for _, seg := range p.Segments {
		switch args := seg.Arguments.(type) {
		case *AngleBracketedArgs:
			for _, arg := range args.Args {
				switch a := arg.(type) {
				case TypeArg:
					out = append(out, a.Ty)
				case *AssocType:
					out = append(out, a.Ty)
				case *AssocConstraint:
					out = appendBoundTypes(out, a.Bounds)
				}
			}
		case *ParenthesizedArgs:
			out = append(out, args.Inputs...)
			if args.Output.Ty != nil {
				out = append(out, args.Output.Ty)
			}
		}
	}
	return out
}

func appendBoundTypes(out []Type, bounds []TypeParamBound) []Type {
	for _, b := range bounds {
		if tb, ok := b.(*TraitBound); ok {
			out = appendPathTypes(out, tb.Path)
		}
	}
	return out
}
