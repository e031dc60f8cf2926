package parser

import "github.com/seitarof/synext/internal/syntax"

// ItemInfo holds the declaration of one struct or function.
type ItemInfo struct {
	Kind     ItemKind
	Name     syntax.Ident
	Filename string
	Generics []syntax.Ident
	Fields   []FieldInfo
	Return   syntax.Type // fn items only; nil for the unit return
}

// FieldInfo is one struct field or typed function parameter.
type FieldInfo struct {
	Name  syntax.Ident // tuple fields are named by index, wildcard parameters by _
	Ty    syntax.Type
	Index int
	Wild  bool
}

// ItemKind is the declaration keyword.
type ItemKind int

const (
	ItemStruct ItemKind = iota
	ItemFn
	ItemType // a lone type expression
)

func (k ItemKind) String() string {
	switch k {
	case ItemStruct:
		return "struct"
	case ItemFn:
		return "fn"
	case ItemType:
		return "type"
	default:
		return "unknown"
	}
}

// Types returns the field types followed by the return type, if any.
func (i *ItemInfo) Types() []syntax.Type {
	out := make([]syntax.Type, 0, len(i.Fields)+1)
	for _, f := range i.Fields {
		out = append(out, f.Ty)
	}
	if i.Return != nil {
		out = append(out, i.Return)
	}
	return out
}
