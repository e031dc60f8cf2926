package parser

import (
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

// builtinTypes are never looked up as local structs.
var builtinTypes = map[string]bool{
	"bool": true, "char": true, "str": true, "String": true,
	"i8": true, "i16": true, "i32": true, "i64": true, "i128": true, "isize": true,
	"u8": true, "u16": true, "u32": true, "u64": true, "u128": true, "usize": true,
	"f32": true, "f64": true,
	"Self": true, "Option": true, "Result": true, "Vec": true, "Box": true,
}

// localStructRefs returns the single-segment type paths used by item that
// could name a struct of the same file, in first-use order. Generic
// parameters and primitive names are excluded.
func localStructRefs(item *ItemInfo) []syntax.Ident {
	seen := map[string]bool{}
	for _, g := range item.Generics {
		seen[g.String()] = true
	}

	var refs []syntax.Ident
	for _, ty := range item.Types() {
		for _, child := range synext.Unfold(ty) {
			p, ok := child.Ty.(*syntax.TypePath)
			if !ok || p.QSelf != nil || p.Path.LeadingColon || len(p.Path.Segments) != 1 {
				continue
			}
			id := p.Path.Segments[0].Ident
			if builtinTypes[id.Name] || seen[id.String()] {
				continue
			}
			seen[id.String()] = true
			refs = append(refs, id)
		}
	}
	return refs
}
