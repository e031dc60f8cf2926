package parser

import (
	"strconv"

	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

var fnQualifiers = []string{"const", "async", "unsafe", "extern"}

// parseItems reads every struct and fn declared in ts. Other items are
// skipped.
func parseItems(filename string, ts syntax.TokenStream) ([]*ItemInfo, error) {
	c := syntax.NewCursor(ts)
	var items []*ItemInfo
	for !c.EOF() {
		c.SkipAttributes()
		skipVisibility(c)
		if c.EOF() {
			break
		}

		var (
			item *ItemInfo
			err  error
		)
		switch {
		case c.EatKeyword("struct"):
			item, err = parseStruct(c)
		case eatFnKeyword(c):
			item, err = parseFn(c)
		default:
			skipItem(c)
			continue
		}
		if err != nil {
			return nil, err
		}
		item.Filename = filename
		items = append(items, item)
	}
	return items, nil
}

func parseStruct(c *syntax.Cursor) (*ItemInfo, error) {
	name, err := c.ParseIdent()
	if err != nil {
		return nil, err
	}
	generics, err := c.ParseGenerics()
	if err != nil {
		return nil, err
	}
	item := &ItemInfo{Kind: ItemStruct, Name: name, Generics: generics.TypeIdents()}

	skipWhereClause(c)
	tok, ok := c.Peek()
	switch {
	case ok && tok.IsGroup(syntax.DelimBrace):
		c.Next()
		item.Fields, err = parseNamedFields(tok.Inner)
	case ok && tok.IsGroup(syntax.DelimParen):
		c.Next()
		item.Fields, err = parseTupleFields(tok.Inner)
		if err == nil {
			skipWhereClause(c)
			if !c.EatPunct(";") {
				err = c.Errorf("expected `;` after tuple struct %s", name)
			}
		}
	case c.EatPunct(";"):
	default:
		err = c.Errorf("expected body of struct %s", name)
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

func parseNamedFields(ts syntax.TokenStream) ([]FieldInfo, error) {
	c := syntax.NewCursor(ts)
	var fields []FieldInfo
	for !c.EOF() {
		c.SkipAttributes()
		skipVisibility(c)
		name, err := c.ParseIdent()
		if err != nil {
			return nil, err
		}
		if !c.EatPunct(":") {
			return nil, c.Errorf("expected `:` after field %s", name)
		}
		ty, err := c.ParseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, FieldInfo{Name: name, Ty: ty, Index: len(fields)})
		if c.EOF() {
			break
		}
		if !c.EatPunct(",") {
			return nil, c.Errorf("expected `,` after field %s", name)
		}
	}
	return fields, nil
}

func parseTupleFields(ts syntax.TokenStream) ([]FieldInfo, error) {
	c := syntax.NewCursor(ts)
	var fields []FieldInfo
	for !c.EOF() {
		c.SkipAttributes()
		skipVisibility(c)
		ty, err := c.ParseType()
		if err != nil {
			return nil, err
		}
		index := len(fields)
		fields = append(fields, FieldInfo{
			Name:  syntax.NewIdent(strconv.Itoa(index), ty.GetSpan()),
			Ty:    ty,
			Index: index,
		})
		if c.EOF() {
			break
		}
		if !c.EatPunct(",") {
			return nil, c.Errorf("expected `,` after field %d", index)
		}
	}
	return fields, nil
}

func parseFn(c *syntax.Cursor) (*ItemInfo, error) {
	name, err := c.ParseIdent()
	if err != nil {
		return nil, err
	}
	generics, err := c.ParseGenerics()
	if err != nil {
		return nil, err
	}

	tok, ok := c.Peek()
	if !ok || !tok.IsGroup(syntax.DelimParen) {
		return nil, c.Errorf("expected parameter list of fn %s", name)
	}
	c.Next()
	args, err := syntax.ParseFnArgs(tok.Inner)
	if err != nil {
		return nil, err
	}

	item := &ItemInfo{Kind: ItemFn, Name: name, Generics: generics.TypeIdents()}
	for i, arg := range args {
		if id, ty, ok := synext.TypedArg(arg); ok {
			item.Fields = append(item.Fields, FieldInfo{Name: id, Ty: ty, Index: i})
			continue
		}
		if wild, ok := synext.WildArg(arg); ok {
			item.Fields = append(item.Fields, FieldInfo{
				Name:  syntax.NewIdent("_", wild.Span),
				Ty:    arg.(*syntax.PatType).Ty,
				Index: i,
				Wild:  true,
			})
		}
		// receivers and destructuring patterns have no single binding
	}

	if c.EatPunct("->") {
		if item.Return, err = c.ParseType(); err != nil {
			return nil, err
		}
	}

	skipWhereClause(c)
	tok, ok = c.Peek()
	switch {
	case ok && tok.IsGroup(syntax.DelimBrace):
		c.Next()
	case c.EatPunct(";"):
	default:
		return nil, c.Errorf("expected body of fn %s", name)
	}
	return item, nil
}

// eatFnKeyword consumes qualifiers and the fn keyword when they start a
// function. Otherwise nothing is consumed.
func eatFnKeyword(c *syntax.Cursor) bool {
	n := 0
	for {
		tok, ok := c.PeekN(n)
		if !ok {
			return false
		}
		if tok.IsKeyword("fn") {
			break
		}
		if !isFnQualifier(tok) {
			return false
		}
		n++
		if tok.IsKeyword("extern") {
			if abi, ok := c.PeekN(n); ok && abi.Kind == syntax.TokenLiteral {
				n++
			}
		}
	}
	for range n + 1 {
		c.Next()
	}
	return true
}

func isFnQualifier(tok syntax.Token) bool {
	for _, q := range fnQualifiers {
		if tok.IsKeyword(q) {
			return true
		}
	}
	return false
}

// skipVisibility consumes pub, pub(crate), pub(super), pub(self) and
// pub(in path).
func skipVisibility(c *syntax.Cursor) {
	if !c.EatKeyword("pub") {
		return
	}
	tok, ok := c.Peek()
	if !ok || !tok.IsGroup(syntax.DelimParen) || len(tok.Inner) == 0 {
		return
	}
	switch first := tok.Inner[0]; {
	case first.IsKeyword("crate"), first.IsKeyword("self"), first.IsKeyword("super"), first.IsKeyword("in"):
		c.Next()
	}
}

// skipWhereClause consumes a where clause up to the item body or the
// closing semicolon.
func skipWhereClause(c *syntax.Cursor) {
	if !c.EatKeyword("where") {
		return
	}
	for {
		tok, ok := c.Peek()
		if !ok || tok.IsGroup(syntax.DelimBrace) || tok.IsPunct(";") {
			return
		}
		c.Next()
	}
}

// skipItem consumes tokens through the next top-level ; or brace group.
func skipItem(c *syntax.Cursor) {
	for {
		tok, ok := c.Next()
		if !ok || tok.IsPunct(";") || tok.IsGroup(syntax.DelimBrace) {
			return
		}
	}
}
