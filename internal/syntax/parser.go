package syntax

// Cursor walks a token stream. Parse methods consume the tokens of the node
// they return and leave the cursor on the first token after it.
type Cursor struct {
	toks  TokenStream
	pos   int
	scope Span // span of the enclosing group, for end-of-input errors
	prev  Span // span of the last consumed token
}

// NewCursor returns a cursor positioned at the start of ts.
func NewCursor(ts TokenStream) *Cursor {
	return &Cursor{toks: ts, scope: ts.Span()}
}

func newGroupCursor(group Token) *Cursor {
	return &Cursor{toks: group.Inner, scope: group.Span}
}

// ParseType parses exactly one type from ts. Trailing tokens are an error.
func ParseType(ts TokenStream) (Type, error) {
	c := NewCursor(ts)
	ty, err := c.ParseType()
	if err != nil {
		return nil, err
	}
	if err := c.expectEOF(); err != nil {
		return nil, err
	}
	return ty, nil
}

// ParseTypeString lexes and parses a single type expression.
func ParseTypeString(src string) (Type, error) {
	ts, err := Lex("", src)
	if err != nil {
		return nil, err
	}
	return ParseType(ts)
}

// ParseFnArg parses exactly one function parameter from ts.
func ParseFnArg(ts TokenStream) (FnArg, error) {
	c := NewCursor(ts)
	arg, err := c.ParseFnArg()
	if err != nil {
		return nil, err
	}
	if err := c.expectEOF(); err != nil {
		return nil, err
	}
	return arg, nil
}

// ParseFnArgs parses a comma separated parameter list, such as the contents
// of a function's parenthesized signature.
func ParseFnArgs(ts TokenStream) ([]FnArg, error) {
	c := NewCursor(ts)
	var args []FnArg
	for !c.EOF() {
		c.skipAttributes()
		arg, err := c.ParseFnArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if c.EOF() {
			break
		}
		if err := c.expectPunct(","); err != nil {
			return nil, err
		}
	}
	return args, nil
}

// Peek returns the next token without consuming it.
func (c *Cursor) Peek() (Token, bool) {
	return c.PeekN(0)
}

// PeekN returns the token n positions ahead without consuming anything.
func (c *Cursor) PeekN(n int) (Token, bool) {
	if c.pos+n >= len(c.toks) {
		return Token{}, false
	}
	return c.toks[c.pos+n], true
}

// Next consumes and returns the next token.
func (c *Cursor) Next() (Token, bool) {
	if c.pos >= len(c.toks) {
		return Token{}, false
	}
	t := c.toks[c.pos]
	c.pos++
	c.prev = t.Span
	return t, true
}

// EOF reports whether every token has been consumed.
func (c *Cursor) EOF() bool {
	return c.pos >= len(c.toks)
}

// Rest consumes and returns every remaining token.
func (c *Cursor) Rest() TokenStream {
	rest := c.toks[c.pos:]
	if len(rest) > 0 {
		c.prev = rest[len(rest)-1].Span
	}
	c.pos = len(c.toks)
	return rest
}

// Errorf builds an error located at the next token, or at the end of the
// enclosing scope when the stream is exhausted.
func (c *Cursor) Errorf(format string, args ...any) error {
	if tok, ok := c.Peek(); ok {
		return errorf(tok.Span, format, args...)
	}
	return errorf(c.endSpan(), format, args...)
}

func (c *Cursor) endSpan() Span {
	if c.scope.IsValid() {
		return Span{Start: c.scope.End, End: c.scope.End}
	}
	return c.prev
}

func (c *Cursor) peekPunct(text string) bool {
	tok, ok := c.Peek()
	return ok && tok.IsPunct(text)
}

func (c *Cursor) peekKeyword(text string) bool {
	tok, ok := c.Peek()
	return ok && tok.IsKeyword(text)
}

// EatPunct consumes the punct if it is next.
func (c *Cursor) EatPunct(text string) bool {
	if c.peekPunct(text) {
		c.Next()
		return true
	}
	return false
}

// EatKeyword consumes the identifier if it is next.
func (c *Cursor) EatKeyword(text string) bool {
	if c.peekKeyword(text) {
		c.Next()
		return true
	}
	return false
}

func (c *Cursor) expectPunct(text string) error {
	if c.EatPunct(text) {
		return nil
	}
	return c.unexpected("`" + text + "`")
}

func (c *Cursor) expectKeyword(text string) error {
	if c.EatKeyword(text) {
		return nil
	}
	return c.unexpected("`" + text + "`")
}

func (c *Cursor) expectEOF() error {
	if tok, ok := c.Peek(); ok {
		return errorf(tok.Span, "unexpected token %q", tok.String())
	}
	return nil
}

func (c *Cursor) unexpected(want string) error {
	if tok, ok := c.Peek(); ok {
		return errorf(tok.Span, "expected %s, found %q", want, tok.String())
	}
	return errorf(c.endSpan(), "expected %s, found end of input", want)
}

// ParseIdent consumes an identifier.
func (c *Cursor) ParseIdent() (Ident, error) {
	tok, ok := c.Peek()
	if !ok || tok.Kind != TokenIdent {
		return Ident{}, c.unexpected("identifier")
	}
	c.Next()
	return NewIdent(tok.Text, tok.Span), nil
}

func (c *Cursor) spanFrom(start Span) Span {
	return start.Join(c.prev)
}

// skipAttributes consumes any #[...] attributes.
func (c *Cursor) skipAttributes() {
	for c.peekPunct("#") {
		next, ok := c.PeekN(1)
		if !ok || !next.IsGroup(DelimBracket) {
			return
		}
		c.Next()
		c.Next()
	}
}

// SkipAttributes consumes any outer attributes such as #[derive(...)].
func (c *Cursor) SkipAttributes() { c.skipAttributes() }

// ParseType parses one type, allowing a trailing + in trait objects.
func (c *Cursor) ParseType() (Type, error) {
	return c.parseType(true)
}

func (c *Cursor) parseType(allowPlus bool) (Type, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.unexpected("type")
	}

	switch {
	case tok.IsGroup(DelimParen):
		c.Next()
		return c.parseParenType(tok)
	case tok.IsGroup(DelimBracket):
		c.Next()
		return c.parseBracketType(tok)
	case tok.IsPunct("!"):
		c.Next()
		return &TypeNever{Span: tok.Span}, nil
	case tok.IsPunct("&"):
		return c.parseReference()
	case tok.IsPunct("*"):
		return c.parsePtr()
	case tok.IsPunct("<"), tok.IsPunct("::"):
		return c.parsePathType(allowPlus)
	case tok.IsKeyword("_"):
		c.Next()
		return &TypeInfer{Span: tok.Span}, nil
	case tok.IsKeyword("impl"):
		c.Next()
		bounds, err := c.parseBounds(allowPlus)
		if err != nil {
			return nil, err
		}
		return &TypeImplTrait{Span: c.spanFrom(tok.Span), Bounds: bounds}, nil
	case tok.IsKeyword("dyn"):
		c.Next()
		bounds, err := c.parseBounds(allowPlus)
		if err != nil {
			return nil, err
		}
		return &TypeTraitObject{Span: c.spanFrom(tok.Span), Dyn: true, Bounds: bounds}, nil
	case tok.IsKeyword("fn"), tok.IsKeyword("unsafe"), tok.IsKeyword("extern"):
		return c.parseBareFn(nil, tok.Span)
	case tok.IsKeyword("for"):
		return c.parseHigherRanked(allowPlus)
	case tok.Kind == TokenIdent:
		return c.parsePathType(allowPlus)
	}
	return nil, c.unexpected("type")
}

func (c *Cursor) parseParenType(group Token) (Type, error) {
	if len(group.Inner) == 0 {
		return &TypeTuple{Span: group.Span}, nil
	}

	sub := newGroupCursor(group)
	first, err := sub.parseType(true)
	if err != nil {
		return nil, err
	}
	if sub.EOF() {
		return &TypeParen{Span: group.Span, Elem: first}, nil
	}
	if err := sub.expectPunct(","); err != nil {
		return nil, err
	}

	elems := []Type{first}
	for !sub.EOF() {
		ty, err := sub.parseType(true)
		if err != nil {
			return nil, err
		}
		elems = append(elems, ty)
		if sub.EOF() {
			break
		}
		if err := sub.expectPunct(","); err != nil {
			return nil, err
		}
	}
	return &TypeTuple{Span: group.Span, Elems: elems}, nil
}

func (c *Cursor) parseBracketType(group Token) (Type, error) {
	sub := newGroupCursor(group)
	elem, err := sub.parseType(true)
	if err != nil {
		return nil, err
	}
	if sub.EOF() {
		return &TypeSlice{Span: group.Span, Elem: elem}, nil
	}
	if err := sub.expectPunct(";"); err != nil {
		return nil, err
	}
	if sub.EOF() {
		return nil, sub.unexpected("array length")
	}
	return &TypeArray{Span: group.Span, Elem: elem, Len: sub.Rest()}, nil
}

func (c *Cursor) parseReference() (Type, error) {
	amp, _ := c.Next()
	ref := &TypeReference{}
	if tok, ok := c.Peek(); ok && tok.Kind == TokenLifetime {
		c.Next()
		lt := lifetimeFromToken(tok)
		ref.Lifetime = &lt
	}
	ref.Mutable = c.EatKeyword("mut")
	elem, err := c.parseType(false)
	if err != nil {
		return nil, err
	}
	ref.Elem = elem
	ref.Span = c.spanFrom(amp.Span)
	return ref, nil
}

func (c *Cursor) parsePtr() (Type, error) {
	star, _ := c.Next()
	ptr := &TypePtr{}
	switch {
	case c.EatKeyword("const"):
	case c.EatKeyword("mut"):
		ptr.Mutable = true
	default:
		return nil, c.unexpected("`const` or `mut`")
	}
	elem, err := c.parseType(false)
	if err != nil {
		return nil, err
	}
	ptr.Elem = elem
	ptr.Span = c.spanFrom(star.Span)
	return ptr, nil
}

func (c *Cursor) parseHigherRanked(allowPlus bool) (Type, error) {
	start, _ := c.Peek()
	lifetimes, err := c.parseForLifetimes()
	if err != nil {
		return nil, err
	}
	if c.peekKeyword("fn") || c.peekKeyword("unsafe") || c.peekKeyword("extern") {
		return c.parseBareFn(lifetimes, start.Span)
	}

	path, err := c.parsePath()
	if err != nil {
		return nil, err
	}
	bounds := []TypeParamBound{&TraitBound{Lifetimes: lifetimes, Path: path}}
	if allowPlus {
		for c.EatPunct("+") {
			b, err := c.parseBound()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, b)
		}
	}
	return &TypeTraitObject{Span: c.spanFrom(start.Span), Bounds: bounds}, nil
}

func (c *Cursor) parseBareFn(lifetimes []Lifetime, start Span) (Type, error) {
	fn := &TypeBareFn{Lifetimes: lifetimes}
	fn.Unsafe = c.EatKeyword("unsafe")
	if c.EatKeyword("extern") {
		abi := ""
		if tok, ok := c.Peek(); ok && tok.Kind == TokenLiteral {
			c.Next()
			abi = tok.Text
		}
		fn.Abi = &abi
	}
	if err := c.expectKeyword("fn"); err != nil {
		return nil, err
	}

	group, ok := c.Peek()
	if !ok || !group.IsGroup(DelimParen) {
		return nil, c.unexpected("`(`")
	}
	c.Next()

	sub := newGroupCursor(group)
	for !sub.EOF() {
		if sub.peekVariadic() {
			sub.Next()
			sub.Next()
			sub.Next()
			fn.Variadic = true
			if err := sub.expectEOF(); err != nil {
				return nil, err
			}
			break
		}

		var arg BareFnArg
		if name, ok := sub.Peek(); ok && name.Kind == TokenIdent {
			if colon, ok := sub.PeekN(1); ok && colon.IsPunct(":") {
				sub.Next()
				sub.Next()
				id := NewIdent(name.Text, name.Span)
				arg.Name = &id
			}
		}
		ty, err := sub.parseType(true)
		if err != nil {
			return nil, err
		}
		arg.Ty = ty
		fn.Inputs = append(fn.Inputs, arg)

		if sub.EOF() {
			break
		}
		if err := sub.expectPunct(","); err != nil {
			return nil, err
		}
	}

	if c.EatPunct("->") {
		out, err := c.parseType(false)
		if err != nil {
			return nil, err
		}
		fn.Output = ReturnType{Ty: out}
	}
	fn.Span = c.spanFrom(start)
	return fn, nil
}

func (c *Cursor) peekVariadic() bool {
	for i := 0; i < 3; i++ {
		tok, ok := c.PeekN(i)
		if !ok || !tok.IsPunct(".") {
			return false
		}
	}
	return true
}

func (c *Cursor) parsePathType(allowPlus bool) (Type, error) {
	start, _ := c.Peek()

	if c.EatPunct("<") {
		selfTy, err := c.parseType(true)
		if err != nil {
			return nil, err
		}
		var path Path
		position := 0
		if c.EatKeyword("as") {
			trait, err := c.parsePath()
			if err != nil {
				return nil, err
			}
			path = trait
			position = len(trait.Segments)
		}
		if err := c.expectPunct(">"); err != nil {
			return nil, err
		}
		if err := c.expectPunct("::"); err != nil {
			return nil, err
		}
		rest, err := c.parseSegments()
		if err != nil {
			return nil, err
		}
		path.Segments = append(path.Segments, rest...)
		path.Span = c.spanFrom(start.Span)
		return &TypePath{
			Span:  path.Span,
			QSelf: &QSelf{Ty: selfTy, Position: position},
			Path:  path,
		}, nil
	}

	path, err := c.parsePath()
	if err != nil {
		return nil, err
	}

	if c.peekPunct("!") {
		if group, ok := c.PeekN(1); ok && group.Kind == TokenGroup {
			c.Next()
			c.Next()
			return &TypeMacro{
				Span: c.spanFrom(start.Span),
				Mac:  Macro{Path: path, Delim: group.Delim, Tokens: group.Inner},
			}, nil
		}
	}

	if allowPlus && c.peekPunct("+") {
		bounds := []TypeParamBound{&TraitBound{Path: path}}
		for c.EatPunct("+") {
			b, err := c.parseBound()
			if err != nil {
				return nil, err
			}
			bounds = append(bounds, b)
		}
		return &TypeTraitObject{Span: c.spanFrom(start.Span), Bounds: bounds}, nil
	}

	return &TypePath{Span: path.Span, Path: path}, nil
}

// ParsePath parses a path such as ::std::vec::Vec<T>.
func (c *Cursor) ParsePath() (Path, error) {
	return c.parsePath()
}

func (c *Cursor) parsePath() (Path, error) {
	start, ok := c.Peek()
	if !ok {
		return Path{}, c.unexpected("path")
	}
	var path Path
	path.LeadingColon = c.EatPunct("::")
	segs, err := c.parseSegments()
	if err != nil {
		return Path{}, err
	}
	path.Segments = segs
	path.Span = c.spanFrom(start.Span)
	return path, nil
}

func (c *Cursor) parseSegments() ([]PathSegment, error) {
	var segs []PathSegment
	for {
		seg, err := c.parseSegment()
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		if !c.peekPunct("::") {
			return segs, nil
		}
		c.Next()
	}
}

func (c *Cursor) parseSegment() (PathSegment, error) {
	id, err := c.ParseIdent()
	if err != nil {
		return PathSegment{}, err
	}
	seg := PathSegment{Ident: id}

	switch {
	case c.peekPunct("<"):
		args, err := c.parseAngleArgs()
		if err != nil {
			return PathSegment{}, err
		}
		seg.Arguments = args
	case c.peekPunct("::"):
		if next, ok := c.PeekN(1); ok && next.IsPunct("<") {
			c.Next()
			args, err := c.parseAngleArgs()
			if err != nil {
				return PathSegment{}, err
			}
			args.Turbofish = true
			seg.Arguments = args
		}
	default:
		if group, ok := c.Peek(); ok && group.IsGroup(DelimParen) {
			c.Next()
			args, err := c.parseParenArgs(group)
			if err != nil {
				return PathSegment{}, err
			}
			seg.Arguments = args
		}
	}
	return seg, nil
}

func (c *Cursor) parseAngleArgs() (*AngleBracketedArgs, error) {
	if err := c.expectPunct("<"); err != nil {
		return nil, err
	}
	args := &AngleBracketedArgs{}
	for !c.EatPunct(">") {
		arg, err := c.parseGenericArg()
		if err != nil {
			return nil, err
		}
		args.Args = append(args.Args, arg)
		if c.EatPunct(",") {
			continue
		}
		if err := c.expectPunct(">"); err != nil {
			return nil, err
		}
		break
	}
	return args, nil
}

func (c *Cursor) parseGenericArg() (GenericArgument, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.unexpected("generic argument")
	}

	switch {
	case tok.Kind == TokenLifetime:
		c.Next()
		return lifetimeFromToken(tok), nil
	case tok.Kind == TokenLiteral, tok.IsGroup(DelimBrace):
		c.Next()
		return ConstArg{Tokens: TokenStream{tok}}, nil
	case tok.IsPunct("-"):
		if lit, ok := c.PeekN(1); ok && lit.Kind == TokenLiteral {
			c.Next()
			c.Next()
			return ConstArg{Tokens: TokenStream{tok, lit}}, nil
		}
	case tok.Kind == TokenIdent:
		next, ok := c.PeekN(1)
		if ok && next.IsPunct("=") {
			c.Next()
			c.Next()
			ty, err := c.parseType(true)
			if err != nil {
				return nil, err
			}
			return &AssocType{Ident: NewIdent(tok.Text, tok.Span), Ty: ty}, nil
		}
		if ok && next.IsPunct(":") {
			c.Next()
			c.Next()
			bounds, err := c.parseBounds(true)
			if err != nil {
				return nil, err
			}
			return &AssocConstraint{Ident: NewIdent(tok.Text, tok.Span), Bounds: bounds}, nil
		}
	}

	ty, err := c.parseType(true)
	if err != nil {
		return nil, err
	}
	return TypeArg{Ty: ty}, nil
}

func (c *Cursor) parseParenArgs(group Token) (*ParenthesizedArgs, error) {
	args := &ParenthesizedArgs{}
	sub := newGroupCursor(group)
	for !sub.EOF() {
		ty, err := sub.parseType(true)
		if err != nil {
			return nil, err
		}
		args.Inputs = append(args.Inputs, ty)
		if sub.EOF() {
			break
		}
		if err := sub.expectPunct(","); err != nil {
			return nil, err
		}
	}
	if c.EatPunct("->") {
		out, err := c.parseType(false)
		if err != nil {
			return nil, err
		}
		args.Output = ReturnType{Ty: out}
	}
	return args, nil
}

// ParseBounds parses one or more bounds separated by +.
func (c *Cursor) ParseBounds() ([]TypeParamBound, error) {
	return c.parseBounds(true)
}

func (c *Cursor) parseBounds(allowPlus bool) ([]TypeParamBound, error) {
	var bounds []TypeParamBound
	for {
		b, err := c.parseBound()
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, b)
		if !allowPlus || !c.EatPunct("+") {
			return bounds, nil
		}
	}
}

func (c *Cursor) parseBound() (TypeParamBound, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.unexpected("bound")
	}
	if tok.Kind == TokenLifetime {
		c.Next()
		return lifetimeFromToken(tok), nil
	}
	if tok.IsGroup(DelimParen) {
		c.Next()
		sub := newGroupCursor(tok)
		tb, err := sub.parseTraitBound()
		if err != nil {
			return nil, err
		}
		if err := sub.expectEOF(); err != nil {
			return nil, err
		}
		tb.Paren = true
		return tb, nil
	}
	return c.parseTraitBound()
}

func (c *Cursor) parseTraitBound() (*TraitBound, error) {
	tb := &TraitBound{}
	tb.Maybe = c.EatPunct("?")
	if c.peekKeyword("for") {
		lts, err := c.parseForLifetimes()
		if err != nil {
			return nil, err
		}
		tb.Lifetimes = lts
	}
	path, err := c.parsePath()
	if err != nil {
		return nil, err
	}
	tb.Path = path
	return tb, nil
}

func (c *Cursor) parseForLifetimes() ([]Lifetime, error) {
	if err := c.expectKeyword("for"); err != nil {
		return nil, err
	}
	if err := c.expectPunct("<"); err != nil {
		return nil, err
	}
	var lts []Lifetime
	for !c.EatPunct(">") {
		tok, ok := c.Peek()
		if !ok || tok.Kind != TokenLifetime {
			return nil, c.unexpected("lifetime")
		}
		c.Next()
		lts = append(lts, lifetimeFromToken(tok))
		if c.EatPunct(",") {
			continue
		}
		if err := c.expectPunct(">"); err != nil {
			return nil, err
		}
		break
	}
	return lts, nil
}

func lifetimeFromToken(tok Token) Lifetime {
	return Lifetime{Ident: NewIdent(tok.Text[1:], tok.Span), Span: tok.Span}
}

// ParseFnArg parses one function parameter.
func (c *Cursor) ParseFnArg() (FnArg, error) {
	start, ok := c.Peek()
	if !ok {
		return nil, c.unexpected("parameter")
	}
	if c.atReceiver() {
		return c.parseReceiver()
	}

	pat, err := c.parsePat()
	if err != nil {
		return nil, err
	}
	if err := c.expectPunct(":"); err != nil {
		return nil, err
	}
	ty, err := c.parseType(true)
	if err != nil {
		return nil, err
	}
	return &PatType{Span: c.spanFrom(start.Span), Pat: pat, Ty: ty}, nil
}

func (c *Cursor) atReceiver() bool {
	i := 0
	if tok, ok := c.PeekN(i); ok && tok.IsPunct("&") {
		i++
		if tok, ok := c.PeekN(i); ok && tok.Kind == TokenLifetime {
			i++
		}
	}
	if tok, ok := c.PeekN(i); ok && tok.IsKeyword("mut") {
		i++
	}
	tok, ok := c.PeekN(i)
	if !ok || !tok.IsKeyword("self") {
		return false
	}
	// self::Foo is a path, not a receiver
	next, ok := c.PeekN(i + 1)
	return !ok || !next.IsPunct("::")
}

func (c *Cursor) parseReceiver() (FnArg, error) {
	start, _ := c.Peek()
	recv := &Receiver{}
	if c.EatPunct("&") {
		recv.Reference = true
		if tok, ok := c.Peek(); ok && tok.Kind == TokenLifetime {
			c.Next()
			lt := lifetimeFromToken(tok)
			recv.Lifetime = &lt
		}
	}
	recv.Mutable = c.EatKeyword("mut")
	if err := c.expectKeyword("self"); err != nil {
		return nil, err
	}
	if !recv.Reference && c.EatPunct(":") {
		ty, err := c.parseType(true)
		if err != nil {
			return nil, err
		}
		recv.Ty = ty
	}
	recv.Span = c.spanFrom(start.Span)
	return recv, nil
}

func (c *Cursor) parsePat() (Pat, error) {
	tok, ok := c.Peek()
	if !ok {
		return nil, c.unexpected("pattern")
	}

	switch {
	case tok.IsKeyword("_"):
		c.Next()
		return &PatWild{Span: tok.Span}, nil
	case tok.IsPunct("&"):
		c.Next()
		ref := &PatRef{Mutable: c.EatKeyword("mut")}
		inner, err := c.parsePat()
		if err != nil {
			return nil, err
		}
		ref.Pat = inner
		ref.Span = c.spanFrom(tok.Span)
		return ref, nil
	case tok.IsGroup(DelimParen):
		c.Next()
		tuple := &PatTuple{Span: tok.Span}
		sub := newGroupCursor(tok)
		for !sub.EOF() {
			elem, err := sub.parsePat()
			if err != nil {
				return nil, err
			}
			tuple.Elems = append(tuple.Elems, elem)
			if sub.EOF() {
				break
			}
			if err := sub.expectPunct(","); err != nil {
				return nil, err
			}
		}
		return tuple, nil
	case tok.Kind == TokenIdent:
		pat := &PatIdent{}
		pat.ByRef = c.EatKeyword("ref")
		pat.Mut = c.EatKeyword("mut")
		id, err := c.ParseIdent()
		if err != nil {
			return nil, err
		}
		pat.Ident = id
		pat.Span = c.spanFrom(tok.Span)
		return pat, nil
	}
	return nil, c.unexpected("pattern")
}
