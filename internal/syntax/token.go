package syntax

import "strings"

// TokenKind is the category of a token.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenPunct
	TokenLiteral
	TokenLifetime
	TokenGroup
)

func (k TokenKind) String() string {
	switch k {
	case TokenIdent:
		return "ident"
	case TokenPunct:
		return "punct"
	case TokenLiteral:
		return "literal"
	case TokenLifetime:
		return "lifetime"
	case TokenGroup:
		return "group"
	default:
		return "unknown"
	}
}

// Delimiter is the bracket pair around a group.
type Delimiter int

const (
	DelimParen Delimiter = iota
	DelimBracket
	DelimBrace
)

// Open returns the opening bracket.
func (d Delimiter) Open() string {
	switch d {
	case DelimBracket:
		return "["
	case DelimBrace:
		return "{"
	default:
		return "("
	}
}

// Close returns the closing bracket.
func (d Delimiter) Close() string {
	switch d {
	case DelimBracket:
		return "]"
	case DelimBrace:
		return "}"
	default:
		return ")"
	}
}

// Token is one token tree: a leaf token or a delimited group.
type Token struct {
	Kind  TokenKind
	Text  string      // ident, punct, literal or lifetime text; empty for groups
	Delim Delimiter   // groups only
	Inner TokenStream // groups only
	Span  Span
}

// Is reports whether t is a leaf token of kind k with the given text.
func (t Token) Is(k TokenKind, text string) bool {
	return t.Kind == k && t.Text == text
}

// IsPunct reports whether t is the given punctuation.
func (t Token) IsPunct(text string) bool { return t.Is(TokenPunct, text) }

// IsKeyword reports whether t is the given identifier.
func (t Token) IsKeyword(text string) bool { return t.Is(TokenIdent, text) }

// IsGroup reports whether t is a group with the given delimiter.
func (t Token) IsGroup(d Delimiter) bool {
	return t.Kind == TokenGroup && t.Delim == d
}

func (t Token) String() string {
	if t.Kind == TokenGroup {
		return t.Delim.Open() + t.Inner.String() + t.Delim.Close()
	}
	return t.Text
}

// TokenStream is an ordered sequence of token trees.
type TokenStream []Token

// Clone returns a deep copy of the stream.
func (ts TokenStream) Clone() TokenStream {
	if ts == nil {
		return nil
	}
	out := make(TokenStream, len(ts))
	for i, t := range ts {
		if t.Kind == TokenGroup {
			t.Inner = t.Inner.Clone()
		}
		out[i] = t
	}
	return out
}

// Span returns the span covering every token in the stream.
func (ts TokenStream) Span() Span {
	var s Span
	for _, t := range ts {
		s = s.Join(t.Span)
	}
	return s
}

// String renders the stream with spacing close to hand-written source.
func (ts TokenStream) String() string {
	var b strings.Builder
	for i, t := range ts {
		if i > 0 && needsSpace(ts[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

func needsSpace(prev, next Token) bool {
	if wordLike(prev) && wordLike(next) {
		return true
	}
	if prev.Kind == TokenPunct {
		switch prev.Text {
		case ",", ";", "=", "+", "->", "=>":
			return true
		case ":":
			return true
		}
	}
	if next.Kind == TokenPunct {
		switch next.Text {
		case "=", "+", "->", "=>":
			return true
		}
	}
	if wordLike(prev) && next.Kind == TokenGroup && next.Delim == DelimBrace {
		return true
	}
	return false
}

func wordLike(t Token) bool {
	switch t.Kind {
	case TokenIdent, TokenLiteral, TokenLifetime:
		return true
	}
	return false
}
