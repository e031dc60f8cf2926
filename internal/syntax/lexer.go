package syntax

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// multi-character puncts recognized as a single token.
var compoundPuncts = []string{"::", "->", "=>"}

type lexer struct {
	filename string
	src      string
	offset   int
	line     int
	column   int
}

type frame struct {
	delim  Delimiter
	open   Position
	tokens TokenStream
}

// Lex splits src into token trees. Delimiters must be balanced.
func Lex(filename, src string) (TokenStream, error) {
	l := &lexer{filename: filename, src: src, line: 1, column: 1}
	stack := []frame{{}}

	for {
		if err := l.skipTrivia(); err != nil {
			return nil, err
		}
		if l.offset >= len(l.src) {
			break
		}

		start := l.pos()
		ch, _ := utf8.DecodeRuneInString(l.src[l.offset:])

		switch ch {
		case '(', '[', '{':
			l.advance(1)
			stack = append(stack, frame{delim: delimiterOf(ch), open: start})
			continue
		case ')', ']', '}':
			l.advance(1)
			top := stack[len(stack)-1]
			if len(stack) == 1 {
				return nil, errorf(l.span(start), "unexpected closing delimiter %q", ch)
			}
			if want := top.delim.Close(); want != string(ch) {
				return nil, errorf(l.span(start), "mismatched closing delimiter %q, expected %q", ch, want)
			}
			stack = stack[:len(stack)-1]
			group := Token{
				Kind:  TokenGroup,
				Delim: top.delim,
				Inner: top.tokens,
				Span:  Span{Start: top.open, End: l.pos()},
			}
			parent := &stack[len(stack)-1]
			parent.tokens = append(parent.tokens, group)
			continue
		}

		tok, err := l.leaf(ch, start)
		if err != nil {
			return nil, err
		}
		cur := &stack[len(stack)-1]
		cur.tokens = append(cur.tokens, tok)
	}

	if len(stack) > 1 {
		top := stack[len(stack)-1]
		return nil, errorf(Span{Start: top.open, End: top.open}, "unclosed delimiter %q", top.delim.Open())
	}
	return stack[0].tokens, nil
}

func (l *lexer) leaf(ch rune, start Position) (Token, error) {
	switch {
	case ch == 'r' && strings.HasPrefix(l.src[l.offset:], rawPrefix) && l.identStartAt(l.offset+len(rawPrefix)):
		l.advance(len(rawPrefix))
		name := l.readIdent()
		return Token{Kind: TokenIdent, Text: rawPrefix + name, Span: l.span(start)}, nil
	case ch == 'b' && l.peekByte(1) == '"':
		l.advance(1)
		text, err := l.readQuoted('"', start)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenLiteral, Text: "b" + text, Span: l.span(start)}, nil
	case isIdentStart(ch):
		return Token{Kind: TokenIdent, Text: l.readIdent(), Span: l.span(start)}, nil
	case ch >= '0' && ch <= '9':
		return Token{Kind: TokenLiteral, Text: l.readNumber(), Span: l.span(start)}, nil
	case ch == '"':
		text, err := l.readQuoted('"', start)
		if err != nil {
			return Token{}, err
		}
		return Token{Kind: TokenLiteral, Text: text, Span: l.span(start)}, nil
	case ch == '\'':
		return l.readQuoteOrLifetime(start)
	}

	for _, p := range compoundPuncts {
		if strings.HasPrefix(l.src[l.offset:], p) {
			l.advance(len(p))
			return Token{Kind: TokenPunct, Text: p, Span: l.span(start)}, nil
		}
	}
	if strings.ContainsRune("!#$%&*+,-./:;<=>?@^|~", ch) {
		l.advance(1)
		return Token{Kind: TokenPunct, Text: string(ch), Span: l.span(start)}, nil
	}
	return Token{}, errorf(l.span(start), "unexpected character %q", ch)
}

func (l *lexer) readQuoteOrLifetime(start Position) (Token, error) {
	// 'a is a lifetime unless it closes as a char literal: 'a'
	if l.identStartAt(l.offset + 1) {
		end := l.offset + 1
		for end < len(l.src) {
			r, size := utf8.DecodeRuneInString(l.src[end:])
			if !isIdentContinue(r) {
				break
			}
			end += size
		}
		if end >= len(l.src) || l.src[end] != '\'' {
			l.advance(1)
			name := l.readIdent()
			return Token{Kind: TokenLifetime, Text: "'" + name, Span: l.span(start)}, nil
		}
	}
	text, err := l.readQuoted('\'', start)
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenLiteral, Text: text, Span: l.span(start)}, nil
}

func (l *lexer) readQuoted(quote byte, start Position) (string, error) {
	begin := l.offset
	l.advance(1)
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch c {
		case '\\':
			l.advance(1)
			if l.offset < len(l.src) {
				l.advanceRune()
			}
			continue
		case quote:
			l.advance(1)
			return l.src[begin:l.offset], nil
		}
		l.advanceRune()
	}
	return "", errorf(Span{Start: start, End: l.pos()}, "unterminated literal")
}

func (l *lexer) readIdent() string {
	begin := l.offset
	for l.offset < len(l.src) {
		r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
		if !isIdentContinue(r) {
			break
		}
		l.advanceRune()
	}
	return l.src[begin:l.offset]
}

func (l *lexer) readNumber() string {
	begin := l.offset
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		isFraction := c == '.' && l.peekByte(1) >= '0' && l.peekByte(1) <= '9'
		if !isFraction && c != '_' && !isAlnumByte(c) {
			break
		}
		l.advance(1)
	}
	return l.src[begin:l.offset]
}

func (l *lexer) skipTrivia() error {
	for l.offset < len(l.src) {
		rest := l.src[l.offset:]
		switch {
		case strings.HasPrefix(rest, "//"):
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.advanceRune()
			}
		case strings.HasPrefix(rest, "/*"):
			start := l.pos()
			l.advance(2)
			depth := 1
			for depth > 0 {
				if l.offset >= len(l.src) {
					return errorf(Span{Start: start, End: l.pos()}, "unterminated block comment")
				}
				switch {
				case strings.HasPrefix(l.src[l.offset:], "/*"):
					depth++
					l.advance(2)
				case strings.HasPrefix(l.src[l.offset:], "*/"):
					depth--
					l.advance(2)
				default:
					l.advanceRune()
				}
			}
		default:
			r, _ := utf8.DecodeRuneInString(rest)
			if !unicode.IsSpace(r) {
				return nil
			}
			l.advanceRune()
		}
	}
	return nil
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.offset < len(l.src); i++ {
		l.step(l.src[l.offset], 1)
	}
}

func (l *lexer) advanceRune() {
	r, size := utf8.DecodeRuneInString(l.src[l.offset:])
	l.step(byte(r), size)
}

func (l *lexer) step(c byte, size int) {
	l.offset += size
	if c == '\n' {
		l.line++
		l.column = 1
		return
	}
	l.column++
}

func (l *lexer) peekByte(ahead int) byte {
	if l.offset+ahead >= len(l.src) {
		return 0
	}
	return l.src[l.offset+ahead]
}

func (l *lexer) identStartAt(offset int) bool {
	if offset >= len(l.src) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(l.src[offset:])
	return isIdentStart(r)
}

func (l *lexer) pos() Position {
	return Position{Filename: l.filename, Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *lexer) span(start Position) Span {
	return Span{Start: start, End: l.pos()}
}

func delimiterOf(ch rune) Delimiter {
	switch ch {
	case '[':
		return DelimBracket
	case '{':
		return DelimBrace
	default:
		return DelimParen
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isAlnumByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
