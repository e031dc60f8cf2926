// Package syntax implements the token and type-expression layer the
// extension helpers operate on: a lexer producing delimiter-grouped token
// streams with source spans, an AST for type expressions, function
// arguments and patterns, and a parser for both.
package syntax

import "fmt"

// Position is a location in a source file.
type Position struct {
	Filename string // Source file name
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in source
}

// IsValid reports whether the position points into a file.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		if p.Filename != "" {
			return p.Filename
		}
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// Span is a range of source text. The zero Span is the call-site span:
// it carries no location and is what generated tokens get by default.
type Span struct {
	Start Position // inclusive
	End   Position // exclusive
}

// CallSite returns the zero span.
func CallSite() Span { return Span{} }

// IsValid reports whether the span has a location.
func (s Span) IsValid() bool {
	return s.Start.IsValid()
}

// Join returns the smallest span covering s and o. Invalid spans are ignored.
func (s Span) Join(o Span) Span {
	if !s.IsValid() {
		return o
	}
	if !o.IsValid() {
		return s
	}
	out := s
	if o.Start.Offset < out.Start.Offset {
		out.Start = o.Start
	}
	if o.End.Offset > out.End.Offset {
		out.End = o.End
	}
	return out
}

func (s Span) String() string {
	return s.Start.String()
}

// Error is a lexing or parsing failure at a source location.
type Error struct {
	Span Span
	Msg  string
}

func (e *Error) Error() string {
	if !e.Span.IsValid() {
		return e.Msg
	}
	return e.Span.String() + ": " + e.Msg
}

func errorf(span Span, format string, args ...any) *Error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}
