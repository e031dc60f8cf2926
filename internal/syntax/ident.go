package syntax

import "strings"

const rawPrefix = "r#"

// Ident is an identifier with the span it was written at.
type Ident struct {
	Name string // identifier text without the raw escape
	Raw  bool   // written as r#Name
	Span Span
}

// NewIdent builds an identifier from its textual form. A leading "r#"
// marks a raw identifier.
func NewIdent(text string, span Span) Ident {
	if name, ok := strings.CutPrefix(text, rawPrefix); ok && name != "" {
		return Ident{Name: name, Raw: true, Span: span}
	}
	return Ident{Name: text, Span: span}
}

// String returns the identifier as written, including any raw escape.
func (id Ident) String() string {
	if id.Raw {
		return rawPrefix + id.Name
	}
	return id.Name
}

// Unraw returns the identifier text with any raw escape removed.
func (id Ident) Unraw() string {
	return id.Name
}

// Equal compares identifiers by their written form. Spans are ignored.
func (id Ident) Equal(o Ident) bool {
	return id.Raw == o.Raw && id.Name == o.Name
}

// IsZero reports whether the identifier is empty.
func (id Ident) IsZero() bool {
	return id.Name == ""
}
