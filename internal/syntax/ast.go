package syntax

import "strings"

// Node is implemented by every syntax tree node.
type Node interface {
	GetSpan() Span
	String() string
}

// Type is a type expression. The set of implementations is closed: the
// Type* structs in this file.
type Type interface {
	Node
	typeNode()
}

// TypeArray is a fixed size array: [T; N].
type TypeArray struct {
	Span Span
	Elem Type
	Len  TokenStream // length expression, unparsed
}

// TypeBareFn is a function pointer: for<'a> unsafe extern "C" fn(A) -> B.
type TypeBareFn struct {
	Span      Span
	Lifetimes []Lifetime
	Unsafe    bool
	Abi       *string // nil without extern, "" for a bare extern
	Inputs    []BareFnArg
	Variadic  bool
	Output    ReturnType
}

// BareFnArg is one parameter of a function pointer type.
type BareFnArg struct {
	Name *Ident
	Ty   Type
}

// TypeImplTrait is an existential: impl Trait + 'a.
type TypeImplTrait struct {
	Span   Span
	Bounds []TypeParamBound
}

// TypeInfer is the placeholder type _.
type TypeInfer struct {
	Span Span
}

// TypeMacro is a macro invocation in type position: m!(...).
type TypeMacro struct {
	Span Span
	Mac  Macro
}

// Macro is a macro invocation: a path, a delimiter and unparsed tokens.
type Macro struct {
	Path   Path
	Delim  Delimiter
	Tokens TokenStream
}

// TypeNever is the never type !.
type TypeNever struct {
	Span Span
}

// TypeParen is a parenthesized type: (T).
type TypeParen struct {
	Span Span
	Elem Type
}

// TypePath is a possibly qualified path: std::vec::Vec<T> or <T as Trait>::Assoc.
type TypePath struct {
	Span  Span
	QSelf *QSelf
	Path  Path
}

// QSelf is the qualified self of a path. Position is the number of leading
// path segments that name the trait; zero when there is no "as Trait".
type QSelf struct {
	Ty       Type
	Position int
}

// TypePtr is a raw pointer: *const T or *mut T.
type TypePtr struct {
	Span    Span
	Mutable bool
	Elem    Type
}

// TypeReference is a reference: &'a mut T.
type TypeReference struct {
	Span     Span
	Lifetime *Lifetime
	Mutable  bool
	Elem     Type
}

// TypeSlice is a dynamically sized slice: [T].
type TypeSlice struct {
	Span Span
	Elem Type
}

// TypeTraitObject is a trait object: dyn Trait + Send. Dyn is false for the
// bare form Trait + Send.
type TypeTraitObject struct {
	Span   Span
	Dyn    bool
	Bounds []TypeParamBound
}

// TypeTuple is a tuple, including the unit type ().
type TypeTuple struct {
	Span  Span
	Elems []Type
}

// ReturnType is the output of a function signature. Ty is nil for the
// default unit return.
type ReturnType struct {
	Ty Type
}

func (r ReturnType) String() string {
	if r.Ty == nil {
		return ""
	}
	return " -> " + r.Ty.String()
}

func (t *TypeArray) GetSpan() Span       { return t.Span }
func (t *TypeBareFn) GetSpan() Span      { return t.Span }
func (t *TypeImplTrait) GetSpan() Span   { return t.Span }
func (t *TypeInfer) GetSpan() Span       { return t.Span }
func (t *TypeMacro) GetSpan() Span       { return t.Span }
func (t *TypeNever) GetSpan() Span       { return t.Span }
func (t *TypeParen) GetSpan() Span       { return t.Span }
func (t *TypePath) GetSpan() Span        { return t.Span }
func (t *TypePtr) GetSpan() Span         { return t.Span }
func (t *TypeReference) GetSpan() Span   { return t.Span }
func (t *TypeSlice) GetSpan() Span       { return t.Span }
func (t *TypeTraitObject) GetSpan() Span { return t.Span }
func (t *TypeTuple) GetSpan() Span       { return t.Span }

func (*TypeArray) typeNode()       {}
func (*TypeBareFn) typeNode()      {}
func (*TypeImplTrait) typeNode()   {}
func (*TypeInfer) typeNode()       {}
func (*TypeMacro) typeNode()       {}
func (*TypeNever) typeNode()       {}
func (*TypeParen) typeNode()       {}
func (*TypePath) typeNode()        {}
func (*TypePtr) typeNode()         {}
func (*TypeReference) typeNode()   {}
func (*TypeSlice) typeNode()       {}
func (*TypeTraitObject) typeNode() {}
func (*TypeTuple) typeNode()       {}

func (t *TypeArray) String() string {
	return "[" + t.Elem.String() + "; " + t.Len.String() + "]"
}

func (t *TypeBareFn) String() string {
	var b strings.Builder
	if len(t.Lifetimes) > 0 {
		b.WriteString("for<")
		b.WriteString(joinLifetimes(t.Lifetimes))
		b.WriteString("> ")
	}
	if t.Unsafe {
		b.WriteString("unsafe ")
	}
	if t.Abi != nil {
		b.WriteString("extern ")
		if *t.Abi != "" {
			b.WriteString(*t.Abi)
			b.WriteByte(' ')
		}
	}
	b.WriteString("fn(")
	for i, in := range t.Inputs {
		if i > 0 {
			b.WriteString(", ")
		}
		if in.Name != nil {
			b.WriteString(in.Name.String())
			b.WriteString(": ")
		}
		b.WriteString(in.Ty.String())
	}
	if t.Variadic {
		if len(t.Inputs) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte(')')
	b.WriteString(t.Output.String())
	return b.String()
}

func (t *TypeImplTrait) String() string {
	return "impl " + joinBounds(t.Bounds)
}

func (t *TypeInfer) String() string { return "_" }

func (t *TypeMacro) String() string { return t.Mac.String() }

func (m Macro) String() string {
	return m.Path.String() + "!" + m.Delim.Open() + m.Tokens.String() + m.Delim.Close()
}

func (t *TypeNever) String() string { return "!" }

func (t *TypeParen) String() string { return "(" + t.Elem.String() + ")" }

func (t *TypePath) String() string {
	if t.QSelf == nil {
		return t.Path.String()
	}
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(t.QSelf.Ty.String())
	pos := t.QSelf.Position
	if pos > 0 {
		b.WriteString(" as ")
		trait := Path{LeadingColon: t.Path.LeadingColon, Segments: t.Path.Segments[:pos]}
		b.WriteString(trait.String())
	}
	b.WriteByte('>')
	for _, seg := range t.Path.Segments[pos:] {
		b.WriteString("::")
		b.WriteString(seg.String())
	}
	return b.String()
}

func (t *TypePtr) String() string {
	if t.Mutable {
		return "*mut " + t.Elem.String()
	}
	return "*const " + t.Elem.String()
}

func (t *TypeReference) String() string {
	var b strings.Builder
	b.WriteByte('&')
	if t.Lifetime != nil {
		b.WriteString(t.Lifetime.String())
		b.WriteByte(' ')
	}
	if t.Mutable {
		b.WriteString("mut ")
	}
	b.WriteString(t.Elem.String())
	return b.String()
}

func (t *TypeSlice) String() string { return "[" + t.Elem.String() + "]" }

func (t *TypeTraitObject) String() string {
	if t.Dyn {
		return "dyn " + joinBounds(t.Bounds)
	}
	return joinBounds(t.Bounds)
}

func (t *TypeTuple) String() string {
	switch len(t.Elems) {
	case 0:
		return "()"
	case 1:
		return "(" + t.Elems[0].String() + ",)"
	}
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
