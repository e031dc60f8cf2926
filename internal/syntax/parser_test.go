package syntax

import (
	"strings"
	"testing"
)

func TestParseType_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string // empty means same as src
	}{
		{"simple path", "u8", ""},
		{"generic nest", "A<B, C<impl Foo>, Box<dyn Foo>, Option<T>>", ""},
		{"leading colon", "::std::vec::Vec<u8>", ""},
		{"turbofish", "Vec::<u8>", ""},
		{"reference", "&'a mut [u8]", ""},
		{"reference no lifetime", "& str", "&str"},
		{"const ptr", "*const T", ""},
		{"mut ptr", "*mut Vec<T>", ""},
		{"array", "[u8; 4]", ""},
		{"array expr", "[u8; N*2]", "[u8; N*2]"},
		{"slice", "[T]", ""},
		{"unit", "()", ""},
		{"one tuple", "(A,)", ""},
		{"tuple", "(A, B, C)", ""},
		{"tuple trailing comma", "(A, B,)", "(A, B)"},
		{"paren", "(A)", ""},
		{"never", "!", ""},
		{"infer", "_", ""},
		{"bare fn", "fn(u8, x: u16) -> bool", ""},
		{"bare fn variadic", `unsafe extern "C" fn(*const u8, ...) -> i32`, ""},
		{"higher ranked fn", "for<'a> fn(&'a str) -> &'a str", ""},
		{"qself", "<T as Iterator>::Item", ""},
		{"qself no trait", "<T>::Assoc", ""},
		{"impl with fn bound", "impl Fn(u8) -> u8 + Send", ""},
		{"dyn assoc", "dyn Iterator<Item = u8> + 'static", ""},
		{"dyn higher ranked", "Box<dyn for<'a> Fn(&'a u8)>", ""},
		{"constraint", "impl Iterator<Item: Clone>", ""},
		{"maybe sized", "Box<dyn ?Sized>", ""},
		{"paren bound", "dyn (Send) + Sync", ""},
		{"bare trait object", "Send + Sync", ""},
		{"const args", "Foo<3, -1, {N + 1}>", ""},
		{"lifetime arg", "Cookie<'static>", ""},
		{"macro paren", "Raw!(String)", ""},
		{"macro bracket", "m![u8; 2]", ""},
		{"macro path", "crate::m!{u8}", ""},
		{"raw ident", "r#type::Foo", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ty, err := ParseTypeString(tt.src)
			if err != nil {
				t.Fatalf("ParseTypeString(%q) error = %v", tt.src, err)
			}
			want := tt.want
			if want == "" {
				want = tt.src
			}
			if got := ty.String(); got != want {
				t.Fatalf("String() = %q, want %q", got, want)
			}
		})
	}
}

func TestParseType_Variants(t *testing.T) {
	tests := []struct {
		src   string
		check func(Type) bool
	}{
		{"Option<T>", func(ty Type) bool { _, ok := ty.(*TypePath); return ok }},
		{"impl Foo", func(ty Type) bool { _, ok := ty.(*TypeImplTrait); return ok }},
		{"dyn Foo", func(ty Type) bool { o, ok := ty.(*TypeTraitObject); return ok && o.Dyn }},
		{"_", func(ty Type) bool { _, ok := ty.(*TypeInfer); return ok }},
		{"!", func(ty Type) bool { _, ok := ty.(*TypeNever); return ok }},
		{"fn()", func(ty Type) bool { _, ok := ty.(*TypeBareFn); return ok }},
		{"m!(u8)", func(ty Type) bool { _, ok := ty.(*TypeMacro); return ok }},
		{"(u8)", func(ty Type) bool { _, ok := ty.(*TypeParen); return ok }},
		{"(u8,)", func(ty Type) bool { tup, ok := ty.(*TypeTuple); return ok && len(tup.Elems) == 1 }},
		{"<T as A>::B", func(ty Type) bool { p, ok := ty.(*TypePath); return ok && p.QSelf != nil && p.QSelf.Position == 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			ty, err := ParseTypeString(tt.src)
			if err != nil {
				t.Fatalf("ParseTypeString() error = %v", err)
			}
			if !tt.check(ty) {
				t.Fatalf("unexpected node %T for %q", ty, tt.src)
			}
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"", "expected type, found end of input"},
		{"Vec<u8", "expected `>`"},
		{"u8 u16", "unexpected token"},
		{"*u8", "expected `const` or `mut`"},
		{"[u8;]", "expected array length"},
		{"(u8 u16)", "expected `,`"},
		{"'a", "expected type"},
		{"<T as A>", "expected `::`"},
		{"for<T> fn()", "expected lifetime"},
		{"{u8}", "expected type"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := ParseTypeString(tt.src)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseType_Spans(t *testing.T) {
	ts, err := Lex("span.rs", "Option<\n    Vec<u8>>")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	ty, err := ParseType(ts)
	if err != nil {
		t.Fatalf("ParseType() error = %v", err)
	}
	if got := ty.GetSpan().Start; got.Line != 1 || got.Column != 1 {
		t.Fatalf("root start = %v, want 1:1", got)
	}
	if got := ty.GetSpan().End; got.Line != 2 {
		t.Fatalf("root end = %v, want line 2", got)
	}

	inner := SubTypes(ty)[0]
	if got := inner.GetSpan().Start; got.Line != 2 || got.Column != 5 {
		t.Fatalf("inner start = %v, want 2:5", got)
	}
}

func TestParseFnArg(t *testing.T) {
	tests := []struct {
		src      string
		receiver bool
		want     string
	}{
		{"x: u8", false, "x: u8"},
		{"_: Guard<'_>", false, "_: Guard<'_>"},
		{"mut form: Form<T>", false, "mut form: Form<T>"},
		{"ref mut x: T", false, "ref mut x: T"},
		{"(a, b): (u8, u8)", false, "(a, b): (u8, u8)"},
		{"&mut x: &mut u8", false, "&mut x: &mut u8"},
		{"self", true, "self"},
		{"&self", true, "&self"},
		{"&'a mut self", true, "&'a mut self"},
		{"mut self: Box<Self>", true, "mut self: Box<Self>"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			ts, err := Lex("", tt.src)
			if err != nil {
				t.Fatalf("Lex() error = %v", err)
			}
			arg, err := ParseFnArg(ts)
			if err != nil {
				t.Fatalf("ParseFnArg() error = %v", err)
			}
			_, isRecv := arg.(*Receiver)
			if isRecv != tt.receiver {
				t.Fatalf("receiver = %v, want %v (%T)", isRecv, tt.receiver, arg)
			}
			if got := arg.String(); got != tt.want {
				t.Fatalf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFnArgs(t *testing.T) {
	ts, err := Lex("", "#[allow(unused)] &self, _: Guard, id: u64,")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	args, err := ParseFnArgs(ts)
	if err != nil {
		t.Fatalf("ParseFnArgs() error = %v", err)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if _, ok := args[0].(*Receiver); !ok {
		t.Fatalf("first arg should be a receiver, got %T", args[0])
	}
	pt, ok := args[1].(*PatType)
	if !ok {
		t.Fatalf("second arg should be typed, got %T", args[1])
	}
	if _, ok := pt.Pat.(*PatWild); !ok {
		t.Fatalf("second arg pattern should be wildcard, got %T", pt.Pat)
	}
}

func TestParseGenerics(t *testing.T) {
	src := "<'a: 'b, T: Clone + 'a, const N: usize = 3, U = u8>"
	ts, err := Lex("", src)
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	c := NewCursor(ts)
	g, err := c.ParseGenerics()
	if err != nil {
		t.Fatalf("ParseGenerics() error = %v", err)
	}
	if !c.EOF() {
		t.Fatal("generics should consume the whole list")
	}
	if got := g.String(); got != src {
		t.Fatalf("String() = %q, want %q", got, src)
	}

	idents := g.TypeIdents()
	names := make([]string, len(idents))
	for i, id := range idents {
		names[i] = id.String()
	}
	if got := strings.Join(names, ","); got != "T,N,U" {
		t.Fatalf("TypeIdents() = %s, want T,N,U", got)
	}
}

func TestParseGenerics_Absent(t *testing.T) {
	ts, err := Lex("", "{ x: u8 }")
	if err != nil {
		t.Fatalf("Lex() error = %v", err)
	}
	c := NewCursor(ts)
	g, err := c.ParseGenerics()
	if err != nil {
		t.Fatalf("ParseGenerics() error = %v", err)
	}
	if len(g.Params) != 0 || c.EOF() {
		t.Fatal("absent generics should consume nothing")
	}
}
