package parser

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/synext/internal/syntax"
)

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name, "items.rs")
}

func TestParse_BasicStruct(t *testing.T) {
	p := New()

	info, err := p.Parse(fixture("parserbasic"), "Login")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if info.Kind != ItemStruct || info.Name.String() != "Login" {
		t.Fatalf("expected struct Login, got %s %s", info.Kind, info.Name)
	}
	if got := identNames(info.Generics); got != "T" {
		t.Fatalf("generics = %q, want T", got)
	}

	want := map[string]string{
		"user":  "&'r str",
		"extra": "Vec<T>",
		"raw":   "Raw!(String)",
	}
	if len(info.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(info.Fields))
	}
	for i, f := range info.Fields {
		if f.Index != i {
			t.Fatalf("field %s index = %d, want %d", f.Name, f.Index, i)
		}
		if got := f.Ty.String(); got != want[f.Name.String()] {
			t.Fatalf("field %s type = %q, want %q", f.Name, got, want[f.Name.String()])
		}
	}
	if info.Return != nil {
		t.Fatalf("struct should have no return type, got %v", info.Return)
	}
	if pos := info.Fields[0].Name.Span.Start; pos.Line != 7 || pos.Filename != fixture("parserbasic") {
		t.Fatalf("user field position = %v", pos)
	}
}

func TestParse_TupleAndUnitStruct(t *testing.T) {
	p := New()

	point, err := p.Parse(fixture("parserbasic"), "Point")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(point.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(point.Fields))
	}
	if point.Fields[1].Name.String() != "1" || point.Fields[1].Ty.String() != "i32" {
		t.Fatalf("unexpected second field: %s: %s", point.Fields[1].Name, point.Fields[1].Ty)
	}

	marker, err := p.Parse(fixture("parserbasic"), "Marker")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(marker.Fields) != 0 {
		t.Fatalf("unit struct should have no fields, got %d", len(marker.Fields))
	}
}

func TestParse_Fn(t *testing.T) {
	p := New()

	info, err := p.Parse(fixture("parserbasic"), "handler")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if info.Kind != ItemFn {
		t.Fatalf("kind = %s, want fn", info.Kind)
	}
	if len(info.Fields) != 3 {
		t.Fatalf("expected 3 parameters, got %d", len(info.Fields))
	}

	guard := info.Fields[0]
	if !guard.Wild || guard.Name.String() != "_" || guard.Ty.String() != "Guard" {
		t.Fatalf("unexpected wildcard parameter: %#v", guard)
	}
	if id := info.Fields[1]; id.Wild || id.Name.String() != "id" || id.Ty.String() != "u64" {
		t.Fatalf("unexpected typed parameter: %s: %s", id.Name, id.Ty)
	}
	if got := info.Fields[2].Ty.String(); got != "&CookieJar<'_>" {
		t.Fatalf("cookies type = %q", got)
	}
	if info.Return == nil || info.Return.String() != "Result<T, E>" {
		t.Fatalf("return type = %v, want Result<T, E>", info.Return)
	}
}

func TestParse_FnSkipsReceiversAndPatterns(t *testing.T) {
	info, err := New().Parse(fixture("parserbasic"), "unit")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(info.Fields) != 0 {
		t.Fatalf("expected no named parameters, got %d", len(info.Fields))
	}
	if info.Return != nil {
		t.Fatalf("unit fn should have no return type, got %v", info.Return)
	}
}

func TestParseAll_SkipsOtherItems(t *testing.T) {
	items, err := New().ParseAll(fixture("parserbasic"))
	if err != nil {
		t.Fatalf("ParseAll() error = %v", err)
	}

	var names []string
	for _, item := range items {
		names = append(names, item.Kind.String()+" "+item.Name.String())
	}
	got := strings.Join(names, ", ")
	want := "struct Login, struct Point, struct Marker, fn handler, fn unit"
	if got != want {
		t.Fatalf("items = %q, want %q", got, want)
	}
}

func TestParse_GenericsWhereAndQualifiers(t *testing.T) {
	p := New()

	upload, err := p.Parse(fixture("parserforms"), "Upload")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := identNames(upload.Generics); got != "N,F" {
		t.Fatalf("generics = %q, want N,F", got)
	}
	if len(upload.Fields) != 5 {
		t.Fatalf("expected 5 fields, got %d", len(upload.Fields))
	}
	if got := upload.Fields[1].Ty.String(); got != "Lenient<'v, [F; N]>" {
		t.Fatalf("meta type = %q", got)
	}

	submit, err := p.Parse(fixture("parserforms"), "submit")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := identNames(submit.Generics); got != "T" {
		t.Fatalf("generics = %q, want T", got)
	}
	if len(submit.Fields) != 2 || !submit.Fields[1].Wild {
		t.Fatalf("unexpected parameters: %#v", submit.Fields)
	}
	if got := submit.Return.String(); got != "impl Responder<'r> + Send" {
		t.Fatalf("return type = %q", got)
	}

	ffi, err := p.Parse(fixture("parserforms"), "ffi")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ffi.Return == nil || ffi.Return.String() != "*const u8" {
		t.Fatalf("return type = %v", ffi.Return)
	}
}

func TestParseRecursive_NestedAndCycle(t *testing.T) {
	p := New()

	infos, err := p.ParseRecursive(fixture("parsernested"), "Root")
	if err != nil {
		t.Fatalf("ParseRecursive() error = %v", err)
	}

	if len(infos) != 3 {
		t.Fatalf("expected 3 structs, got %d", len(infos))
	}

	wantOrder := []string{"Leaf", "Child", "Root"}
	for i, want := range wantOrder {
		if infos[i].Name.String() != want {
			t.Fatalf("order[%d] = %s, want %s", i, infos[i].Name, want)
		}
	}
}

func TestParse_NotFound(t *testing.T) {
	_, err := New().Parse(fixture("parserbasic"), "Missing")
	if err == nil || !strings.Contains(err.Error(), `item "Missing" not found`) {
		t.Fatalf("expected not found error, got %v", err)
	}

	if _, err := New().ParseAll(fixture("nope")); err == nil {
		t.Fatal("expected read error, got nil")
	}
}

func TestParseSource_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "unbalanced", src: "struct A { x: u8", want: "unclosed delimiter"},
		{name: "missing colon", src: "struct A { x u8 }", want: "expected `:` after field x"},
		{name: "missing comma", src: "struct A { x: u8 y: u8 }", want: "expected `,` after field x"},
		{name: "tuple without semicolon", src: "struct A(u8)", want: "expected `;` after tuple struct A"},
		{name: "fn without params", src: "fn f -> u8 {}", want: "expected parameter list of fn f"},
		{name: "fn without body", src: "fn f()", want: "expected body of fn f"},
		{name: "bad field type", src: "struct A { x: <u8 }", want: "a.rs:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSource("a.rs", []byte(tt.src))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.want)
			}
			var synErr *syntax.Error
			if !errors.As(err, &synErr) {
				t.Fatalf("error %v does not wrap *syntax.Error", err)
			}
		})
	}
}

func TestParseSource_Visibility(t *testing.T) {
	src := "pub(crate) struct A(pub (u8, u16), pub(super) String);"
	items, err := ParseSource("a.rs", []byte(src))
	if err != nil {
		t.Fatalf("ParseSource() error = %v", err)
	}
	if len(items) != 1 || len(items[0].Fields) != 2 {
		t.Fatalf("unexpected items: %#v", items)
	}
	if got := items[0].Fields[0].Ty.String(); got != "(u8, u16)" {
		t.Fatalf("first field = %q, want (u8, u16)", got)
	}
}

func identNames(ids []syntax.Ident) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return strings.Join(names, ",")
}
