package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seitarof/synext/internal/generator"
	"github.com/seitarof/synext/internal/matcher"
	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/resolver"
)

func newTestRunner(report *bytes.Buffer) Runner {
	return NewRunner(
		parser.New(),
		matcher.NewItemMatcher(),
		matcher.NewFieldMatcher(),
		matcher.NewGenericMatcher(),
		resolver.New(resolver.DefaultRules()...),
		generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter()),
		generator.NewTextReporter(report),
	)
}

func fixture(name string) string {
	return filepath.Join("..", "..", "testdata", name, "items.rs")
}

func TestRunner_Run_GeneratesTables(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested_types_gen.go")

	cfg := &Config{
		Input:    fixture("parsernested"),
		Item:     "Root",
		Filename: out,
		Package:  "nested",
	}
	if err := newTestRunner(&bytes.Buffer{}).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	got := string(content)

	checks := []string{
		"package nested",
		"func RootTypes() []TypeNode",
		"func ChildTypes() []TypeNode",
		"func LeafTypes() []TypeNode",
		`{Field: "child_opt", Parent: "Option<Box<Child>>", Type: "Box<Child>", Strategy: "concrete", Concrete: true},`,
		`{Field: "remote", Parent: "", Type: "remote::Config", Strategy: "concrete", Concrete: true},`,
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("generated code does not contain %q\n%s", check, got)
		}
	}
	if strings.Index(got, "func RootTypes") > strings.Index(got, "func LeafTypes") {
		t.Fatalf("root table should come first\n%s", got)
	}
}

func TestRunner_Run_ReportsAllItems(t *testing.T) {
	var report bytes.Buffer
	cfg := &Config{
		Input:       fixture("parserforms"),
		KnownMacros: []string{"Raw"},
	}
	if err := newTestRunner(&report).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got := report.String()
	checks := []string{
		"struct Upload<N, F> (",
		"  alias: Raw!(Vec<u8>)\n    Vec<u8>  concrete\n      u8  concrete\n",
		"    Raw!(not a type)  unexpanded-macro (known macro content is not a type)\n",
		"      F  generic-param\n",
		"      impl Into<String>  existential\n",
		"fn submit<T> (",
		"  -> impl Responder<'r> + Send\n",
		"fn ffi (",
	}
	for _, check := range checks {
		if !strings.Contains(got, check) {
			t.Fatalf("report does not contain %q\n%s", check, got)
		}
	}
}

func TestRunner_Run_TypeExprReport(t *testing.T) {
	var report bytes.Buffer
	cfg := &Config{TypeExpr: "Result<fn(T), !>", Generics: []string{"T"}}
	if err := newTestRunner(&report).Run(cfg); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := strings.Join([]string{
		"type Expr<T> (1:1)",
		"  expr: Result<fn(T), !>",
		"    Result<fn(T), !>  concrete",
		"      fn(T)  opaque",
		"        T  generic-param",
		"      !  opaque",
		"",
	}, "\n")
	if got := report.String(); got != want {
		t.Fatalf("report =\n%s\nwant\n%s", got, want)
	}
}
