package resolver

import (
	"strings"
	"testing"

	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

func mustParseType(t testing.TB, src string) syntax.Type {
	t.Helper()
	ty, err := syntax.ParseTypeString(src)
	if err != nil {
		t.Fatalf("ParseTypeString(%q) error = %v", src, err)
	}
	return ty
}

func scopeOf(known []string, generics ...string) Scope {
	s := Scope{KnownMacros: known}
	for _, g := range generics {
		s.Generics = append(s.Generics, syntax.NewIdent(g, syntax.Span{}))
	}
	return s
}

// strategies renders plans as "ty=strategy".
func strategies(plans []Plan) string {
	parts := make([]string, len(plans))
	for i, p := range plans {
		parts[i] = p.Child.Ty.String() + "=" + p.Strategy.String()
	}
	return strings.Join(parts, " ")
}

func TestResolver_GenericNest(t *testing.T) {
	r := New(DefaultRules()...)
	children := synext.Unfold(mustParseType(t, "A<B, C<impl Foo>, Box<dyn Foo>, Option<T>>"))

	plans := r.Resolve(children, scopeOf(nil, "T"))
	if len(plans) != 8 {
		t.Fatalf("expected 8 plans, got %d", len(plans))
	}

	want := []Strategy{
		StrategyDependent,
		StrategyConcrete,
		StrategyDependent,
		StrategyExistential,
		StrategyConcrete,
		StrategyConcrete,
		StrategyDependent,
		StrategyGenericParam,
	}
	concrete := 0
	for i, p := range plans {
		if p.Strategy != want[i] {
			t.Fatalf("plan[%d] %s = %s, want %s", i, p.Child.Ty, p.Strategy, want[i])
		}
		if p.Concrete {
			concrete++
		}
		if p.Rule != p.Strategy.String() {
			t.Fatalf("plan[%d] rule = %q, want %q", i, p.Rule, p.Strategy)
		}
	}
	if concrete != 3 {
		t.Fatalf("expected 3 concrete plans, got %d", concrete)
	}
}

func TestResolver_Strategies(t *testing.T) {
	tests := []struct {
		src   string
		scope Scope
		want  string
	}{
		{src: "Vec<_>", want: "Vec<_>=dependent _=infer"},
		{src: "(T, fn())", scope: scopeOf(nil, "T"), want: "(T, fn())=dependent T=generic-param fn()=opaque"},
		{src: "fn(T) -> !", scope: scopeOf(nil, "T"), want: "fn(T) -> !=opaque T=generic-param !=opaque"},
		{src: "Option<m!(u8)>", want: "Option<m!(u8)>=dependent m!(u8)=unexpanded-macro"},
		{src: "&'a [N; 4]", scope: scopeOf(nil, "N"), want: "&'a [N; 4]=dependent [N; 4]=dependent N=generic-param"},
		{src: "T::Item", scope: scopeOf(nil, "T"), want: "T::Item=concrete"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			plans := New(DefaultRules()...).Resolve(synext.Unfold(mustParseType(t, tt.src)), tt.scope)
			if got := strategies(plans); got != tt.want {
				t.Fatalf("strategies = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolver_MacroNotes(t *testing.T) {
	known := []string{"Raw"}
	ty := mustParseType(t, "(Raw!(not a type), Other!(u8), Raw!(u16))")
	plans := New(DefaultRules()...).Resolve(synext.UnfoldWithKnownMacros(ty, known), scopeOf(known))

	if got := strategies(plans); got != "(Raw!(not a type), Other!(u8), Raw!(u16))=dependent Raw!(not a type)=unexpanded-macro Other!(u8)=unexpanded-macro u16=concrete" {
		t.Fatalf("unexpected strategies: %s", got)
	}
	if plans[1].Note != "known macro content is not a type" {
		t.Fatalf("known macro note = %q", plans[1].Note)
	}
	if plans[2].Note != "unknown macro" {
		t.Fatalf("unknown macro note = %q", plans[2].Note)
	}
}

func TestResolver_ScopeIsRefreshed(t *testing.T) {
	r := New(DefaultRules()...)
	children := synext.Unfold(mustParseType(t, "T"))

	if got := r.Resolve(children, scopeOf(nil, "T"))[0].Strategy; got != StrategyGenericParam {
		t.Fatalf("first resolve = %s, want generic-param", got)
	}
	if got := r.Resolve(children, Scope{})[0].Strategy; got != StrategyConcrete {
		t.Fatalf("second resolve = %s, want concrete", got)
	}
}

func TestResolver_ConcreteAgreesWithIsConcrete(t *testing.T) {
	scope := scopeOf([]string{"Raw"}, "T", "U")
	srcs := []string{
		"HashMap<String, Vec<(u8, &'a [Option<T>])>>",
		"Result<Box<dyn Error + Send>, U>",
		"Raw!(Vec<T>)",
		"impl Fn(T) -> U",
	}
	for _, src := range srcs {
		children := synext.UnfoldWithKnownMacros(mustParseType(t, src), scope.KnownMacros)
		for _, p := range New(DefaultRules()...).Resolve(children, scope) {
			if want := synext.IsConcrete(p.Child.Ty, scope.Generics); p.Concrete != want {
				t.Fatalf("%s: Concrete = %v, IsConcrete = %v", p.Child.Ty, p.Concrete, want)
			}
		}
	}
}

func TestResolver_NoRuleMatchesIsSkip(t *testing.T) {
	r := New(&InferRule{})
	plans := r.Resolve(synext.Unfold(mustParseType(t, "Vec<_>")), Scope{})
	if plans[0].Strategy != StrategySkip || plans[0].Rule != "" {
		t.Fatalf("unmatched plan = %#v", plans[0])
	}
	if plans[1].Strategy != StrategyInfer {
		t.Fatalf("matched plan = %s, want infer", plans[1].Strategy)
	}
}

func TestDefaultTableName(t *testing.T) {
	tests := []struct {
		name     string
		table    string
		accessor string
	}{
		{name: "Login", table: "__rocket_Login_types", accessor: "LoginTypes"},
		{name: "handler", table: "__rocket_handler_types", accessor: "HandlerTypes"},
		{name: "r#type", table: "__rocket_type_types", accessor: "TypeTypes"},
	}
	for _, tt := range tests {
		item := &parser.ItemInfo{Name: syntax.NewIdent(tt.name, syntax.Span{})}
		table := DefaultTableName(item)
		if table.String() != tt.table {
			t.Fatalf("DefaultTableName(%s) = %s, want %s", tt.name, table, tt.table)
		}
		if got := AccessorName(table); got != tt.accessor {
			t.Fatalf("AccessorName(%s) = %s, want %s", table, got, tt.accessor)
		}
	}
}

func TestAccessorName_Uniqueified(t *testing.T) {
	table := syntax.NewIdent("__rocket_Login_types_123", syntax.Span{})
	if got := AccessorName(table); got != "LoginTypes123" {
		t.Fatalf("AccessorName() = %s, want LoginTypes123", got)
	}
	if got := AccessorName(syntax.NewIdent("__rocket_", syntax.Span{})); got != "Table" {
		t.Fatalf("AccessorName() = %s, want Table", got)
	}
	if got := AccessorName(syntax.NewIdent("__rocket_0_types", syntax.Span{})); got != "Table0Types" {
		t.Fatalf("AccessorName() = %s, want Table0Types", got)
	}
}
