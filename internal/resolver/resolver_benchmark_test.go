package resolver

import (
	"testing"

	"github.com/seitarof/synext/internal/synext"
)

func BenchmarkResolverResolve_MixedRules(b *testing.B) {
	r := New(DefaultRules()...)
	scope := scopeOf([]string{"Raw"}, "T", "U")
	ty := mustParseType(b, "Map<Raw!(String), Vec<(fn(T) -> U, impl Into<_>, &'a [Option<Box<dyn Foo<T>>>; 4])>, m!(x), !>")
	children := synext.UnfoldWithKnownMacros(ty, scope.KnownMacros)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		plans := r.Resolve(children, scope)
		if len(plans) != len(children) {
			b.Fatalf("unexpected plan count: got %d want %d", len(plans), len(children))
		}
	}
}
