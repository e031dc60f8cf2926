package resolver

import (
	"slices"

	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

// DefaultRules returns built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&GenericParamRule{},
		&ExistentialRule{},
		&InferRule{},
		&MacroRule{},
		&OpaqueRule{},
		&ConcreteRule{},
		&DependentRule{},
	}
}

// GenericParamRule: a path naming a generic parameter.
type GenericParamRule struct {
	scope Scope
}

func (r *GenericParamRule) Name() string { return "generic-param" }

func (r *GenericParamRule) SetScope(scope Scope) { r.scope = scope }

func (r *GenericParamRule) Try(child synext.Child) (Plan, bool) {
	if !r.scope.IsGeneric(child.Ty) {
		return Plan{}, false
	}
	return newPlan(child, StrategyGenericParam, false, ""), true
}

// ExistentialRule: impl Trait.
type ExistentialRule struct{}

func (r *ExistentialRule) Name() string { return "existential" }

func (r *ExistentialRule) Try(child synext.Child) (Plan, bool) {
	if _, ok := child.Ty.(*syntax.TypeImplTrait); !ok {
		return Plan{}, false
	}
	return newPlan(child, StrategyExistential, false, ""), true
}

// InferRule: the placeholder _.
type InferRule struct{}

func (r *InferRule) Name() string { return "infer" }

func (r *InferRule) Try(child synext.Child) (Plan, bool) {
	if _, ok := child.Ty.(*syntax.TypeInfer); !ok {
		return Plan{}, false
	}
	return newPlan(child, StrategyInfer, false, ""), true
}

// MacroRule: a macro type left in place by unfolding.
type MacroRule struct {
	scope Scope
}

func (r *MacroRule) Name() string { return "unexpanded-macro" }

func (r *MacroRule) SetScope(scope Scope) { r.scope = scope }

func (r *MacroRule) Try(child synext.Child) (Plan, bool) {
	m, ok := child.Ty.(*syntax.TypeMacro)
	if !ok {
		return Plan{}, false
	}
	note := "unknown macro"
	if name, ok := m.Mac.Path.LastIdent(); ok && slices.Contains(r.scope.KnownMacros, name.String()) {
		note = "known macro content is not a type"
	}
	return newPlan(child, StrategyUnexpandedMacro, false, note), true
}

// OpaqueRule: function pointers and ! are concrete whatever they contain.
type OpaqueRule struct{}

func (r *OpaqueRule) Name() string { return "opaque" }

func (r *OpaqueRule) Try(child synext.Child) (Plan, bool) {
	switch child.Ty.(type) {
	case *syntax.TypeBareFn, *syntax.TypeNever:
		return newPlan(child, StrategyOpaque, true, ""), true
	}
	return Plan{}, false
}

// ConcreteRule: no generic parameter, impl Trait, _ or macro anywhere inside.
type ConcreteRule struct {
	scope Scope
}

func (r *ConcreteRule) Name() string { return "concrete" }

func (r *ConcreteRule) SetScope(scope Scope) { r.scope = scope }

func (r *ConcreteRule) Try(child synext.Child) (Plan, bool) {
	if !synext.IsConcrete(child.Ty, r.scope.Generics) {
		return Plan{}, false
	}
	return newPlan(child, StrategyConcrete, true, ""), true
}

// DependentRule: not concrete because of a nested node.
type DependentRule struct{}

func (r *DependentRule) Name() string { return "dependent" }

func (r *DependentRule) Try(child synext.Child) (Plan, bool) {
	return newPlan(child, StrategyDependent, false, ""), true
}

func newPlan(child synext.Child, strategy Strategy, concrete bool, note string) Plan {
	return Plan{
		Child:    child,
		Strategy: strategy,
		Concrete: concrete,
		Note:     note,
	}
}
