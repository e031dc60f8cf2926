package resolver

import "github.com/seitarof/synext/internal/synext"

// Resolver classifies the nodes of unfolded types.
type Resolver interface {
	Resolve(children []synext.Child, scope Scope) []Plan
}

// Rule tries to classify one unfolded node.
type Rule interface {
	Name() string
	Try(child synext.Child) (Plan, bool)
}

type resolverImpl struct {
	rules []Rule
}

// New builds resolver with rule chain.
func New(rules ...Rule) Resolver {
	return &resolverImpl{rules: rules}
}

func (r *resolverImpl) Resolve(children []synext.Child, scope Scope) []Plan {
	for _, rule := range r.rules {
		if aware, ok := rule.(ScopeAware); ok {
			aware.SetScope(scope)
		}
	}

	plans := make([]Plan, 0, len(children))
	for _, c := range children {
		plans = append(plans, r.resolveOne(c))
	}
	return plans
}

func (r *resolverImpl) resolveOne(child synext.Child) Plan {
	for _, rule := range r.rules {
		if plan, ok := rule.Try(child); ok {
			plan.Rule = rule.Name()
			return plan
		}
	}
	return Plan{Child: child, Strategy: StrategySkip}
}
