package resolver

import (
	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

// Plan classifies one unfolded type node.
type Plan struct {
	Child    synext.Child
	Strategy Strategy
	Concrete bool
	Rule     string
	Note     string
}

// FieldPlan holds the plans for every node of one field type.
type FieldPlan struct {
	Field  parser.FieldInfo
	Return bool
	Plans  []Plan
}

// ItemPlan describes the type table generated for one item.
type ItemPlan struct {
	Item      *parser.ItemInfo
	TableName syntax.Ident
	Generics  []syntax.Ident
	Fields    []FieldPlan
}

// Strategy is how generated code treats a type node.
type Strategy int

const (
	StrategyGenericParam Strategy = iota
	StrategyExistential
	StrategyInfer
	StrategyUnexpandedMacro
	StrategyOpaque
	StrategyConcrete
	StrategyDependent
	StrategySkip
)

func (s Strategy) String() string {
	switch s {
	case StrategyGenericParam:
		return "generic-param"
	case StrategyExistential:
		return "existential"
	case StrategyInfer:
		return "infer"
	case StrategyUnexpandedMacro:
		return "unexpanded-macro"
	case StrategyOpaque:
		return "opaque"
	case StrategyConcrete:
		return "concrete"
	case StrategyDependent:
		return "dependent"
	default:
		return "skip"
	}
}
