package cli

import (
	"fmt"
	"log"

	"github.com/seitarof/synext/internal/generator"
	"github.com/seitarof/synext/internal/matcher"
	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/resolver"
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

// Runner orchestrates parser/matcher/resolver/generator layers.
type Runner interface {
	Run(cfg *Config) error
}

type runnerImpl struct {
	parser       parser.Parser
	itemMatch    matcher.ItemMatcher
	fieldMatch   matcher.FieldMatcher
	genericMatch matcher.GenericMatcher
	resolver     resolver.Resolver
	generator    generator.Generator
	reporter     generator.Reporter
}

// NewRunner creates a default runner implementation.
func NewRunner(
	p parser.Parser,
	im matcher.ItemMatcher,
	fm matcher.FieldMatcher,
	gm matcher.GenericMatcher,
	r resolver.Resolver,
	g generator.Generator,
	rep generator.Reporter,
) Runner {
	return &runnerImpl{
		parser:       p,
		itemMatch:    im,
		fieldMatch:   fm,
		genericMatch: gm,
		resolver:     r,
		generator:    g,
		reporter:     rep,
	}
}

// Run executes a single generation cycle. Without an output file the plans
// are reported instead.
func (r *runnerImpl) Run(cfg *Config) error {
	items, leafFirst, err := r.loadItems(cfg)
	if err != nil {
		return err
	}
	items = r.itemMatch.MatchItems(items, leafFirst)
	if len(items) == 0 {
		return fmt.Errorf("no struct or fn items found in %q", cfg.Input)
	}

	plans := make([]resolver.ItemPlan, 0, len(items))
	for _, item := range items {
		plans = append(plans, r.planItem(cfg, item))
	}

	if cfg.OutputFilename() == "" {
		if err := r.reporter.Report(plans); err != nil {
			return fmt.Errorf("report: %w", err)
		}
		return nil
	}
	return r.generator.Generate(cfg, plans)
}

func (r *runnerImpl) loadItems(cfg *Config) ([]*parser.ItemInfo, bool, error) {
	switch {
	case cfg.TypeExpr != "":
		ty, err := syntax.ParseTypeString(cfg.TypeExpr)
		if err != nil {
			return nil, false, fmt.Errorf("parse type: %w", err)
		}
		item := &parser.ItemInfo{
			Kind:   parser.ItemType,
			Name:   syntax.NewIdent("Expr", ty.GetSpan()),
			Fields: []parser.FieldInfo{{Name: syntax.NewIdent("expr", ty.GetSpan()), Ty: ty}},
		}
		return []*parser.ItemInfo{item}, false, nil
	case cfg.Item != "":
		items, err := r.parser.ParseRecursive(cfg.Input, cfg.Item)
		if err != nil {
			return nil, false, fmt.Errorf("parse input: %w", err)
		}
		return items, true, nil
	default:
		items, err := r.parser.ParseAll(cfg.Input)
		if err != nil {
			return nil, false, fmt.Errorf("parse input: %w", err)
		}
		return items, false, nil
	}
}

func (r *runnerImpl) planItem(cfg *Config, item *parser.ItemInfo) resolver.ItemPlan {
	generics := r.genericMatch.Generics(item, cfg.Generics)
	scope := resolver.Scope{Generics: generics, KnownMacros: cfg.KnownMacros}
	plan := resolver.ItemPlan{
		Item:      item,
		TableName: resolver.DefaultTableName(item),
		Generics:  generics,
	}

	for _, f := range r.fieldMatch.Match(item, cfg.IgnoreFields) {
		plan.Fields = append(plan.Fields, r.planField(item, f, false, scope))
	}
	if ret, ok := synext.ReturnTy(syntax.ReturnType{Ty: item.Return}); ok {
		f := parser.FieldInfo{
			Name:  syntax.NewIdent("return", ret.GetSpan()),
			Ty:    ret,
			Index: len(item.Fields),
		}
		plan.Fields = append(plan.Fields, r.planField(item, f, true, scope))
	}
	return plan
}

func (r *runnerImpl) planField(item *parser.ItemInfo, f parser.FieldInfo, ret bool, scope resolver.Scope) resolver.FieldPlan {
	children := synext.UnfoldWithKnownMacros(f.Ty, scope.KnownMacros)
	logUnexpandedMacros(item, f, synext.UnexpandedKnownMacros(children, scope.KnownMacros))

	plans := r.resolver.Resolve(children, scope)
	logSkippedNodes(item, f, plans)
	return resolver.FieldPlan{Field: f, Return: ret, Plans: plans}
}

func logUnexpandedMacros(item *parser.ItemInfo, f parser.FieldInfo, children []synext.Child) {
	for _, c := range children {
		log.Printf(
			"synext: warning: %s: %s %s field %s: content of %s is not a type, left unexpanded",
			c.Ty.GetSpan(),
			item.Kind,
			item.Name,
			f.Name,
			c.Ty,
		)
	}
}

func logSkippedNodes(item *parser.ItemInfo, f parser.FieldInfo, plans []resolver.Plan) {
	for _, plan := range plans {
		if plan.Strategy != resolver.StrategySkip {
			continue
		}
		log.Printf(
			"synext: warning: %s %s field %s: type %s matched no rule, skipped",
			item.Kind,
			item.Name,
			f.Name,
			plan.Child.Ty,
		)
	}
}
