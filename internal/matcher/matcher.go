package matcher

import (
	"log"
	"slices"
	"strings"

	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/syntax"
)

// ItemMatcher orders the items of one report.
type ItemMatcher interface {
	MatchItems(infos []*parser.ItemInfo, leafFirst bool) []*parser.ItemInfo
}

// FieldMatcher selects the fields of an item to unfold.
type FieldMatcher interface {
	Match(item *parser.ItemInfo, ignoreFields []string) []parser.FieldInfo
}

// GenericMatcher collects the generic names in scope for an item.
type GenericMatcher interface {
	Generics(item *parser.ItemInfo, extra []string) []syntax.Ident
}

type itemMatcherImpl struct{}

type fieldMatcherImpl struct{}

type genericMatcherImpl struct{}

// NewItemMatcher returns default item matcher.
func NewItemMatcher() ItemMatcher {
	return &itemMatcherImpl{}
}

// NewFieldMatcher returns default field matcher.
func NewFieldMatcher() FieldMatcher {
	return &fieldMatcherImpl{}
}

// NewGenericMatcher returns default generic matcher.
func NewGenericMatcher() GenericMatcher {
	return &genericMatcherImpl{}
}

// MatchItems drops repeated declarations of the same kind and name, keeping
// the first. A struct and a fn may share a name.
func (m *itemMatcherImpl) MatchItems(infos []*parser.ItemInfo, leafFirst bool) []*parser.ItemInfo {
	seen := map[string]bool{}
	out := make([]*parser.ItemInfo, 0, len(infos))
	for _, info := range infos {
		key := info.Kind.String() + " " + info.Name.String()
		if seen[key] {
			log.Printf("synext: warning: %s: duplicate %s, skipped", info.Name.Span, key)
			continue
		}
		seen[key] = true
		out = append(out, info)
	}

	if leafFirst {
		// ParseRecursive returns leaf-first; reverse so root comes first.
		slices.Reverse(out)
	}
	return out
}

func (m *fieldMatcherImpl) Match(item *parser.ItemInfo, ignoreFields []string) []parser.FieldInfo {
	ignoreSet := toIgnoreSet(ignoreFields)
	fields := make([]parser.FieldInfo, 0, len(item.Fields))
	for _, f := range item.Fields {
		if ignoreSet[strings.ToLower(f.Name.Unraw())] {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// Generics returns the item's generic names followed by extra names not
// already declared, in order and without duplicates.
func (m *genericMatcherImpl) Generics(item *parser.ItemInfo, extra []string) []syntax.Ident {
	out := make([]syntax.Ident, 0, len(item.Generics)+len(extra))
	seen := make(map[string]bool, cap(out))
	add := func(id syntax.Ident) {
		if id.IsZero() || seen[id.String()] {
			return
		}
		seen[id.String()] = true
		out = append(out, id)
	}

	for _, g := range item.Generics {
		add(g)
	}
	for _, name := range extra {
		add(syntax.NewIdent(strings.TrimSpace(name), syntax.Span{}))
	}
	return out
}

func toIgnoreSet(ignoreFields []string) map[string]bool {
	set := make(map[string]bool, len(ignoreFields))
	for _, f := range ignoreFields {
		f = strings.TrimPrefix(strings.TrimSpace(strings.ToLower(f)), "r#")
		if f == "" {
			continue
		}
		set[f] = true
	}
	return set
}
