package generator

import (
	"fmt"
	"io"
	"strings"

	"github.com/seitarof/synext/internal/resolver"
	"github.com/seitarof/synext/internal/syntax"
)

// Reporter writes item plans in human-readable form.
type Reporter interface {
	Report(plans []resolver.ItemPlan) error
}

type textReporter struct {
	w io.Writer
}

// NewTextReporter returns a reporter writing an indented tree to w.
func NewTextReporter(w io.Writer) Reporter {
	return &textReporter{w: w}
}

// Report prints each item, then each field and the nodes of its type
// indented by nesting depth:
//
//	struct Login<T> (login.rs:2:12)
//	  extra: Vec<T>
//	    Vec<T>  dependent
//	      T  generic-param
func (r *textReporter) Report(plans []resolver.ItemPlan) error {
	var b strings.Builder
	for i, p := range plans {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s%s (%s)\n", p.Item.Kind, p.Item.Name, genericList(p.Generics), p.Item.Name.Span)
		for _, f := range p.Fields {
			writeField(&b, f)
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func writeField(b *strings.Builder, f resolver.FieldPlan) {
	if f.Return {
		fmt.Fprintf(b, "  -> %s\n", f.Field.Ty)
	} else {
		fmt.Fprintf(b, "  %s: %s\n", f.Field.Name, f.Field.Ty)
	}

	depth := make(map[syntax.Type]int, len(f.Plans))
	for _, plan := range f.Plans {
		d := 0
		if plan.Child.Parent != nil {
			d = depth[plan.Child.Parent] + 1
		}
		depth[plan.Child.Ty] = d

		b.WriteString(strings.Repeat("  ", d+2))
		b.WriteString(plan.Child.Ty.String())
		b.WriteString("  ")
		b.WriteString(plan.Strategy.String())
		if plan.Note != "" {
			b.WriteString(" (" + plan.Note + ")")
		}
		b.WriteByte('\n')
	}
}

func genericList(ids []syntax.Ident) string {
	if len(ids) == 0 {
		return ""
	}
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.String()
	}
	return "<" + strings.Join(names, ", ") + ">"
}
