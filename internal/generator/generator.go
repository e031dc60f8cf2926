package generator

import (
	"bytes"
	"embed"
	"fmt"
	"hash"
	"os"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/synext/internal/resolver"
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Generator generates type tables from item plans.
type Generator interface {
	Generate(cfg Config, plans []resolver.ItemPlan) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	PackageName() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes generated code to disk.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct{}

type templateData struct {
	Package string
	Tables  []tableTemplateData
}

type tableTemplateData struct {
	Kind     string
	Item     string
	Table    string
	Accessor string
	Nodes    []nodeTemplateData
}

type nodeTemplateData struct {
	Field    string
	Parent   string
	Type     string
	Strategy string
	Concrete bool
}

// New creates a code generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a plain file writer.
func NewFileWriter() FileWriter {
	return &fileWriter{}
}

func (g *generatorImpl) Generate(cfg Config, plans []resolver.ItemPlan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no item plans")
	}

	data := buildTemplateData(cfg.PackageName(), plans)
	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "table.go.tmpl", data); err != nil {
		return fmt.Errorf("template: %w", err)
	}

	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return fmt.Errorf("format: %w", err)
	}
	if err := g.writer.Write(cfg.OutputFilename(), formatted); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	return os.WriteFile(filename, data, 0o644)
}

func buildTemplateData(pkgName string, plans []resolver.ItemPlan) templateData {
	used := map[string]bool{}
	tables := make([]tableTemplateData, 0, len(plans))

	for _, p := range plans {
		table := uniqueTableName(p, used)
		tables = append(tables, tableTemplateData{
			Kind:     p.Item.Kind.String(),
			Item:     p.Item.Name.String(),
			Table:    table.String(),
			Accessor: resolver.AccessorName(table),
			Nodes:    buildNodes(p.Fields),
		})
	}

	return templateData{
		Package: pkgName,
		Tables:  tables,
	}
}

// uniqueTableName returns the plan's table name, renamed when an earlier
// table already uses it or its accessor. A struct and a fn may share a name.
func uniqueTableName(p resolver.ItemPlan, used map[string]bool) syntax.Ident {
	table := p.TableName
	if table.IsZero() {
		table = resolver.DefaultTableName(p.Item)
	}
	base, kind := table, p.Item.Kind.String()
	for used[table.String()] || used[resolver.AccessorName(table)] {
		table = synext.UniqueifyWith(base, func(h hash.Hash64) {
			h.Write([]byte(kind))
		})
	}
	used[table.String()] = true
	used[resolver.AccessorName(table)] = true
	return table
}

func buildNodes(fields []resolver.FieldPlan) []nodeTemplateData {
	var nodes []nodeTemplateData
	for _, f := range fields {
		name := f.Field.Name.String()
		if f.Return {
			name = "->"
		}
		for _, plan := range f.Plans {
			parent := ""
			if plan.Child.Parent != nil {
				parent = plan.Child.Parent.String()
			}
			nodes = append(nodes, nodeTemplateData{
				Field:    name,
				Parent:   parent,
				Type:     plan.Child.Ty.String(),
				Strategy: plan.Strategy.String(),
				Concrete: plan.Concrete,
			})
		}
	}
	return nodes
}
