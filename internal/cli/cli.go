package cli

import (
	"strings"

	"github.com/spf13/pflag"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var genericsRaw, knownMacrosRaw, ignoreFieldsRaw string

	fs := pflag.NewFlagSet("synext", pflag.ContinueOnError)
	fs.StringVarP(&cfg.Input, "input", "i", "", "source file of struct and fn items")
	fs.StringVar(&cfg.Item, "item", "", "item to report with the structs it refers to (default all items)")
	fs.StringVarP(&cfg.TypeExpr, "type-expr", "e", "", "single type to unfold instead of an input file")
	fs.StringVarP(&genericsRaw, "generics", "g", "", "comma-separated generic names in scope besides the item's own")
	fs.StringVarP(&knownMacrosRaw, "known-macros", "m", "", "comma-separated macro names whose content is a type")
	fs.StringVar(&ignoreFieldsRaw, "ignore-fields", "", "comma-separated field names to ignore")
	fs.StringVarP(&cfg.Filename, "output", "o", "", "generated Go file (default report to stdout)")
	fs.StringVarP(&cfg.Package, "package", "p", "synextgen", "package name of the generated file")
	fs.BoolVarP(&cfg.Watch, "watch", "w", false, "run again whenever the input file changes")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	cfg.Input = strings.TrimSpace(cfg.Input)
	cfg.Item = strings.TrimSpace(cfg.Item)
	cfg.TypeExpr = strings.TrimSpace(cfg.TypeExpr)
	cfg.Generics = splitCommaList(genericsRaw)
	cfg.KnownMacros = splitCommaList(knownMacrosRaw)
	cfg.IgnoreFields = splitCommaList(ignoreFieldsRaw)

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
