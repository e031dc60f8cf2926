package cli

// Config stores CLI options for a single generation run.
type Config struct {
	Input        string   `flag:"input" validate:"required_without=TypeExpr,excluded_with=TypeExpr"`
	Item         string   `flag:"item" validate:"omitempty,excluded_without=Input,rustident"`
	TypeExpr     string   `flag:"type-expr"`
	Generics     []string `flag:"generics" validate:"dive,rustident"`
	KnownMacros  []string `flag:"known-macros" validate:"dive,rustident"`
	IgnoreFields []string `flag:"ignore-fields"`
	Filename     string   `flag:"output" validate:"omitempty,endswith=.go"`
	Package      string   `flag:"package" validate:"required_with=Filename,omitempty,goident"`
	Watch        bool     `flag:"watch" validate:"excluded_without=Input"`
	ShowVersion  bool     `flag:"version"`
}

// OutputFilename returns destination file path for generator layer.
func (c *Config) OutputFilename() string {
	return c.Filename
}

// PackageName returns the package clause of the generated file.
func (c *Config) PackageName() string {
	return c.Package
}
