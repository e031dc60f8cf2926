package parser

import (
	"fmt"
	"os"

	"github.com/seitarof/synext/internal/syntax"
)

// Parser extracts item declarations from source files.
type Parser interface {
	Parse(filename string, name string) (*ItemInfo, error)
	ParseAll(filename string) ([]*ItemInfo, error)
	ParseRecursive(filename string, name string) ([]*ItemInfo, error)
}

type parserImpl struct {
	readFile func(string) ([]byte, error)
}

// New returns default parser.
func New() Parser {
	return &parserImpl{readFile: os.ReadFile}
}

// ParseSource parses items from in-memory source. filename is only used in
// positions and error messages.
func ParseSource(filename string, src []byte) ([]*ItemInfo, error) {
	ts, err := syntax.Lex(filename, string(src))
	if err != nil {
		return nil, fmt.Errorf("lex %s: %w", filename, err)
	}
	items, err := parseItems(filename, ts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return items, nil
}

func (p *parserImpl) ParseAll(filename string) ([]*ItemInfo, error) {
	src, err := p.readFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", filename, err)
	}
	return ParseSource(filename, src)
}

func (p *parserImpl) Parse(filename string, name string) (*ItemInfo, error) {
	items, err := p.ParseAll(filename)
	if err != nil {
		return nil, err
	}
	item := findItem(items, name)
	if item == nil {
		return nil, fmt.Errorf("item %q not found in %q", name, filename)
	}
	return item, nil
}

// ParseRecursive returns the named item and every struct of the same file
// its field types refer to, leaf first.
func (p *parserImpl) ParseRecursive(filename string, name string) ([]*ItemInfo, error) {
	items, err := p.ParseAll(filename)
	if err != nil {
		return nil, err
	}
	root := findItem(items, name)
	if root == nil {
		return nil, fmt.Errorf("item %q not found in %q", name, filename)
	}

	visited := map[string]bool{}
	result := []*ItemInfo{}
	parseRec(root, items, visited, &result)
	return result, nil
}

func parseRec(item *ItemInfo, items []*ItemInfo, visited map[string]bool, result *[]*ItemInfo) {
	key := item.Kind.String() + " " + item.Name.String()
	if visited[key] {
		return
	}
	visited[key] = true

	for _, ref := range localStructRefs(item) {
		if visited["struct "+ref.String()] {
			continue
		}
		nested := findStruct(items, ref)
		if nested == nil {
			// declared elsewhere
			continue
		}
		parseRec(nested, items, visited, result)
	}

	*result = append(*result, item)
}

func findItem(items []*ItemInfo, name string) *ItemInfo {
	for _, item := range items {
		if item.Name.String() == name || item.Name.Unraw() == name {
			return item
		}
	}
	return nil
}

func findStruct(items []*ItemInfo, name syntax.Ident) *ItemInfo {
	for _, item := range items {
		if item.Kind == ItemStruct && item.Name.Equal(name) {
			return item
		}
	}
	return nil
}
