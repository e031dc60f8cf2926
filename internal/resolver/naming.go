package resolver

import (
	"strings"
	"unicode"

	"github.com/seitarof/synext/internal/parser"
	"github.com/seitarof/synext/internal/synext"
	"github.com/seitarof/synext/internal/syntax"
)

// DefaultTableName returns the generated table identifier for item, such as
// __rocket_Login_types.
func DefaultTableName(item *parser.ItemInfo) syntax.Ident {
	return synext.Rocketized(synext.Append(item.Name, "_types"))
}

// AccessorName returns the exported function name for a table, such as
// LoginTypes for __rocket_Login_types.
func AccessorName(table syntax.Ident) string {
	return toExportedToken(strings.TrimPrefix(table.Unraw(), synext.RocketIdentPrefix))
}

func toExportedToken(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Table"
	}

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		if len(runes) > 1 {
			b.WriteString(string(runes[1:]))
		}
	}
	if first := []rune(b.String())[0]; !unicode.IsLetter(first) {
		return "Table" + b.String()
	}
	return b.String()
}
