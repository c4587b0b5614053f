package detect

import "strings"

var accentReplacer = strings.NewReplacer(
	"ü", "u",
	"ä", "a",
	"ö", "o",
	"ß", "ss",
	"é", "e",
	"è", "e",
	"ê", "e",
	"à", "a",
	"ç", "c",
)

// NormalizeText lowercases text and folds common German and French accented
// characters to their ASCII equivalents, so "Würth" matches "Wurth".
func NormalizeText(text string) string {
	return accentReplacer.Replace(strings.ToLower(text))
}
