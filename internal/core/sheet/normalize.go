package sheet

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize reduz uma célula de cabeçalho a um token comparável: trim,
// minúsculas, decomposição NFD com remoção de diacríticos e colapso de
// espaços internos. Função total: entrada vazia produz string vazia.
func Normalize(cell string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(func(r rune) bool {
		return unicode.Is(unicode.Mn, r)
	}))
	result, _, _ := transform.String(t, cell)
	result = strings.ToLower(result)
	result = whitespaceRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}
