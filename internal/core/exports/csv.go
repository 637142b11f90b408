package exports

import (
	"bytes"
	"strings"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// utf8BOM na frente do arquivo faz o Excel reconhecer a codificação ao
// abrir o CSV com dois cliques.
const utf8BOM = "\uFEFF"

// WriteCSV gera o CSV das tarifas com todos os campos entre aspas,
// independentemente do conteúdo, e quebra de linha \r\n.
func WriteCSV(tariffs []domain.Tariff) []byte {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	writeRow := func(fields []string) {
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
			buf.WriteByte('"')
		}
		buf.WriteString("\r\n")
	}

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = col.Label
	}
	writeRow(header)

	row := make([]string, len(columns))
	for _, t := range tariffs {
		for i, col := range columns {
			row[i] = col.Value(t)
		}
		writeRow(row)
	}
	return buf.Bytes()
}
