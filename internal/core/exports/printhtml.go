package exports

import (
	"bytes"
	"html/template"
	"time"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// printTemplate é o documento imprimível (o navegador resolve o PDF).
// Todo valor interpolado passa pelo escape do html/template.
var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Tarifas de Frete</title>
<style>
  body { font-family: Arial, Helvetica, sans-serif; margin: 24px; color: #1a1a1a; }
  h1 { font-size: 18px; margin-bottom: 2px; }
  .meta { font-size: 11px; color: #555; margin-bottom: 14px; }
  table { border-collapse: collapse; width: 100%; font-size: 11px; }
  th { background: #1e3a5f; color: #fff; padding: 5px 7px; text-align: left; }
  td { border: 1px solid #cbd5e1; padding: 4px 7px; }
  tr:nth-child(even) td { background: #f1f5f9; }
  @media print { body { margin: 0; } }
</style>
</head>
<body onload="window.print()">
<h1>Tarifas de Frete Marítimo</h1>
<div class="meta">Gerado em {{.GeneratedAt}} | {{.Count}} resultado(s)</div>
<table>
<thead><tr>{{range .Headers}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

// WritePrintHTML gera a página imprimível do conjunto filtrado.
func WritePrintHTML(tariffs []domain.Tariff) ([]byte, error) {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Label
	}

	rows := make([][]string, len(tariffs))
	for i, t := range tariffs {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = col.Value(t)
		}
		rows[i] = row
	}

	var buf bytes.Buffer
	err := printTemplate.Execute(&buf, map[string]any{
		"GeneratedAt": time.Now().Format("02/01/2006 15:04"),
		"Count":       len(tariffs),
		"Headers":     headers,
		"Rows":        rows,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
