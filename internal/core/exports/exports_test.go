package exports

import (
	"bytes"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

func sampleTariffs() []domain.Tariff {
	price := 1234.56
	commodity := `carga "geral"`
	return []domain.Tariff{
		{
			Carrier:   "MSC",
			POL:       "Santos",
			POD:       "Shanghai",
			Commodity: &commodity,
			Price20DC: &price,
		},
		{
			Carrier: "CMA",
			POL:     "Itajai",
			POD:     "Rotterdam",
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	out := WriteCSV(sampleTariffs())

	if !bytes.HasPrefix(out, []byte("\uFEFF")) {
		t.Fatal("CSV must start with UTF-8 BOM")
	}

	lines := strings.Split(strings.TrimRight(string(out[3:]), "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], `"Armador","Origem","Destino"`) {
		t.Fatalf("unexpected header: %s", lines[0])
	}

	// todos os campos entre aspas, inclusive os vazios
	for _, field := range strings.Split(lines[2], ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Fatalf("unquoted field: %s", field)
		}
	}

	// aspas internas duplicadas
	if !strings.Contains(lines[1], `"carga ""geral"""`) {
		t.Fatalf("quote escaping: %s", lines[1])
	}
	if !strings.Contains(lines[1], `"1234.56"`) {
		t.Fatalf("price formatting: %s", lines[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	f, err := WriteXLSX(sampleTariffs())
	if err != nil {
		t.Fatalf("write: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("buffer: %v", err)
	}
	reopened, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.GetRows(sheetName)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Armador" || rows[1][0] != "MSC" || rows[2][2] != "Rotterdam" {
		t.Fatalf("unexpected content: %v", rows)
	}
}

func TestWritePrintHTML_EscapesValues(t *testing.T) {
	t.Parallel()

	evil := `<script>alert("x")</script>`
	tariffs := []domain.Tariff{{Carrier: evil, POL: "Santos", POD: "Shanghai"}}

	out, err := WritePrintHTML(tariffs)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	html := string(out)

	if strings.Contains(html, evil) {
		t.Fatal("values must be escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag in output")
	}
	if !strings.Contains(html, "window.print()") {
		t.Fatal("print trigger missing")
	}
}
