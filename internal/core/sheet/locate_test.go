package sheet

import (
	"errors"
	"strings"
	"testing"
)

var tariffGroups = [][]string{{"origem"}, {"destino"}, {"armador"}}

func TestFindHeaderRow_SkipsPreamble(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"TABELA DE FRETES 2026"},
		{},
		{"Atualizado em", "10/01/2026"},
		{"Porto de Origem", "Porto de Destino", "Armador", "20'DC"},
		{"Santos", "Shanghai", "Maersk", "2500"},
	}

	idx, err := FindHeaderRow(rows, tariffGroups)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 3 {
		t.Fatalf("header row: want 3, got %d", idx)
	}
}

func TestFindHeaderRow_AccentsAndCase(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"ORIGEM", "DESTINO", "ARMADOR"},
	}
	idx, err := FindHeaderRow(rows, tariffGroups)
	if err != nil || idx != 0 {
		t.Fatalf("want row 0, got %d (%v)", idx, err)
	}
}

func TestFindHeaderRow_AlternativeTokens(t *testing.T) {
	t.Parallel()

	groups := [][]string{
		{"porto", "port", "puerto"},
		{"pais", "country"},
	}
	rows := [][]string{
		{"Puerto", "País"},
		{"Valparaiso", "Chile"},
	}
	idx, err := FindHeaderRow(rows, groups)
	if err != nil || idx != 0 {
		t.Fatalf("want row 0, got %d (%v)", idx, err)
	}
}

func TestFindHeaderRow_NotFound(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"coluna a", "coluna b"},
		{"1", "2"},
	}
	_, err := FindHeaderRow(rows, tariffGroups)

	var headerErr *HeaderNotFoundError
	if !errors.As(err, &headerErr) {
		t.Fatalf("expected HeaderNotFoundError, got %v", err)
	}
	// a mensagem orienta o usuário com os tokens esperados e a primeira linha
	msg := headerErr.Error()
	if !strings.Contains(msg, "origem") || !strings.Contains(msg, "coluna a") {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestFindHeaderRow_ScanLimit(t *testing.T) {
	t.Parallel()

	rows := make([][]string, 0, headerScanMaxRows+2)
	for i := 0; i < headerScanMaxRows; i++ {
		rows = append(rows, []string{"preambulo"})
	}
	rows = append(rows, []string{"origem", "destino", "armador"})

	if _, err := FindHeaderRow(rows, tariffGroups); err == nil {
		t.Fatal("header beyond scan limit must not be found")
	}
}
