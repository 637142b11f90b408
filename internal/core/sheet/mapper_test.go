package sheet

import (
	"strings"
	"testing"
)

var testSynonyms = []Synonym{
	{Token: "origem", Field: "pol"},
	{Token: "destino", Field: "pod"},
	{Token: "armador", Field: "carrier"},
	{Token: "free time origem", Field: "free_time_origin"},
	{Token: "free time destino", Field: "free_time_destination"},
	{Token: "20 dry", Field: "price_20dc"},
}

func TestMapColumns_ExactBeatsSubstring(t *testing.T) {
	t.Parallel()

	header := []string{"Armador", "Origem", "Destino", "Free Time Origem"}
	indices := MapColumns(header, testSynonyms)

	if indices["carrier"] != 0 || indices["pol"] != 1 || indices["pod"] != 2 {
		t.Fatalf("unexpected map: %v", indices)
	}
	// "free time origem" contém "origem", mas o exato já resolveu pol na
	// coluna 1; a coluna 3 resolve pelo primeiro sinônimo que casa
	if indices["free_time_origin"] != 3 {
		t.Fatalf("free_time_origin: want 3, got %v", indices)
	}
}

func TestMapColumns_SubstringBothDirections(t *testing.T) {
	t.Parallel()

	// célula mais longa que o token e token mais longo que a célula
	header := []string{"Porto de Origem", "20 dry"}
	indices := MapColumns(header, testSynonyms)

	if indices["pol"] != 0 {
		t.Fatalf("pol: want 0, got %v", indices)
	}
	if indices["price_20dc"] != 1 {
		t.Fatalf("price_20dc: want 1, got %v", indices)
	}
}

func TestMapColumns_FirstColumnWins(t *testing.T) {
	t.Parallel()

	header := []string{"Origem", "Origem (alternativa)"}
	indices := MapColumns(header, testSynonyms)
	if indices["pol"] != 0 {
		t.Fatalf("pol deve ficar na primeira coluna: %v", indices)
	}
}

func TestMapColumns_UnknownIgnored(t *testing.T) {
	t.Parallel()

	header := []string{"Observações internas xyz-sem-sinonimo", ""}
	indices := MapColumns(header, []Synonym{{Token: "origem", Field: "pol"}})
	if len(indices) != 0 {
		t.Fatalf("expected empty map, got %v", indices)
	}
}

func TestCheckRequired(t *testing.T) {
	t.Parallel()

	s := Schema{Fields: []Field{
		{Name: "pol", Required: true},
		{Name: "pod", Required: true},
		{Name: "commodity"},
	}}

	if err := CheckRequired(ColumnIndexMap{"pol": 0, "pod": 1}, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := CheckRequired(ColumnIndexMap{"pol": 0}, s)
	if err == nil || !strings.Contains(err.Error(), "pod") {
		t.Fatalf("expected missing pod, got %v", err)
	}
}
