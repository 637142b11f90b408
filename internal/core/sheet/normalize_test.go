package sheet

import "testing"

func TestNormalize_Diacritics(t *testing.T) {
	t.Parallel()

	if got := Normalize("  ORIGEM  "); got != "origem" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Normalize("Validade  da\tTarifa"); got != "validade da tarifa" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Normalize("Condição"); got != "condicao" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Normalize("PAÍS"); got != "pais" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Normalize("Frete Marítimo"); got != "frete maritimo" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestNormalize_Empty(t *testing.T) {
	t.Parallel()

	if got := Normalize("   "); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
