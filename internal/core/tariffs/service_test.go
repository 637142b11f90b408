package tariffs

import (
	"testing"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

func seedVisibilityData(t *testing.T, svc Service) {
	t.Helper()

	dests := [][]any{
		{"Destino", "País"},
		{"Shanghai", "China"},
		{"Rotterdam", "Holanda"},
	}
	if _, err := svc.Import(FlowDestinations, buildWorkbook(t, dests), "destinos.xlsx", ImportOptions{}); err != nil {
		t.Fatalf("seed destinations: %v", err)
	}

	tariffs := [][]any{
		{"Armador", "Origem", "Destino", "20 Dry"},
		{"MSC", "Santos", "Shanghai", "2500"},
		{"Maersk", "Santos", "Shanghai", "1500"},
		{"CMA", "Santos", "Rotterdam", "1800"},
		{"HapagLloyd", "Santos", "Shanghai", ""},
	}
	if _, err := svc.Import(FlowTariffs, buildWorkbook(t, tariffs), "fretes.xlsx", ImportOptions{ConfirmUnknown: true}); err != nil {
		t.Fatalf("seed tariffs: %v", err)
	}
}

func sessionFor(role domain.AppRole, country string) domain.Session {
	sess := domain.Session{UserID: "u1", Role: role}
	if country != "" {
		sess.Country = &country
	}
	return sess
}

func TestSearch_CountryVisibility(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedVisibilityData(t, svc)

	// usuário da China só vê rotas com destino mapeado para a China
	rows, err := svc.Search(sessionFor(domain.RoleUser, "China"), domain.TariffFilters{})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows for China, got %d", len(rows))
	}
	for _, r := range rows {
		if r.POD != "Shanghai" {
			t.Fatalf("row fora do país visível: %+v", r)
		}
	}

	// administrador sem simulação vê tudo
	rows, err = svc.Search(sessionFor(domain.RoleAdmin, "Brasil"), domain.TariffFilters{})
	if err != nil {
		t.Fatalf("search admin: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("admin must see all rows, got %d", len(rows))
	}

	// administrador simulando um usuário da Holanda herda a visão dele
	nl := "Holanda"
	sim := sessionFor(domain.RoleAdmin, "Brasil")
	sim.SimulatedUserID = "u2"
	sim.SimulatedCountry = &nl
	rows, err = svc.Search(sim, domain.TariffFilters{})
	if err != nil {
		t.Fatalf("search simulating: %v", err)
	}
	if len(rows) != 1 || rows[0].POD != "Rotterdam" {
		t.Fatalf("unexpected simulated view: %+v", rows)
	}
}

func TestCompare_OrdersByPriceNullsLast(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedVisibilityData(t, svc)

	rows, err := svc.Compare(sessionFor(domain.RoleAdmin, ""), "Santos", "Shanghai")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}
	if rows[0].Carrier != "Maersk" || rows[1].Carrier != "MSC" {
		t.Fatalf("unexpected order: %s, %s", rows[0].Carrier, rows[1].Carrier)
	}
	if rows[2].Price20DC != nil {
		t.Fatalf("null price must sort last: %+v", rows[2])
	}
}

func TestCompare_RequiresRoute(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	if _, err := svc.Compare(sessionFor(domain.RoleUser, ""), "Santos", ""); err == nil {
		t.Fatal("expected error without pod")
	}
}

func TestLookups_InvalidatedAfterImport(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	seedVisibilityData(t, svc)

	sess := sessionFor(domain.RoleAdmin, "")
	carriers, err := svc.Carriers(sess)
	if err != nil {
		t.Fatalf("carriers: %v", err)
	}
	if len(carriers) != 4 {
		t.Fatalf("want 4 carriers, got %v", carriers)
	}

	// nova importação substitui tudo; o cache não pode servir a lista velha
	rows := [][]any{
		{"Armador", "Origem", "Destino"},
		{"ONE", "Santos", "Shanghai"},
	}
	if _, err := svc.Import(FlowTariffs, buildWorkbook(t, rows), "fretes.xlsx", ImportOptions{ConfirmUnknown: true}); err != nil {
		t.Fatalf("import: %v", err)
	}

	carriers, err = svc.Carriers(sess)
	if err != nil {
		t.Fatalf("carriers: %v", err)
	}
	if len(carriers) != 1 || carriers[0] != "ONE" {
		t.Fatalf("stale lookup after import: %v", carriers)
	}
}
