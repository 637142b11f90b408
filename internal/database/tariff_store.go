package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

const tariffColumns = `id, carrier, pol, pod, commodity, price_20dc, price_40hc, price_40reefer,
	free_time, free_time_origin, free_time_destination, transit_time, ens_ams, validity, subject_to,
	created_at, updated_at`

// countryScopeJoin restringe tarifas aos destinos do país efetivo da sessão.
const countryScopeJoin = ` AND EXISTS (
	SELECT 1 FROM destinations d
	WHERE d.destination = t.pod COLLATE NOCASE AND d.country = ? COLLATE NOCASE)`

func scanTariff(row interface{ Scan(...any) error }) (domain.Tariff, error) {
	var t domain.Tariff
	err := row.Scan(&t.ID, &t.Carrier, &t.POL, &t.POD, &t.Commodity,
		&t.Price20DC, &t.Price40HC, &t.Price40Reefer,
		&t.FreeTime, &t.FreeTimeOrigin, &t.FreeTimeDestination,
		&t.TransitTime, &t.EnsAms, &t.Validity, &t.SubjectTo,
		&t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// SearchTariffs consulta tarifas pelos filtros opcionais, ordenadas por
// armador. country vazio significa sem restrição de país (admin).
func (db *DB) SearchTariffs(filters domain.TariffFilters, country string, limit int) ([]domain.Tariff, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariffs t WHERE 1=1`
	var args []any

	if filters.Carrier != "" {
		query += ` AND t.carrier = ?`
		args = append(args, filters.Carrier)
	}
	if filters.POL != "" {
		query += ` AND t.pol = ?`
		args = append(args, filters.POL)
	}
	if filters.POD != "" {
		query += ` AND t.pod = ?`
		args = append(args, filters.POD)
	}
	if country != "" {
		query += countryScopeJoin
		args = append(args, country)
	}

	query += ` ORDER BY t.carrier`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	return db.queryTariffs(query, args...)
}

// CompareRoute lista as tarifas de uma rota ordenadas pelo preço de 20'DC,
// nulos por último.
func (db *DB) CompareRoute(pol, pod, country string) ([]domain.Tariff, error) {
	query := `SELECT ` + tariffColumns + ` FROM tariffs t WHERE t.pol = ? AND t.pod = ?`
	args := []any{pol, pod}
	if country != "" {
		query += countryScopeJoin
		args = append(args, country)
	}
	query += ` ORDER BY t.price_20dc IS NULL, t.price_20dc ASC`

	return db.queryTariffs(query, args...)
}

func (db *DB) queryTariffs(query string, args ...any) ([]domain.Tariff, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Tariff
	for rows.Next() {
		t, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DistinctCarriers lista os armadores distintos das tarifas visíveis.
func (db *DB) DistinctCarriers(country string) ([]string, error) {
	query := `SELECT DISTINCT t.carrier FROM tariffs t WHERE 1=1`
	var args []any
	if country != "" {
		query += countryScopeJoin
		args = append(args, country)
	}
	return db.queryStrings(query+` ORDER BY t.carrier`, args...)
}

// DistinctPOLs lista os portos de origem distintos, opcionalmente por armador.
func (db *DB) DistinctPOLs(carrier, country string) ([]string, error) {
	query := `SELECT DISTINCT t.pol FROM tariffs t WHERE 1=1`
	var args []any
	if carrier != "" {
		query += ` AND t.carrier = ?`
		args = append(args, carrier)
	}
	if country != "" {
		query += countryScopeJoin
		args = append(args, country)
	}
	return db.queryStrings(query+` ORDER BY t.pol`, args...)
}

// DistinctPODs lista os destinos distintos, opcionalmente por armador e origem.
func (db *DB) DistinctPODs(carrier, pol, country string) ([]string, error) {
	query := `SELECT DISTINCT t.pod FROM tariffs t WHERE 1=1`
	var args []any
	if carrier != "" {
		query += ` AND t.carrier = ?`
		args = append(args, carrier)
	}
	if pol != "" {
		query += ` AND t.pol = ?`
		args = append(args, pol)
	}
	if country != "" {
		query += countryScopeJoin
		args = append(args, country)
	}
	return db.queryStrings(query+` ORDER BY t.pod`, args...)
}

func (db *DB) queryStrings(query string, args ...any) ([]string, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteAllTariffs limpa a coleção dentro da transação do import.
func (db *DB) DeleteAllTariffs(tx *sql.Tx) error {
	_, err := tx.Exec(`DELETE FROM tariffs`)
	return err
}

// InsertTariffBatch grava um lote de tarifas dentro da transação do import.
func (db *DB) InsertTariffBatch(tx *sql.Tx, batch []domain.Tariff) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO tariffs (id, carrier, pol, pod, commodity, price_20dc, price_40hc,
		price_40reefer, free_time_origin, free_time_destination, transit_time, ens_ams, validity, subject_to) VALUES `)

	args := make([]any, 0, len(batch)*14)
	for i, t := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}
		args = append(args, id, t.Carrier, t.POL, t.POD, t.Commodity,
			t.Price20DC, t.Price40HC, t.Price40Reefer,
			t.FreeTimeOrigin, t.FreeTimeDestination,
			t.TransitTime, t.EnsAms, t.Validity, t.SubjectTo)
	}

	if _, err := tx.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("erro ao inserir dados: %w", err)
	}
	return nil
}
