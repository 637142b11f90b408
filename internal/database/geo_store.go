package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// Countries lista os países distintos conhecidos (portos e destinos).
func (db *DB) Countries() ([]string, error) {
	return db.queryStrings(`
		SELECT country FROM (
			SELECT country FROM port_countries
			UNION
			SELECT country FROM destinations
		) ORDER BY country`)
}

// KnownDestinations retorna o conjunto de destinos cadastrados, com a chave
// normalizada em minúsculas para o cruzamento do import de tarifas.
func (db *DB) KnownDestinations() (map[string]bool, error) {
	names, err := db.queryStrings(`SELECT destination FROM destinations`)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[strings.ToLower(strings.TrimSpace(n))] = true
	}
	return known, nil
}

// ListDestinations lista os destinos cadastrados em ordem alfabética.
func (db *DB) ListDestinations() ([]domain.Destination, error) {
	rows, err := db.Query(`SELECT id, destination, country FROM destinations ORDER BY destination`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		if err := rows.Scan(&d.ID, &d.Destination, &d.Country); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// DeleteAllPorts limpa a coleção de portos dentro da transação do import.
func (db *DB) DeleteAllPorts(tx *sql.Tx) error {
	_, err := tx.Exec(`DELETE FROM port_countries`)
	return err
}

// InsertPortBatch grava um lote de portos dentro da transação do import.
func (db *DB) InsertPortBatch(tx *sql.Tx, batch []domain.PortCountry) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO port_countries (id, port, country) VALUES `)
	args := make([]any, 0, len(batch)*3)
	for i, p := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?)")
		args = append(args, uuid.NewString(), p.Port, p.Country)
	}

	if _, err := tx.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("erro ao inserir dados: %w", err)
	}
	return nil
}

// UpsertDestinationBatch grava um lote de destinos como upsert pela chave
// natural (o nome do destino): fluxo não destrutivo.
func (db *DB) UpsertDestinationBatch(tx *sql.Tx, batch []domain.Destination) error {
	if len(batch) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO destinations (id, destination, country) VALUES `)
	args := make([]any, 0, len(batch)*3)
	for i, d := range batch {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?)")
		args = append(args, uuid.NewString(), d.Destination, d.Country)
	}
	sb.WriteString(` ON CONFLICT(destination) DO UPDATE SET country = excluded.country`)

	if _, err := tx.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("erro ao inserir/atualizar dados: %w", err)
	}
	return nil
}
