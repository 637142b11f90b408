package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// LogAccess registra um acesso autenticado.
func (db *DB) LogAccess(userID, userAgent, ipAddress string) error {
	_, err := db.Exec(`
		INSERT INTO access_logs (id, user_id, user_agent, ip_address)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''))`,
		uuid.NewString(), userID, userAgent, ipAddress)
	return err
}

// LogSearch registra uma consulta de tarifas com a contagem de resultados.
func (db *DB) LogSearch(userID string, filters domain.TariffFilters, resultsCount int) error {
	_, err := db.Exec(`
		INSERT INTO search_logs (id, user_id, carrier, pol, pod, results_count)
		VALUES (?, ?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?)`,
		uuid.NewString(), userID, filters.Carrier, filters.POL, filters.POD, resultsCount)
	return err
}

// ActivitySummary agrega acessos e buscas por usuário no ano/mês informado.
func (db *DB) ActivitySummary(year, month int) ([]domain.UserActivity, error) {
	period := fmt.Sprintf("%04d-%02d", year, month)

	rows, err := db.Query(`
		SELECT p.user_id, p.email, p.full_name, p.country,
		       (SELECT COUNT(*) FROM access_logs a
		        WHERE a.user_id = p.user_id AND strftime('%Y-%m', a.accessed_at) = ?),
		       (SELECT COUNT(*) FROM search_logs s
		        WHERE s.user_id = p.user_id AND strftime('%Y-%m', s.searched_at) = ?),
		       (SELECT MAX(a.accessed_at) FROM access_logs a WHERE a.user_id = p.user_id)
		FROM profiles p
		ORDER BY p.email`, period, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserActivity
	for rows.Next() {
		var u domain.UserActivity
		var lastAccess sql.NullString
		if err := rows.Scan(&u.UserID, &u.Email, &u.FullName, &u.Country,
			&u.AccessCount, &u.SearchCount, &lastAccess); err != nil {
			return nil, err
		}
		// MAX() descarta o tipo declarado da coluna; o driver devolve texto
		if lastAccess.Valid {
			if ts, err := time.Parse("2006-01-02 15:04:05", lastAccess.String); err == nil {
				u.LastAccess = &ts
			}
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
