package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// ErrUserNotFound indica credencial ou identificador inexistente.
var ErrUserNotFound = errors.New("usuário não encontrado")

// Credential é a identidade de autenticação armazenada localmente.
type Credential struct {
	ID           string
	Email        string
	PasswordHash string
}

// CredentialByEmail busca a identidade pelo email (case-insensitive).
func (db *DB) CredentialByEmail(email string) (*Credential, error) {
	var c Credential
	err := db.QueryRow(`SELECT id, email, password_hash FROM users WHERE email = ? COLLATE NOCASE`, email).
		Scan(&c.ID, &c.Email, &c.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// RoleOf retorna o papel do usuário; ausência de linha vale 'user'.
func (db *DB) RoleOf(userID string) (domain.AppRole, error) {
	var role string
	err := db.QueryRow(`SELECT role FROM user_roles WHERE user_id = ?`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.RoleUser, nil
	}
	if err != nil {
		return "", err
	}
	return domain.AppRole(role), nil
}

// ProfileOf busca o perfil de um usuário.
func (db *DB) ProfileOf(userID string) (*domain.Profile, error) {
	var p domain.Profile
	err := db.QueryRow(`
		SELECT user_id, email, full_name, country, company, language, created_at
		FROM profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.Email, &p.FullName, &p.Country, &p.Company, &p.Language, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListUsers combina perfis e papéis para a listagem administrativa,
// mais recentes primeiro.
func (db *DB) ListUsers() ([]domain.UserWithRole, error) {
	rows, err := db.Query(`
		SELECT p.user_id, p.email, p.full_name, p.country, p.company, p.language, p.created_at,
		       COALESCE(r.role, 'user')
		FROM profiles p
		LEFT JOIN user_roles r ON r.user_id = p.user_id
		ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserWithRole
	for rows.Next() {
		var u domain.UserWithRole
		var role string
		if err := rows.Scan(&u.UserID, &u.Email, &u.FullName, &u.Country, &u.Company,
			&u.Language, &u.CreatedAt, &role); err != nil {
			return nil, err
		}
		u.Role = domain.AppRole(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

// NewUserParams reúne os dados para provisionar identidade, perfil e papel.
type NewUserParams struct {
	Email        string
	PasswordHash string
	FullName     *string
	Country      *string
	Company      *string
	Language     *string
	Role         domain.AppRole
}

// CreateUser provisiona identidade + perfil + papel em uma transação:
// qualquer falha parcial desfaz o que já foi criado.
func (db *DB) CreateUser(params NewUserParams) (string, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	userID := uuid.NewString()
	if _, err := tx.Exec(`INSERT INTO users (id, email, password_hash) VALUES (?, ?, ?)`,
		userID, params.Email, params.PasswordHash); err != nil {
		return "", fmt.Errorf("erro ao criar usuário: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO profiles (id, user_id, email, full_name, country, company, language)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), userID, params.Email, params.FullName, params.Country, params.Company,
		params.Language); err != nil {
		return "", fmt.Errorf("erro ao criar perfil do usuário: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO user_roles (id, user_id, role) VALUES (?, ?, ?)`,
		uuid.NewString(), userID, string(params.Role)); err != nil {
		return "", fmt.Errorf("erro ao definir permissões do usuário: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return userID, nil
}

// DeleteUser remove a identidade; perfil, papel e logs caem em cascata.
func (db *DB) DeleteUser(userID string) error {
	res, err := db.Exec(`DELETE FROM users WHERE id = ?`, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// EmailExists reporta se já existe conta com o email.
func (db *DB) EmailExists(email string) (bool, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE email = ? COLLATE NOCASE`, email).Scan(&n)
	return n > 0, err
}

// --- whitelist de auto-cadastro ---

// WhitelistByEmail busca a entrada de whitelist do email.
func (db *DB) WhitelistByEmail(email string) (*domain.WhitelistEntry, error) {
	var w domain.WhitelistEntry
	var role string
	err := db.QueryRow(`
		SELECT id, email, country, company, role, notes, expires_at, created_at
		FROM email_whitelist WHERE email = ? COLLATE NOCASE`, email).
		Scan(&w.ID, &w.Email, &w.Country, &w.Company, &role, &w.Notes, &w.ExpiresAt, &w.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	w.Role = domain.AppRole(role)
	return &w, nil
}

// ListWhitelist lista as entradas ordenadas pelo vencimento.
func (db *DB) ListWhitelist() ([]domain.WhitelistEntry, error) {
	rows, err := db.Query(`
		SELECT id, email, country, company, role, notes, expires_at, created_at
		FROM email_whitelist ORDER BY expires_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.WhitelistEntry
	for rows.Next() {
		var w domain.WhitelistEntry
		var role string
		if err := rows.Scan(&w.ID, &w.Email, &w.Country, &w.Company, &role, &w.Notes,
			&w.ExpiresAt, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.Role = domain.AppRole(role)
		out = append(out, w)
	}
	return out, rows.Err()
}

// AddWhitelist insere uma entrada; email repetido é rejeitado pelo UNIQUE.
func (db *DB) AddWhitelist(w domain.WhitelistEntry) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO email_whitelist (id, email, country, company, role, notes, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, w.Email, w.Country, w.Company, string(w.Role), w.Notes, w.ExpiresAt)
	if err != nil {
		return "", err
	}
	return id, nil
}

// RenewWhitelist estende o vencimento de uma entrada.
func (db *DB) RenewWhitelist(id string, expiresAt time.Time) error {
	res, err := db.Exec(`UPDATE email_whitelist SET expires_at = ? WHERE id = ?`, expiresAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.New("entrada de whitelist não encontrada")
	}
	return nil
}

// RemoveWhitelist apaga uma entrada.
func (db *DB) RemoveWhitelist(id string) error {
	_, err := db.Exec(`DELETE FROM email_whitelist WHERE id = ?`, id)
	return err
}

// --- redefinição de senha ---

// CreatePasswordReset emite um token de redefinição com vencimento.
func (db *DB) CreatePasswordReset(userID string, expiresAt time.Time) (string, error) {
	token := uuid.NewString()
	_, err := db.Exec(`INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ConsumePasswordReset valida e queima o token, devolvendo o usuário dono.
func (db *DB) ConsumePasswordReset(token string, now time.Time) (string, error) {
	var userID string
	var expiresAt time.Time
	err := db.QueryRow(`SELECT user_id, expires_at FROM password_resets WHERE token = ?`, token).
		Scan(&userID, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.New("token de redefinição inválido")
	}
	if err != nil {
		return "", err
	}

	if _, err := db.Exec(`DELETE FROM password_resets WHERE token = ?`, token); err != nil {
		return "", err
	}
	if now.After(expiresAt) {
		return "", errors.New("token de redefinição expirado")
	}
	return userID, nil
}

// UpdatePassword troca o hash de senha do usuário.
func (db *DB) UpdatePassword(userID, passwordHash string) error {
	res, err := db.Exec(`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
