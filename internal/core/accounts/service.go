package accounts

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// whitelistGrace é a validade concedida a cada entrada nova ou renovada.
const whitelistGrace = 2 // meses

var (
	// ErrEmailTaken sinaliza tentativa de cadastrar e-mail já existente.
	ErrEmailTaken = errors.New("já existe um usuário com este e-mail")
	// ErrSelfDelete bloqueia a exclusão da própria conta do administrador.
	ErrSelfDelete = errors.New("não é possível excluir a própria conta")
	// ErrNotWhitelisted cobre e-mail ausente da lista e convite expirado,
	// sem distinguir os dois casos para quem tenta se cadastrar.
	ErrNotWhitelisted = errors.New("e-mail não autorizado para cadastro")
)

// NewUserInput são os dados de provisionamento vindos do administrador.
type NewUserInput struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	FullName string         `json:"full_name"`
	Country  string         `json:"country"`
	Company  string         `json:"company"`
	Language string         `json:"language"`
	Role     domain.AppRole `json:"role"`
}

// RegisterInput são os dados do autocadastro. País, empresa e papel não
// são aceitos do usuário: vêm da entrada da lista de permissão.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Language string `json:"language"`
}

type Service interface {
	ListUsers() ([]domain.UserWithRole, error)
	CreateUser(in NewUserInput) (string, error)
	DeleteUser(sess domain.Session, userID string) error
	Register(in RegisterInput) (string, error)
	ListWhitelist() ([]domain.WhitelistEntry, error)
	AddWhitelist(email, country, company, notes string) (string, error)
	RenewWhitelist(id string) error
	RemoveWhitelist(id string) error
}

type service struct {
	db     *database.DB
	logger *zap.Logger
}

// NewService cria o serviço de contas e lista de permissão.
func NewService(db *database.DB, logger *zap.Logger) Service {
	return &service{db: db, logger: logger}
}

func (s *service) ListUsers() ([]domain.UserWithRole, error) {
	return s.db.ListUsers()
}

func nilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// CreateUser provisiona credencial, perfil e papel em uma única transação:
// ou o usuário existe por completo, ou não existe.
func (s *service) CreateUser(in NewUserInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return "", errors.New("e-mail e senha são obrigatórios")
	}
	if len(in.Password) < 6 {
		return "", errors.New("a senha deve ter pelo menos 6 caracteres")
	}

	exists, err := s.db.EmailExists(email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailTaken
	}

	role := in.Role
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	userID, err := s.db.CreateUser(database.NewUserParams{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     nilIfEmpty(in.FullName),
		Country:      nilIfEmpty(in.Country),
		Company:      nilIfEmpty(in.Company),
		Language:     nilIfEmpty(in.Language),
		Role:         role,
	})
	if err != nil {
		return "", fmt.Errorf("erro ao criar usuário: %w", err)
	}

	s.logger.Info("usuário criado", zap.String("email", email), zap.String("role", string(role)))
	return userID, nil
}

func (s *service) DeleteUser(sess domain.Session, userID string) error {
	if userID == sess.UserID {
		return ErrSelfDelete
	}
	if err := s.db.DeleteUser(userID); err != nil {
		return err
	}
	s.logger.Info("usuário excluído", zap.String("user_id", userID))
	return nil
}

// Register cria a conta de autocadastro. A entrada da lista de permissão é
// a autoridade: país e empresa copiados dela, papel sempre comum, mesmo
// que a entrada traga outro valor.
func (s *service) Register(in RegisterInput) (string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return "", errors.New("e-mail e senha são obrigatórios")
	}
	if len(in.Password) < 6 {
		return "", errors.New("a senha deve ter pelo menos 6 caracteres")
	}

	entry, err := s.db.WhitelistByEmail(email)
	if err != nil {
		return "", err
	}
	if entry == nil || entry.Expired(time.Now()) {
		return "", ErrNotWhitelisted
	}

	exists, err := s.db.EmailExists(email)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	userID, err := s.db.CreateUser(database.NewUserParams{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     nilIfEmpty(in.FullName),
		Country:      entry.Country,
		Company:      entry.Company,
		Language:     nilIfEmpty(in.Language),
		Role:         domain.RoleUser,
	})
	if err != nil {
		return "", fmt.Errorf("erro ao criar usuário: %w", err)
	}

	s.logger.Info("autocadastro concluído", zap.String("email", email))
	return userID, nil
}

func (s *service) ListWhitelist() ([]domain.WhitelistEntry, error) {
	return s.db.ListWhitelist()
}

func (s *service) AddWhitelist(email, country, company, notes string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", errors.New("e-mail é obrigatório")
	}

	entry := domain.WhitelistEntry{
		Email:     email,
		Role:      domain.RoleUser,
		ExpiresAt: time.Now().AddDate(0, whitelistGrace, 0),
	}
	if country != "" {
		entry.Country = &country
	}
	if company != "" {
		entry.Company = &company
	}
	if notes != "" {
		entry.Notes = &notes
	}
	return s.db.AddWhitelist(entry)
}

func (s *service) RenewWhitelist(id string) error {
	return s.db.RenewWhitelist(id, time.Now().AddDate(0, whitelistGrace, 0))
}

func (s *service) RemoveWhitelist(id string) error {
	return s.db.RemoveWhitelist(id)
}
