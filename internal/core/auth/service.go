package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// tokenTTL é a validade do token de acesso.
const tokenTTL = 24 * time.Hour

// ErrInvalidCredentials cobre e-mail inexistente e senha incorreta com a
// mesma mensagem, para não revelar quais contas existem.
var ErrInvalidCredentials = errors.New("e-mail ou senha inválidos")

// ErrInvalidToken sinaliza token ausente, expirado ou adulterado.
var ErrInvalidToken = errors.New("token de acesso inválido")

// Claims é o conteúdo assinado do token: identidade apenas. Papel e país
// são resolvidos a cada requisição, para que mudanças de permissão valham
// sem reemissão do token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Service interface {
	Login(email, password string) (string, *domain.Profile, domain.AppRole, error)
	SessionFromToken(tokenString string) (domain.Session, error)
	RequestPasswordReset(email string) (string, error)
	ConfirmPasswordReset(token, newPassword string) error
}

type service struct {
	db        *database.DB
	logger    *zap.Logger
	jwtSecret []byte
}

// NewService cria o serviço de autenticação. O registro de acesso pós-login
// fica a cargo do Hub, publicado pelo handler fora do caminho crítico.
func NewService(db *database.DB, logger *zap.Logger, jwtSecret []byte) Service {
	return &service{db: db, logger: logger, jwtSecret: jwtSecret}
}

// Login valida as credenciais e emite um token HS256 com 24h de validade.
func (s *service) Login(email, password string) (string, *domain.Profile, domain.AppRole, error) {
	cred, err := s.db.CredentialByEmail(email)
	if errors.Is(err, database.ErrUserNotFound) {
		return "", nil, "", ErrInvalidCredentials
	}
	if err != nil {
		s.logger.Error("erro ao consultar credenciais", zap.Error(err))
		return "", nil, "", errors.New("erro ao consultar o banco de dados")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: cred.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cred.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	})

	tokenString, err := claims.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, "", errors.New("erro ao gerar token de acesso")
	}

	profile, err := s.db.ProfileOf(cred.ID)
	if err != nil {
		s.logger.Warn("perfil ausente no login", zap.String("user_id", cred.ID))
		profile = &domain.Profile{UserID: cred.ID, Email: cred.Email}
	}
	role, err := s.db.RoleOf(cred.ID)
	if err != nil {
		role = domain.RoleUser
	}

	return tokenString, profile, role, nil
}

// SessionFromToken valida a assinatura e a expiração do token e monta a
// sessão consultando papel e país atuais do usuário.
func (s *service) SessionFromToken(tokenString string) (domain.Session, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return domain.Session{}, ErrInvalidToken
	}

	sess := domain.Session{UserID: claims.Subject, Email: claims.Email}

	role, err := s.db.RoleOf(sess.UserID)
	if err != nil {
		return domain.Session{}, ErrInvalidToken
	}
	sess.Role = role

	if profile, err := s.db.ProfileOf(sess.UserID); err == nil {
		sess.Country = profile.Country
	}
	return sess, nil
}

// resetTTL limita a janela de troca de senha via token de recuperação.
const resetTTL = 2 * time.Hour

// RequestPasswordReset gera um token de uso único. Para e-mail inexistente
// devolve token vazio sem erro: a resposta ao usuário é a mesma.
func (s *service) RequestPasswordReset(email string) (string, error) {
	cred, err := s.db.CredentialByEmail(email)
	if errors.Is(err, database.ErrUserNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return s.db.CreatePasswordReset(cred.ID, time.Now().Add(resetTTL))
}

// ConfirmPasswordReset consome o token e grava o novo hash.
func (s *service) ConfirmPasswordReset(token, newPassword string) error {
	if len(newPassword) < 6 {
		return errors.New("a senha deve ter pelo menos 6 caracteres")
	}
	userID, err := s.db.ConsumePasswordReset(token, time.Now())
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.UpdatePassword(userID, string(hash))
}
