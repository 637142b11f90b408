package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

var testSecret = []byte("segredo-de-teste")

func newTestService(t *testing.T) (Service, *database.DB) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db, zap.NewNop(), testSecret), db
}

func seedUser(t *testing.T, db *database.DB, email, password string, role domain.AppRole, country string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	params := database.NewUserParams{Email: email, PasswordHash: string(hash), Role: role}
	if country != "" {
		params.Country = &country
	}
	userID, err := db.CreateUser(params)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return userID
}

func TestLogin_And_SessionFromToken(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	userID := seedUser(t, db, "ana@y.com", "segredo1", domain.RoleUser, "Brasil")

	token, profile, role, err := svc.Login("ana@y.com", "segredo1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if profile.UserID != userID || role != domain.RoleUser {
		t.Fatalf("unexpected login result: %v %v", profile, role)
	}

	sess, err := svc.SessionFromToken(token)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if sess.UserID != userID || sess.Email != "ana@y.com" || sess.Role != domain.RoleUser {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Country == nil || *sess.Country != "Brasil" {
		t.Fatalf("country: %+v", sess)
	}
	if sess.EffectiveCountry() != "Brasil" {
		t.Fatalf("effective country: %q", sess.EffectiveCountry())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	seedUser(t, db, "ana@y.com", "segredo1", domain.RoleUser, "")

	if _, _, _, err := svc.Login("ana@y.com", "errada"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	// email inexistente responde com o mesmo erro
	if _, _, _, err := svc.Login("ghost@y.com", "segredo1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSessionFromToken_Invalid(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	if _, err := svc.SessionFromToken("nao-e-um-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionFromToken_RoleChangeTakesEffect(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	userID := seedUser(t, db, "ana@y.com", "segredo1", domain.RoleUser, "")

	token, _, _, err := svc.Login("ana@y.com", "segredo1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// promoção vale na próxima requisição, sem reemitir o token
	if _, err := db.Exec(`UPDATE user_roles SET role = 'admin' WHERE user_id = ?`, userID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	sess, err := svc.SessionFromToken(token)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if !sess.IsAdmin() {
		t.Fatalf("expected admin session, got %+v", sess)
	}
}

func TestPasswordReset_Flow(t *testing.T) {
	t.Parallel()

	svc, db := newTestService(t)
	seedUser(t, db, "ana@y.com", "antiga12", domain.RoleUser, "")

	token, err := svc.RequestPasswordReset("ana@y.com")
	if err != nil || token == "" {
		t.Fatalf("request: %q (%v)", token, err)
	}

	if err := svc.ConfirmPasswordReset(token, "nova1234"); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if _, _, _, err := svc.Login("ana@y.com", "antiga12"); err == nil {
		t.Fatal("old password must stop working")
	}
	if _, _, _, err := svc.Login("ana@y.com", "nova1234"); err != nil {
		t.Fatalf("new password: %v", err)
	}

	// token é de uso único
	if err := svc.ConfirmPasswordReset(token, "outra123"); err == nil {
		t.Fatal("token must be single-use")
	}
}

func TestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	token, err := svc.RequestPasswordReset("ghost@y.com")
	if err != nil || token != "" {
		t.Fatalf("unknown email must not error nor leak: %q (%v)", token, err)
	}
}

func TestHub_LogsAccess(t *testing.T) {
	t.Parallel()

	_, db := newTestService(t)
	userID := seedUser(t, db, "ana@y.com", "segredo1", domain.RoleUser, "")

	hub := NewHub(db, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	hub.Publish(LoginEvent{UserID: userID, UserAgent: "go-test", IPAddress: "127.0.0.1"})

	deadline := time.Now().Add(2 * time.Second)
	for {
		var n int
		if err := db.QueryRow(`SELECT COUNT(*) FROM access_logs WHERE user_id = ?`, userID).Scan(&n); err != nil {
			t.Fatalf("count: %v", err)
		}
		if n == 1 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("access log not written, count=%d", n)
		}
		time.Sleep(10 * time.Millisecond)
	}
}
