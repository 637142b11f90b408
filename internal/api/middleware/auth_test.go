package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/auth"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

type fixture struct {
	router *gin.Engine
	db     *database.DB
	svc    auth.Service

	lastSession domain.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	fx := &fixture{db: db, svc: auth.NewService(db, zap.NewNop(), []byte("segredo"))}

	fx.router = gin.New()
	authed := fx.router.Group("", Authenticate(fx.svc, db))
	authed.GET("/whoami", func(c *gin.Context) {
		fx.lastSession, _ = Session(c)
		c.Status(http.StatusOK)
	})
	authed.GET("/admin-only", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return fx
}

func (fx *fixture) createUser(t *testing.T, email string, role domain.AppRole, country string) string {
	t.Helper()
	hash, _ := bcrypt.GenerateFromPassword([]byte("segredo1"), bcrypt.MinCost)
	params := database.NewUserParams{Email: email, PasswordHash: string(hash), Role: role}
	if country != "" {
		params.Country = &country
	}
	userID, err := fx.db.CreateUser(params)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return userID
}

func (fx *fixture) login(t *testing.T, email string) string {
	t.Helper()
	token, _, _, err := fx.svc.Login(email, "segredo1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	return token
}

func (fx *fixture) get(path, token, simulate string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if simulate != "" {
		req.Header.Set("X-Simulate-User", simulate)
	}
	w := httptest.NewRecorder()
	fx.router.ServeHTTP(w, req)
	return w
}

func TestAuthenticate_RejectsMissingToken(t *testing.T) {
	fx := newFixture(t)

	if w := fx.get("/whoami", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
	if w := fx.get("/whoami", "token-invalido", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	fx := newFixture(t)
	fx.createUser(t, "user@y.com", domain.RoleUser, "")
	fx.createUser(t, "admin@y.com", domain.RoleAdmin, "")

	if w := fx.get("/admin-only", fx.login(t, "user@y.com"), ""); w.Code != http.StatusForbidden {
		t.Fatalf("user: want 403, got %d", w.Code)
	}
	if w := fx.get("/admin-only", fx.login(t, "admin@y.com"), ""); w.Code != http.StatusOK {
		t.Fatalf("admin: want 200, got %d", w.Code)
	}
}

func TestSimulateHeader(t *testing.T) {
	fx := newFixture(t)
	fx.createUser(t, "admin@y.com", domain.RoleAdmin, "Brasil")
	targetID := fx.createUser(t, "user@y.com", domain.RoleUser, "Chile")

	adminToken := fx.login(t, "admin@y.com")

	// admin simulando: a sessão carrega o país do usuário alvo
	if w := fx.get("/whoami", adminToken, targetID); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	sess := fx.lastSession
	if !sess.IsSimulating() || sess.SimulatedUserID != targetID {
		t.Fatalf("simulation not applied: %+v", sess)
	}
	if sess.EffectiveCountry() != "Chile" {
		t.Fatalf("effective country: %q", sess.EffectiveCountry())
	}
	// o papel real segue sendo admin
	if !sess.IsAdmin() {
		t.Fatalf("real role must survive simulation: %+v", sess)
	}

	// usuário alvo desconhecido é recusado
	if w := fx.get("/whoami", adminToken, "id-inexistente"); w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}

	// usuário comum não simula ninguém: o cabeçalho é ignorado
	userToken := fx.login(t, "user@y.com")
	if w := fx.get("/whoami", userToken, targetID); w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", w.Code)
	}
	if fx.lastSession.IsSimulating() {
		t.Fatalf("user must not simulate: %+v", fx.lastSession)
	}
}
