package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/auth"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// sessionKey é a chave da sessão no contexto do gin.
const sessionKey = "session"

// simulateHeader carrega o id do usuário simulado pelo administrador.
const simulateHeader = "X-Simulate-User"

// Session extrai a sessão montada pelo middleware. O segundo retorno é
// falso em rotas sem o middleware de autenticação.
func Session(c *gin.Context) (domain.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return domain.Session{}, false
	}
	sess, ok := v.(domain.Session)
	return sess, ok
}

// Authenticate valida o token Bearer, monta a sessão e aplica a simulação
// de visão quando o administrador envia o cabeçalho X-Simulate-User. O
// cabeçalho é ignorado para usuários comuns.
func Authenticate(svc auth.Service, db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			responses.Error(c, http.StatusUnauthorized, "token de acesso ausente")
			c.Abort()
			return
		}

		sess, err := svc.SessionFromToken(tokenString)
		if err != nil {
			responses.Error(c, http.StatusUnauthorized, "token de acesso inválido")
			c.Abort()
			return
		}

		if target := c.GetHeader(simulateHeader); target != "" && sess.IsAdmin() {
			profile, err := db.ProfileOf(target)
			if err != nil {
				responses.Error(c, http.StatusBadRequest, "usuário simulado não encontrado")
				c.Abort()
				return
			}
			sess.SimulatedUserID = profile.UserID
			sess.SimulatedCountry = profile.Country
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireAdmin bloqueia rotas administrativas para o papel comum. A
// checagem usa o papel real da sessão: simular um usuário comum não
// derruba os privilégios do administrador.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := Session(c)
		if !ok || !sess.IsAdmin() {
			responses.Error(c, http.StatusForbidden, "acesso restrito a administradores")
			c.Abort()
			return
		}
		c.Next()
	}
}
