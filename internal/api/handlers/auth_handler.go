package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/middleware"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/accounts"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/auth"
)

// AuthHandler lida com login, autocadastro e recuperação de senha.
type AuthHandler struct {
	authService     auth.Service
	accountsService accounts.Service
	hub             *auth.Hub
}

// NewAuthHandler cria um novo handler de autenticação.
func NewAuthHandler(authService auth.Service, accountsService accounts.Service, hub *auth.Hub) *AuthHandler {
	return &AuthHandler{authService: authService, accountsService: accountsService, hub: hub}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}

	token, profile, role, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			responses.Error(c, http.StatusUnauthorized, err.Error())
			return
		}
		responses.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	// registro de acesso sai do caminho da resposta
	h.hub.Publish(auth.LoginEvent{
		UserID:    profile.UserID,
		UserAgent: c.Request.UserAgent(),
		IPAddress: c.ClientIP(),
	})

	responses.Success(c, gin.H{
		"token":   token,
		"profile": profile,
		"role":    role,
	}, "login efetuado")
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req accounts.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}

	userID, err := h.accountsService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, accounts.ErrNotWhitelisted):
			responses.Error(c, http.StatusForbidden, err.Error())
		case errors.Is(err, accounts.ErrEmailTaken):
			responses.Error(c, http.StatusConflict, err.Error())
		default:
			responses.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	responses.Success(c, gin.H{"user_id": userID}, "cadastro concluído")
}

// Logout apenas registra o encerramento; o descarte do token é do cliente.
func (h *AuthHandler) Logout(c *gin.Context) {
	responses.Success(c, nil, "sessão encerrada")
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

// RequestPasswordReset responde igual para e-mail existente ou não.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if _, err := h.authService.RequestPasswordReset(req.Email); err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao processar solicitação")
		return
	}
	responses.Success(c, nil, "se o e-mail existir, as instruções foram enviadas")
}

type PasswordResetConfirm struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}
	if err := h.authService.ConfirmPasswordReset(req.Token, req.Password); err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, nil, "senha atualizada")
}

// Me devolve a sessão efetiva, incluindo a simulação ativa.
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := middleware.Session(c)
	if !ok {
		responses.Error(c, http.StatusUnauthorized, "sessão ausente")
		return
	}
	responses.Success(c, gin.H{
		"user_id":           sess.UserID,
		"email":             sess.Email,
		"role":              sess.Role,
		"country":           sess.Country,
		"simulating":        sess.IsSimulating(),
		"simulated_user_id": sess.SimulatedUserID,
		"effective_country": sess.EffectiveCountry(),
	}, "")
}
