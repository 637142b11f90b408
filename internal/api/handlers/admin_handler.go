package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/middleware"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/accounts"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/monitoring"
)

// AdminHandler lida com a gestão de usuários, lista de permissão e
// monitoramento de atividade.
type AdminHandler struct {
	accounts   accounts.Service
	monitoring monitoring.Service
}

// NewAdminHandler cria um novo handler administrativo.
func NewAdminHandler(accountsService accounts.Service, monitoringService monitoring.Service) *AdminHandler {
	return &AdminHandler{accounts: accountsService, monitoring: monitoringService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.accounts.ListUsers()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar usuários")
		return
	}
	responses.Success(c, users, "")
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req accounts.NewUserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}

	userID, err := h.accounts.CreateUser(req)
	if err != nil {
		if errors.Is(err, accounts.ErrEmailTaken) {
			responses.Error(c, http.StatusConflict, err.Error())
			return
		}
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, gin.H{"user_id": userID}, "usuário criado")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	sess, _ := middleware.Session(c)
	if err := h.accounts.DeleteUser(sess, c.Param("id")); err != nil {
		if errors.Is(err, accounts.ErrSelfDelete) {
			responses.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		responses.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	responses.Success(c, nil, "usuário excluído")
}

// --- lista de permissão ---

func (h *AdminHandler) ListWhitelist(c *gin.Context) {
	entries, err := h.accounts.ListWhitelist()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar permissões")
		return
	}
	responses.Success(c, entries, "")
}

type WhitelistRequest struct {
	Email   string `json:"email" binding:"required"`
	Country string `json:"country"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

func (h *AdminHandler) AddWhitelist(c *gin.Context) {
	var req WhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.Error(c, http.StatusBadRequest, "Requisição inválida")
		return
	}
	id, err := h.accounts.AddWhitelist(req.Email, req.Country, req.Company, req.Notes)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, gin.H{"id": id}, "e-mail autorizado por 2 meses")
}

func (h *AdminHandler) RenewWhitelist(c *gin.Context) {
	if err := h.accounts.RenewWhitelist(c.Param("id")); err != nil {
		responses.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	responses.Success(c, nil, "autorização renovada por 2 meses")
}

func (h *AdminHandler) RemoveWhitelist(c *gin.Context) {
	if err := h.accounts.RemoveWhitelist(c.Param("id")); err != nil {
		responses.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	responses.Success(c, nil, "autorização removida")
}

// --- monitoramento ---

// Activity devolve o resumo mensal de acessos e buscas por usuário.
func (h *AdminHandler) Activity(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))

	report, err := h.monitoring.MonthlyReport(year, month)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, report, "")
}
