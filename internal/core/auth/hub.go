package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
)

// LoginEvent descreve um acesso autenticado a ser registrado.
type LoginEvent struct {
	UserID    string
	UserAgent string
	IPAddress string
}

// Hub processa eventos de login em uma única goroutine, fora do caminho da
// requisição. O handler de login apenas publica; nenhuma consulta extra
// roda dentro do callback de autenticação.
type Hub struct {
	db     *database.DB
	logger *zap.Logger
	events chan LoginEvent
}

// hubBuffer absorve rajadas de login sem bloquear os handlers.
const hubBuffer = 64

// NewHub cria o hub de eventos de autenticação.
func NewHub(db *database.DB, logger *zap.Logger) *Hub {
	return &Hub{
		db:     db,
		logger: logger,
		events: make(chan LoginEvent, hubBuffer),
	}
}

// Run consome os eventos até o contexto encerrar. Deve rodar em uma única
// goroutine.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-h.events:
			if err := h.db.LogAccess(ev.UserID, ev.UserAgent, ev.IPAddress); err != nil {
				h.logger.Warn("falha ao registrar acesso",
					zap.String("user_id", ev.UserID), zap.Error(err))
			}
		}
	}
}

// Publish enfileira o evento; com o buffer cheio o evento é descartado,
// registro de acesso não pode atrasar o login.
func (h *Hub) Publish(ev LoginEvent) {
	select {
	case h.events <- ev:
	default:
		h.logger.Warn("fila de eventos de acesso cheia, evento descartado")
	}
}
