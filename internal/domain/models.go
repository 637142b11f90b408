// package domain/models.go
package domain

import "time"

// AppRole defines the access level of a user.
type AppRole string

// Constants for user roles.
const (
	RoleAdmin AppRole = "admin"
	RoleUser  AppRole = "user"
)

// Tariff representa uma linha de tarifa marítima (uma rota cotada por um armador).
type Tariff struct {
	ID                  string   `json:"id"`
	Carrier             string   `json:"carrier"`
	POL                 string   `json:"pol"`
	POD                 string   `json:"pod"`
	Commodity           *string  `json:"commodity"`
	Price20DC           *float64 `json:"price_20dc"`
	Price40HC           *float64 `json:"price_40hc"`
	Price40Reefer       *float64 `json:"price_40reefer"`
	FreeTime            *string  `json:"free_time"`
	FreeTimeOrigin      *string  `json:"free_time_origin"`
	FreeTimeDestination *string  `json:"free_time_destination"`
	TransitTime         *string  `json:"transit_time"`
	EnsAms              *string  `json:"ens_ams"`
	Validity            *string  `json:"validity"`
	SubjectTo           *string  `json:"subject_to"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TariffFilters são os filtros opcionais da consulta de tarifas.
type TariffFilters struct {
	Carrier string
	POL     string
	POD     string
}

// PortCountry associa um porto ao seu país.
type PortCountry struct {
	ID      string `json:"id"`
	Port    string `json:"port"`
	Country string `json:"country"`
}

// Destination associa um destino (POD) ao país usado no controle de acesso.
type Destination struct {
	ID          string `json:"id"`
	Destination string `json:"destination"`
	Country     string `json:"country"`
}

// Profile são os dados cadastrais de um usuário.
type Profile struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	Country   *string   `json:"country"`
	Company   *string   `json:"company"`
	Language  *string   `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithRole combina perfil e papel para a listagem administrativa.
type UserWithRole struct {
	Profile
	Role AppRole `json:"role"`
}

// WhitelistEntry é um email pré-autorizado para o auto-cadastro.
type WhitelistEntry struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Country   *string   `json:"country"`
	Company   *string   `json:"company"`
	Role      AppRole   `json:"role"`
	Notes     *string   `json:"notes"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired indica se a autorização já venceu.
func (w WhitelistEntry) Expired(now time.Time) bool {
	return now.After(w.ExpiresAt)
}

// Session é o estado de autenticação derivado uma única vez por requisição.
// EffectiveCountry é o país usado para filtrar tarifas visíveis: o país
// simulado quando um admin está em modo "visualizar como", senão o país do
// próprio usuário. Admin sem simulação não sofre filtro (vazio).
type Session struct {
	UserID           string
	Email            string
	Role             AppRole
	Country          *string
	SimulatedUserID  string
	SimulatedCountry *string
}

// IsAdmin reporta se a sessão pertence a um administrador.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// IsSimulating reporta se um admin está visualizando como outro usuário.
func (s Session) IsSimulating() bool { return s.SimulatedUserID != "" }

// EffectiveCountry resolve o país de filtragem da sessão. Retorna vazio
// quando nenhum filtro de país se aplica (admin fora de simulação).
func (s Session) EffectiveCountry() string {
	if s.IsSimulating() {
		if s.SimulatedCountry != nil {
			return *s.SimulatedCountry
		}
		return ""
	}
	if s.IsAdmin() {
		return ""
	}
	if s.Country != nil {
		return *s.Country
	}
	return ""
}

// UserActivity é o resumo mensal de atividade de um usuário.
type UserActivity struct {
	UserID      string     `json:"user_id"`
	Email       string     `json:"email"`
	FullName    *string    `json:"full_name"`
	Country     *string    `json:"country"`
	AccessCount int        `json:"access_count"`
	SearchCount int        `json:"search_count"`
	LastAccess  *time.Time `json:"last_access"`
}

// MonitoringStats são os agregados derivados do resumo de atividade.
type MonitoringStats struct {
	ActiveUsers        int     `json:"active_users"`
	TotalSearches      int     `json:"total_searches"`
	TotalAccesses      int     `json:"total_accesses"`
	AvgSearchesPerUser float64 `json:"average_searches_per_user"`
}
