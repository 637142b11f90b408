package monitoring

import (
	"errors"
	"time"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// Report agrega a atividade de um mês: linhas por usuário e totais.
type Report struct {
	Year  int                    `json:"year"`
	Month int                    `json:"month"`
	Users []domain.UserActivity  `json:"users"`
	Stats domain.MonitoringStats `json:"stats"`
}

type Service interface {
	MonthlyReport(year, month int) (*Report, error)
}

type service struct {
	db *database.DB
}

// NewService cria o serviço de monitoramento de atividade.
func NewService(db *database.DB) Service {
	return &service{db: db}
}

// MonthlyReport resume acessos e buscas do mês informado; ano/mês zerados
// caem no mês corrente.
func (s *service) MonthlyReport(year, month int) (*Report, error) {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if month < 1 || month > 12 {
		return nil, errors.New("mês inválido")
	}

	users, err := s.db.ActivitySummary(year, month)
	if err != nil {
		return nil, err
	}

	report := &Report{Year: year, Month: month, Users: users}
	for _, u := range users {
		report.Stats.TotalAccesses += u.AccessCount
		report.Stats.TotalSearches += u.SearchCount
		if u.AccessCount > 0 || u.SearchCount > 0 {
			report.Stats.ActiveUsers++
		}
	}
	if report.Stats.ActiveUsers > 0 {
		report.Stats.AvgSearchesPerUser =
			float64(report.Stats.TotalSearches) / float64(report.Stats.ActiveUsers)
	}
	return report, nil
}
