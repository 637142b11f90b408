package tariffs

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/database"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// searchLimit limita a consulta padrão de tarifas.
const searchLimit = 50

// Service define a interface do serviço de tarifas: consultas filtradas
// pelo país efetivo da sessão e os três fluxos de importação de planilha.
type Service interface {
	Search(sess domain.Session, filters domain.TariffFilters) ([]domain.Tariff, error)
	Compare(sess domain.Session, pol, pod string) ([]domain.Tariff, error)
	Carriers(sess domain.Session) ([]string, error)
	POLs(sess domain.Session, carrier string) ([]string, error)
	PODs(sess domain.Session, carrier, pol string) ([]string, error)
	Countries() ([]string, error)
	Destinations() ([]domain.Destination, error)
	Import(flow Flow, file io.Reader, filename string, opts ImportOptions) (*ImportReport, error)
}

type service struct {
	db     *database.DB
	logger *zap.Logger

	mu    sync.Mutex
	cache map[string][]string
}

// NewService cria uma nova instância do serviço de tarifas.
func NewService(db *database.DB, logger *zap.Logger) Service {
	return &service{
		db:     db,
		logger: logger,
		cache:  make(map[string][]string),
	}
}

func (svc *service) Search(sess domain.Session, filters domain.TariffFilters) ([]domain.Tariff, error) {
	rows, err := svc.db.SearchTariffs(filters, sess.EffectiveCountry(), searchLimit)
	if err != nil {
		return nil, err
	}

	// registro de busca é melhor esforço: falha não derruba a consulta
	if err := svc.db.LogSearch(sess.UserID, filters, len(rows)); err != nil {
		svc.logger.Warn("falha ao registrar busca", zap.Error(err))
	}
	return rows, nil
}

func (svc *service) Compare(sess domain.Session, pol, pod string) ([]domain.Tariff, error) {
	if pol == "" || pod == "" {
		return nil, fmt.Errorf("selecione POL e POD para comparar uma rota")
	}
	return svc.db.CompareRoute(pol, pod, sess.EffectiveCountry())
}

// --- listas de valores distintos, com cache por parâmetros ---

func (svc *service) Carriers(sess domain.Session) ([]string, error) {
	return svc.cached("carriers|"+sess.EffectiveCountry(), func() ([]string, error) {
		return svc.db.DistinctCarriers(sess.EffectiveCountry())
	})
}

func (svc *service) POLs(sess domain.Session, carrier string) ([]string, error) {
	key := "pols|" + carrier + "|" + sess.EffectiveCountry()
	return svc.cached(key, func() ([]string, error) {
		return svc.db.DistinctPOLs(carrier, sess.EffectiveCountry())
	})
}

func (svc *service) PODs(sess domain.Session, carrier, pol string) ([]string, error) {
	key := "pods|" + carrier + "|" + pol + "|" + sess.EffectiveCountry()
	return svc.cached(key, func() ([]string, error) {
		return svc.db.DistinctPODs(carrier, pol, sess.EffectiveCountry())
	})
}

func (svc *service) Countries() ([]string, error) {
	return svc.cached("countries", svc.db.Countries)
}

func (svc *service) Destinations() ([]domain.Destination, error) {
	return svc.db.ListDestinations()
}

func (svc *service) cached(key string, load func() ([]string, error)) ([]string, error) {
	svc.mu.Lock()
	if vals, ok := svc.cache[key]; ok {
		svc.mu.Unlock()
		return vals, nil
	}
	svc.mu.Unlock()

	vals, err := load()
	if err != nil {
		return nil, err
	}

	svc.mu.Lock()
	svc.cache[key] = vals
	svc.mu.Unlock()
	return vals, nil
}

// invalidateLookups descarta as listas em cache após uma importação, para
// que leituras subsequentes observem os dados novos.
func (svc *service) invalidateLookups() {
	svc.mu.Lock()
	svc.cache = make(map[string][]string)
	svc.mu.Unlock()
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
