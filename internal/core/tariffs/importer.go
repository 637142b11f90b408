package tariffs

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/schollz/closestmatch"
	"go.uber.org/zap"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/sheet"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// Flow identifica o fluxo de importação de planilha.
type Flow string

const (
	FlowTariffs      Flow = "tariffs"
	FlowPorts        Flow = "ports"
	FlowDestinations Flow = "destinations"
)

// ErrUnknownDestinations sinaliza destinos fora da base de referência; o
// chamador decide entre confirmar e prosseguir ou cancelar.
var ErrUnknownDestinations = errors.New("planilha contém destinos não cadastrados")

// UnknownDestination é um destino da planilha ausente da referência, com a
// contagem de linhas afetadas e uma sugestão de cadastro próximo.
type UnknownDestination struct {
	Value      string `json:"value"`
	Rows       int    `json:"rows"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ImportOptions controla a execução de uma importação.
type ImportOptions struct {
	// ConfirmUnknown prossegue mesmo com destinos fora da referência.
	ConfirmUnknown bool
	// Progress recebe o avanço de 0 a 100 após cada etapa/lote.
	Progress func(pct float64)
}

// ImportReport é o resultado de uma importação concluída (ou interrompida
// na validação de destinos).
type ImportReport struct {
	Flow    Flow                 `json:"flow"`
	Total   int                  `json:"total"`
	Batches int                  `json:"batches"`
	Done    int                  `json:"batches_done"`
	Preview []sheet.Record       `json:"preview,omitempty"`
	Unknown []UnknownDestination `json:"unknown_destinations,omitempty"`
}

// previewRows limita a amostra devolvida ao chamador.
const previewRows = 10

// Import executa o fluxo completo: extensão, parse (§cabeçalho, colunas,
// extração), validação de destinos (somente tarifas) e gravação em lotes
// sequenciais dentro de uma única transação. Falha de qualquer lote aborta
// os lotes restantes e desfaz a transação; o erro do banco é devolvido
// textualmente ao usuário.
func (svc *service) Import(flow Flow, file io.Reader, filename string, opts ImportOptions) (*ImportReport, error) {
	if !sheet.AcceptedExtension(filename) {
		return nil, sheet.ErrUnsupportedFormat
	}

	schema, err := schemaFor(flow)
	if err != nil {
		return nil, err
	}

	rows, err := sheet.LoadRows(file)
	if err != nil {
		return nil, err
	}

	records, _, err := sheet.Parse(rows, schema)
	if err != nil {
		return nil, err
	}

	report := &ImportReport{Flow: flow, Total: len(records)}
	if len(records) > previewRows {
		report.Preview = records[:previewRows]
	} else {
		report.Preview = records
	}

	progress := opts.Progress
	if progress == nil {
		progress = func(float64) {}
	}
	progress(10)

	if flow == FlowTariffs {
		unknown, err := svc.checkDestinations(records)
		if err != nil {
			return nil, err
		}
		if len(unknown) > 0 && !opts.ConfirmUnknown {
			report.Unknown = unknown
			return report, ErrUnknownDestinations
		}
	}

	batches := chunkRecords(records, schema.BatchSize)
	report.Batches = len(batches)

	tx, err := svc.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if schema.Strategy == sheet.StrategyReplace {
		if err := svc.deleteAll(tx, flow); err != nil {
			return nil, fmt.Errorf("erro ao limpar dados: %w", err)
		}
	}
	progress(30)

	for i, batch := range batches {
		if err := svc.writeBatch(tx, flow, batch); err != nil {
			return report, err
		}
		report.Done = i + 1
		progress(30 + float64((i+1)*60)/float64(len(batches)))
	}

	if err := tx.Commit(); err != nil {
		return report, err
	}
	progress(100)

	svc.invalidateLookups()
	svc.logger.Info("importação concluída",
		zap.String("flow", string(flow)),
		zap.Int("records", report.Total),
		zap.Int("batches", report.Batches))
	return report, nil
}

func schemaFor(flow Flow) (sheet.Schema, error) {
	switch flow {
	case FlowTariffs:
		return tariffSchema, nil
	case FlowPorts:
		return portSchema, nil
	case FlowDestinations:
		return destinationSchema, nil
	}
	return sheet.Schema{}, fmt.Errorf("fluxo de importação desconhecido: %s", flow)
}

func chunkRecords(records []sheet.Record, size int) [][]sheet.Record {
	var batches [][]sheet.Record
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		batches = append(batches, records[start:end])
	}
	return batches
}

// checkDestinations cruza os PODs extraídos com a base de destinos e
// devolve os desconhecidos com contagem de linhas e sugestão aproximada.
func (svc *service) checkDestinations(records []sheet.Record) ([]UnknownDestination, error) {
	known, err := svc.db.KnownDestinations()
	if err != nil {
		return nil, err
	}
	if len(known) == 0 {
		// sem referência cadastrada não há o que validar
		return nil, nil
	}

	counts := make(map[string]int)
	surface := make(map[string]string)
	for _, rec := range records {
		pod := rec.Str(fieldPOD)
		key := normalizeKey(pod)
		if key == "" || known[key] {
			continue
		}
		counts[key]++
		surface[key] = pod
	}
	if len(counts) == 0 {
		return nil, nil
	}

	knownKeys := make([]string, 0, len(known))
	for k := range known {
		knownKeys = append(knownKeys, k)
	}
	cm := closestmatch.New(knownKeys, []int{3, 4})

	var unknown []UnknownDestination
	for key, n := range counts {
		unknown = append(unknown, UnknownDestination{
			Value:      surface[key],
			Rows:       n,
			Suggestion: cm.Closest(key),
		})
	}
	sort.Slice(unknown, func(i, j int) bool {
		if unknown[i].Rows != unknown[j].Rows {
			return unknown[i].Rows > unknown[j].Rows
		}
		return unknown[i].Value < unknown[j].Value
	})
	return unknown, nil
}

func (svc *service) deleteAll(tx *sql.Tx, flow Flow) error {
	switch flow {
	case FlowTariffs:
		return svc.db.DeleteAllTariffs(tx)
	case FlowPorts:
		return svc.db.DeleteAllPorts(tx)
	}
	return nil
}

func (svc *service) writeBatch(tx *sql.Tx, flow Flow, batch []sheet.Record) error {
	switch flow {
	case FlowTariffs:
		tariffs := make([]domain.Tariff, len(batch))
		for i, rec := range batch {
			tariffs[i] = recordToTariff(rec)
		}
		return svc.db.InsertTariffBatch(tx, tariffs)
	case FlowPorts:
		ports := make([]domain.PortCountry, len(batch))
		for i, rec := range batch {
			ports[i] = domain.PortCountry{Port: rec.Str(fieldPort), Country: rec.Str(fieldCountry)}
		}
		return svc.db.InsertPortBatch(tx, ports)
	case FlowDestinations:
		dests := make([]domain.Destination, len(batch))
		for i, rec := range batch {
			dests[i] = domain.Destination{Destination: rec.Str(fieldDestination), Country: rec.Str(fieldCountry)}
		}
		return svc.db.UpsertDestinationBatch(tx, dests)
	}
	return fmt.Errorf("fluxo de importação desconhecido: %s", flow)
}

func recordToTariff(rec sheet.Record) domain.Tariff {
	t := domain.Tariff{
		Carrier: rec.Str(fieldCarrier),
		POL:     rec.Str(fieldPOL),
		POD:     rec.Str(fieldPOD),
	}
	t.Commodity = strPtr(rec, fieldCommodity)
	t.Price20DC = numPtr(rec, fieldPrice20DC)
	t.Price40HC = numPtr(rec, fieldPrice40HC)
	t.Price40Reefer = numPtr(rec, fieldPrice40Reefer)
	t.FreeTimeOrigin = strPtr(rec, fieldFreeTimeOrig)
	t.FreeTimeDestination = strPtr(rec, fieldFreeTimeDest)
	t.TransitTime = strPtr(rec, fieldTransitTime)
	t.EnsAms = strPtr(rec, fieldEnsAms)
	t.Validity = strPtr(rec, fieldValidity)
	t.SubjectTo = strPtr(rec, fieldSubjectTo)
	return t
}

func strPtr(rec sheet.Record, field string) *string {
	if v, ok := rec[field].(string); ok {
		return &v
	}
	return nil
}

func numPtr(rec sheet.Record, field string) *float64 {
	if v, ok := rec[field].(float64); ok {
		return &v
	}
	return nil
}
