package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/middleware"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/exports"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/tariffs"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// TariffHandler lida com consulta, comparação e exportação de tarifas.
type TariffHandler struct {
	service tariffs.Service
}

// NewTariffHandler cria um novo handler de tarifas.
func NewTariffHandler(service tariffs.Service) *TariffHandler {
	return &TariffHandler{service: service}
}

func filtersFromQuery(c *gin.Context) domain.TariffFilters {
	return domain.TariffFilters{
		Carrier: c.Query("carrier"),
		POL:     c.Query("pol"),
		POD:     c.Query("pod"),
	}
}

func (h *TariffHandler) Search(c *gin.Context) {
	sess, _ := middleware.Session(c)
	rows, err := h.service.Search(sess, filtersFromQuery(c))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao consultar tarifas")
		return
	}
	responses.Success(c, rows, "")
}

func (h *TariffHandler) Compare(c *gin.Context) {
	sess, _ := middleware.Session(c)
	rows, err := h.service.Compare(sess, c.Query("pol"), c.Query("pod"))
	if err != nil {
		responses.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	responses.Success(c, rows, "")
}

func (h *TariffHandler) Carriers(c *gin.Context) {
	sess, _ := middleware.Session(c)
	vals, err := h.service.Carriers(sess)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar armadores")
		return
	}
	responses.Success(c, vals, "")
}

func (h *TariffHandler) POLs(c *gin.Context) {
	sess, _ := middleware.Session(c)
	vals, err := h.service.POLs(sess, c.Query("carrier"))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar origens")
		return
	}
	responses.Success(c, vals, "")
}

func (h *TariffHandler) PODs(c *gin.Context) {
	sess, _ := middleware.Session(c)
	vals, err := h.service.PODs(sess, c.Query("carrier"), c.Query("pol"))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar destinos")
		return
	}
	responses.Success(c, vals, "")
}

func (h *TariffHandler) Countries(c *gin.Context) {
	vals, err := h.service.Countries()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar países")
		return
	}
	responses.Success(c, vals, "")
}

func (h *TariffHandler) Destinations(c *gin.Context) {
	vals, err := h.service.Destinations()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao listar destinos cadastrados")
		return
	}
	responses.Success(c, vals, "")
}

// --- exportações do conjunto filtrado corrente ---

func (h *TariffHandler) exportRows(c *gin.Context) ([]domain.Tariff, bool) {
	sess, _ := middleware.Session(c)
	rows, err := h.service.Search(sess, filtersFromQuery(c))
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao consultar tarifas")
		return nil, false
	}
	return rows, true
}

func exportFilename(ext string) string {
	return fmt.Sprintf("tarifas_%s.%s", time.Now().Format("2006-01-02"), ext)
}

func (h *TariffHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.exportRows(c)
	if !ok {
		return
	}
	payload := exports.WriteCSV(rows)
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("csv")+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", payload)
}

func (h *TariffHandler) ExportXLSX(c *gin.Context) {
	rows, ok := h.exportRows(c)
	if !ok {
		return
	}
	f, err := exports.WriteXLSX(rows)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao gerar planilha")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+exportFilename("xlsx")+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao enviar planilha")
	}
}

func (h *TariffHandler) ExportPrint(c *gin.Context) {
	rows, ok := h.exportRows(c)
	if !ok {
		return
	}
	payload, err := exports.WritePrintHTML(rows)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "erro ao gerar página de impressão")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", payload)
}
