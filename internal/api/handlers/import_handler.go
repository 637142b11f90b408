package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/api/responses"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/sheet"
	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/tariffs"
)

// ImportHandler lida com os três fluxos de importação de planilha.
type ImportHandler struct {
	service tariffs.Service
}

// NewImportHandler cria um novo handler de importação.
func NewImportHandler(service tariffs.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

// flows mapeia o parâmetro de rota para o fluxo correspondente.
var flows = map[string]tariffs.Flow{
	"tariffs":      tariffs.FlowTariffs,
	"ports":        tariffs.FlowPorts,
	"destinations": tariffs.FlowDestinations,
}

// Import recebe o arquivo via multipart e executa o fluxo indicado na
// rota. Com "confirm=true" a importação de tarifas prossegue mesmo com
// destinos fora da base de referência.
func (h *ImportHandler) Import(c *gin.Context) {
	flow, ok := flows[c.Param("flow")]
	if !ok {
		responses.Error(c, http.StatusNotFound, "fluxo de importação desconhecido")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo (.xls, .xlsx) não encontrado ou inválido")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo enviado")
		return
	}
	defer file.Close()

	opts := tariffs.ImportOptions{
		ConfirmUnknown: c.PostForm("confirm") == "true",
	}

	report, err := h.service.Import(flow, file, fileHeader.Filename, opts)
	if err != nil {
		switch {
		case errors.Is(err, tariffs.ErrUnknownDestinations):
			// o relatório traz os destinos pendentes de confirmação
			c.JSON(http.StatusConflict, responses.APIResponse{
				Status:  "error",
				Data:    report,
				Message: err.Error(),
			})
		case errors.Is(err, sheet.ErrUnsupportedFormat):
			responses.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, sheet.ErrNoValidRows):
			responses.Error(c, http.StatusUnprocessableEntity, err.Error())
		default:
			var headerErr *sheet.HeaderNotFoundError
			var colsErr *sheet.MissingColumnsError
			if errors.As(err, &headerErr) || errors.As(err, &colsErr) {
				responses.Error(c, http.StatusUnprocessableEntity, err.Error())
				return
			}
			// falha de gravação: devolve o texto do banco e os lotes concluídos
			c.JSON(http.StatusInternalServerError, responses.APIResponse{
				Status:  "error",
				Data:    report,
				Message: err.Error(),
			})
		}
		return
	}

	responses.Success(c, report, "importação concluída")
}
