package sheet

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/shakinm/xlsReader/xls"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat é o erro de formato rejeitado antes do parse.
var ErrUnsupportedFormat = errors.New("formato de arquivo não suportado: use .xlsx ou .xls")

// AcceptedExtension reporta se a extensão é de planilha aceita.
func AcceptedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// LoadRows carrega a primeira aba da planilha como grade de strings.
// Tenta excelize (.xlsx) e cai para xlsReader (.xls) quando o arquivo é do
// formato binário antigo, independente da extensão declarada.
func LoadRows(file io.Reader) ([][]string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler o arquivo: %w", err)
	}

	if f, err := excelize.OpenReader(bytes.NewReader(data)); err == nil {
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("o arquivo não contém planilhas")
		}
		return f.GetRows(sheets[0])
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUnsupportedFormat
	}
	if len(workbook.GetSheets()) == 0 {
		return nil, errors.New("o arquivo .xls não contém planilhas")
	}
	sheet, err := workbook.GetSheet(0)
	if err != nil {
		return nil, fmt.Errorf("erro ao obter planilha do arquivo .xls: %w", err)
	}

	var rows [][]string
	for _, row := range sheet.GetRows() {
		var cells []string
		for _, cell := range row.GetCols() {
			cells = append(cells, cell.GetString())
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// Parse executa o pipeline completo do esquema sobre a planilha carregada:
// localizar cabeçalho, mapear colunas, validar obrigatórios e extrair.
func Parse(rows [][]string, s Schema) ([]Record, ColumnIndexMap, error) {
	if len(rows) < 2 {
		return nil, nil, errors.New("arquivo vazio ou sem dados")
	}

	headerIdx, err := FindHeaderRow(rows, s.HeaderGroups)
	if err != nil {
		return nil, nil, err
	}

	indices := MapColumns(rows[headerIdx], s.Synonyms)
	if err := CheckRequired(indices, s); err != nil {
		return nil, nil, err
	}

	records, err := Extract(rows, headerIdx, indices, s)
	if err != nil {
		return nil, nil, err
	}
	return records, indices, nil
}
