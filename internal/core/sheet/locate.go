package sheet

import (
	"fmt"
	"strings"
)

// headerScanMaxRows limita a busca pela linha de cabeçalho.
const headerScanMaxRows = 50

// HeaderNotFoundError indica que nenhuma linha candidata contém todos os
// tokens obrigatórios. Carrega a primeira linha crua da planilha para que
// o usuário veja por que o casamento falhou.
type HeaderNotFoundError struct {
	Missing  []string
	FirstRow []string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("colunas obrigatórias não encontradas: %s (primeira linha do arquivo: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.FirstRow, " | "))
}

// FindHeaderRow varre as primeiras linhas da planilha e retorna o índice da
// primeira cuja forma normalizada contém ao menos uma alternativa de cada
// grupo obrigatório. O casamento é por substring; empates resolvem pela
// primeira linha, sem pontuação entre candidatas.
func FindHeaderRow(rows [][]string, groups [][]string) (int, error) {
	limit := headerScanMaxRows
	if len(rows) < limit {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		row := rows[i]
		if len(row) == 0 {
			continue
		}

		normalized := make([]string, len(row))
		for j, cell := range row {
			normalized[j] = Normalize(cell)
		}

		if matchesAllGroups(normalized, groups) {
			return i, nil
		}
	}

	var missing []string
	for _, g := range groups {
		missing = append(missing, strings.Join(g, "/"))
	}
	var firstRow []string
	if len(rows) > 0 {
		firstRow = rows[0]
	}
	return -1, &HeaderNotFoundError{Missing: missing, FirstRow: firstRow}
}

func matchesAllGroups(normalized []string, groups [][]string) bool {
	for _, group := range groups {
		found := false
	scan:
		for _, alt := range group {
			for _, cell := range normalized {
				if strings.Contains(cell, alt) {
					found = true
					break scan
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}
