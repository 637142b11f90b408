package sheet

import (
	"fmt"
	"strings"
)

// ColumnIndexMap mapeia campo semântico -> posição da coluna na planilha.
// Construído uma única vez por importação; somente leitura depois disso.
type ColumnIndexMap map[string]int

// MapColumns resolve cada célula do cabeçalho para um campo semântico.
// Primeiro tenta casamento exato com o dicionário de sinônimos; sem exato,
// aceita substring em qualquer direção, na ordem do dicionário. Cabeçalhos
// sem correspondência são ignorados em silêncio; a primeira coluna que
// resolve um campo vence.
func MapColumns(header []string, synonyms []Synonym) ColumnIndexMap {
	indices := make(ColumnIndexMap)

	for idx, cell := range header {
		normalized := Normalize(cell)
		if normalized == "" {
			continue
		}

		field := ""
		for _, syn := range synonyms {
			if syn.Token == normalized {
				field = syn.Field
				break
			}
		}
		if field == "" {
			for _, syn := range synonyms {
				if strings.Contains(normalized, syn.Token) || strings.Contains(syn.Token, normalized) {
					field = syn.Field
					break
				}
			}
		}

		if field != "" {
			if _, taken := indices[field]; !taken {
				indices[field] = idx
			}
		}
	}

	return indices
}

// MissingColumnsError indica campos obrigatórios sem coluna correspondente.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("colunas obrigatórias ausentes: %s", strings.Join(e.Missing, ", "))
}

// CheckRequired confirma que todo campo obrigatório do esquema recebeu uma
// coluna; a importação aborta antes de qualquer extração quando falta algum.
func CheckRequired(indices ColumnIndexMap, s Schema) error {
	var missing []string
	for _, name := range s.RequiredFields() {
		if _, ok := indices[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Missing: missing}
	}
	return nil
}
