package sheet

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNoValidRows indica que nenhuma linha sobreviveu à extração.
var ErrNoValidRows = errors.New("nenhum registro válido encontrado no arquivo")

// ParseString coage uma célula a string: vazio após trim vira nil.
func ParseString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// ParseNumber coage uma célula numérica no formato brasileiro ou anglo.
// Remove tudo que não for dígito, vírgula, ponto ou sinal; decide o
// separador decimal pela última ocorrência de vírgula/ponto. Valores em
// branco ou que não parseiam viram nil, nunca erro: preço malformado é
// descartado, não rejeita a importação.
func ParseNumber(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	s = b.String()
	if s == "" || s == "-" {
		return nil
	}

	neg := strings.HasPrefix(s, "-")
	s = strings.ReplaceAll(s, "-", "")

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	switch {
	case lastComma > lastDot:
		// vírgula decimal: pontos são milhar
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case lastDot > lastComma:
		// ponto decimal: vírgulas são milhar; pontos extras também
		s = strings.ReplaceAll(s, ",", "")
		if strings.Count(s, ".") > 1 {
			parts := strings.Split(s, ".")
			decimal := parts[len(parts)-1]
			s = strings.Join(parts[:len(parts)-1], "") + "." + decimal
		}
	default:
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if neg {
		f = -f
	}
	return &f
}

// Extract percorre as linhas após o cabeçalho e monta a sequência de
// registros. Linhas totalmente vazias são puladas; linhas sem qualquer
// campo obrigatório são descartadas inteiras (nunca registro parcial).
// Função pura das entradas: reexecutar sobre a mesma planilha e o mesmo
// mapa de colunas produz sequência idêntica.
func Extract(rows [][]string, headerIdx int, indices ColumnIndexMap, s Schema) ([]Record, error) {
	var records []Record
	seen := make(map[string]bool)

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rec := make(Record, len(s.Fields))
		skip := false
		for _, f := range s.Fields {
			idx, mapped := indices[f.Name]
			raw := ""
			if mapped && idx < len(row) {
				raw = row[idx]
			}

			switch f.Kind {
			case KindNumber:
				if v := ParseNumber(raw); v != nil {
					rec[f.Name] = *v
				} else {
					rec[f.Name] = nil
				}
			default:
				if v := ParseString(raw); v != nil {
					rec[f.Name] = *v
				} else {
					rec[f.Name] = nil
				}
			}

			if f.Required && rec[f.Name] == nil {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		if s.DedupeKey != nil {
			key := s.DedupeKey(rec)
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	return records, nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
