package sheet

// FieldKind define a coerção aplicada aos valores de um campo.
type FieldKind int

const (
	KindString FieldKind = iota
	KindNumber
)

// Field descreve um campo semântico produzido pela importação.
type Field struct {
	Name     string
	Kind     FieldKind
	Required bool
}

// Synonym liga um token normalizado de cabeçalho a um campo semântico.
// A ordem das entradas importa: no fallback por substring vence a
// primeira correspondência na ordem do dicionário.
type Synonym struct {
	Token string
	Field string
}

// Strategy define como os lotes são gravados no banco.
type Strategy int

const (
	// StrategyReplace apaga a coleção inteira antes de inserir os lotes.
	StrategyReplace Strategy = iota
	// StrategyUpsert grava cada lote como upsert por chave natural.
	StrategyUpsert
)

// Record é uma linha extraída: campo semântico -> valor escalar anulável
// (string, float64 ou nil). Nunca é mutado após a extração.
type Record map[string]any

// Str retorna o valor string do campo, ou "" quando nulo.
func (r Record) Str(field string) string {
	if v, ok := r[field].(string); ok {
		return v
	}
	return ""
}

// Num retorna o valor numérico do campo e se ele está presente.
func (r Record) Num(field string) (float64, bool) {
	v, ok := r[field].(float64)
	return v, ok
}

// Schema parameteriza um fluxo de importação de planilha: campos e
// sinônimos próprios, grupos de tokens que identificam a linha de
// cabeçalho, deduplicação opcional e estratégia/tamanho de lote.
// Um único importador atende tarifas, portos e destinos.
type Schema struct {
	Name string

	Fields   []Field
	Synonyms []Synonym

	// HeaderGroups identifica a linha de cabeçalho: cada grupo é um
	// conjunto de alternativas normalizadas e a linha precisa conter ao
	// menos uma alternativa de cada grupo.
	HeaderGroups [][]string

	// DedupeKey, quando definido, descarta registros repetidos mantendo a
	// primeira ocorrência.
	DedupeKey func(Record) string

	BatchSize int
	Strategy  Strategy
}

// RequiredFields lista os nomes dos campos obrigatórios do fluxo.
func (s Schema) RequiredFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}
