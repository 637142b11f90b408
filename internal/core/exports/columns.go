package exports

import (
	"fmt"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

// column descreve uma coluna da tabela exportada: rótulo e extração do
// valor já formatado para texto.
type column struct {
	Label string
	Value func(t domain.Tariff) string
	Money bool
}

// columns é a ordem fixa das colunas em todos os formatos de exportação.
var columns = []column{
	{Label: "Armador", Value: func(t domain.Tariff) string { return t.Carrier }},
	{Label: "Origem", Value: func(t domain.Tariff) string { return t.POL }},
	{Label: "Destino", Value: func(t domain.Tariff) string { return t.POD }},
	{Label: "Commodity", Value: strCol(func(t domain.Tariff) *string { return t.Commodity })},
	{Label: "20'DC", Value: numCol(func(t domain.Tariff) *float64 { return t.Price20DC }), Money: true},
	{Label: "40'HC", Value: numCol(func(t domain.Tariff) *float64 { return t.Price40HC }), Money: true},
	{Label: "40'Reefer", Value: numCol(func(t domain.Tariff) *float64 { return t.Price40Reefer }), Money: true},
	{Label: "Free Time Origem", Value: strCol(func(t domain.Tariff) *string { return t.FreeTimeOrigin })},
	{Label: "Free Time Destino", Value: strCol(func(t domain.Tariff) *string { return t.FreeTimeDestination })},
	{Label: "Transit Time", Value: strCol(func(t domain.Tariff) *string { return t.TransitTime })},
	{Label: "ENS/AMS", Value: strCol(func(t domain.Tariff) *string { return t.EnsAms })},
	{Label: "Validade", Value: strCol(func(t domain.Tariff) *string { return t.Validity })},
	{Label: "Sujeito a", Value: strCol(func(t domain.Tariff) *string { return t.SubjectTo })},
}

func strCol(get func(domain.Tariff) *string) func(domain.Tariff) string {
	return func(t domain.Tariff) string {
		if v := get(t); v != nil {
			return *v
		}
		return ""
	}
}

func numCol(get func(domain.Tariff) *float64) func(domain.Tariff) string {
	return func(t domain.Tariff) string {
		if v := get(t); v != nil {
			return fmt.Sprintf("%.2f", *v)
		}
		return ""
	}
}
