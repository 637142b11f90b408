package tariffs

import (
	"strings"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/core/sheet"
)

// Campos semânticos do fluxo de tarifas (nomes das colunas do banco).
const (
	fieldCarrier       = "carrier"
	fieldPOL           = "pol"
	fieldPOD           = "pod"
	fieldCommodity     = "commodity"
	fieldPrice20DC     = "price_20dc"
	fieldPrice40HC     = "price_40hc"
	fieldPrice40Reefer = "price_40reefer"
	fieldFreeTimeOrig  = "free_time_origin"
	fieldFreeTimeDest  = "free_time_destination"
	fieldTransitTime   = "transit_time"
	fieldEnsAms        = "ens_ams"
	fieldValidity      = "validity"
	fieldSubjectTo     = "subject_to"

	fieldPort        = "port"
	fieldCountry     = "country"
	fieldDestination = "destination"
)

// tariffSchema: planilha de tarifas, substituição destrutiva em lotes de 50.
var tariffSchema = sheet.Schema{
	Name: "tarifas",
	Fields: []sheet.Field{
		{Name: fieldCarrier, Kind: sheet.KindString, Required: true},
		{Name: fieldPOL, Kind: sheet.KindString, Required: true},
		{Name: fieldPOD, Kind: sheet.KindString, Required: true},
		{Name: fieldCommodity, Kind: sheet.KindString},
		{Name: fieldPrice20DC, Kind: sheet.KindNumber},
		{Name: fieldPrice40HC, Kind: sheet.KindNumber},
		{Name: fieldPrice40Reefer, Kind: sheet.KindNumber},
		{Name: fieldFreeTimeOrig, Kind: sheet.KindString},
		{Name: fieldFreeTimeDest, Kind: sheet.KindString},
		{Name: fieldTransitTime, Kind: sheet.KindString},
		{Name: fieldEnsAms, Kind: sheet.KindString},
		{Name: fieldValidity, Kind: sheet.KindString},
		{Name: fieldSubjectTo, Kind: sheet.KindString},
	},
	Synonyms: []sheet.Synonym{
		{Token: "origem", Field: fieldPOL},
		{Token: "destino", Field: fieldPOD},
		{Token: "armador", Field: fieldCarrier},
		{Token: "commodity", Field: fieldCommodity},
		{Token: "20 dry", Field: fieldPrice20DC},
		{Token: "40 high cube", Field: fieldPrice40HC},
		{Token: "40 reefer", Field: fieldPrice40Reefer},
		{Token: "free time origem", Field: fieldFreeTimeOrig},
		{Token: "free time destino", Field: fieldFreeTimeDest},
		{Token: "transit time", Field: fieldTransitTime},
		{Token: "ens", Field: fieldEnsAms},
		{Token: "validade", Field: fieldValidity},
		{Token: "obs", Field: fieldSubjectTo},
	},
	HeaderGroups: [][]string{{"origem"}, {"destino"}, {"armador"}},
	BatchSize:    50,
	Strategy:     sheet.StrategyReplace,
}

// portSchema: planilha de portos x países, substituição em lotes de 100.
var portSchema = sheet.Schema{
	Name: "portos",
	Fields: []sheet.Field{
		{Name: fieldPort, Kind: sheet.KindString, Required: true},
		{Name: fieldCountry, Kind: sheet.KindString, Required: true},
	},
	Synonyms: []sheet.Synonym{
		{Token: "porto", Field: fieldPort},
		{Token: "port", Field: fieldPort},
		{Token: "puerto", Field: fieldPort},
		{Token: "pais", Field: fieldCountry},
		{Token: "country", Field: fieldCountry},
	},
	HeaderGroups: [][]string{
		{"porto", "port", "puerto"},
		{"pais", "country"},
	},
	DedupeKey: func(r sheet.Record) string {
		return r.Str(fieldPort) + "|" + r.Str(fieldCountry)
	},
	BatchSize: 100,
	Strategy:  sheet.StrategyReplace,
}

// destinationSchema: planilha de destinos, upsert pela chave natural.
var destinationSchema = sheet.Schema{
	Name: "destinos",
	Fields: []sheet.Field{
		{Name: fieldDestination, Kind: sheet.KindString, Required: true},
		{Name: fieldCountry, Kind: sheet.KindString, Required: true},
	},
	Synonyms: []sheet.Synonym{
		{Token: "destino", Field: fieldDestination},
		{Token: "pais destino", Field: fieldCountry},
		{Token: "pais", Field: fieldCountry},
		{Token: "country", Field: fieldCountry},
		{Token: "destination", Field: fieldDestination},
	},
	HeaderGroups: [][]string{{"destino"}},
	DedupeKey: func(r sheet.Record) string {
		return strings.ToLower(r.Str(fieldDestination)) + "-" + strings.ToLower(r.Str(fieldCountry))
	},
	BatchSize: 100,
	Strategy:  sheet.StrategyUpsert,
}
