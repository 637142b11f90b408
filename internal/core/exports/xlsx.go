package exports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/accesslogistics-ai/ocean-route-finder/internal/domain"
)

const sheetName = "Tarifas"

// usdFormat exibe os valores monetários como "US$ 1,234.56".
const usdFormat = `"US$" #,##0.00`

// WriteXLSX gera a planilha de tarifas com cabeçalho destacado, filtro
// automático, primeira linha congelada e formato monetário nas colunas de
// preço.
func WriteXLSX(tariffs []domain.Tariff) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.Label)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1E3A5F"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtrOf(usdFormat)})
	if err != nil {
		return nil, err
	}

	for r, t := range tariffs {
		row := r + 2
		for c, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if col.Money {
				switch col.Label {
				case "20'DC":
					setMoney(f, cell, t.Price20DC, moneyStyle)
				case "40'HC":
					setMoney(f, cell, t.Price40HC, moneyStyle)
				case "40'Reefer":
					setMoney(f, cell, t.Price40Reefer, moneyStyle)
				}
				continue
			}
			f.SetCellValue(sheetName, cell, col.Value(t))
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(columns))
	f.AutoFilter(sheetName, fmt.Sprintf("A1:%s%d", lastCol, len(tariffs)+1), nil)
	f.SetPanes(sheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	})

	f.SetColWidth(sheetName, "A", "C", 22)
	f.SetColWidth(sheetName, "D", lastCol, 16)

	return f, nil
}

func setMoney(f *excelize.File, cell string, v *float64, style int) {
	if v == nil {
		return
	}
	f.SetCellValue(sheetName, cell, *v)
	f.SetCellStyle(sheetName, cell, cell, style)
}

func strPtrOf(s string) *string { return &s }
