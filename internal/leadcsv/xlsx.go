package leadcsv

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/leadfinder/internal/model"
)

// SheetName is the worksheet WriteXLSX creates.
const SheetName = "Leads"

// WriteXLSX writes leads as a single-sheet workbook with the same columns as
// Serialize. Budget and confidence are numeric cells.
func WriteXLSX(w io.Writer, leads []model.Lead) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(SheetName)
	if err != nil {
		return eris.Wrap(err, "leadcsv: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range ExportColumns {
		header.AddCell().SetString(col)
	}

	for _, l := range leads {
		row := sheet.AddRow()
		row.AddCell().SetString(l.Name)
		row.AddCell().SetString(l.Email)
		row.AddCell().SetString(l.Company)
		row.AddCell().SetString(l.Industry)
		row.AddCell().SetFloat(l.Budget)
		row.AddCell().SetString(l.Location)
		row.AddCell().SetString(string(l.Score))
		row.AddCell().SetInt(l.ScoreConfidence)
		row.AddCell().SetString(l.AddedAtISO())
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "leadcsv: write xlsx")
	}
	return nil
}
