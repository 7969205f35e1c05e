package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

var pdfWidths = []float64{24, 24, 52, 36, 20, 20, 34, 22, 32}

// WritePDF renders rows as a landscape A4 table.
func WritePDF(w io.Writer, rows []DailySummary, title string, loc *time.Location) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(title), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(221, 235, 247)
	for i, heading := range columns {
		pdf.CellFormat(pdfWidths[i], 7, tr(heading), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range rows {
		for i, value := range rowValues(row, loc) {
			align := "L"
			if i >= 4 {
				align = "C"
			}
			pdf.CellFormat(pdfWidths[i], 6, tr(fmt.Sprint(value)), "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(rows) == 0 {
		pdf.CellFormat(0, 8, tr("Sin registros en el periodo"), "", 1, "L", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
