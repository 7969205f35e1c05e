package credentials

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"timeclock/internal/domain/core"
)

// CR80 card size in millimetres.
const (
	cardWidth  = 85.6
	cardHeight = 54.0
)

// CardPDF lays out a printable credential for emp. photo may be nil; the
// schedule line is omitted when sched is nil.
func CardPDF(w io.Writer, emp core.Employee, sched *core.Schedule, photo []byte) error {
	code := emp.ID
	symbol, err := BarcodePNG(code)
	if err != nil {
		return err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: cardWidth, Ht: cardHeight},
	})
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(tr("Credencial "+emp.Name), false)
	pdf.AddPage()

	pdf.SetFillColor(30, 64, 120)
	pdf.Rect(0, 0, cardWidth, 9, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(4, 2)
	pdf.CellFormat(cardWidth-8, 5, tr("CREDENCIAL DE EMPLEADO"), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	textX := 4.0
	if imageType := photoType(photo); imageType != "" {
		opts := gofpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader("photo", opts, bytes.NewReader(photo))
		pdf.ImageOptions("photo", 4, 12, 20, 24, false, opts, 0, "")
		textX = 27
	}

	pdf.SetXY(textX, 12)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.MultiCell(cardWidth-textX-4, 4.5, tr(strings.ToUpper(emp.Name)), "", "L", false)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetX(textX)
	pdf.CellFormat(0, 4, tr("ÁREA: "+emp.Area), "", 1, "L", false, 0, "")
	pdf.SetX(textX)
	pdf.CellFormat(0, 4, tr("ID : "+emp.ID), "", 1, "L", false, 0, "")
	if sched != nil {
		pdf.SetX(textX)
		pdf.CellFormat(0, 4, tr(fmt.Sprintf("HORARIO: %s %s-%s", sched.Name, sched.StartTime, sched.EndTime)), "", 1, "L", false, 0, "")
	}

	barcodeOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("barcode", barcodeOpts, bytes.NewReader(symbol))
	pdf.ImageOptions("barcode", 12, 38, cardWidth-24, 11, false, barcodeOpts, 0, "")
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetXY(4, 49.5)
	pdf.CellFormat(cardWidth-8, 3, tr(code), "", 0, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// photoType maps sniffed image bytes to the gofpdf image type, or "" when the
// data is not a supported image.
func photoType(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}
