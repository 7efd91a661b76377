package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/nutri-contracts/internal/calendar"
	"github.com/nurpe/nutri-contracts/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the contract sheet: header, service, amounts and the full
// delivery calendar.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	// Core fonts are cp1252; accented Spanish text goes through the translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr("Contrato de servicio"), "", 1, "C", false, 0, "")

	pdf.SetFont(fontName, "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Contrato N° %s", doc.Contract.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Datos del contrato"), "", 1, "L", false, 0, "")
	lines := []string{
		fmt.Sprintf("Paciente: %s", doc.Contract.PatientID),
		fmt.Sprintf("Servicio: %s", safeValue(doc.ServiceName)),
		fmt.Sprintf("Vigencia: del %s al %s", formatDate(doc.Contract.StartDate), formatDate(doc.Contract.EndDate)),
		fmt.Sprintf("Estado: %s", statusLabel(doc.Contract.Status)),
		fmt.Sprintf("Monto total: %s", formatAmount(doc.Contract.TotalAmount)),
	}
	pdf.SetFont(fontName, "", 10)
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(2)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Política de cambios"), "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 5, tr(safeValue(doc.Contract.ChangePolicy)), "", "L", false)
	pdf.Ln(2)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, tr("Calendario de entregas"), "", 1, "L", false, 0, "")

	widths := []float64{28, 24, 24, 104}
	drawTableRow(pdf, tr, []string{"Fecha", "Día", "Hora", "Dirección"}, widths, true)
	if len(doc.Slots) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(0, 8, tr("Sin entregas programadas"), "1", 1, "C", false, 0, "")
	}
	for _, slot := range doc.Slots {
		drawTableRow(pdf, tr, []string{
			formatDate(slot.Date),
			calendar.WeekdayName(slot.Date.Weekday()),
			slot.PreferredTime.String(),
			slot.DeliveryAddress,
		}, widths, false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FileName is the attachment name offered for a contract sheet.
func FileName(doc model.ContractDocument) string {
	return fmt.Sprintf("contrato_%s.pdf", doc.Contract.ID.String()[:8])
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func statusLabel(status model.ContractStatus) string {
	switch status {
	case model.ContractStatusActive:
		return "Activo"
	case model.ContractStatusCancelled:
		return "Cancelado"
	default:
		return string(status)
	}
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
