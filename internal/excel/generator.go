package excel

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/nutri-contracts/internal/calendar"
	"github.com/nurpe/nutri-contracts/internal/model"
)

const (
	summarySheet  = "Resumen"
	calendarSheet = "Calendario"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a contract's delivery calendar as an xlsx workbook with a
// summary sheet and one row per delivery slot.
func (g *Generator) Generate(doc model.ContractDocument) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeSummary(file, doc)

	if _, err := file.NewSheet(calendarSheet); err != nil {
		return nil, err
	}
	if err := g.writeCalendar(file, doc); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeSummary(file *excelize.File, doc model.ContractDocument) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	deliveries := 0
	for _, slot := range doc.Slots {
		if !slot.IsNonDeliveryDay {
			deliveries++
		}
	}

	set("A1", "Contrato")
	set("B1", doc.Contract.ID.String())
	set("A2", "Paciente")
	set("B2", doc.Contract.PatientID.String())
	set("A3", "Servicio")
	set("B3", doc.ServiceName)
	set("A4", "Fecha de inicio")
	set("B4", formatDate(doc.Contract.StartDate))
	set("A5", "Fecha de fin")
	set("B5", formatDate(doc.Contract.EndDate))
	set("A6", "Estado")
	set("B6", statusLabel(doc.Contract.Status))
	set("A7", "Monto total")
	set("B7", formatAmount(doc.Contract.TotalAmount))
	set("A8", "Entregas programadas")
	set("B8", deliveries)
	set("A9", "Política de cambios")
	set("B9", doc.Contract.ChangePolicy)

	_ = file.SetColWidth(summarySheet, "A", "A", 24)
	_ = file.SetColWidth(summarySheet, "B", "B", 48)
}

func (g *Generator) writeCalendar(file *excelize.File, doc model.ContractDocument) error {
	headers := []string{"Fecha", "Día", "Hora preferida", "Dirección de entrega", "Sin entrega"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(calendarSheet, cell, header)
	}

	for i, slot := range doc.Slots {
		row := i + 2
		values := []interface{}{
			formatDate(slot.Date),
			calendar.WeekdayName(slot.Date.Weekday()),
			slot.PreferredTime.String(),
			slot.DeliveryAddress,
			yesNo(slot.IsNonDeliveryDay),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			_ = file.SetCellValue(calendarSheet, cell, value)
		}
	}

	_ = file.SetColWidth(calendarSheet, "A", "A", 14)
	_ = file.SetColWidth(calendarSheet, "B", "B", 12)
	_ = file.SetColWidth(calendarSheet, "C", "C", 16)
	_ = file.SetColWidth(calendarSheet, "D", "D", 40)
	_ = file.SetColWidth(calendarSheet, "E", "E", 12)
	return nil
}

// FileName is the attachment name offered for a contract's calendar.
func FileName(doc model.ContractDocument) string {
	return fmt.Sprintf("calendario_%s.xlsx", doc.Contract.ID.String()[:8])
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

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
