package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"parking-be-svc/internal/models"
)

// BillBuilder renders the fixed-layout monthly parking invoice
type BillBuilder struct{}

// NewBillBuilder creates a new bill document builder
func NewBillBuilder() *BillBuilder {
	return &BillBuilder{}
}

// Build renders the invoice for a record and returns the PDF bytes together
// with the suggested download filename
func (b *BillBuilder) Build(record models.BillRecord, settings models.Settings) ([]byte, string, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	// Header
	doc.SetFont("Arial", "B", 16)
	doc.CellFormat(200, 10, settings.BusinessName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(200, 8, fmt.Sprintf("%s | Contact: %s", settings.BusinessAddress, settings.BusinessContact), "", 1, "C", false, 0, "")
	doc.Ln(10)

	// Title
	doc.SetFont("Arial", "B", 18)
	doc.CellFormat(200, 15, "MONTHLY PARKING BILL", "", 1, "C", false, 0, "")
	doc.Ln(5)

	// Bill details
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(200, 10, "BILL DETAILS", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)

	details := []struct {
		label string
		value string
	}{
		{"Bill Date", dateOnly(record.BillDate)},
		{"Customer Name", record.CustomerName},
		{"Vehicle Number", record.VehicleNo},
		{"Vehicle Type", strings.ToUpper(record.VehicleType)},
		{"Parking Slot", record.SlotNumber},
		{"Parking Period", record.Period()},
		{"Payment Mode", record.PaymentMode},
	}
	for _, d := range details {
		doc.CellFormat(60, 8, d.label+":", "", 0, "L", false, 0, "")
		doc.CellFormat(130, 8, d.value, "", 1, "L", false, 0, "")
	}
	doc.Ln(10)

	// Amount section
	doc.SetFont("Arial", "B", 12)
	doc.CellFormat(200, 10, "AMOUNT DETAILS", "", 1, "L", false, 0, "")
	doc.SetFont("Arial", "", 11)
	doc.CellFormat(120, 10, "Monthly Parking Charges:", "", 0, "L", false, 0, "")
	doc.CellFormat(70, 10, record.BillAmount, "", 1, "L", false, 0, "")
	doc.Ln(8)

	doc.SetFont("Arial", "B", 14)
	doc.CellFormat(120, 12, "TOTAL AMOUNT:", "", 0, "L", false, 0, "")
	doc.CellFormat(70, 12, record.BillAmount, "", 1, "L", false, 0, "")
	doc.Ln(15)

	// Footer
	doc.SetFont("Arial", "B", 8)
	doc.CellFormat(200, 4, strings.Repeat("-", 50), "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "B", 10)
	doc.CellFormat(200, 6, settings.DeveloperName, "", 1, "C", false, 0, "")
	doc.SetFont("Arial", "I", 8)
	doc.CellFormat(200, 5, settings.DeveloperTagline, "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render bill document: %w", err)
	}

	filename := fmt.Sprintf("Parking_Bill_%s_%s_%s.pdf",
		strings.ReplaceAll(record.CustomerName, " ", "_"), record.Month, record.Year)

	return buf.Bytes(), filename, nil
}

// dateOnly strips the time portion from the stored "dd-mm-yyyy HH:MM:SS"
// bill date; the document shows the date, the record keeps the timestamp
func dateOnly(billDate string) string {
	t, err := time.Parse("02-01-2006 15:04:05", billDate)
	if err != nil {
		return billDate
	}
	return t.Format("02-01-2006")
}
