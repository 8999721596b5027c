package reports

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

const utf8FontFamily = "report"

// RenderPDF выгружает месячную сводку в PDF
func (s *Service) RenderPDF(report *models.MonthlyReport, shopName string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	family, tr := "Helvetica", pdf.UnicodeTranslatorFromDescriptor("")
	if s.fontPath != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", s.fontPath)
		family, tr = utf8FontFamily, func(text string) string { return text }
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: failed to load font %s: %v", ErrInternal, s.fontPath, err)
	}

	pdf.SetTitle(fmt.Sprintf("%s %s", shopName, report.Month), true)
	pdf.AddPage()

	pdf.SetFont(family, "", 18)
	pdf.CellFormat(0, 12, tr(shopName), "", 1, "L", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Monthly report %s (%s - %s)", report.Month, report.From, report.To)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	summary := [][2]string{
		{"Total bookings", fmt.Sprintf("%d", report.Total)},
		{"Deposit total", fmt.Sprintf("%.2f", report.DepositTotal)},
		{"Pending", fmt.Sprintf("%d", report.ByStatus.Pending)},
		{"Confirmed", fmt.Sprintf("%d", report.ByStatus.Confirmed)},
		{"Rejected", fmt.Sprintf("%d", report.ByStatus.Rejected)},
		{"Cancelled", fmt.Sprintf("%d", report.ByStatus.Cancelled)},
		{"Unknown status", fmt.Sprintf("%d", report.ByStatus.Unknown)},
	}
	for _, row := range summary {
		pdf.CellFormat(60, 7, tr(row[0]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(100, 8, tr("Service"), "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, tr("Bookings"), "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, tr("Deposit"), "1", 1, "R", true, 0, "")
	for _, row := range report.ByService {
		pdf.CellFormat(100, 7, tr(row.Service), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", row.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", row.Deposit), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: failed to render pdf: %v", ErrInternal, err)
	}
	return buf.Bytes(), nil
}
