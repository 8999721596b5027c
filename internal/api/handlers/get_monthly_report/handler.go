package get_monthly_report

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports"
)

const (
	formatPDF = "pdf"

	msgInvalidFormat = "допустимый формат: pdf"
)

type Handler struct {
	reports  ReportService
	settings SettingsService
	logger   Logger
}

func NewHandler(reportService ReportService, settingsService SettingsService, logger Logger) *Handler {
	return &Handler{
		reports:  reportService,
		settings: settingsService,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/reports/monthly
// Query params: month (YYYY-MM), format (опционально: pdf)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	format := r.URL.Query().Get("format")
	if format != "" && format != formatPDF {
		h.logger.Warn("GET /admin/reports/monthly - Invalid format: %s", format)
		handlers.RespondBadRequest(w, msgInvalidFormat)
		return
	}

	report, err := h.reports.Monthly(r.Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, reports.ErrInvalidInput):
			h.logger.Warn("GET /admin/reports/monthly - Invalid month: %s", month)
			handlers.RespondValidation(w, err, "")

		default:
			h.logger.Error("GET /admin/reports/monthly - Failed to build report: month=%s, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if format != formatPDF {
		h.logger.Info("GET /admin/reports/monthly - Report built: month=%s, total=%d", report.Month, report.Total)
		handlers.RespondJSON(w, http.StatusOK, report)
		return
	}

	shopName := domain.DefaultShopName
	if shop, err := h.settings.Current(r.Context()); err == nil && shop.ShopName != "" {
		shopName = shop.ShopName
	} else if err != nil {
		h.logger.Warn("GET /admin/reports/monthly - Settings unavailable, using default shop name: %v", err)
	}

	pdf, err := h.reports.RenderPDF(report, shopName)
	if err != nil {
		h.logger.Error("GET /admin/reports/monthly - Failed to render PDF: month=%s, error=%v", month, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/reports/monthly - PDF rendered: month=%s, bytes=%d", report.Month, len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report-%s.pdf"`, report.Month))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
