package get_monthly_report

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

type ReportService interface {
	Monthly(ctx context.Context, month string) (*models.MonthlyReport, error)
	RenderPDF(report *models.MonthlyReport, shopName string) ([]byte, error)
}

type SettingsService interface {
	Current(ctx context.Context) (*domain.ShopSettings, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
