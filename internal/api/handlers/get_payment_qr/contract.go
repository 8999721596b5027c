package get_payment_qr

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type SettingsService interface {
	Current(ctx context.Context) (*domain.ShopSettings, error)
}

type QRProvider interface {
	QRWithGracefulDegradation(ctx context.Context, number string, amount float64) ([]byte, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
