package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек магазина
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Save(ctx context.Context, settings *domain.ShopSettings) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
