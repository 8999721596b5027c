package settings

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

var (
	// ErrSettingsNotFound настройки ещё не сохранялись
	ErrSettingsNotFound = storage.ErrSettingsNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
