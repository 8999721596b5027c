package slot

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

var (
	// ErrLedgerNotFound счётчик слота ещё не создан
	ErrLedgerNotFound = storage.ErrLedgerNotFound

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
