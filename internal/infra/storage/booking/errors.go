package booking

import (
	"errors"

	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = storage.ErrBookingNotFound

	// ErrBookingExists возвращается при повторной вставке бронирования с тем же ID
	ErrBookingExists = storage.ErrBookingExists

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
