package create_booking

import "errors"

var (
	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrDuplicateBooking возвращается, когда бронирование с таким ID уже существует
	ErrDuplicateBooking = errors.New("create_booking: booking already exists")

	// ErrTransient возвращается, когда хранилище не смогло завершить транзакцию; запрос можно повторить
	ErrTransient = errors.New("create_booking: store is temporarily unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// Значения метки result для метрики booking_submissions_total
const (
	resultCreated  = "created"
	resultSlotFull = "slot_full"
	resultInvalid  = "invalid"
	resultError    = "error"
)
