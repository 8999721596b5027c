package update_booking_status

import "errors"

var (
	// ErrForbidden возвращается, когда вызывающий не является администратором
	ErrForbidden = errors.New("update_booking_status: caller is not the administrator")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking_status: booking not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking_status: internal error")
)
