package promptpay

import "errors"

var (
	// ErrInvalidTarget возвращается для номера, который не является телефоном, ID-картой или e-wallet
	ErrInvalidTarget = errors.New("promptpay: invalid target number")

	// ErrInvalidAmount возвращается для отрицательной суммы
	ErrInvalidAmount = errors.New("promptpay: invalid amount")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("promptpay client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("promptpay client: invalid response")
)
