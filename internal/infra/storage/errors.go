package storage

import "errors"

// Ошибки, общие для всех реализаций хранилища (postgres, firestore, memory)
// Use case'ы сравнивают с ними через errors.Is и не знают о конкретном бэкенде
var (
	// ErrBookingNotFound бронирование не найдено
	ErrBookingNotFound = errors.New("storage: booking not found")

	// ErrBookingExists бронирование с таким ID уже существует
	ErrBookingExists = errors.New("storage: booking already exists")

	// ErrLedgerNotFound счётчик слота ещё не создан
	ErrLedgerNotFound = errors.New("storage: slot ledger not found")

	// ErrSettingsNotFound настройки магазина ещё не сохранялись
	ErrSettingsNotFound = errors.New("storage: settings not found")

	// ErrTransient временная ошибка хранилища, операцию можно повторить целиком
	ErrTransient = errors.New("storage: transient failure")
)
