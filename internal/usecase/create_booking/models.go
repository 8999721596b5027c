package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Config параметры бронирования из конфигурации сервиса
type Config struct {
	SlotCapacity int                  // Сколько бронирований помещается в один слот
	Window       domain.BookingWindow // Ограничение по прошедшим датам и минимальному сроку; по умолчанию выключено
}

// Request модель запроса на создание бронирования
type Request struct {
	Name    string  // Имя клиента
	Phone   string  // Телефон клиента
	Service string  // Название услуги из каталога
	Date    string  // Дата в формате YYYY-MM-DD
	Time    string  // Время начала слота (например, "10:00")
	Notes   string  // Комментарий клиента (опционально)
	SlipURL string  // Ссылка на загруженный чек об оплате
	Deposit float64 // Сумма депозита; 0 означает сумму из настроек
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        string
	Slot      domain.SlotKey
	Status    domain.BookingStatus
	Deposit   float64
	CreatedAt time.Time
}
