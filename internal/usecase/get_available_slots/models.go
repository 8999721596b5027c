package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа со списком свободных времён
type Response struct {
	Date  string             // Дата, на которую запрашивались слоты
	Times []types.TimeString // Свободные времена начала в хронологическом порядке
}

// CheckRequest модель запроса на проверку одного слота
type CheckRequest struct {
	Date string
	Time string
}

// CheckResponse результат проверки одного слота
type CheckResponse struct {
	Date      string
	Time      types.TimeString
	Available bool
}
