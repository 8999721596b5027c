package get_available_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// takenKeys собирает ключи слотов, занятых активными бронированиями
// Отклонённые и отменённые бронирования слот не занимают
func takenKeys(bookings []*domain.Booking) map[domain.SlotKey]struct{} {
	taken := make(map[domain.SlotKey]struct{}, len(bookings))
	for _, booking := range bookings {
		if booking.IsActive() {
			taken[booking.SlotKey()] = struct{}{}
		}
	}
	return taken
}

// freeTimes вычитает занятые ключи из кандидатов, сохраняя порядок
func freeTimes(date string, candidates []types.TimeString, taken map[domain.SlotKey]struct{}) []types.TimeString {
	result := make([]types.TimeString, 0, len(candidates))
	for _, t := range candidates {
		if _, ok := taken[domain.SlotKey{Date: date, Time: t}]; ok {
			continue
		}
		result = append(result, t)
	}
	return result
}
