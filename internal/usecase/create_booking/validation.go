package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validatedRequest нормализованные поля запроса
type validatedRequest struct {
	name    string
	phone   string
	service string
	date    time.Time
	key     domain.SlotKey
	notes   string
	slipURL string
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(field, reason))
}

// validateRequest проверяет обязательные поля и форматы
// Ошибка указывает на первое некорректное поле в порядке name, phone, service, date, time, slipUrl
func validateRequest(req *Request) (*validatedRequest, error) {
	v := &validatedRequest{
		name:    strings.TrimSpace(req.Name),
		phone:   strings.TrimSpace(req.Phone),
		service: strings.TrimSpace(req.Service),
		notes:   strings.TrimSpace(req.Notes),
		slipURL: strings.TrimSpace(req.SlipURL),
	}

	if v.name == "" {
		return nil, invalid("name", "is required")
	}
	if utf8.RuneCountInString(v.name) > domain.MaxNameLength {
		return nil, invalid("name", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}

	if v.phone == "" {
		return nil, invalid("phone", "is required")
	}
	if utf8.RuneCountInString(v.phone) > domain.MaxPhoneLength {
		return nil, invalid("phone", fmt.Sprintf("must be at most %d characters", domain.MaxPhoneLength))
	}

	if v.service == "" {
		return nil, invalid("service", "is required")
	}

	rawDate := strings.TrimSpace(req.Date)
	if rawDate == "" {
		return nil, invalid("date", "is required")
	}
	date, err := time.Parse(domain.DateFormat, rawDate)
	if err != nil {
		return nil, invalid("date", "must be YYYY-MM-DD")
	}
	v.date = date

	rawTime := strings.TrimSpace(req.Time)
	if rawTime == "" {
		return nil, invalid("time", "is required")
	}
	clock, err := types.NewTimeStringFromString(rawTime)
	if err != nil {
		return nil, invalid("time", "must be HH:MM")
	}
	v.key = domain.SlotKey{Date: date.Format(domain.DateFormat), Time: clock}

	if v.slipURL == "" {
		return nil, invalid("slipUrl", "is required")
	}

	if utf8.RuneCountInString(v.notes) > domain.MaxNotesLength {
		return nil, invalid("notes", fmt.Sprintf("must be at most %d characters", domain.MaxNotesLength))
	}

	if req.Deposit < 0 {
		return nil, invalid("deposit", "must not be negative")
	}

	return v, nil
}

// validateAgainstSettings проверяет время по сетке слотов и услугу по каталогу
// Прошедшие даты отклоняются только при включённом окне бронирования
func validateAgainstSettings(v *validatedRequest, settings *domain.ShopSettings, now time.Time, window domain.BookingWindow) error {
	if window.IsPast(v.date, now) {
		return invalid("date", "is in the past")
	}

	slots := domain.SlotsForDate(settings.Hours(), v.date, now, window)
	if !domain.ContainsTime(slots, v.key.Time) {
		return invalid("time", fmt.Sprintf("%s is not a bookable slot on %s", v.key.Time, v.key.Date))
	}

	if !settings.HasService(v.service) {
		return invalid("service", fmt.Sprintf("unknown service %q", v.service))
	}

	return nil
}
