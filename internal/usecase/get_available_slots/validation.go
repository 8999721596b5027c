package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// validateDate проверяет и парсит дату запроса
func validateDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "is required"))
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "must be YYYY-MM-DD"))
	}

	return date, nil
}

// validateTime проверяет и парсит время слота
func validateTime(raw string) (types.TimeString, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("time", "is required"))
	}

	t, err := types.NewTimeStringFromString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("time", "must be HH:MM"))
	}

	return t, nil
}
