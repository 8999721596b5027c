package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// UseCase use case для получения свободных слотов на дату
// Результат носит рекомендательный характер: окончательное решение принимает транзакция бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	window       domain.BookingWindow
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	window domain.BookingWindow,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		window:       window,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute возвращает свободные времена начала на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: date=%s", req.Date)

	// 1. Валидация входных данных
	date, err := validateDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	day := date.Format(domain.DateFormat)

	// 2. Свободные времена
	times, err := uc.freeTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: %d free slots on %s", len(times), day)

	return &Response{
		Date:  day,
		Times: times,
	}, nil
}

// Check отвечает, свободно ли конкретное время на дату
func (uc *UseCase) Check(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	date, err := validateDate(req.Date)
	if err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}
	t, err := validateTime(req.Time)
	if err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	times, err := uc.freeTimes(ctx, date)
	if err != nil {
		return nil, err
	}

	return &CheckResponse{
		Date:      date.Format(domain.DateFormat),
		Time:      t,
		Available: domain.ContainsTime(times, t),
	}, nil
}

func (uc *UseCase) freeTimes(ctx context.Context, date time.Time) ([]types.TimeString, error) {
	now := uc.timeProvider.Now()
	day := date.Format(domain.DateFormat)

	// При включённом окне прошедшие даты не содержат слотов, хранилище не трогаем
	if uc.window.IsPast(date, now) {
		return []types.TimeString{}, nil
	}

	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	candidates := domain.SlotsForDate(settings.Hours(), date, now, uc.window)
	if len(candidates) == 0 {
		return candidates, nil
	}

	bookings, err := uc.bookingRepo.ListByDate(ctx, day)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list bookings for %s: %v", day, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	return freeTimes(day, candidates, takenKeys(bookings)), nil
}

// loadSettings возвращает настройки с дефолтами; отсутствие документа не ошибка
func (uc *UseCase) loadSettings(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			uc.logger.Info("GetAvailableSlots: settings not found, using defaults")
			return domain.DefaultShopSettings(), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return settings.WithDefaults(), nil
}
