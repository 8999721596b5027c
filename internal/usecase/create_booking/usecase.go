package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

// UseCase use case для создания бронирования
// Счётчик слота и запись бронирования меняются в одной транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	config       Config
	timeProvider TimeProvider
	newID        func() string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// publisher и metrics могут быть nil
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	config Config,
	logger Logger,
) *UseCase {
	if config.SlotCapacity < domain.MinSlotCapacity {
		config.SlotCapacity = domain.DefaultSlotCapacity
	}
	if config.Window.MinNoticeMinutes < 0 {
		config.Window.MinNoticeMinutes = domain.DefaultMinNoticeMinutes
	}

	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		config:       config,
		timeProvider: &RealTimeProvider{},
		newID:        uuid.NewString,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, time=%s, service=%q", req.Date, req.Time, req.Service)

	resp, err := uc.execute(ctx, req)
	uc.record(err)
	return resp, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	v, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки магазина
	settings, err := uc.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	// 4. Проверяем время по сетке слотов и услугу по каталогу
	if err := validateAgainstSettings(v, settings, now, uc.config.Window); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	deposit := req.Deposit
	if deposit == 0 {
		deposit = settings.Deposit
	}

	// 5. ID выделяется до транзакции и не меняется при повторах тела
	booking := &domain.Booking{
		ID:        uc.newID(),
		Name:      v.name,
		Phone:     v.phone,
		Service:   v.service,
		Date:      v.key.Date,
		Time:      v.key.Time,
		Notes:     v.notes,
		Deposit:   deposit,
		SlipURL:   v.slipURL,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// 6. Занимаем место в слоте и создаём бронирование атомарно
	err = uc.txManager.WithSlotTransaction(ctx, v.key.String(), func(txCtx context.Context) error {
		// 6.1. Читаем счётчик; отсутствие означает пустой слот
		ledger, err := uc.slotRepo.Get(txCtx, v.key)
		if err != nil {
			if !errors.Is(err, storage.ErrLedgerNotFound) {
				return fmt.Errorf("%w: failed to read slot %s: %w", ErrInternal, v.key, err)
			}
			ledger = domain.NewSlotLedger(v.key, uc.config.SlotCapacity, now)
		}

		// 6.2. Проверяем вместимость
		if !ledger.Occupy(uc.config.SlotCapacity, now) {
			uc.logger.Warn("CreateBooking: slot %s is full, %d/%d taken",
				v.key, ledger.Occupied, uc.config.SlotCapacity)
			return ErrSlotFull
		}

		// 6.3. Записываем счётчик и бронирование
		if err := uc.slotRepo.Save(txCtx, ledger); err != nil {
			return fmt.Errorf("%w: failed to save slot %s: %w", ErrInternal, v.key, err)
		}
		if err := uc.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, uc.mapTxError(booking, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%s for slot %s", booking.ID, v.key)

	if uc.publisher != nil {
		uc.publisher.Publish(domain.BookingEvent{
			Type:      domain.EventBookingCreated,
			BookingID: booking.ID,
			Slot:      v.key,
			Status:    booking.Status,
			At:        now,
		})
	}

	return &Response{
		ID:        booking.ID,
		Slot:      v.key,
		Status:    booking.Status,
		Deposit:   booking.Deposit,
		CreatedAt: booking.CreatedAt,
	}, nil
}

// mapTxError переводит ошибку транзакции в ошибки use case
func (uc *UseCase) mapTxError(booking *domain.Booking, err error) error {
	switch {
	case errors.Is(err, ErrSlotFull):
		return ErrSlotFull
	case errors.Is(err, storage.ErrBookingExists):
		uc.logger.Error("CreateBooking: booking id=%s already exists", booking.ID)
		return ErrDuplicateBooking
	case errors.Is(err, storage.ErrTransient):
		uc.logger.Warn("CreateBooking: slot transaction for %s gave up: %v", booking.SlotKey(), err)
		return fmt.Errorf("%w: %v", ErrTransient, err)
	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	default:
		uc.logger.Error("CreateBooking: slot transaction failed: %v", err)
		return fmt.Errorf("%w: slot transaction failed: %v", ErrInternal, err)
	}
}

// loadSettings возвращает настройки с дефолтами; отсутствие документа не ошибка
func (uc *UseCase) loadSettings(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			return domain.DefaultShopSettings(), nil
		}
		uc.logger.Error("CreateBooking: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	return settings.WithDefaults(), nil
}

func (uc *UseCase) record(err error) {
	if uc.metrics == nil {
		return
	}

	result := resultCreated
	switch {
	case err == nil:
	case errors.Is(err, ErrSlotFull):
		result = resultSlotFull
	case errors.Is(err, ErrInvalidInput):
		result = resultInvalid
	default:
		result = resultError
	}
	uc.metrics.RecordBookingSubmission(result)
}
