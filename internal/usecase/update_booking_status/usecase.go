package update_booking_status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// UseCase смена статуса бронирования администратором
// Счётчики слотов не изменяются: место, занятое при создании, не освобождается
type UseCase struct {
	bookingRepo  BookingRepository
	publisher    EventPublisher
	adminEmail   string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, publisher EventPublisher, adminEmail string, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		publisher:    publisher,
		adminEmail:   strings.TrimSpace(adminEmail),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateBookingStatus: booking=%s, status=%s", req.BookingID, req.Status)

	// 1. Проверяем, что вызывающий администратор
	if !uc.isAdmin(req.CallerEmail) {
		uc.logger.Warn("UpdateBookingStatus: caller %q is not admin", req.CallerEmail)
		return nil, ErrForbidden
	}

	// 2. Валидация входных данных
	update, err := uc.buildUpdate(req)
	if err != nil {
		uc.logger.Warn("UpdateBookingStatus: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем новый статус
	booking, err := uc.bookingRepo.UpdateStatus(ctx, update)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			uc.logger.Warn("UpdateBookingStatus: booking id=%s not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("UpdateBookingStatus: failed to update booking id=%s: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
	}

	uc.logger.Info("UpdateBookingStatus: booking id=%s is now %s", booking.ID, booking.Status)

	if uc.publisher != nil {
		uc.publisher.Publish(domain.BookingEvent{
			Type:      domain.EventBookingStatusChanged,
			BookingID: booking.ID,
			Slot:      booking.SlotKey(),
			Status:    booking.Status,
			At:        update.ReviewedAt,
		})
	}

	return &Response{Booking: booking}, nil
}

func (uc *UseCase) isAdmin(email string) bool {
	email = strings.TrimSpace(email)
	return uc.adminEmail != "" && email != "" && strings.EqualFold(email, uc.adminEmail)
}

func (uc *UseCase) buildUpdate(req *Request) (domain.StatusUpdate, error) {
	id := strings.TrimSpace(req.BookingID)
	if id == "" {
		return domain.StatusUpdate{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("bookingId", "is required"))
	}

	status, err := domain.ParseBookingStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return domain.StatusUpdate{}, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("status", err.Error()))
	}

	if utf8.RuneCountInString(ptr.Value(req.Note)) > domain.MaxAdminNoteLength {
		return domain.StatusUpdate{}, fmt.Errorf("%w: %w", ErrInvalidInput,
			domain.NewValidationError("note", fmt.Sprintf("must be at most %d characters", domain.MaxAdminNoteLength)))
	}

	return domain.StatusUpdate{
		BookingID:  id,
		Status:     status,
		AdminNote:  req.Note,
		ReviewedAt: uc.timeProvider.Now(),
	}, nil
}
