package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/service/bookings/models"
)

// Service сервис для чтения и удаления бронирований
type Service struct {
	bookingRepo BookingRepository
	publisher   EventPublisher
	clock       TimeProvider
	logger      Logger
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса бронирований
// publisher может быть nil
func NewService(bookingRepo BookingRepository, publisher EventPublisher, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		publisher:   publisher,
		clock:       realClock{},
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s", id)

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("bookingId", "is required"))
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// ListByDate получает все бронирования на дату, отсортированные по времени
func (s *Service) ListByDate(ctx context.Context, date string) (*models.BookingListResponse, error) {
	s.logger.Info("ListByDate: fetching bookings for date=%s", date)

	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, day)
	if err != nil {
		s.logger.Error("ListByDate: repository error for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: ListByDate - repository error: %v", ErrInternal, err)
	}

	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].Time < bookings[j].Time
	})

	s.logger.Info("ListByDate: fetched %d bookings for date=%s", len(bookings), day)
	return models.FromDomainBookingList(day, bookings), nil
}

// BookedTimes возвращает времена, на которые есть бронирования (любой статус)
func (s *Service) BookedTimes(ctx context.Context, date string) (*models.BookedTimesResponse, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByDate(ctx, day)
	if err != nil {
		s.logger.Error("BookedTimes: repository error for date=%s: %v", day, err)
		return nil, fmt.Errorf("%w: BookedTimes - repository error: %v", ErrInternal, err)
	}

	seen := make(map[string]struct{}, len(bookings))
	times := make([]string, 0, len(bookings))
	for _, b := range bookings {
		t := b.Time.String()
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}
	sort.Strings(times)

	return &models.BookedTimesResponse{Date: day, Times: times}, nil
}

// Delete удаляет бронирование
// Счётчик слота не уменьшается
func (s *Service) Delete(ctx context.Context, id string) error {
	s.logger.Info("Delete: deleting booking id=%s", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%s not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: failed to delete booking id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if s.publisher != nil {
		s.publisher.Publish(domain.BookingEvent{
			Type:      domain.EventBookingDeleted,
			BookingID: booking.ID,
			Slot:      booking.SlotKey(),
			Status:    booking.Status,
			At:        s.clock.Now(),
		})
	}

	s.logger.Info("Delete: booking id=%s deleted", id)
	return nil
}

func parseDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "is required"))
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("date", "must be YYYY-MM-DD"))
	}
	return date.Format(domain.DateFormat), nil
}
