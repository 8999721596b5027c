package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/reports/models"
)

// UnspecifiedService подпись для бронирований без услуги
const UnspecifiedService = "ไม่ระบุบริการ"

// Service отчёты для администратора
type Service struct {
	bookingRepo BookingRepository
	fontPath    string
	logger      Logger
}

// NewService создает новый экземпляр сервиса отчётов
// fontPath путь к TTF-шрифту с поддержкой тайского для PDF; пустая строка означает встроенный Helvetica
func NewService(bookingRepo BookingRepository, fontPath string, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		fontPath:    fontPath,
		logger:      logger,
	}
}

// Monthly строит сводку за месяц в формате YYYY-MM
func (s *Service) Monthly(ctx context.Context, month string) (*models.MonthlyReport, error) {
	s.logger.Info("Monthly: building report for month=%s", month)

	start, err := time.Parse(domain.MonthFormat, strings.TrimSpace(month))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError("month", "must be YYYY-MM"))
	}
	end := start.AddDate(0, 1, -1)

	from, to := start.Format(domain.DateFormat), end.Format(domain.DateFormat)
	bookings, err := s.bookingRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		s.logger.Error("Monthly: repository error for %s..%s: %v", from, to, err)
		return nil, fmt.Errorf("%w: Monthly - repository error: %v", ErrInternal, err)
	}

	report := summarize(bookings)
	report.Month = start.Format(domain.MonthFormat)
	report.From = from
	report.To = to

	s.logger.Info("Monthly: %d bookings in %s", report.Total, report.Month)
	return report, nil
}

func summarize(bookings []*domain.Booking) *models.MonthlyReport {
	report := &models.MonthlyReport{Total: len(bookings)}
	byService := make(map[string]*models.ServiceTotals)

	for _, b := range bookings {
		switch b.Status {
		case domain.StatusPending:
			report.ByStatus.Pending++
		case domain.StatusConfirmed:
			report.ByStatus.Confirmed++
		case domain.StatusRejected:
			report.ByStatus.Rejected++
		case domain.StatusCancelled:
			report.ByStatus.Cancelled++
		default:
			report.ByStatus.Unknown++
		}

		report.DepositTotal += b.Deposit

		name := strings.TrimSpace(b.Service)
		if name == "" {
			name = UnspecifiedService
		}
		totals, ok := byService[name]
		if !ok {
			totals = &models.ServiceTotals{Service: name}
			byService[name] = totals
		}
		totals.Count++
		totals.Deposit += b.Deposit
	}

	report.ByService = make([]models.ServiceTotals, 0, len(byService))
	for _, totals := range byService {
		report.ByService = append(report.ByService, *totals)
	}
	sort.Slice(report.ByService, func(i, j int) bool {
		a, b := report.ByService[i], report.ByService[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Deposit != b.Deposit {
			return a.Deposit > b.Deposit
		}
		return a.Service < b.Service
	})

	return report
}
