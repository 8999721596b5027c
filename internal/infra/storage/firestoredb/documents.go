package firestoredb

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Имена коллекций совпадают с теми, что уже лежат в проекте Firebase
const (
	collectionBookings = "bookings"
	collectionSlots    = "slots"
	collectionSettings = "settings"
	settingsDocID      = "global"
)

type bookingDoc struct {
	Name       string     `firestore:"name"`
	Phone      string     `firestore:"phone"`
	Service    string     `firestore:"service"`
	Date       string     `firestore:"date"`
	Time       string     `firestore:"time"`
	Notes      string     `firestore:"notes"`
	Deposit    float64    `firestore:"deposit"`
	SlipURL    string     `firestore:"slipUrl"`
	Status     string     `firestore:"status"`
	SlotID     string     `firestore:"slotId"`
	AdminNote  *string    `firestore:"adminNote,omitempty"`
	ReviewedAt *time.Time `firestore:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `firestore:"createdAt"`
	UpdatedAt  time.Time  `firestore:"updatedAt"`
}

func toBookingDoc(b *domain.Booking) bookingDoc {
	return bookingDoc{
		Name:       b.Name,
		Phone:      b.Phone,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time.String(),
		Notes:      b.Notes,
		Deposit:    b.Deposit,
		SlipURL:    b.SlipURL,
		Status:     string(b.Status),
		SlotID:     b.SlotKey().String(),
		AdminNote:  b.AdminNote,
		ReviewedAt: b.ReviewedAt,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (d bookingDoc) toDomain(id string) *domain.Booking {
	status := domain.BookingStatus(d.Status)
	if d.Status == "" {
		status = domain.StatusPending
	}
	return &domain.Booking{
		ID:         id,
		Name:       d.Name,
		Phone:      d.Phone,
		Service:    d.Service,
		Date:       d.Date,
		Time:       types.TimeString(d.Time),
		Notes:      d.Notes,
		Deposit:    d.Deposit,
		SlipURL:    d.SlipURL,
		Status:     status,
		AdminNote:  d.AdminNote,
		ReviewedAt: d.ReviewedAt,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

// slotDoc поле booked сохранено под старым именем для совместимости с существующими данными
type slotDoc struct {
	Date      string    `firestore:"date"`
	Time      string    `firestore:"time"`
	Capacity  int       `firestore:"capacity"`
	Booked    int       `firestore:"booked"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func toSlotDoc(l *domain.SlotLedger) slotDoc {
	return slotDoc{
		Date:      l.Key.Date,
		Time:      l.Key.Time.String(),
		Capacity:  l.Capacity,
		Booked:    l.Occupied,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func (d slotDoc) toDomain(key domain.SlotKey) *domain.SlotLedger {
	return &domain.SlotLedger{
		Key:       key,
		Capacity:  d.Capacity,
		Occupied:  d.Booked,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type settingsDoc struct {
	ShopName        string    `firestore:"shopName"`
	OpenHours       string    `firestore:"openHours"`
	PromptPayNumber string    `firestore:"promptpayNumber"`
	PromptPayNote   string    `firestore:"promptpayNote"`
	Deposit         float64   `firestore:"deposit"`
	Services        []string  `firestore:"services"`
	LogoURL         string    `firestore:"logoUrl"`
	QRURL           string    `firestore:"qrUrl"`
	UpdatedAt       time.Time `firestore:"updatedAt"`
}

func toSettingsDoc(s *domain.ShopSettings) settingsDoc {
	return settingsDoc{
		ShopName:        s.ShopName,
		OpenHours:       s.OpenHours,
		PromptPayNumber: s.PromptPayNumber,
		PromptPayNote:   s.PromptPayNote,
		Deposit:         s.Deposit,
		Services:        s.Services,
		LogoURL:         s.LogoURL,
		QRURL:           s.QRURL,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (d settingsDoc) toDomain() *domain.ShopSettings {
	return &domain.ShopSettings{
		ShopName:        d.ShopName,
		OpenHours:       d.OpenHours,
		PromptPayNumber: d.PromptPayNumber,
		PromptPayNote:   d.PromptPayNote,
		Deposit:         d.Deposit,
		Services:        d.Services,
		LogoURL:         d.LogoURL,
		QRURL:           d.QRURL,
		UpdatedAt:       d.UpdatedAt,
	}
}
