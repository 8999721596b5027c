package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Response модели

// BookingResponse бронирование в ответах API
type BookingResponse struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Service    string     `json:"service"`
	Date       string     `json:"date"`
	Time       string     `json:"time"`
	SlotID     string     `json:"slotId"`
	Notes      string     `json:"notes,omitempty"`
	Deposit    float64    `json:"deposit"`
	SlipURL    string     `json:"slipUrl"`
	Status     string     `json:"status"`
	AdminNote  *string    `json:"adminNote,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Date     string             `json:"date,omitempty"`
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// BookedTimesResponse занятые времена на дату
type BookedTimesResponse struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:         b.ID,
		Name:       b.Name,
		Phone:      b.Phone,
		Service:    b.Service,
		Date:       b.Date,
		Time:       b.Time.String(),
		SlotID:     b.SlotKey().String(),
		Notes:      b.Notes,
		Deposit:    b.Deposit,
		SlipURL:    b.SlipURL,
		Status:     string(b.Status),
		AdminNote:  b.AdminNote,
		ReviewedAt: b.ReviewedAt,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(date string, bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		result = append(result, FromDomainBooking(b))
	}

	return &BookingListResponse{
		Date:     date,
		Bookings: result,
		Total:    len(result),
	}
}
