package models

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модели

// UpdateSettingsRequest частичное обновление настроек
// Все поля опциональны - обновляются только переданные значения
type UpdateSettingsRequest struct {
	ShopName        *string  `json:"shopName,omitempty"`
	OpenHours       *string  `json:"openHours,omitempty"`
	PromptPayNumber *string  `json:"promptpayNumber,omitempty"`
	PromptPayNote   *string  `json:"promptpayNote,omitempty"`
	Deposit         *float64 `json:"deposit,omitempty"`
	Services        []string `json:"services,omitempty"`
	LogoURL         *string  `json:"logoUrl,omitempty"`
	QRURL           *string  `json:"qrUrl,omitempty"`
}

// ToDomainPatch конвертирует запрос в domain.ShopSettingsPatch
func (r *UpdateSettingsRequest) ToDomainPatch() domain.ShopSettingsPatch {
	return domain.ShopSettingsPatch{
		ShopName:        r.ShopName,
		OpenHours:       r.OpenHours,
		PromptPayNumber: r.PromptPayNumber,
		PromptPayNote:   r.PromptPayNote,
		Deposit:         r.Deposit,
		Services:        r.Services,
		LogoURL:         r.LogoURL,
		QRURL:           r.QRURL,
	}
}

// Response модели

// SettingsResponse настройки магазина для клиента и администратора
type SettingsResponse struct {
	ShopName        string     `json:"shopName"`
	OpenHours       string     `json:"openHours"`
	PromptPayNumber string     `json:"promptpayNumber,omitempty"`
	PromptPayNote   string     `json:"promptpayNote,omitempty"`
	Deposit         float64    `json:"deposit"`
	Services        []string   `json:"services"`
	LogoURL         string     `json:"logoUrl,omitempty"`
	QRURL           string     `json:"qrUrl,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainSettings конвертирует domain.ShopSettings в SettingsResponse
func FromDomainSettings(s *domain.ShopSettings) *SettingsResponse {
	resp := &SettingsResponse{
		ShopName:        s.ShopName,
		OpenHours:       s.OpenHours,
		PromptPayNumber: s.PromptPayNumber,
		PromptPayNote:   s.PromptPayNote,
		Deposit:         s.Deposit,
		Services:        s.Services,
		LogoURL:         s.LogoURL,
		QRURL:           s.QRURL,
	}
	if !s.UpdatedAt.IsZero() {
		updatedAt := s.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}
