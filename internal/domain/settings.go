package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ShopSettings is the singleton shop configuration edited by the admin
type ShopSettings struct {
	ShopName        string
	OpenHours       string // "09:30-18:30", en dash accepted
	PromptPayNumber string
	PromptPayNote   string
	Deposit         float64
	Services        []string
	LogoURL         string
	QRURL           string
	UpdatedAt       time.Time
}

// ShopSettingsPatch partial update of settings; nil fields are left untouched
type ShopSettingsPatch struct {
	ShopName        *string
	OpenHours       *string
	PromptPayNumber *string
	PromptPayNote   *string
	Deposit         *float64
	Services        []string
	LogoURL         *string
	QRURL           *string
}

// DefaultShopSettings returns the settings used when none are stored
func DefaultShopSettings() *ShopSettings {
	return &ShopSettings{
		ShopName:  DefaultShopName,
		OpenHours: DefaultOpenTime + "-" + DefaultCloseTime,
		Deposit:   DefaultDeposit,
		Services:  append([]string(nil), DefaultServices...),
	}
}

// WithDefaults returns a copy where empty fields are replaced by policy defaults
// Malformed hours and an empty catalog are not errors
func (s *ShopSettings) WithDefaults() *ShopSettings {
	if s == nil {
		return DefaultShopSettings()
	}

	result := *s
	result.Services = make([]string, 0, len(s.Services))
	for _, service := range s.Services {
		if trimmed := strings.TrimSpace(service); trimmed != "" {
			result.Services = append(result.Services, trimmed)
		}
	}
	if len(result.Services) == 0 {
		result.Services = append(result.Services, DefaultServices...)
	}
	if strings.TrimSpace(result.ShopName) == "" {
		result.ShopName = DefaultShopName
	}
	if result.Deposit <= 0 {
		result.Deposit = DefaultDeposit
	}
	if _, err := ParseOpeningHours(result.OpenHours); err != nil {
		result.OpenHours = DefaultOpeningHours().String()
	}
	return &result
}

// Hours returns parsed opening hours, falling back to 09:00-20:00
func (s *ShopSettings) Hours() OpeningHours {
	if s == nil {
		return DefaultOpeningHours()
	}
	hours, err := ParseOpeningHours(s.OpenHours)
	if err != nil {
		return DefaultOpeningHours()
	}
	return hours
}

// HasService checks the service against the catalog (defaults applied)
func (s *ShopSettings) HasService(name string) bool {
	name = strings.TrimSpace(name)
	for _, service := range s.WithDefaults().Services {
		if service == name {
			return true
		}
	}
	return false
}

// Apply merges a patch into the settings
func (s *ShopSettings) Apply(patch ShopSettingsPatch, now time.Time) {
	if patch.ShopName != nil {
		s.ShopName = strings.TrimSpace(*patch.ShopName)
	}
	if patch.OpenHours != nil {
		s.OpenHours = strings.TrimSpace(*patch.OpenHours)
	}
	if patch.PromptPayNumber != nil {
		s.PromptPayNumber = strings.TrimSpace(*patch.PromptPayNumber)
	}
	if patch.PromptPayNote != nil {
		s.PromptPayNote = *patch.PromptPayNote
	}
	if patch.Deposit != nil {
		s.Deposit = *patch.Deposit
	}
	if patch.Services != nil {
		s.Services = append([]string(nil), patch.Services...)
	}
	if patch.LogoURL != nil {
		s.LogoURL = *patch.LogoURL
	}
	if patch.QRURL != nil {
		s.QRURL = *patch.QRURL
	}
	s.UpdatedAt = now
}

// OpeningHours daily working interval [Open, Close)
type OpeningHours struct {
	Open  types.TimeString
	Close types.TimeString
}

// DefaultOpeningHours 09:00-20:00
func DefaultOpeningHours() OpeningHours {
	return OpeningHours{Open: DefaultOpenTime, Close: DefaultCloseTime}
}

var hoursSeparators = []string{"–", "—", "-"}

// ParseOpeningHours parses "HH:MM-HH:MM"; hyphen, en dash and em dash are accepted
func ParseOpeningHours(raw string) (OpeningHours, error) {
	raw = strings.TrimSpace(raw)
	for _, sep := range hoursSeparators {
		openRaw, closeRaw, ok := strings.Cut(raw, sep)
		if !ok {
			continue
		}

		open, err := types.NewTimeStringFromString(strings.TrimSpace(openRaw))
		if err != nil {
			return OpeningHours{}, err
		}
		closing, err := types.NewTimeStringFromString(strings.TrimSpace(closeRaw))
		if err != nil {
			return OpeningHours{}, err
		}
		if !open.IsBefore(closing) {
			return OpeningHours{}, fmt.Errorf("opening time %s is not before closing time %s", open, closing)
		}
		return OpeningHours{Open: open, Close: closing}, nil
	}
	return OpeningHours{}, fmt.Errorf("invalid opening hours %q", raw)
}

func (h OpeningHours) String() string {
	return h.Open.String() + "-" + h.Close.String()
}
