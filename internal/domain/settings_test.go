package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestParseOpeningHours(t *testing.T) {
	for _, raw := range []string{"09:30-18:30", "09:30–18:30", " 09:30 — 18:30 "} {
		hours, err := ParseOpeningHours(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, OpeningHours{Open: "09:30", Close: "18:30"}, hours, raw)
	}

	for _, raw := range []string{"", "9-18", "18:00-09:00", "10:00-10:00", "always"} {
		_, err := ParseOpeningHours(raw)
		assert.Error(t, err, raw)
	}
}

func TestShopSettings_Hours_FallsBack(t *testing.T) {
	s := &ShopSettings{OpenHours: "whenever"}
	assert.Equal(t, DefaultOpeningHours(), s.Hours())

	var missing *ShopSettings
	assert.Equal(t, DefaultOpeningHours(), missing.Hours())
}

func TestShopSettings_WithDefaults(t *testing.T) {
	s := &ShopSettings{ShopName: "Mali", OpenHours: "bad", Services: []string{" ", ""}}

	got := s.WithDefaults()

	assert.Equal(t, "Mali", got.ShopName)
	assert.Equal(t, "09:00-20:00", got.OpenHours)
	assert.Equal(t, DefaultServices, got.Services)
	assert.Equal(t, DefaultDeposit, got.Deposit)
	assert.Equal(t, "bad", s.OpenHours, "original must not change")
}

func TestShopSettings_HasService(t *testing.T) {
	s := &ShopSettings{Services: []string{"Cut", "Color"}}
	assert.True(t, s.HasService(" Cut "))
	assert.False(t, s.HasService("ทำสี"))

	empty := &ShopSettings{}
	assert.True(t, empty.HasService("ทำสี"))
}

func TestShopSettings_Apply(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	s := DefaultShopSettings()

	s.Apply(ShopSettingsPatch{
		ShopName: ptr.Ptr(" Mali Hair "),
		Deposit:  ptr.Ptr(300.0),
		Services: []string{"Cut"},
	}, now)

	assert.Equal(t, "Mali Hair", s.ShopName)
	assert.Equal(t, 300.0, s.Deposit)
	assert.Equal(t, []string{"Cut"}, s.Services)
	assert.Equal(t, "09:00-20:00", s.OpenHours)
	assert.Equal(t, now, s.UpdatedAt)
}
