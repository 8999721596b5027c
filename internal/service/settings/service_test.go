package settings

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func TestService_GetDefaults(t *testing.T) {
	svc := NewService(memory.NewSettingsRepository(memory.NewStore()), logger.NewNop())

	got, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultShopName, got.ShopName)
	assert.Equal(t, "09:00-20:00", got.OpenHours)
	assert.Equal(t, domain.DefaultDeposit, got.Deposit)
	assert.Equal(t, domain.DefaultServices, got.Services)
	assert.Nil(t, got.UpdatedAt)
}

func TestService_UpdatePatch(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(memory.NewSettingsRepository(store), logger.NewNop())
	ctx := context.Background()

	_, err := svc.Update(ctx, &models.UpdateSettingsRequest{
		ShopName:  ptr.Ptr("Mali Hair"),
		OpenHours: ptr.Ptr("10:00–18:00"),
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, &models.UpdateSettingsRequest{Deposit: ptr.Ptr(300.0)})
	require.NoError(t, err)

	assert.Equal(t, "Mali Hair", got.ShopName)
	assert.Equal(t, "10:00–18:00", got.OpenHours)
	assert.Equal(t, 300.0, got.Deposit)
	assert.NotNil(t, got.UpdatedAt)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.OpeningHours{Open: "10:00", Close: "18:00"}, current.Hours())
}

func TestService_UpdateNilFieldsAreValid(t *testing.T) {
	svc := NewService(memory.NewSettingsRepository(memory.NewStore()), logger.NewNop())

	got, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDeposit, got.Deposit)
}

func TestService_UpdateValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   *models.UpdateSettingsRequest
		field string
	}{
		{name: "bad hours", req: &models.UpdateSettingsRequest{OpenHours: ptr.Ptr("20:00-09:00")}, field: "openHours"},
		{name: "negative deposit", req: &models.UpdateSettingsRequest{Deposit: ptr.Ptr(-5.0)}, field: "deposit"},
		{name: "empty service", req: &models.UpdateSettingsRequest{Services: []string{"Cut", " "}}, field: "services"},
		{name: "long shop name", req: &models.UpdateSettingsRequest{ShopName: ptr.Ptr(strings.Repeat("n", domain.MaxNameLength+1))}, field: "shopName"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(memory.NewSettingsRepository(memory.NewStore()), logger.NewNop())

			_, err := svc.Update(context.Background(), tt.req)

			require.ErrorIs(t, err, ErrInvalidInput)
			var vErr *domain.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
