package settings

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
)

type fakeRow struct {
	values []interface{}
	err    error
}

func (r fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case sql.Scanner:
			if err := p.Scan(r.values[i]); err != nil {
				return err
			}
		case *string:
			*p = r.values[i].(string)
		case *float64:
			*p = r.values[i].(float64)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

type fakeExecutor struct {
	dbmetrics.DBExecutor
	query string
	args  []interface{}
	err   error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.query = query
	f.args = args
	return nil, f.err
}

func sampleSettings() *domain.ShopSettings {
	return &domain.ShopSettings{
		ShopName:        "Salon Nok",
		OpenHours:       "09:30–18:30",
		PromptPayNumber: "0812345678",
		PromptPayNote:   "โอนแล้วแนบสลิป",
		Deposit:         300,
		Services:        []string{"ตัดผม", "ทำสี, ยืด", `say "hi"`},
		LogoURL:         "https://cdn/logo.png",
		QRURL:           "https://cdn/qr.png",
		UpdatedAt:       time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestSave_UpsertsGlobalRow(t *testing.T) {
	exec := &fakeExecutor{}
	repo := NewRepository(exec)

	require.NoError(t, repo.Save(context.Background(), sampleSettings()))

	assert.Contains(t, exec.query, "INSERT INTO shop_settings")
	assert.Contains(t, exec.query, "ON CONFLICT (id) DO UPDATE SET")
	assert.Contains(t, exec.query, "services = EXCLUDED.services")
	require.Len(t, exec.args, 10)
	assert.Equal(t, "global", exec.args[0])
}

func TestSave_ExecError(t *testing.T) {
	repo := NewRepository(&fakeExecutor{err: errors.New("connection reset")})

	err := repo.Save(context.Background(), sampleSettings())

	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestServicesArrayRoundTrip(t *testing.T) {
	want := sampleSettings()

	_, args, err := upsertSettingsQuery(want)
	require.NoError(t, err)

	valuer, ok := args[6].(driver.Valuer)
	require.True(t, ok, "services must be sent as a postgres array")
	encoded, err := valuer.Value()
	require.NoError(t, err)

	row := fakeRow{values: []interface{}{
		want.ShopName,
		want.OpenHours,
		want.PromptPayNumber,
		want.PromptPayNote,
		want.Deposit,
		[]byte(encoded.(string)),
		want.LogoURL,
		want.QRURL,
		want.UpdatedAt,
	}}

	got, err := scanSettings(row)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestScanSettings_NoRowsIsNotFound(t *testing.T) {
	_, err := scanSettings(fakeRow{err: sql.ErrNoRows})

	assert.ErrorIs(t, err, storage.ErrSettingsNotFound)
}
