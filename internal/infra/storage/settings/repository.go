package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	tableSettings = "shop_settings"
	globalID      = "global"
)

// Repository единственная запись настроек магазина в PostgreSQL
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// rowScanner *sql.Row или его подмена в тестах
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// Get читает настройки; ErrSettingsNotFound если их ещё нет
func (r *Repository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"shop_name",
		"open_hours",
		"promptpay_number",
		"promptpay_note",
		"deposit",
		"services",
		"logo_url",
		"qr_url",
		"updated_at",
	).
		From(tableSettings).
		Where(squirrel.Eq{"id": globalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	settings, err := scanSettings(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, ErrSettingsNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Get - scan settings: %w", ErrScanRow, err)
	}

	return settings, nil
}

// Save полностью перезаписывает настройки
func (r *Repository) Save(ctx context.Context, settings *domain.ShopSettings) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := upsertSettingsQuery(settings)
	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %w", ErrExecQuery, err)
	}

	return nil
}

func upsertSettingsQuery(settings *domain.ShopSettings) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableSettings).
		Columns(
			"id",
			"shop_name",
			"open_hours",
			"promptpay_number",
			"promptpay_note",
			"deposit",
			"services",
			"logo_url",
			"qr_url",
			"updated_at",
		).
		Values(
			globalID,
			settings.ShopName,
			settings.OpenHours,
			settings.PromptPayNumber,
			settings.PromptPayNote,
			settings.Deposit,
			pq.Array(settings.Services),
			settings.LogoURL,
			settings.QRURL,
			settings.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			shop_name = EXCLUDED.shop_name,
			open_hours = EXCLUDED.open_hours,
			promptpay_number = EXCLUDED.promptpay_number,
			promptpay_note = EXCLUDED.promptpay_note,
			deposit = EXCLUDED.deposit,
			services = EXCLUDED.services,
			logo_url = EXCLUDED.logo_url,
			qr_url = EXCLUDED.qr_url,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
}

func scanSettings(row rowScanner) (*domain.ShopSettings, error) {
	var settings domain.ShopSettings
	err := row.Scan(
		&settings.ShopName,
		&settings.OpenHours,
		&settings.PromptPayNumber,
		&settings.PromptPayNote,
		&settings.Deposit,
		pq.Array(&settings.Services),
		&settings.LogoURL,
		&settings.QRURL,
		&settings.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
