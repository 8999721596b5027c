package firestoredb

import (
	"context"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
)

const defaultMaxAttempts = 5

type txKey struct{}

func txFromContext(ctx context.Context) (*firestore.Transaction, bool) {
	tx, ok := ctx.Value(txKey{}).(*firestore.Transaction)
	return tx, ok
}

// TxManager транзакция слота поверх RunTransaction
// Firestore сам повторяет тело транзакции при конфликте на документе слота
type TxManager struct {
	client      *firestore.Client
	maxAttempts int
	onRetry     func()
}

// NewTxManager onRetry может быть nil
func NewTxManager(client *firestore.Client, maxAttempts int, onRetry func()) *TxManager {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &TxManager{client: client, maxAttempts: maxAttempts, onRetry: onRetry}
}

func (m *TxManager) WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	attempt := 0
	err := m.client.RunTransaction(ctx, func(txCtx context.Context, tx *firestore.Transaction) error {
		attempt++
		if attempt > 1 && m.onRetry != nil {
			m.onRetry()
		}
		return fn(context.WithValue(txCtx, txKey{}, tx))
	}, firestore.MaxAttempts(m.maxAttempts))

	return mapTxError(key, err)
}

// mapTxError ошибки тела транзакции (например, слот занят) возвращаются без изменений
func mapTxError(key string, err error) error {
	switch {
	case err == nil:
		return nil
	case isAlreadyExists(err):
		return fmt.Errorf("%w: slot %s: %v", storage.ErrBookingExists, key, err)
	case isTransient(err):
		return fmt.Errorf("%w: slot %s: %w", storage.ErrTransient, key, err)
	default:
		return err
	}
}

// BookingRepository коллекция bookings
type BookingRepository struct {
	client *firestore.Client
}

func NewBookingRepository(client *firestore.Client) *BookingRepository {
	return &BookingRepository{client: client}
}

func (r *BookingRepository) doc(id string) *firestore.DocumentRef {
	return r.client.Collection(collectionBookings).Doc(id)
}

// Create внутри транзакции слота пишет документ вместе со счётчиком
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	ref := r.doc(booking.ID)
	data := toBookingDoc(booking)

	if tx, ok := txFromContext(ctx); ok {
		if err := tx.Create(ref, data); err != nil {
			return fmt.Errorf("%w: Create: %w", ErrQuery, err)
		}
		return nil
	}

	if _, err := ref.Create(ctx, data); err != nil {
		if isAlreadyExists(err) {
			return storage.ErrBookingExists
		}
		return wrapQueryErr("Create", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	snap, err := r.doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, wrapQueryErr("GetByID", err)
	}

	var data bookingDoc
	if err := snap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("%w: GetByID %s: %w", ErrDecode, id, err)
	}
	return data.toDomain(snap.Ref.ID), nil
}

func (r *BookingRepository) ListByDate(ctx context.Context, date string) ([]*domain.Booking, error) {
	query := r.client.Collection(collectionBookings).Where("date", "==", date)
	return r.list(ctx, "ListByDate", query)
}

func (r *BookingRepository) ListByPeriod(ctx context.Context, from, to string) ([]*domain.Booking, error) {
	query := r.client.Collection(collectionBookings).
		Where("date", ">=", from).
		Where("date", "<=", to)
	return r.list(ctx, "ListByPeriod", query)
}

func (r *BookingRepository) list(ctx context.Context, op string, query firestore.Query) ([]*domain.Booking, error) {
	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, wrapQueryErr(op, err)
	}

	bookings := make([]*domain.Booking, 0, len(snaps))
	for _, snap := range snaps {
		var data bookingDoc
		if err := snap.DataTo(&data); err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrDecode, op, snap.Ref.ID, err)
		}
		bookings = append(bookings, data.toDomain(snap.Ref.ID))
	}

	// Сортируем в памяти: OrderBy по двум полям потребовал бы составной индекс
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		if bookings[i].Time != bookings[j].Time {
			return bookings[i].Time < bookings[j].Time
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Booking, error) {
	updates := []firestore.Update{
		{Path: "status", Value: string(update.Status)},
		{Path: "reviewedAt", Value: update.ReviewedAt},
		{Path: "updatedAt", Value: update.ReviewedAt},
	}
	if update.AdminNote != nil {
		updates = append(updates, firestore.Update{Path: "adminNote", Value: *update.AdminNote})
	}

	// Update без документа возвращает NotFound
	if _, err := r.doc(update.BookingID).Update(ctx, updates); err != nil {
		if isNotFound(err) {
			return nil, storage.ErrBookingNotFound
		}
		return nil, wrapQueryErr("UpdateStatus", err)
	}

	return r.GetByID(ctx, update.BookingID)
}

func (r *BookingRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return storage.ErrBookingNotFound
		}
		return wrapQueryErr("Delete", err)
	}
	return nil
}

// SlotRepository коллекция slots, документ на каждый ключ date_time
type SlotRepository struct {
	client *firestore.Client
}

func NewSlotRepository(client *firestore.Client) *SlotRepository {
	return &SlotRepository{client: client}
}

// Get в транзакции читает документ через tx, чтобы Firestore отследил конфликт
func (r *SlotRepository) Get(ctx context.Context, key domain.SlotKey) (*domain.SlotLedger, error) {
	ref := r.client.Collection(collectionSlots).Doc(key.String())

	var (
		snap *firestore.DocumentSnapshot
		err  error
	)
	if tx, ok := txFromContext(ctx); ok {
		snap, err = tx.Get(ref)
	} else {
		snap, err = ref.Get(ctx)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrLedgerNotFound
		}
		return nil, wrapQueryErr("SlotGet", err)
	}

	var data slotDoc
	if err := snap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("%w: SlotGet %s: %w", ErrDecode, key, err)
	}
	return data.toDomain(key), nil
}

func (r *SlotRepository) Save(ctx context.Context, ledger *domain.SlotLedger) error {
	ref := r.client.Collection(collectionSlots).Doc(ledger.Key.String())
	data := toSlotDoc(ledger)

	if tx, ok := txFromContext(ctx); ok {
		if err := tx.Set(ref, data); err != nil {
			return fmt.Errorf("%w: SlotSave: %w", ErrQuery, err)
		}
		return nil
	}

	if _, err := ref.Set(ctx, data); err != nil {
		return wrapQueryErr("SlotSave", err)
	}
	return nil
}

// SettingsRepository документ settings/global
type SettingsRepository struct {
	client *firestore.Client
}

func NewSettingsRepository(client *firestore.Client) *SettingsRepository {
	return &SettingsRepository{client: client}
}

func (r *SettingsRepository) Get(ctx context.Context) (*domain.ShopSettings, error) {
	snap, err := r.client.Collection(collectionSettings).Doc(settingsDocID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, storage.ErrSettingsNotFound
		}
		return nil, wrapQueryErr("SettingsGet", err)
	}

	var data settingsDoc
	if err := snap.DataTo(&data); err != nil {
		return nil, fmt.Errorf("%w: SettingsGet: %w", ErrDecode, err)
	}
	return data.toDomain(), nil
}

func (r *SettingsRepository) Save(ctx context.Context, settings *domain.ShopSettings) error {
	_, err := r.client.Collection(collectionSettings).Doc(settingsDocID).Set(ctx, toSettingsDoc(settings))
	if err != nil {
		return wrapQueryErr("SettingsSave", err)
	}
	return nil
}
