package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/firestoredb"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/memory"
	settingsRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/settings"
	slotRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/slot"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/txmanager"
)

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByDate(ctx context.Context, date string) ([]*domain.Booking, error)
	ListByPeriod(ctx context.Context, from, to string) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, update domain.StatusUpdate) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
}

type slotStore interface {
	Get(ctx context.Context, key domain.SlotKey) (*domain.SlotLedger, error)
	Save(ctx context.Context, ledger *domain.SlotLedger) error
}

type settingsStore interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Save(ctx context.Context, settings *domain.ShopSettings) error
}

type slotTxManager interface {
	WithSlotTransaction(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// stores набор репозиториев выбранного драйвера
type stores struct {
	bookings bookingStore
	slots    slotStore
	settings settingsStore
	tx       slotTxManager
	close    func()
}

func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: failed to initialize app: %w", err)
	}
	return app, nil
}

func openStores(
	ctx context.Context,
	cfg *config.Config,
	app *firebase.App,
	m *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (*stores, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		return openPostgres(cfg, m, stopMetricsCh, log)
	case config.StoreDriverFirestore:
		return openFirestore(ctx, cfg, app, m, log)
	default:
		log.Warn("Using in-memory store: data is lost on restart")
		store := memory.NewStore()
		return &stores{
			bookings: memory.NewBookingRepository(store),
			slots:    memory.NewSlotRepository(store),
			settings: memory.NewSettingsRepository(store),
			tx:       memory.NewTxManager(store),
			close:    func() {},
		}, nil
	}
}

func openPostgres(cfg *config.Config, m *metrics.Metrics, stopMetricsCh <-chan struct{}, log *logger.Logger) (*stores, error) {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, m, stopMetricsCh)

	txManager := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxAttempts(cfg.Store.TxMaxAttempts),
		txmanager.WithRetryHook(func(attempt int, err error) {
			m.RecordSlotTxRetry(config.StoreDriverPostgres)
			log.Warn("Slot transaction retry: attempt=%d, error=%v", attempt, err)
		}),
	)

	return &stores{
		bookings: bookingRepo.NewRepository(wrappedDB),
		slots:    slotRepo.NewRepository(wrappedDB),
		settings: settingsRepo.NewRepository(wrappedDB),
		tx:       slotRepo.NewTxManager(txManager, wrappedDB),
		close: func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close database: %v", err)
			}
		},
	}, nil
}

func openFirestore(ctx context.Context, cfg *config.Config, app *firebase.App, m *metrics.Metrics, log *logger.Logger) (*stores, error) {
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore: failed to create client: %w", err)
	}
	log.Info("Connected to Firestore (project=%s)", cfg.Firebase.ProjectID)

	return &stores{
		bookings: firestoredb.NewBookingRepository(client),
		slots:    firestoredb.NewSlotRepository(client),
		settings: firestoredb.NewSettingsRepository(client),
		tx: firestoredb.NewTxManager(client, cfg.Store.TxMaxAttempts, func() {
			m.RecordSlotTxRetry(config.StoreDriverFirestore)
		}),
		close: func() {
			if err := client.Close(); err != nil {
				log.Error("Failed to close Firestore client: %v", err)
			}
		},
	}, nil
}
