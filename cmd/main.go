package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	adminFeedHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/admin_feed"
	checkSlotHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/check_slot"
	createBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_booking"
	deleteBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/delete_booking"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_available_slots"
	getBookedTimesHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booked_times"
	getBookingHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_booking"
	getMonthlyReportHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_monthly_report"
	getPaymentQRHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_payment_qr"
	getSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_settings"
	listBookingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_booking_status"
	updateSettingsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/update_settings"
	uploadAssetHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upload_asset"
	uploadSlipHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/upload_slip"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	settingsCache "github.com/m04kA/SMC-SalonBooking/internal/infra/cache/settings"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/cloudinary"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/identity"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/promptpay"
	bookingsService "github.com/m04kA/SMC-SalonBooking/internal/service/bookings"
	"github.com/m04kA/SMC-SalonBooking/internal/service/livefeed"
	reportsService "github.com/m04kA/SMC-SalonBooking/internal/service/reports"
	settingsService "github.com/m04kA/SMC-SalonBooking/internal/service/settings"
	uploadsService "github.com/m04kA/SMC-SalonBooking/internal/service/uploads"
	createBookingUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
	updateBookingStatusUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/update_booking_status"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded (store=%s, auth=%s, slot_capacity=%d)",
		cfg.Store.Driver, cfg.Auth.Mode, cfg.Booking.SlotCapacity)

	ctx := context.Background()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Firebase нужен для Firestore и для проверки ID-токенов
	var firebaseApp *firebase.App
	if cfg.Store.Driver == config.StoreDriverFirestore || cfg.Auth.Mode == config.AuthModeFirebase {
		firebaseApp, err = newFirebaseApp(ctx, cfg)
		if err != nil {
			log.Fatal("Failed to initialize Firebase: %v", err)
		}
	}

	// Хранилище
	store, err := openStores(ctx, cfg, firebaseApp, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to open %s store: %v", cfg.Store.Driver, err)
	}
	defer store.close()

	// Настройки читаются на каждый запрос доступности, поэтому кэшируются в Redis
	var settingsRepository settingsStore = store.settings
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, settings will be read from the store: %v", cfg.Redis.Addr, err)
		} else {
			log.Info("Settings cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		}
		cancel()

		settingsRepository = settingsCache.NewCache(
			store.settings,
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
	}

	// Проверка токенов администратора
	var verifier middleware.TokenVerifier
	switch cfg.Auth.Mode {
	case config.AuthModeHMAC:
		verifier = identity.NewHMACVerifier(cfg.Auth.HMACSecret)
	default:
		authClient, err := firebaseApp.Auth(ctx)
		if err != nil {
			log.Fatal("Failed to initialize Firebase Auth: %v", err)
		}
		verifier = identity.NewFirebaseVerifier(authClient)
	}
	log.Info("Admin authentication: mode=%s, admin=%s", cfg.Auth.Mode, cfg.Auth.AdminEmail)

	// Объектное хранилище
	var objectStorage uploadsService.ObjectStorage = cloudinary.Disabled{}
	if cfg.Cloudinary.Enabled() {
		cloudinaryClient, err := cloudinary.NewClient(
			cfg.Cloudinary.CloudName,
			cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret,
			cfg.Cloudinary.Folder,
		)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary: %v", err)
		}
		objectStorage = cloudinaryClient
		log.Info("Cloudinary storage enabled (cloud=%s, folder=%s)", cfg.Cloudinary.CloudName, cfg.Cloudinary.Folder)
	} else {
		log.Warn("Cloudinary is not configured, uploads are disabled")
	}

	promptPayClient := promptpay.NewClient(
		cfg.PromptPay.BaseURL,
		time.Duration(cfg.PromptPay.Timeout)*time.Second,
		log,
	)

	// Лента событий для администратора
	feed := livefeed.NewHub(0, log)

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(store.bookings, feed, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	uploadsSvc := uploadsService.NewService(objectStorage, log)
	reportsSvc := reportsService.NewService(store.bookings, cfg.Reports.FontPath, log)

	// Окно бронирования: часовой пояс уже проверен в config.Validate
	shopLocation, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load shop time zone: %v", err)
	}
	bookingWindow := domain.BookingWindow{
		RejectPast:       cfg.Booking.RejectPast,
		MinNoticeMinutes: cfg.Booking.MinNoticeMinutes,
		Location:         shopLocation,
	}
	log.Info("Booking window: reject_past=%t, min_notice=%dm, tz=%s",
		bookingWindow.RejectPast, bookingWindow.MinNoticeMinutes, shopLocation)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.bookings,
		settingsRepository,
		bookingWindow,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		store.bookings,
		store.slots,
		settingsRepository,
		store.tx,
		feed,
		metricsCollector,
		createBookingUC.Config{
			SlotCapacity: cfg.Booking.SlotCapacity,
			Window:       bookingWindow,
		},
		log,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		store.bookings,
		feed,
		cfg.Auth.AdminEmail,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkSlot := checkSlotHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookedTimes := getBookedTimesHandler.NewHandler(bookingsSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	uploadSlip := uploadSlipHandler.NewHandler(uploadsSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	getPaymentQR := getPaymentQRHandler.NewHandler(settingsSvc, promptPayClient, log)

	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingsSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	uploadAsset := uploadAssetHandler.NewHandler(uploadsSvc, settingsSvc, log)
	getMonthlyReport := getMonthlyReportHandler.NewHandler(reportsSvc, settingsSvc, log)
	adminFeed := adminFeedHandler.NewHandler(feed, cfg.CORS.AllowedOrigins, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты для публичных запросов на запись
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log)
		limit = func(h http.HandlerFunc) http.Handler { return limiter.Middleware(h) }
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Проверка одного слота
	api.HandleFunc("/availability/check", checkSlot.Handle).Methods(http.MethodGet)

	// Занятые времена на дату (любой статус)
	api.HandleFunc("/booked-times", getBookedTimes.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.Handle("/bookings", limit(createBooking.Handle)).Methods(http.MethodPost)

	// Загрузка чека об оплате
	api.Handle("/uploads/slip", limit(uploadSlip.Handle)).Methods(http.MethodPost)

	// Настройки магазина
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)

	// QR-код PromptPay
	api.HandleFunc("/payment/qr", getPaymentQR.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (Bearer ID-токен администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(verifier, cfg.Auth.AdminEmail, log))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)

	// --- Настройки и файлы ---
	admin.HandleFunc("/settings", updateSettings.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/uploads/{kind}", uploadAsset.Handle).Methods(http.MethodPost)

	// --- Отчёты и лента ---
	admin.HandleFunc("/reports/monthly", getMonthlyReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/feed", adminFeed.Handle).Methods(http.MethodGet)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(r),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
