package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage"
	"github.com/m04kA/SMC-SalonBooking/internal/service/settings/models"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

// Service сервис для работы с настройками магазина
type Service struct {
	settingsRepo SettingsRepository
	clock        TimeProvider
	logger       Logger
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		clock:        realClock{},
		logger:       logger,
	}
}

// Get возвращает настройки с подставленными значениями по умолчанию
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return models.FromDomainSettings(settings.WithDefaults()), nil
}

// Current возвращает настройки в доменном виде (для интеграций, например QR оплаты)
func (s *Service) Current(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return settings.WithDefaults(), nil
}

// Update частично обновляет настройки
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating shop settings")

	// 1. Валидируем входные данные
	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	// 2. Загружаем текущие настройки
	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	// 3. Применяем изменения и сохраняем
	settings.Apply(req.ToDomainPatch(), s.clock.Now())
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		s.logger.Error("Update: failed to save settings: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: shop settings saved")
	return models.FromDomainSettings(settings.WithDefaults()), nil
}

func (s *Service) load(ctx context.Context) (*domain.ShopSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSettingsNotFound) {
			return domain.DefaultShopSettings(), nil
		}
		s.logger.Error("Settings: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}
	return settings, nil
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, domain.NewValidationError(field, reason))
}

func validateUpdate(req *models.UpdateSettingsRequest) error {
	if utf8.RuneCountInString(ptr.Value(req.ShopName)) > domain.MaxNameLength {
		return invalid("shopName", fmt.Sprintf("must be at most %d characters", domain.MaxNameLength))
	}

	if hours := ptr.Value(req.OpenHours); strings.TrimSpace(hours) != "" {
		if _, err := domain.ParseOpeningHours(hours); err != nil {
			return invalid("openHours", "must look like 09:00-20:00")
		}
	}

	if ptr.Value(req.Deposit) < 0 {
		return invalid("deposit", "must not be negative")
	}

	for _, service := range req.Services {
		name := strings.TrimSpace(service)
		if name == "" {
			return invalid("services", "must not contain empty names")
		}
		if utf8.RuneCountInString(name) > domain.MaxServiceNameLength {
			return invalid("services", fmt.Sprintf("%q is longer than %d characters", name, domain.MaxServiceNameLength))
		}
	}

	return nil
}
