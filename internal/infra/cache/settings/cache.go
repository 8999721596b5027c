package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	cacheKey   = "salon:settings:global"
	defaultTTL = 5 * time.Minute
)

// Repository источник настроек, который кэшируется
type Repository interface {
	Get(ctx context.Context) (*domain.ShopSettings, error)
	Save(ctx context.Context, settings *domain.ShopSettings) error
}

// RedisClient подмножество *redis.Client, которое нужно кэшу
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Cache read-through кэш настроек магазина
// Настройки читаются на каждый запрос доступности, а меняются редко
// Недоступность Redis не ломает чтение: идём напрямую в хранилище
type Cache struct {
	repo   Repository
	redis  RedisClient
	ttl    time.Duration
	logger Logger
}

// NewCache ttl <= 0 означает значение по умолчанию (5 минут)
func NewCache(repo Repository, client RedisClient, ttl time.Duration, logger Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{repo: repo, redis: client, ttl: ttl, logger: logger}
}

type cachedSettings struct {
	ShopName        string    `json:"shopName"`
	OpenHours       string    `json:"openHours"`
	PromptPayNumber string    `json:"promptpayNumber"`
	PromptPayNote   string    `json:"promptpayNote"`
	Deposit         float64   `json:"deposit"`
	Services        []string  `json:"services"`
	LogoURL         string    `json:"logoUrl"`
	QRURL           string    `json:"qrUrl"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Get возвращает настройки из кэша или из хранилища
func (c *Cache) Get(ctx context.Context) (*domain.ShopSettings, error) {
	raw, err := c.redis.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var cached cachedSettings
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.toDomain(), nil
		}
		c.logger.Warn("SettingsCache: corrupted entry, reloading: %v", err)
	case errors.Is(err, redis.Nil):
		// промах
	default:
		c.logger.Warn("SettingsCache: redis get failed: %v", err)
	}

	settings, err := c.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	c.store(ctx, settings)
	return settings, nil
}

// Save пишет в хранилище и сбрасывает кэш
func (c *Cache) Save(ctx context.Context, settings *domain.ShopSettings) error {
	if err := c.repo.Save(ctx, settings); err != nil {
		return err
	}
	if err := c.redis.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("SettingsCache: failed to invalidate: %v", err)
	}
	return nil
}

func (c *Cache) store(ctx context.Context, settings *domain.ShopSettings) {
	payload, err := json.Marshal(fromDomain(settings))
	if err != nil {
		c.logger.Error("SettingsCache: failed to marshal settings: %v", err)
		return
	}
	if err := c.redis.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("SettingsCache: redis set failed: %v", err)
	}
}

func fromDomain(s *domain.ShopSettings) cachedSettings {
	return cachedSettings{
		ShopName:        s.ShopName,
		OpenHours:       s.OpenHours,
		PromptPayNumber: s.PromptPayNumber,
		PromptPayNote:   s.PromptPayNote,
		Deposit:         s.Deposit,
		Services:        s.Services,
		LogoURL:         s.LogoURL,
		QRURL:           s.QRURL,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (c cachedSettings) toDomain() *domain.ShopSettings {
	return &domain.ShopSettings{
		ShopName:        c.ShopName,
		OpenHours:       c.OpenHours,
		PromptPayNumber: c.PromptPayNumber,
		PromptPayNote:   c.PromptPayNote,
		Deposit:         c.Deposit,
		Services:        c.Services,
		LogoURL:         c.LogoURL,
		QRURL:           c.QRURL,
		UpdatedAt:       c.UpdatedAt,
	}
}
