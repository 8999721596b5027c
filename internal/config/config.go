package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// EnvPrefix префикс переменных окружения, например SALON_AUTH_ADMIN_EMAIL
const EnvPrefix = "SALON"

// Драйверы хранилища
const (
	StoreDriverPostgres  = "postgres"
	StoreDriverFirestore = "firestore"
	StoreDriverMemory    = "memory"
)

// Режимы проверки токенов администратора
const (
	AuthModeFirebase = "firebase"
	AuthModeHMAC     = "hmac"
)

// ErrInvalidConfig возвращается, если конфигурация не прошла проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server" envconfig:"SERVER"`
	Logs       LogsConfig       `toml:"logs" envconfig:"LOGS"`
	Metrics    MetricsConfig    `toml:"metrics" envconfig:"METRICS"`
	Store      StoreConfig      `toml:"store" envconfig:"STORE"`
	Database   DatabaseConfig   `toml:"database" envconfig:"DATABASE"`
	Firebase   FirebaseConfig   `toml:"firebase" envconfig:"FIREBASE"`
	Auth       AuthConfig       `toml:"auth" envconfig:"AUTH"`
	Booking    BookingConfig    `toml:"booking" envconfig:"BOOKING"`
	Redis      RedisConfig      `toml:"redis" envconfig:"REDIS"`
	Cloudinary CloudinaryConfig `toml:"cloudinary" envconfig:"CLOUDINARY"`
	PromptPay  PromptPayConfig  `toml:"promptpay" envconfig:"PROMPTPAY"`
	CORS       CORSConfig       `toml:"cors" envconfig:"CORS"`
	RateLimit  RateLimitConfig  `toml:"ratelimit" envconfig:"RATELIMIT"`
	Reports    ReportsConfig    `toml:"reports" envconfig:"REPORTS"`
}

// ServerConfig HTTP-сервер; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
}

// StoreConfig выбор хранилища и бюджет повторов транзакции слота
type StoreConfig struct {
	Driver        string `toml:"driver" split_words:"true"`
	TxMaxAttempts int    `toml:"tx_max_attempts" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type FirebaseConfig struct {
	ProjectID       string `toml:"project_id" split_words:"true"`
	CredentialsFile string `toml:"credentials_file" split_words:"true"`
}

// AuthConfig единственный администратор определяется по email
type AuthConfig struct {
	AdminEmail string `toml:"admin_email" split_words:"true"`
	Mode       string `toml:"mode" split_words:"true"`
	HMACSecret string `toml:"hmac_secret" split_words:"true"`
}

// BookingConfig окно бронирования выключено по умолчанию: принимается любая корректная дата
type BookingConfig struct {
	SlotCapacity     int    `toml:"slot_capacity" split_words:"true"`
	RejectPast       bool   `toml:"reject_past" split_words:"true"`
	MinNoticeMinutes int    `toml:"min_notice_minutes" split_words:"true"`
	TimeZone         string `toml:"time_zone" split_words:"true"`
}

// Location часовой пояс магазина, по которому определяется "сегодня"
func (b BookingConfig) Location() (*time.Location, error) {
	if b.TimeZone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(b.TimeZone)
}

type RedisConfig struct {
	Enabled    bool   `toml:"enabled" split_words:"true"`
	Addr       string `toml:"addr" split_words:"true"`
	Password   string `toml:"password" split_words:"true"`
	DB         int    `toml:"db" split_words:"true"`
	TTLSeconds int    `toml:"ttl_seconds" split_words:"true"`
}

type CloudinaryConfig struct {
	CloudName string `toml:"cloud_name" split_words:"true"`
	APIKey    string `toml:"api_key" split_words:"true"`
	APISecret string `toml:"api_secret" split_words:"true"`
	Folder    string `toml:"folder" split_words:"true"`
}

// Enabled true, если заданы все учётные данные
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// PromptPayConfig пустой base_url означает локальную генерацию QR
type PromptPayConfig struct {
	BaseURL string `toml:"base_url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"`
}

type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins" split_words:"true"`
}

// RateLimitConfig ограничение публичных запросов на запись по IP
type RateLimitConfig struct {
	Enabled bool    `toml:"enabled" split_words:"true"`
	RPS     float64 `toml:"rps" split_words:"true"`
	Burst   int     `toml:"burst" split_words:"true"`
}

type ReportsConfig struct {
	FontPath string `toml:"font_path" split_words:"true"`
}

// Default значения по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "salon-booking",
			Path:        "/metrics",
		},
		Store: StoreConfig{
			Driver:        StoreDriverPostgres,
			TxMaxAttempts: 5,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "salon",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Auth: AuthConfig{
			Mode: AuthModeFirebase,
		},
		Booking: BookingConfig{
			SlotCapacity:     domain.DefaultSlotCapacity,
			MinNoticeMinutes: domain.DefaultMinNoticeMinutes,
			TimeZone:         "UTC",
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			TTLSeconds: 300,
		},
		Cloudinary: CloudinaryConfig{
			Folder: "salon",
		},
		PromptPay: PromptPayConfig{
			BaseURL: "https://promptpay.io",
			Timeout: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     1,
			Burst:   5,
		},
	}
}

// Load читает config.toml (если есть), затем .env и переменные окружения SALON_*
// Переменные окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: failed to stat %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d is out of range", c.Server.HTTPPort))
	}

	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverFirestore, StoreDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("store.driver %q must be postgres, firestore or memory", c.Store.Driver))
	}
	if c.Store.TxMaxAttempts < 1 {
		problems = append(problems, "store.tx_max_attempts must be at least 1")
	}

	if c.Booking.SlotCapacity < domain.MinSlotCapacity || c.Booking.SlotCapacity > domain.MaxSlotCapacity {
		problems = append(problems, fmt.Sprintf("booking.slot_capacity must be within [%d, %d]", domain.MinSlotCapacity, domain.MaxSlotCapacity))
	}
	if c.Booking.MinNoticeMinutes < 0 {
		problems = append(problems, "booking.min_notice_minutes must not be negative")
	}
	if _, err := c.Booking.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("booking.time_zone %q is unknown", c.Booking.TimeZone))
	}

	if strings.TrimSpace(c.Auth.AdminEmail) == "" {
		problems = append(problems, "auth.admin_email is required")
	} else if _, err := mail.ParseAddress(c.Auth.AdminEmail); err != nil {
		problems = append(problems, fmt.Sprintf("auth.admin_email %q is not an email", c.Auth.AdminEmail))
	}

	switch c.Auth.Mode {
	case AuthModeFirebase:
	case AuthModeHMAC:
		if c.Auth.HMACSecret == "" {
			problems = append(problems, "auth.hmac_secret is required for hmac mode")
		}
	default:
		problems = append(problems, fmt.Sprintf("auth.mode %q must be firebase or hmac", c.Auth.Mode))
	}

	if (c.Store.Driver == StoreDriverFirestore || c.Auth.Mode == AuthModeFirebase) && c.Firebase.ProjectID == "" {
		problems = append(problems, "firebase.project_id is required for firestore store or firebase auth")
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		problems = append(problems, "ratelimit.rps and ratelimit.burst must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
