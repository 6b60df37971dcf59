package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"mealdispatch/internal/jobs"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	HTTPPort   string `validate:"required,numeric"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`

	AppEnv   string `validate:"omitempty,oneof=development production test"`
	LogLevel string `validate:"omitempty,oneof=debug info warn error"`

	FeeCacheTTL   time.Duration `validate:"gte=0"`
	RedisAddr     string        `validate:"omitempty,hostname_port"`
	RedisPassword string

	KafkaBrokers []string `validate:"dive,hostname_port"`
	KafkaTopic   string   `validate:"required_with=KafkaBrokers"`
	AMQPURL      string   `validate:"omitempty,url"`

	TelegramToken       string
	TelegramAdminChatID int64 `validate:"required_with=TelegramToken"`

	AutoAssignEnabled  bool
	AutoAssignSchedule string `validate:"required_if=AutoAssignEnabled true"`

	NotifyQueueSize int `validate:"gte=1"`
}

// LoadConfig reads the configuration through getenv (os.Getenv in production) and
// validates it. Unset optional keys fall back to defaults.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:           get("HTTP_PORT", "8080"),
		DBHost:             get("DB_HOST", ""),
		DBPort:             get("DB_PORT", "5432"),
		DBUser:             get("DB_USER", ""),
		DBPassword:         getenv("DB_PASSWORD"),
		DBName:             get("DB_NAME", ""),
		DBSslMode:          get("DB_SSLMODE", "disable"),
		AppEnv:             get("APP_ENV", "development"),
		LogLevel:           strings.ToLower(get("LOG_LEVEL", "info")),
		RedisAddr:          get("REDIS_ADDR", ""),
		RedisPassword:      getenv("REDIS_PASSWORD"),
		KafkaTopic:         get("KAFKA_TOPIC", ""),
		AMQPURL:            get("AMQP_URL", ""),
		TelegramToken:      get("TELEGRAM_TOKEN", ""),
		AutoAssignSchedule: get("AUTO_ASSIGN_SCHEDULE", jobs.DefaultAutoAssignSchedule),
		FeeCacheTTL:        time.Hour,
		NotifyQueueSize:    1024,
	}

	if brokers := get("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	var err error
	if v := get("FEE_CACHE_TTL", ""); v != "" {
		if cfg.FeeCacheTTL, err = time.ParseDuration(v); err != nil {
			return Config{}, fmt.Errorf("FEE_CACHE_TTL: %w", err)
		}
	}
	if v := get("NOTIFY_QUEUE_SIZE", ""); v != "" {
		if cfg.NotifyQueueSize, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("NOTIFY_QUEUE_SIZE: %w", err)
		}
	}
	if v := get("TELEGRAM_ADMIN_CHAT_ID", ""); v != "" {
		if cfg.TelegramAdminChatID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Config{}, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}
	if v := get("AUTO_ASSIGN_ENABLED", ""); v != "" {
		if cfg.AutoAssignEnabled, err = strconv.ParseBool(v); err != nil {
			return Config{}, fmt.Errorf("AUTO_ASSIGN_ENABLED: %w", err)
		}
	}

	if err = validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DSN is the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// IsProduction reports whether APP_ENV is production.
func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}
