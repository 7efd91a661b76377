package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/nutri-contracts/internal/model"
)

type HTTPConfig struct {
	Host               string
	Port               int
	CORSAllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type DeliveryConfig struct {
	DefaultTime    model.TimeOfDay
	DefaultAddress string
}

type RescheduleConfig struct {
	MinLeadDays int
	WindowStart model.TimeOfDay
	WindowEnd   model.TimeOfDay
}

type Config struct {
	Environment string
	Timezone    *time.Location
	HTTP        HTTPConfig
	DB          DBConfig
	Delivery    DeliveryConfig
	Reschedule  RescheduleConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_MAX_OPEN_CONNS", 20)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DELIVERY_DEFAULT_TIME", "08:00")
	v.SetDefault("DELIVERY_DEFAULT_ADDRESS", "Dirección genérica")
	v.SetDefault("RESCHEDULE_MIN_LEAD_DAYS", 2)
	v.SetDefault("RESCHEDULE_WINDOW_START", "06:00")
	v.SetDefault("RESCHEDULE_WINDOW_END", "22:00")

	_ = v.ReadInConfig()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:               v.GetString("HTTP_HOST"),
			Port:               v.GetInt("HTTP_PORT"),
			CORSAllowedOrigins: parseList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:          v.GetString("DB_DSN"),
			MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
			AutoMigrate:  v.GetBool("DB_AUTO_MIGRATE"),
		},
		Delivery: DeliveryConfig{
			DefaultAddress: strings.TrimSpace(v.GetString("DELIVERY_DEFAULT_ADDRESS")),
		},
		Reschedule: RescheduleConfig{
			MinLeadDays: v.GetInt("RESCHEDULE_MIN_LEAD_DAYS"),
		},
	}

	var err error
	if cfg.Timezone, err = time.LoadLocation(v.GetString("APP_TIMEZONE")); err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	if cfg.DB.ConnMaxLifetime, err = time.ParseDuration(v.GetString("DB_CONN_MAX_LIFETIME")); err != nil {
		return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}
	if cfg.Delivery.DefaultTime, err = model.ParseTimeOfDay(v.GetString("DELIVERY_DEFAULT_TIME")); err != nil {
		return nil, fmt.Errorf("DELIVERY_DEFAULT_TIME: %w", err)
	}
	if cfg.Reschedule.WindowStart, err = model.ParseTimeOfDay(v.GetString("RESCHEDULE_WINDOW_START")); err != nil {
		return nil, fmt.Errorf("RESCHEDULE_WINDOW_START: %w", err)
	}
	if cfg.Reschedule.WindowEnd, err = model.ParseTimeOfDay(v.GetString("RESCHEDULE_WINDOW_END")); err != nil {
		return nil, fmt.Errorf("RESCHEDULE_WINDOW_END: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.HTTP.Port <= 0 {
		return fmt.Errorf("HTTP_PORT must be positive")
	}
	if cfg.Delivery.DefaultAddress == "" {
		return fmt.Errorf("DELIVERY_DEFAULT_ADDRESS is required")
	}
	if cfg.Reschedule.MinLeadDays < 0 {
		return fmt.Errorf("RESCHEDULE_MIN_LEAD_DAYS must not be negative")
	}
	if cfg.Reschedule.WindowEnd < cfg.Reschedule.WindowStart {
		return fmt.Errorf("RESCHEDULE_WINDOW_END must not be before RESCHEDULE_WINDOW_START")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
