package config

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/nurpe/nutri-contracts/internal/model"
)

func newViper(values map[string]interface{}) *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("DB_AUTO_MIGRATE", true)
	v.SetDefault("DELIVERY_DEFAULT_TIME", "08:00")
	v.SetDefault("DELIVERY_DEFAULT_ADDRESS", "Dirección genérica")
	v.SetDefault("RESCHEDULE_MIN_LEAD_DAYS", 2)
	v.SetDefault("RESCHEDULE_WINDOW_START", "06:00")
	v.SetDefault("RESCHEDULE_WINDOW_END", "22:00")
	for key, value := range values {
		v.Set(key, value)
	}
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]interface{}{"DB_DSN": "postgres://localhost/nutri"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Delivery.DefaultTime != model.NewTimeOfDay(8, 0) {
		t.Errorf("default time = %s", cfg.Delivery.DefaultTime)
	}
	if cfg.Delivery.DefaultAddress != "Dirección genérica" {
		t.Errorf("default address = %q", cfg.Delivery.DefaultAddress)
	}
	if cfg.Reschedule.MinLeadDays != 2 {
		t.Errorf("min lead days = %d", cfg.Reschedule.MinLeadDays)
	}
	if cfg.DB.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("conn max lifetime = %s", cfg.DB.ConnMaxLifetime)
	}
	if cfg.Timezone != time.UTC {
		t.Errorf("timezone = %s", cfg.Timezone)
	}
}

func TestFromViperRejectsInvalidValues(t *testing.T) {
	dsn := "postgres://localhost/nutri"
	tests := []struct {
		name    string
		values  map[string]interface{}
		wantErr string
	}{
		{"missing dsn", map[string]interface{}{}, "DB_DSN"},
		{"bad timezone", map[string]interface{}{"DB_DSN": dsn, "APP_TIMEZONE": "Mars/Olympus"}, "APP_TIMEZONE"},
		{"bad default time", map[string]interface{}{"DB_DSN": dsn, "DELIVERY_DEFAULT_TIME": "25:00"}, "DELIVERY_DEFAULT_TIME"},
		{"negative lead", map[string]interface{}{"DB_DSN": dsn, "RESCHEDULE_MIN_LEAD_DAYS": -1}, "RESCHEDULE_MIN_LEAD_DAYS"},
		{"inverted window", map[string]interface{}{"DB_DSN": dsn, "RESCHEDULE_WINDOW_START": "20:00", "RESCHEDULE_WINDOW_END": "07:00"}, "RESCHEDULE_WINDOW_END"},
		{"bad lifetime", map[string]interface{}{"DB_DSN": dsn, "DB_CONN_MAX_LIFETIME": "forever"}, "DB_CONN_MAX_LIFETIME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	got := parseList(" http://a.test , ,http://b.test ")
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("parseList = %v", got)
	}
	if parseList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
