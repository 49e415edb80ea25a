package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	yaml := `
api:
  address: "127.0.0.1"
  port: 8080

database:
  path: "/var/lib/easyenergy/easyenergy.db"
  data_retention_days: 30

tariffs:
  timezone: "Europe/Brussels"
  include_vat: false
  electricity_run_at: "0 16 * * *"

mqtt:
  host: "broker.local"
  port: 1883
  topic: "home/tariffs"

logging:
  console_level: "DEBUG"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("writing test config: %v", err)
	}

	cnfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	t.Run("Api", func(t *testing.T) {
		if cnfg.Api.Address != "127.0.0.1" {
			t.Errorf("address = %q, want 127.0.0.1", cnfg.Api.Address)
		}
		if cnfg.Api.Port != 8080 {
			t.Errorf("port = %d, want 8080", cnfg.Api.Port)
		}
		if cnfg.Api.GetSessionKey() != "easyenergy-session-key" {
			t.Errorf("default session key = %q", cnfg.Api.GetSessionKey())
		}
	})

	t.Run("Database", func(t *testing.T) {
		if cnfg.Database.Path != "/var/lib/easyenergy/easyenergy.db" {
			t.Errorf("path = %q", cnfg.Database.Path)
		}
		if cnfg.Database.GetDataRetentionDays() != 30 {
			t.Errorf("data retention = %d, want 30", cnfg.Database.GetDataRetentionDays())
		}
		if cnfg.Database.GetBackupRetentionDays() != 90 {
			t.Errorf("default backup retention = %d, want 90", cnfg.Database.GetBackupRetentionDays())
		}
	})

	t.Run("Tariffs", func(t *testing.T) {
		if cnfg.Tariffs.GetTimezone() != "Europe/Brussels" {
			t.Errorf("timezone = %q, want Europe/Brussels", cnfg.Tariffs.GetTimezone())
		}
		if cnfg.Tariffs.GetIncludeVat() {
			t.Error("include vat = true, want false")
		}
		if cnfg.Tariffs.GetElectricityRunAt() != "0 16 * * *" {
			t.Errorf("electricity run at = %q", cnfg.Tariffs.GetElectricityRunAt())
		}
		if cnfg.Tariffs.GetGasRunAt() != "35 5 * * *" {
			t.Errorf("default gas run at = %q", cnfg.Tariffs.GetGasRunAt())
		}
	})

	t.Run("Mqtt", func(t *testing.T) {
		if !cnfg.Mqtt.Enabled() {
			t.Error("mqtt should be enabled when a host is set")
		}
		if cnfg.Mqtt.Port != 1883 {
			t.Errorf("mqtt port = %d, want 1883", cnfg.Mqtt.Port)
		}
		if cnfg.Mqtt.GetTopic() != "home/tariffs" {
			t.Errorf("topic = %q, want home/tariffs", cnfg.Mqtt.GetTopic())
		}
		if cnfg.Mqtt.GetClientId() != "easyenergy" {
			t.Errorf("default client id = %q", cnfg.Mqtt.GetClientId())
		}
	})

	t.Run("Logging", func(t *testing.T) {
		if cnfg.Logging.GetConsoleLevel() != slog.LevelDebug {
			t.Errorf("console level = %v, want DEBUG", cnfg.Logging.GetConsoleLevel())
		}
		if cnfg.Logging.GetDbLevel() != slog.LevelInfo {
			t.Errorf("default db level = %v, want INFO", cnfg.Logging.GetDbLevel())
		}
		if cnfg.Logging.GetDbMaxEntries() != 10000 {
			t.Errorf("default db max entries = %d, want 10000", cnfg.Logging.GetDbMaxEntries())
		}
	})

	t.Run("Gui", func(t *testing.T) {
		if cnfg.Gui.GetTimezone() != "UTC" {
			t.Errorf("default gui timezone = %q, want UTC", cnfg.Gui.GetTimezone())
		}
	})
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing file returned no error")
	}
}
