// Package config loads the application configuration from a yaml file
// and the environment. Optional settings are pointer fields so an
// omitted key can fall back to its default through the Get* accessors.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/jdevries/easyenergy-go/logging"
	"github.com/spf13/viper"
)

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

type AppConfigApi struct {
	Address string
	Port    int16
	// If not assigned, the server will serve embedded files.
	// If assigned, the server will serve files from the directory,
	// that must contain a "static" and "templates" directory.
	// This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
	// Secret used to authenticate the browser preferences cookie.
	SessionKey *string `mapstructure:"session_key"`
}

func (a AppConfigApi) GetSessionKey() string {
	return orDefault(a.SessionKey, "easyenergy-session-key")
}

type AppConfigDatabase struct {
	Path string
	// How many days data should be stored in database before it gets purged
	DataRetentionDays *int `mapstructure:"data_retention_days"`
	// How many days daily backup files should be stored before they gets deleted
	BackupRetentionDays *int `mapstructure:"backup_retention_days"`
}

func (d AppConfigDatabase) GetDataRetentionDays() int {
	return orDefault(d.DataRetentionDays, 90)
}

func (d AppConfigDatabase) GetBackupRetentionDays() int {
	return orDefault(d.BackupRetentionDays, 90)
}

type AppConfigTariffs struct {
	// Timezone the market trading day is defined in, default: "Europe/Amsterdam"
	Timezone *string `mapstructure:"timezone"`
	// Fetch prices including VAT, default: true
	IncludeVat *bool `mapstructure:"include_vat"`
	// Cron spec for fetching electricity tariffs. Day-ahead prices are
	// published in the afternoon, default: "5 15 * * *"
	ElectricityRunAt *string `mapstructure:"electricity_run_at"`
	// Cron spec for fetching gas tariffs. The gas trading day starts
	// at 06:00 local time, default: "35 5 * * *"
	GasRunAt *string `mapstructure:"gas_run_at"`
}

func (t AppConfigTariffs) GetTimezone() string {
	return orDefault(t.Timezone, "Europe/Amsterdam")
}

func (t AppConfigTariffs) GetIncludeVat() bool {
	return orDefault(t.IncludeVat, true)
}

func (t AppConfigTariffs) GetElectricityRunAt() string {
	return orDefault(t.ElectricityRunAt, "5 15 * * *")
}

func (t AppConfigTariffs) GetGasRunAt() string {
	return orDefault(t.GasRunAt, "35 5 * * *")
}

type AppConfigMqtt struct {
	// Broker hostname, leave empty to disable MQTT publishing
	Host     string
	Port     int16
	Username string
	Password string
	// Root topic for published tariffs, default: "easyenergy"
	Topic *string `mapstructure:"topic"`
	// Client id presented to the broker, default: "easyenergy"
	ClientId *string `mapstructure:"client_id"`
}

func (m AppConfigMqtt) Enabled() bool {
	return m.Host != ""
}

func (m AppConfigMqtt) GetTopic() string {
	return orDefault(m.Topic, "easyenergy")
}

func (m AppConfigMqtt) GetClientId() string {
	return orDefault(m.ClientId, "easyenergy")
}

type AppConfigGui struct {
	// Timezone for displaying times in the GUI, default: UTC
	Timezone *string `mapstructure:"timezone"`
}

func (g AppConfigGui) GetTimezone() string {
	return orDefault(g.Timezone, "UTC")
}

type AppConfigLogging struct {
	// Min log level for database : "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for database console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return logging.LevelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat != nil && strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	return orDefault(l.DbMaxEntries, 10000)
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return logging.LevelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api      AppConfigApi
	Database AppConfigDatabase
	Tariffs  AppConfigTariffs
	Mqtt     AppConfigMqtt
	Gui      AppConfigGui
	Logging  AppConfigLogging
}

// Load reads the configuration from path, or from config/config.yaml
// when path is empty. Environment variables override file settings,
// with dots in keys replaced by underscores (api.port -> API_PORT).
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("config")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	var c AppConfig
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
