// Package config загрузка конфигурации сервиса из TOML-файла
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/CHS-ReservationService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Rabbit      RabbitConfig      `toml:"rabbit"`
	ActivityLog ActivityLogConfig `toml:"activity_log"`
	Resources   ResourcesConfig   `toml:"resources"`
	Rules       RulesConfig       `toml:"rules"`
	Tariff      TariffConfig      `toml:"tariff"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// RabbitConfig настройки издателя уведомлений
type RabbitConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// ActivityLogConfig настройки клиента журнала действий
type ActivityLogConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// ResourcesConfig ресурсный пул общего дома
type ResourcesConfig struct {
	UnitCount         int `toml:"unit_count"`
	TableCount        int `toml:"table_count"`
	AttendeesPerTable int `toml:"attendees_per_table"`
}

// RulesConfig календарные правила движка
type RulesConfig struct {
	ShortNoticeDays int   `toml:"short_notice_days"`
	RestDays        []int `toml:"rest_days"` // time.Weekday: 0 = воскресенье
	EnforceBlocks   bool  `toml:"enforce_blocks"`
}

// RestWeekdays возвращает выходные дни консьерж-службы как time.Weekday
func (r RulesConfig) RestWeekdays() []time.Weekday {
	days := make([]time.Weekday, len(r.RestDays))
	for i, d := range r.RestDays {
		days[i] = time.Weekday(d)
	}
	return days
}

// TariffConfig тарифные параметры биллинга
type TariffConfig struct {
	MinimumAmount   int64 `toml:"minimum_amount"`
	PerPersonRate   int64 `toml:"per_person_rate"`
	ShortNoticeFlat int64 `toml:"short_notice_flat"`
	OffSeasonStart  int   `toml:"off_season_start"` // номер месяца, 1..12
	OffSeasonEnd    int   `toml:"off_season_end"`
}

// ToDomain возвращает тариф в доменном представлении
func (t TariffConfig) ToDomain() domain.Tariff {
	return domain.Tariff{
		MinimumAmount:   t.MinimumAmount,
		PerPersonRate:   t.PerPersonRate,
		ShortNoticeFlat: t.ShortNoticeFlat,
		OffSeasonStart:  time.Month(t.OffSeasonStart),
		OffSeasonEnd:    time.Month(t.OffSeasonEnd),
	}
}

// Load читает и валидирует конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Resources.UnitCount == 0 {
		cfg.Resources.UnitCount = domain.DefaultUnitCount
	}
	if cfg.Resources.TableCount == 0 {
		cfg.Resources.TableCount = domain.DefaultTableCount
	}
	if cfg.Resources.AttendeesPerTable == 0 {
		cfg.Resources.AttendeesPerTable = domain.AttendeesPerTable
	}
	if cfg.Rules.ShortNoticeDays == 0 {
		cfg.Rules.ShortNoticeDays = domain.ShortNoticeDays
	}
	if len(cfg.Rules.RestDays) == 0 {
		for _, d := range domain.DefaultRestDays {
			cfg.Rules.RestDays = append(cfg.Rules.RestDays, int(d))
		}
	}
	if cfg.Tariff.MinimumAmount == 0 {
		cfg.Tariff.MinimumAmount = domain.DefaultTariff.MinimumAmount
	}
	if cfg.Tariff.PerPersonRate == 0 {
		cfg.Tariff.PerPersonRate = domain.DefaultTariff.PerPersonRate
	}
	if cfg.Tariff.ShortNoticeFlat == 0 {
		cfg.Tariff.ShortNoticeFlat = domain.DefaultTariff.ShortNoticeFlat
	}
	if cfg.Tariff.OffSeasonStart == 0 {
		cfg.Tariff.OffSeasonStart = int(domain.DefaultTariff.OffSeasonStart)
	}
	if cfg.Tariff.OffSeasonEnd == 0 {
		cfg.Tariff.OffSeasonEnd = int(domain.DefaultTariff.OffSeasonEnd)
	}
}

func validate(cfg *Config) error {
	if cfg.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return fmt.Errorf("config: database.host and database.dbname are required")
	}
	if cfg.Resources.UnitCount <= 0 || cfg.Resources.TableCount <= 0 {
		return fmt.Errorf("config: resources pool sizes must be positive")
	}
	if cfg.Tariff.OffSeasonStart < 1 || cfg.Tariff.OffSeasonStart > 12 ||
		cfg.Tariff.OffSeasonEnd < 1 || cfg.Tariff.OffSeasonEnd > 12 {
		return fmt.Errorf("config: tariff off-season months must be in 1..12")
	}
	for _, d := range cfg.Rules.RestDays {
		if d < 0 || d > 6 {
			return fmt.Errorf("config: rules.rest_days values must be in 0..6")
		}
	}
	return nil
}
