package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	UserService    IntegrationConfig    `toml:"user_service"`
	CatalogService IntegrationConfig    `toml:"catalog_service"`
	RabbitMQ       RabbitMQConfig       `toml:"rabbitmq"`
	Auth           AuthConfig           `toml:"auth"`
	Slots          SlotsConfig          `toml:"slots"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File   string `toml:"file"`
	Level  string `toml:"level"`
	Format string `toml:"format"` // text | json
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// TimeoutDuration возвращает таймаут как time.Duration
func (i IntegrationConfig) TimeoutDuration() time.Duration {
	return time.Duration(i.Timeout) * time.Second
}

type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type AuthConfig struct {
	// Если задан, идентичность пользователя берётся из Bearer JWT (HS256),
	// иначе из заголовков X-User-ID / X-User-Role, проставляемых gateway
	JWTSecret string `toml:"jwt_secret"`
}

type SlotsConfig struct {
	Timezone          string `toml:"timezone"`
	MaxGenerationDays int    `toml:"max_generation_days"`
}

// Location возвращает часовой пояс генерации слотов
func (s SlotsConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Load загружает конфигурацию из TOML-файла
// Перед разбором подгружается необязательный .env; секреты из окружения
// (DB_PASSWORD, JWT_SECRET, RABBITMQ_URL) имеют приоритет над файлом
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc-servicedesk",
		},
		UserService:    IntegrationConfig{Timeout: 5},
		CatalogService: IntegrationConfig{Timeout: 5},
		RabbitMQ: RabbitMQConfig{
			Exchange: "servicedesk.events",
		},
		Slots: SlotsConfig{
			Timezone:          "UTC",
			MaxGenerationDays: 92,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.RabbitMQ.URL = v
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("config: server.http_port must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if c.UserService.URL == "" {
		return fmt.Errorf("config: user_service.url is required")
	}
	if c.CatalogService.URL == "" {
		return fmt.Errorf("config: catalog_service.url is required")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("config: rabbitmq.url is required when rabbitmq is enabled")
	}
	if c.Slots.MaxGenerationDays <= 0 {
		return fmt.Errorf("config: slots.max_generation_days must be positive")
	}
	if _, err := c.Slots.Location(); err != nil {
		return fmt.Errorf("config: invalid slots.timezone %q: %v", c.Slots.Timezone, err)
	}
	if c.Logs.Format != "text" && c.Logs.Format != "json" {
		return fmt.Errorf("config: logs.format must be text or json")
	}
	return nil
}
