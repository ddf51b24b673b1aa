// config — загрузка конфигурации клиента kueater.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
//
// Поверх файла всегда накладывается ENV.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// MaxMenuPageSize — верхняя граница размера страницы меню.
const MaxMenuPageSize = 100

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	API      APIConfig      `yaml:"api"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
	Paging   PagingConfig   `yaml:"paging"`
	Identity IdentityConfig `yaml:"identity"`
}

// HTTPConfig — локальный REST-фасад для UI-оболочки.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50095"`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// APIConfig — удалённое API kueater.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"   env:"API_BASE_URL"`
	UserAgent string `yaml:"user_agent" env:"API_USER_AGENT" env-default:"kueater-client"`
}

// TimeoutConfig — Request ограничивает один исходящий вызов,
// Service — обработку одного запроса фасада.
type TimeoutConfig struct {
	Request time.Duration `yaml:"request" env:"REQUEST_TIMEOUT" env-default:"15s"`
	Service time.Duration `yaml:"service" env:"SERVICE"         env-default:"20s"`
}

// PagingConfig — размер страницы основного списка меню.
type PagingConfig struct {
	MenuPageSize int `yaml:"menu_page_size" env:"MENU_PAGE_SIZE" env-default:"10"`
}

// IdentityConfig — статическая идентичность для запусков без UI.
type IdentityConfig struct {
	UserID string `yaml:"user_id" env:"USER_ID"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	read := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		if err := cfg.validate(); err != nil {
			return nil, err
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return read(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return read(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		return read("local.yaml")
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) url")
	}

	if c.Paging.MenuPageSize <= 0 {
		return fmt.Errorf("paging.menu_page_size must be > 0")
	}

	if c.Paging.MenuPageSize > MaxMenuPageSize {
		return fmt.Errorf("paging.menu_page_size must be <= %d", MaxMenuPageSize)
	}

	if c.Timeouts.Request <= 0 {
		return fmt.Errorf("timeouts.request must be > 0")
	}

	if c.Timeouts.Service <= 0 {
		return fmt.Errorf("timeouts.service must be > 0")
	}

	return nil
}
