package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Stores    StoresConfig    `yaml:"stores"`
	TradeLog  TradeLogConfig  `yaml:"trade_log"`
	Web       WebConfig       `yaml:"web"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type StoresConfig struct {
	PriceDB string `yaml:"price_db"`
	EventDB string `yaml:"event_db"`
}

type TradeLogConfig struct {
	Path string `yaml:"path"`
}

type WebConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug *bool  `yaml:"debug"`
}

type DashboardConfig struct {
	Title           string   `yaml:"title"`
	Tickers         []string `yaml:"tickers"`
	Platforms       []string `yaml:"platforms"`
	DefaultTicker   string   `yaml:"default_ticker"`
	DefaultPlatform string   `yaml:"default_platform"`
	DiscoverTickers bool     `yaml:"discover_tickers"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the YAML file at path, loads .env into the environment and applies
// LCF_* overrides on top. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// .env is optional
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("LCF_PRICE_DB"); v != "" {
		cfg.Stores.PriceDB = v
	}
	if v := os.Getenv("LCF_EVENT_DB"); v != "" {
		cfg.Stores.EventDB = v
	}
	if v := os.Getenv("LCF_TRADE_LOG"); v != "" {
		cfg.TradeLog.Path = v
	}
	if v := os.Getenv("LCF_WEB_HOST"); v != "" {
		cfg.Web.Host = v
	}
	if v := os.Getenv("LCF_WEB_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LCF_WEB_PORT %q: %w", v, err)
		}
		cfg.Web.Port = port
	}
	if v := os.Getenv("LCF_DEBUG"); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LCF_DEBUG %q: %w", v, err)
		}
		cfg.Web.Debug = &debug
	}
	if v := os.Getenv("LCF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Stores.PriceDB == "" {
		cfg.Stores.PriceDB = "tradingData.db"
	}
	if cfg.Stores.EventDB == "" {
		cfg.Stores.EventDB = "miscData.db"
	}
	if cfg.TradeLog.Path == "" {
		cfg.TradeLog.Path = "tradeLog.log"
	}
	if cfg.Web.Host == "" {
		cfg.Web.Host = "127.0.0.1"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8050
	}
	if cfg.Web.Debug == nil {
		debug := true
		cfg.Web.Debug = &debug
	}
	if cfg.Dashboard.Title == "" {
		cfg.Dashboard.Title = "LCF"
	}
	if len(cfg.Dashboard.Tickers) == 0 {
		cfg.Dashboard.Tickers = []string{"ETHUSD", "TQQQ"}
	}
	if len(cfg.Dashboard.Platforms) == 0 {
		cfg.Dashboard.Platforms = []string{"Alpaca", "Binance"}
	}
	if cfg.Dashboard.DefaultTicker == "" {
		cfg.Dashboard.DefaultTicker = cfg.Dashboard.Tickers[0]
	}
	if cfg.Dashboard.DefaultPlatform == "" {
		cfg.Dashboard.DefaultPlatform = "Binance"
		if !slices.Contains(cfg.Dashboard.Platforms, "Binance") {
			cfg.Dashboard.DefaultPlatform = cfg.Dashboard.Platforms[0]
		}
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Stores.PriceDB == "" {
		return fmt.Errorf("stores.price_db is required")
	}
	if c.Stores.EventDB == "" {
		return fmt.Errorf("stores.event_db is required")
	}
	if c.TradeLog.Path == "" {
		return fmt.Errorf("trade_log.path is required")
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return fmt.Errorf("invalid web.port %d", c.Web.Port)
	}
	if !slices.Contains(c.Dashboard.Tickers, c.Dashboard.DefaultTicker) {
		return fmt.Errorf("dashboard.default_ticker %q is not in dashboard.tickers", c.Dashboard.DefaultTicker)
	}
	if !slices.Contains(c.Dashboard.Platforms, c.Dashboard.DefaultPlatform) {
		return fmt.Errorf("dashboard.default_platform %q is not in dashboard.platforms", c.Dashboard.DefaultPlatform)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Web.Host, c.Web.Port)
}

func (c *Config) IsDebug() bool {
	return c.Web.Debug != nil && *c.Web.Debug
}

// LogLevel is the configured level, forced to debug when debug mode is on.
func (c *Config) LogLevel() string {
	if c.IsDebug() {
		return "debug"
	}
	return c.Logging.Level
}
