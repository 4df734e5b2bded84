package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ngmaloney/anomaly-terminal/internal/database"
)

// DefaultPath is read when ANOMALY_CONFIG is unset and the file exists
const DefaultPath = "configs/config.yaml"

// Config aggregates runtime configuration for the terminal and the demo service.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Log     LogConfig     `yaml:"log"`
	Journal JournalConfig `yaml:"journal"`
	Demo    DemoConfig    `yaml:"demo"`
}

// ServiceConfig locates the prediction service.
type ServiceConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"` // 0 waits indefinitely
}

// LogConfig controls the slog output.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// JournalConfig controls the SQLite fetch journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DemoConfig controls the local stub prediction service.
type DemoConfig struct {
	Address  string `yaml:"address"`
	FailDays []int  `yaml:"failDays"`
	Seed     int64  `yaml:"seed"`
}

// Load reads configuration from defaults, an optional YAML file, a .env file
// and environment variables, in that order.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path := os.Getenv("ANOMALY_CONFIG"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(DefaultPath); err == nil {
		if err := hydrateFromFile(cfg, DefaultPath); err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("PREDICT_ENDPOINT"); v != "" {
		cfg.Service.Endpoint = v
	}
	if v := os.Getenv("PREDICT_TIMEOUT"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse PREDICT_TIMEOUT: %w", err)
		}
		cfg.Service.Timeout = parsed
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("JOURNAL_ENABLED"); v != "" {
		cfg.Journal.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("JOURNAL_PATH"); v != "" {
		cfg.Journal.Path = v
	}
	if v := os.Getenv("DEMO_ADDRESS"); v != "" {
		cfg.Demo.Address = v
	}
	if v := os.Getenv("DEMO_FAIL_DAYS"); v != "" {
		days, err := parseDays(v)
		if err != nil {
			return fmt.Errorf("parse DEMO_FAIL_DAYS: %w", err)
		}
		cfg.Demo.FailDays = days
	}
	return nil
}

func parseDays(v string) ([]int, error) {
	var days []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		day, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Endpoint: "http://127.0.0.1:8000/predict",
		},
		Log: LogConfig{
			Level: "info",
			File:  "data/anomaly-terminal.log",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    database.DBPath(),
		},
		Demo: DemoConfig{
			Address: "127.0.0.1:8000",
			Seed:    1,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Service.Endpoint))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("service.endpoint must be an absolute URL, got %q", c.Service.Endpoint)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.endpoint scheme must be http or https, got %q", u.Scheme)
	}
	if c.Service.Timeout < 0 {
		return errors.New("service.timeout cannot be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		return errors.New("journal.path cannot be empty when the journal is enabled")
	}
	if strings.TrimSpace(c.Demo.Address) == "" {
		return errors.New("demo.address cannot be empty")
	}
	return nil
}
