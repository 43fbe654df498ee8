package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Providers struct {
		AlphaVantageKey string `yaml:"alpha_vantage_key"`
		TwelveDataKey   string `yaml:"twelve_data_key"`
	} `yaml:"providers"`
	Email struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		User string `yaml:"user"`
		Pass string `yaml:"pass"`
		From string `yaml:"from"`
		To   string `yaml:"to"`
	} `yaml:"email"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr       string `yaml:"addr"`
		ScanSecret string `yaml:"scan_secret"`
	} `yaml:"http"`
	Budget struct {
		AnnualBudget      float64 `yaml:"annual_budget"`
		MonthlyMaxBudget  float64 `yaml:"monthly_max_budget"`
		MaxPositionSize   float64 `yaml:"max_position_size"`
		MinCombo20        float64 `yaml:"min_combo20"`
		MinCombo50        float64 `yaml:"min_combo50"`
		MinSignalStrength int     `yaml:"min_signal_strength"`
	} `yaml:"budget"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		cfg.Providers.AlphaVantageKey = v
	}
	if v := os.Getenv("TWELVE_DATA_API_KEY"); v != "" {
		cfg.Providers.TwelveDataKey = v
	}
	if v := os.Getenv("EMAIL_HOST"); v != "" {
		cfg.Email.Host = v
	}
	if v := os.Getenv("EMAIL_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Email.Port = p
		}
	}
	if v := os.Getenv("EMAIL_USER"); v != "" {
		cfg.Email.User = v
	}
	if v := os.Getenv("EMAIL_PASS"); v != "" {
		cfg.Email.Pass = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Email.From = v
	}
	if v := os.Getenv("USER_EMAIL"); v != "" {
		cfg.Email.To = v
	}
	if v := os.Getenv("CRON_SCAN"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CRON_SECRET"); v != "" {
		cfg.HTTP.ScanSecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 9 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/signalscout.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}
	if cfg.Budget.AnnualBudget == 0 {
		cfg.Budget.AnnualBudget = 1000
	}
	if cfg.Budget.MonthlyMaxBudget == 0 {
		cfg.Budget.MonthlyMaxBudget = 100
	}
	if cfg.Budget.MaxPositionSize == 0 {
		cfg.Budget.MaxPositionSize = 200
	}
	if cfg.Budget.MinCombo20 == 0 {
		cfg.Budget.MinCombo20 = 0.95
	}
	if cfg.Budget.MinCombo50 == 0 {
		cfg.Budget.MinCombo50 = 0.92
	}
	if cfg.Budget.MinSignalStrength == 0 {
		cfg.Budget.MinSignalStrength = 70
	}

	return cfg, nil
}

// Validate checks the fields the scanner cannot run without.
func (c *Config) Validate() error {
	if c.Budget.AnnualBudget <= 0 {
		return fmt.Errorf("budget.annual_budget must be positive")
	}
	if c.Budget.MonthlyMaxBudget <= 0 {
		return fmt.Errorf("budget.monthly_max_budget must be positive")
	}
	if c.Budget.MaxPositionSize <= 0 {
		return fmt.Errorf("budget.max_position_size must be positive")
	}
	if c.EmailEnabled() && c.Email.From == "" {
		return fmt.Errorf("email.from is required when email is configured")
	}
	return nil
}

// EmailEnabled reports whether enough email settings are present to send.
func (c *Config) EmailEnabled() bool {
	return c.Email.Host != "" && c.Email.To != ""
}
