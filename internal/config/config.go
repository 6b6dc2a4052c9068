//-------------------------------------------------------------------------
//
// LootBox Admin
//
// Portions copyright (c) 2025 - 2026, LootBox
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for lootbox.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all configuration for lootbox.
type Config struct {
	// Database holds the store connection parameters.
	Database DatabaseConfig `mapstructure:"database"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// LogFile is an optional path for a rotated JSON log file.
	LogFile string `mapstructure:"log_file"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Serve holds configuration for the serve subcommand.
	Serve ServeConfig `mapstructure:"serve"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`
}

// DatabaseConfig holds the static store connection parameters.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`

	// SSLMode is passed through to the driver (disable, require, verify-full...).
	SSLMode string `mapstructure:"sslmode"`

	// ConnectTimeout is the dial timeout in seconds.
	ConnectTimeout int `mapstructure:"connect_timeout"`

	// AuditUserID is recorded by audit triggers as the acting user.
	// Zero leaves mutations unattributed.
	AuditUserID int64 `mapstructure:"audit_user_id"`
}

// InitConfig holds configuration for schema creation and seeding.
type InitConfig struct {
	// Scale multiplies the default row counts.
	Scale float64 `mapstructure:"scale"`

	// Seed makes generated data reproducible.
	Seed uint64 `mapstructure:"seed"`

	// DropExisting drops existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`
}

// ServeConfig holds configuration for the HTTP admin API.
type ServeConfig struct {
	// Addr is the listen address.
	Addr string `mapstructure:"addr"`

	// Metrics exposes /metrics when true.
	Metrics bool `mapstructure:"metrics"`

	// ShutdownTimeout is the graceful shutdown window in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// ReportConfig holds defaults for the report subcommand.
type ReportConfig struct {
	// Format is one of table, json, csv, xlsx.
	Format string `mapstructure:"format"`

	// PageSize is the number of rows printed per page.
	PageSize int `mapstructure:"page_size"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			User:           "lootbox",
			Password:       "lootbox",
			Name:           "lootbox",
			SSLMode:        "disable",
			ConnectTimeout: 5,
		},
		LogLevel: "info",
		Init: InitConfig{
			Scale:        1.0,
			Seed:         42,
			DropExisting: false,
		},
		Serve: ServeConfig{
			Addr:            ":8080",
			Metrics:         true,
			ShutdownTimeout: 15,
		},
		Report: ReportConfig{
			Format:   "table",
			PageSize: 15,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./lootbox.yaml
// 3. ~/.config/lootbox/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Set config name and type
	v.SetConfigName("lootbox")
	v.SetConfigType("yaml")

	// Add config paths
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "lootbox"))
	}

	// Use specific config file if provided
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	// Unmarshal config file values
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// DSN builds a PostgreSQL connection URL from the database parameters.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	if d.Password != "" {
		u.User = url.UserPassword(d.User, d.Password)
	} else {
		u.User = url.User(d.User)
	}

	q := url.Values{}
	if d.SSLMode != "" {
		q.Set("sslmode", d.SSLMode)
	}
	if d.ConnectTimeout > 0 {
		q.Set("connect_timeout", strconv.Itoa(d.ConnectTimeout))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	return nil
}

// ValidateInit checks configuration required for init command.
func (c *Config) ValidateInit() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Init.Scale <= 0 {
		return fmt.Errorf("scale must be greater than zero")
	}
	return nil
}

// ValidateServe checks configuration required for serve command.
func (c *Config) ValidateServe() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	if c.Serve.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown_timeout must be non-negative")
	}
	return nil
}

// ValidateReport checks configuration required for report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch c.Report.Format {
	case "table", "json", "csv", "xlsx":
	default:
		return fmt.Errorf("report format must be one of table, json, csv, xlsx")
	}
	if c.Report.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1")
	}
	return nil
}
