package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config drives one dbmigrate invocation: where the change files live, which
// database holds the applied-change log, and how the tool reports.
type Config struct {
	MigrationsDir string   `yaml:"migrations_dir"`
	ScriptsDir    string   `yaml:"scripts_dir"`
	LogTable      string   `yaml:"log_table"`
	LogLevel      string   `yaml:"log_level"`
	HTTPAddress   string   `yaml:"http_addr"`
	Database      DBConfig `yaml:"database"`
}

// DBConfig selects the applied-change log backend.
type DBConfig struct {
	Provider string `yaml:"provider"`
	DSN      string `yaml:"dsn"`
}

// Load reads a YAML config file, applies DBMIGRATE_* environment overrides
// and defaults, and validates the result.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Database.Provider = getEnv("DBMIGRATE_DB_PROVIDER", c.Database.Provider)
	c.Database.DSN = getEnv("DBMIGRATE_DB_DSN", c.Database.DSN)
	c.LogLevel = getEnv("DBMIGRATE_LOG_LEVEL", c.LogLevel)
	c.HTTPAddress = getEnv("DBMIGRATE_HTTP_ADDR", c.HTTPAddress)
	c.LogTable = getEnv("DBMIGRATE_LOG_TABLE", c.LogTable)
}

func (c *Config) applyDefaults() {
	if c.MigrationsDir == "" {
		c.MigrationsDir = "migrations"
	}
	if c.ScriptsDir == "" {
		c.ScriptsDir = "scripts"
	}
	if c.LogTable == "" {
		c.LogTable = "dbmigrate_log"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.HTTPAddress == "" {
		c.HTTPAddress = ":8080"
	}
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite"
	}
	if c.Database.Provider == "sqlite" && c.Database.DSN == "" {
		c.Database.DSN = "dbmigrate.db"
	}
}

func (c Config) Validate() error {
	switch strings.ToLower(c.Database.Provider) {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database provider %q", c.Database.Provider)
	}
	if c.Database.DSN == "" {
		return errors.New("database dsn is required (config database.dsn or DBMIGRATE_DB_DSN)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
