package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds server settings
type Config struct {
	Addr     string `yaml:"addr" json:"addr"`           // Listen address, e.g. ":8080"
	DBDriver string `yaml:"db_driver" json:"db_driver"` // "sqlite" or "postgres"
	DBPath   string `yaml:"db_path" json:"db_path"`     // SQLite database file
	DBURL    string `yaml:"db_url" json:"db_url"`       // Postgres connection URL

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level"`     // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file"`       // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	dbPath := ""
	logPath := ""
	if home != "" {
		dbPath = filepath.Join(home, ".taskboard", "taskboard.db")
		logPath = filepath.Join(home, ".taskboard", "logs", "taskboard.log")
	}

	return &Config{
		Addr:       getEnv("TASKBOARD_ADDR", ":8080"),
		DBDriver:   getEnv("TASKBOARD_DB_DRIVER", "sqlite"),
		DBPath:     getEnv("TASKBOARD_DB_PATH", dbPath),
		DBURL:      getEnv("TASKBOARD_DB_URL", "postgres://localhost:5432/taskboard?sslmode=disable"),
		LogLevel:   getEnv("TASKBOARD_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("TASKBOARD_LOG_FILE", logPath),
		LogConsole: getEnv("TASKBOARD_LOG_CONSOLE", "true") == "true",
	}
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DBURL
	}
	return c.DBPath
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Load loads config from ~/.taskboard/config.yaml
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".taskboard", "config.yaml")

	// Check if exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Return defaults if no config
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.taskboard/config.yaml
func (c *Config) Save() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	configDir := filepath.Join(home, ".taskboard")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
