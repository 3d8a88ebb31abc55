// Package config handles application configuration loading and management.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all application settings.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Designer DesignerConfig `yaml:"designer"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// StorageConfig selects where templates and the cart are kept.
type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database file; empty keeps data in memory
}

// DesignerConfig holds settings of the design surface.
type DesignerConfig struct {
	ScaleFactor float64 `yaml:"scale_factor"` // pixels per meter in the 2D views
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// AuthConfig configures the authorization gate.
type AuthConfig struct {
	Required bool   `yaml:"required"`
	APIKey   string `yaml:"api_key"` // required by POST /api/sessions when set
	User     string `yaml:"user"`    // signed-in desktop user
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: filepath.Join(ConfigDir(), "roomcraft.db"),
		},
		Designer: DesignerConfig{
			ScaleFactor: 50,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Auth: AuthConfig{
			Required: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
