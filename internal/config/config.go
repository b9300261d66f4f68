// Package config loads citeurl.yml via spf13/viper, mirroring
// internal/cli/config/config.go's Load/InProject/GetProjectRoot shape
// generalized to the citation-lookup domain's fields.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the citeurl project configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Store    StoreConfig    `mapstructure:"store"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Sets     []string       `mapstructure:"template_sets"`
}

// ServerConfig configures internal/httpserver.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// RedisConfig configures the response cache backing internal/httpserver.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StoreConfig configures internal/store's database/sql connection.
type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// AuthConfig configures admin-route JWT issuance and verification.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	TokenTTL  string `mapstructure:"token_ttl"`
}

// Load loads configuration from citeurl.yml or citeurl.yaml in the current
// directory, falling back to defaults when no file is present.
func Load() (*Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(configFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// InProject reports whether the current directory holds a citeurl.yml or
// citeurl.yaml file.
func InProject() bool {
	if _, err := os.Stat("citeurl.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("citeurl.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot walks up from the working directory looking for
// citeurl.yml/citeurl.yaml.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "citeurl.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "citeurl.yaml")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a citeurl project (no citeurl.yml found)")
		}
		dir = parent
	}
}
