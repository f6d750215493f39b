package config

import (
	"fmt"
	"time"
)

const memoryPath = ":memory:"

// DatabaseConfig selects where the ledger is written. The default is an
// in-memory sqlite database that lives as long as the process.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// sqlite file, or ":memory:"
	Path string `mapstructure:"path"`

	// postgres; URL wins over the individual fields
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Print every SQL statement through gorm's logger
	LogQueries bool `mapstructure:"log_queries"`

	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig tunes the postgres connection pool
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1,ltefield=MaxOpen"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// IsInMemory reports whether the ledger disappears with the process
func (d DatabaseConfig) IsInMemory() bool {
	return d.Type == "sqlite" && (d.Path == "" || d.Path == memoryPath)
}

// DSN is the connection string handed to the gorm driver
func (d DatabaseConfig) DSN() string {
	switch {
	case d.Type == "sqlite" && d.Path == "":
		return memoryPath
	case d.Type == "sqlite":
		return d.Path
	case d.URL != "":
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
