package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"transportkeys/internal/services/keymanager"
)

// Store backends.
const (
	StoreFile = "file"
	StoreBolt = "bolt"
)

// Environment variables consulted when a flag is left empty.
const (
	EnvHome       = "TRANSPORTKEYS_HOME"
	EnvPassphrase = "TRANSPORTKEYS_PASSPHRASE"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home         string        // data directory, e.g. $HOME/.transportkeys
	Store        string        // "file" or "bolt"
	Passphrase   string        // seals the file store when set
	PeriodLength time.Duration // length of one time period
	LogLevel     string        // zerolog level name
	MetricsAddr  string        // daemon listen address
	Version      string
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Store:        StoreFile,
		PeriodLength: keymanager.DefaultPeriodLength,
		LogLevel:     "info",
		MetricsAddr:  "127.0.0.1:9464",
		Version:      "dev",
	}
}

// Resolve fills empty fields from the environment and validates cfg.
func (c *Config) Resolve() error {
	if c.Home == "" {
		c.Home = os.Getenv(EnvHome)
	}
	if c.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.Home = filepath.Join(dir, ".transportkeys")
	}
	if c.Passphrase == "" {
		c.Passphrase = os.Getenv(EnvPassphrase)
	}
	switch c.Store {
	case StoreFile:
	case StoreBolt:
		if c.Passphrase != "" {
			return fmt.Errorf("passphrase is only supported by the %q store", StoreFile)
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.PeriodLength < time.Millisecond {
		return fmt.Errorf("period length %s is too short", c.PeriodLength)
	}
	return os.MkdirAll(c.Home, 0o700)
}
