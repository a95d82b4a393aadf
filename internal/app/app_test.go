package app

import (
	"testing"
	"time"
)

func TestConfig_ResolveFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	t.Setenv(EnvPassphrase, "correct horse")

	cfg := DefaultConfig()
	if err := cfg.Resolve(); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Home != dir || cfg.Passphrase != "correct horse" {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestConfig_ResolveRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown store":      func(c *Config) { c.Store = "sqlite" },
		"bolt with secret":   func(c *Config) { c.Store = StoreBolt; c.Passphrase = "x" },
		"zero period length": func(c *Config) { c.PeriodLength = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Home = t.TempDir()
			mutate(&cfg)
			if err := cfg.Resolve(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewWire_Stores(t *testing.T) {
	for _, backend := range []string{StoreFile, StoreBolt} {
		t.Run(backend, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Home = t.TempDir()
			cfg.Store = backend
			cfg.PeriodLength = time.Hour
			if err := cfg.Resolve(); err != nil {
				t.Fatalf("Resolve: %v", err)
			}

			w, err := NewWire(cfg)
			if err != nil {
				t.Fatalf("NewWire: %v", err)
			}
			var root [32]byte
			root[0] = 9
			if _, err := w.Keys.AddContact("bob", "lan", root, true, true); err != nil {
				t.Fatalf("AddContact: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("Close: %v", err)
			}

			w, err = NewWire(cfg)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer w.Close()
			if n := len(w.Keys.KeySets()); n != 1 {
				t.Fatalf("reloaded %d key sets, want 1", n)
			}
		})
	}
}
