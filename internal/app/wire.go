package app

import (
	"io"
	"os"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
	"transportkeys/internal/observability"
	"transportkeys/internal/protocol/transport"
	"transportkeys/internal/services/keymanager"
	"transportkeys/internal/store"
)

// Wire bundles the store, services and observability for the CLI.
type Wire struct {
	Config  Config
	Store   domain.KeySetStore
	Crypto  *transport.Crypto
	Keys    *keymanager.Service
	Log     *observability.Logger
	Metrics *observability.Metrics

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg and loads the stored key
// sets. cfg must already be resolved.
func NewWire(cfg Config) (*Wire, error) {
	log := observability.NewLogger("transportkeys", cfg.Version, os.Stderr)
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()

	w := &Wire{
		Config:  cfg,
		Crypto:  transport.New(crypto.Blake2bDeriver{}),
		Log:     log,
		Metrics: metrics,
	}

	switch cfg.Store {
	case StoreBolt:
		bs, err := store.OpenKeySetBoltStore(cfg.Home)
		if err != nil {
			return nil, err
		}
		w.Store, w.closer = bs, bs
	default:
		var opts []store.FileStoreOption
		if cfg.Passphrase != "" {
			opts = append(opts, store.WithPassphrase(cfg.Passphrase))
		}
		w.Store = store.NewKeySetFileStore(cfg.Home, opts...)
	}

	w.Keys = keymanager.New(w.Crypto, w.Store,
		keymanager.WithPeriodLength(cfg.PeriodLength),
		keymanager.WithLogger(log),
		keymanager.WithMetrics(metrics),
	)
	if err := w.Keys.Load(); err != nil {
		_ = w.Close()
		return nil, err
	}
	return w, nil
}

// Close releases the store.
func (w *Wire) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
