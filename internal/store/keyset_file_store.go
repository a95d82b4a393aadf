package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"transportkeys/internal/domain"
)

const (
	keySetsFilename       = "keysets.json"
	sealedKeySetsFilename = "keysets.json.enc"
)

// KeySetFileStore persists all key sets in a single file under dir.
type KeySetFileStore struct {
	dir        string
	passphrase string
	params     scryptParams
	mu         sync.Mutex
}

// FileStoreOption configures a KeySetFileStore.
type FileStoreOption func(*KeySetFileStore)

// WithPassphrase seals the key set file with a key derived from passphrase.
func WithPassphrase(passphrase string) FileStoreOption {
	return func(s *KeySetFileStore) { s.passphrase = passphrase }
}

// WithScryptCost overrides the scrypt cost parameters for new files.
func WithScryptCost(n, r, p int) FileStoreOption {
	return func(s *KeySetFileStore) { s.params = scryptParams{N: n, R: r, P: p} }
}

// NewKeySetFileStore returns a KeySetFileStore rooted at dir.
func NewKeySetFileStore(dir string, opts ...FileStoreOption) *KeySetFileStore {
	s := &KeySetFileStore{dir: dir, params: defaultScryptParams}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *KeySetFileStore) path() string {
	if s.passphrase != "" {
		return filepath.Join(s.dir, sealedKeySetsFilename)
	}
	return filepath.Join(s.dir, keySetsFilename)
}

func (s *KeySetFileStore) load() (map[domain.KeySetID]domain.KeySet, error) {
	m := map[domain.KeySetID]domain.KeySet{}
	if err := readSealedJSON(s.path(), s.passphrase, &m); err != nil {
		return nil, fmt.Errorf("read key sets: %w", err)
	}
	return m, nil
}

// SaveKeySet inserts or replaces ks.
func (s *KeySetFileStore) SaveKeySet(ks domain.KeySet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	m[ks.ID] = ks
	return writeSealedJSON(s.path(), s.passphrase, s.params, m, 0o600)
}

// LoadKeySet retrieves the key set with the given id.
func (s *KeySetFileStore) LoadKeySet(id domain.KeySetID) (domain.KeySet, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.KeySet{}, false, err
	}
	ks, ok := m[id]
	return ks, ok, nil
}

// LoadKeySets returns every stored key set ordered by id.
func (s *KeySetFileStore) LoadKeySets() ([]domain.KeySet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]domain.KeySet, 0, len(m))
	for _, ks := range m {
		out = append(out, ks)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// RemoveKeySet deletes the key set with the given id.
func (s *KeySetFileStore) RemoveKeySet(id domain.KeySetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := m[id]; !ok {
		return ErrNotFound
	}
	delete(m, id)
	return writeSealedJSON(s.path(), s.passphrase, s.params, m, 0o600)
}

// Compile-time assertion that KeySetFileStore implements domain.KeySetStore.
var _ domain.KeySetStore = (*KeySetFileStore)(nil)
