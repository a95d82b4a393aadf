package store

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"

	"transportkeys/internal/domain"
)

const boltFilename = "keysets.db"

var bucketKeySets = []byte("keysets")

// KeySetBoltStore persists key sets in a Bolt database, one JSON value per
// key set.
type KeySetBoltStore struct {
	db *bolt.DB
}

// OpenKeySetBoltStore opens (or creates) the database under dir.
func OpenKeySetBoltStore(dir string) (*KeySetBoltStore, error) {
	path := filepath.Join(filepath.Clean(dir), boltFilename)
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketKeySets)
		return e
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &KeySetBoltStore{db: db}, nil
}

// Close releases the database file lock.
func (s *KeySetBoltStore) Close() error { return s.db.Close() }

// SaveKeySet inserts or replaces ks.
func (s *KeySetBoltStore) SaveKeySet(ks domain.KeySet) error {
	v, err := json.Marshal(ks)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketKeySets)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		return bk.Put([]byte(ks.ID), v)
	})
}

// LoadKeySet retrieves the key set with the given id.
func (s *KeySetBoltStore) LoadKeySet(id domain.KeySetID) (domain.KeySet, bool, error) {
	var (
		ks domain.KeySet
		ok bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketKeySets)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		v := bk.Get([]byte(id))
		if v == nil {
			return nil
		}
		ok = true
		return json.Unmarshal(v, &ks)
	})
	return ks, ok, err
}

// LoadKeySets returns every stored key set ordered by id.
func (s *KeySetBoltStore) LoadKeySets() ([]domain.KeySet, error) {
	var out []domain.KeySet
	err := s.db.View(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketKeySets)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		return bk.ForEach(func(_, v []byte) error {
			var ks domain.KeySet
			if err := json.Unmarshal(v, &ks); err != nil {
				return err
			}
			out = append(out, ks)
			return nil
		})
	})
	return out, err
}

// RemoveKeySet deletes the key set with the given id.
func (s *KeySetBoltStore) RemoveKeySet(id domain.KeySetID) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		bk := tx.Bucket(bucketKeySets)
		if bk == nil {
			return bolt.ErrBucketNotFound
		}
		if bk.Get([]byte(id)) == nil {
			return ErrNotFound
		}
		return bk.Delete([]byte(id))
	})
}

// Compile-time assertion that KeySetBoltStore implements domain.KeySetStore.
var _ domain.KeySetStore = (*KeySetBoltStore)(nil)
