package store_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"transportkeys/internal/domain"
	"transportkeys/internal/store"
)

func sampleKeySet(id string) domain.KeySet {
	keys := domain.TransportKeys{
		TransportID:      "lan",
		PreviousIncoming: domain.IncomingKeys{TagKey: domain.SecretKey{1}, HeaderKey: domain.SecretKey{2}, TimePeriod: 9},
		CurrentIncoming:  domain.IncomingKeys{TagKey: domain.SecretKey{3}, HeaderKey: domain.SecretKey{4}, TimePeriod: 10},
		NextIncoming:     domain.IncomingKeys{TagKey: domain.SecretKey{5}, HeaderKey: domain.SecretKey{6}, TimePeriod: 11},
		CurrentOutgoing:  domain.OutgoingKeys{TagKey: domain.SecretKey{7}, HeaderKey: domain.SecretKey{8}, TimePeriod: 10, Active: true},
	}
	return domain.KeySet{
		ID:                    domain.KeySetID(id),
		ContactID:             "bob",
		TransportID:           "lan",
		Keys:                  &keys,
		OutgoingStreamCounter: 3,
		Windows: map[int64]domain.ReorderingWindow{
			10: {Base: 2, Seen: 0b101},
		},
	}
}

func assertSameKeySet(t *testing.T, want, got domain.KeySet) {
	t.Helper()
	if got.ID != want.ID || got.ContactID != want.ContactID || got.OutgoingStreamCounter != want.OutgoingStreamCounter {
		t.Fatalf("metadata mismatch: got %+v", got)
	}
	if got.Keys == nil || *got.Keys != *want.Keys {
		t.Fatalf("keys mismatch after load")
	}
	if got.Windows[10] != want.Windows[10] {
		t.Fatalf("window mismatch: got %+v", got.Windows)
	}
}

func TestKeySetFileStore_SaveLoad_OK(t *testing.T) {
	home := t.TempDir()
	var s domain.KeySetStore = store.NewKeySetFileStore(home)

	ks := sampleKeySet("a")
	if err := s.SaveKeySet(ks); err != nil {
		t.Fatalf("save key set: %v", err)
	}
	got, ok, err := s.LoadKeySet("a")
	if err != nil || !ok {
		t.Fatalf("load key set: ok=%v err=%v", ok, err)
	}
	assertSameKeySet(t, ks, got)

	if _, ok, err := s.LoadKeySet("missing"); err != nil || ok {
		t.Fatalf("want missing key set, got ok=%v err=%v", ok, err)
	}
}

func TestKeySetFileStore_ListAndRemove(t *testing.T) {
	s := store.NewKeySetFileStore(t.TempDir())
	for _, id := range []string{"c", "a", "b"} {
		if err := s.SaveKeySet(sampleKeySet(id)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	all, err := s.LoadKeySets()
	if err != nil {
		t.Fatalf("load all: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unexpected listing: %+v", all)
	}

	if err := s.RemoveKeySet("b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveKeySet("b"); err != store.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	all, _ = s.LoadKeySets()
	if len(all) != 2 {
		t.Fatalf("want 2 key sets, got %d", len(all))
	}
}

func TestKeySetFileStore_EmptyDirectory(t *testing.T) {
	s := store.NewKeySetFileStore(t.TempDir())
	all, err := s.LoadKeySets()
	if err != nil {
		t.Fatalf("load from empty dir: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("want no key sets, got %d", len(all))
	}
}

func TestKeySetFileStore_Sealed(t *testing.T) {
	home := t.TempDir()
	s := store.NewKeySetFileStore(home, store.WithPassphrase("correct horse"), store.WithScryptCost(1<<10, 8, 1))

	ks := sampleKeySet("a")
	if err := s.SaveKeySet(ks); err != nil {
		t.Fatalf("save key set: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, "keysets.json")); !os.IsNotExist(err) {
		t.Fatal("plaintext file must not be written when a passphrase is set")
	}
	raw, err := os.ReadFile(filepath.Join(home, "keysets.json.enc"))
	if err != nil {
		t.Fatalf("read sealed file: %v", err)
	}
	if bytes.Contains(raw, []byte(`"contact_id"`)) {
		t.Fatal("sealed file leaks plaintext")
	}

	got, ok, err := s.LoadKeySet("a")
	if err != nil || !ok {
		t.Fatalf("load key set: ok=%v err=%v", ok, err)
	}
	assertSameKeySet(t, ks, got)
}

func TestKeySetFileStore_WrongPassphrase_Fails(t *testing.T) {
	home := t.TempDir()
	s := store.NewKeySetFileStore(home, store.WithPassphrase("correct"), store.WithScryptCost(1<<10, 8, 1))
	if err := s.SaveKeySet(sampleKeySet("a")); err != nil {
		t.Fatalf("save key set: %v", err)
	}

	wrong := store.NewKeySetFileStore(home, store.WithPassphrase("wrong"))
	if _, err := wrong.LoadKeySets(); err == nil {
		t.Fatal("expected error with wrong passphrase")
	}
}

func TestKeySetBoltStore_RoundTrip(t *testing.T) {
	s, err := store.OpenKeySetBoltStore(t.TempDir())
	if err != nil {
		t.Fatalf("open bolt store: %v", err)
	}
	defer s.Close()

	ks := sampleKeySet("a")
	if err := s.SaveKeySet(ks); err != nil {
		t.Fatalf("save key set: %v", err)
	}
	if err := s.SaveKeySet(sampleKeySet("b")); err != nil {
		t.Fatalf("save key set: %v", err)
	}
	got, ok, err := s.LoadKeySet("a")
	if err != nil || !ok {
		t.Fatalf("load key set: ok=%v err=%v", ok, err)
	}
	assertSameKeySet(t, ks, got)

	all, err := s.LoadKeySets()
	if err != nil || len(all) != 2 {
		t.Fatalf("load all: n=%d err=%v", len(all), err)
	}
	if err := s.RemoveKeySet("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveKeySet("a"); err != store.ErrNotFound {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, ok, _ := s.LoadKeySet("a"); ok {
		t.Fatal("key set still present after remove")
	}
}
