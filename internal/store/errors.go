package store

import "errors"

var (
	// ErrNotFound is returned when removing a key set that does not exist.
	ErrNotFound = errors.New("key set not found")

	// errWrongPassphrase is returned when the passphrase is incorrect or the
	// ciphertext has been modified or corrupted.
	errWrongPassphrase = errors.New("wrong passphrase or corrupted key store")
)
