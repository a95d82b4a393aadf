package types

import (
	"encoding/hex"
	"fmt"
)

// SecretKeyLength is the size in bytes of every symmetric key handled here.
const SecretKeyLength = 32

// SecretKey is a fixed-length symmetric key. Comparable with ==.
type SecretKey [SecretKeyLength]byte

// Slice returns the key as a []byte.
func (k SecretKey) Slice() []byte { return k[:] }

// IsZero reports whether every byte of the key is zero.
func (k SecretKey) IsZero() bool { return k == SecretKey{} }

// Wipe zeroes the key in place.
func (k *SecretKey) Wipe() {
	for i := range k {
		k[i] = 0
	}
}

// MarshalText encodes the key as lowercase hex.
func (k SecretKey) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(SecretKeyLength))
	hex.Encode(out, k[:])
	return out, nil
}

// UnmarshalText decodes a hex key produced by MarshalText.
func (k *SecretKey) UnmarshalText(text []byte) error {
	if hex.DecodedLen(len(text)) != SecretKeyLength {
		return fmt.Errorf("secret key: want %d hex chars, got %d", 2*SecretKeyLength, len(text))
	}
	_, err := hex.Decode(k[:], text)
	return err
}
