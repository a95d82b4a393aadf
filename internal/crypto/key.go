package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/zeebo/blake3"

	"transportkeys/internal/domain"
	"transportkeys/internal/util/memzero"
)

// ErrBadKeyEncoding is returned when a key string is not 32 bytes of hex or base64.
var ErrBadKeyEncoding = errors.New("secret key must be 32 bytes of hex or base64")

// NewSecretKey returns a fresh random key.
func NewSecretKey() (k domain.SecretKey, err error) {
	_, err = rand.Read(k[:])
	return k, err
}

// ParseSecretKey decodes a key given as hex or standard base64.
func ParseSecretKey(s string) (domain.SecretKey, error) {
	var k domain.SecretKey
	s = strings.TrimSpace(s)

	if b, err := hex.DecodeString(s); err == nil {
		defer memzero.Zero(b)
		if len(b) != domain.SecretKeyLength {
			return k, ErrBadKeyEncoding
		}
		copy(k[:], b)
		return k, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return k, ErrBadKeyEncoding
	}
	defer memzero.Zero(b)
	if len(b) != domain.SecretKeyLength {
		return k, ErrBadKeyEncoding
	}
	copy(k[:], b)
	return k, nil
}

// KeyFingerprint returns a short hex fingerprint of k.
//
// It hashes with BLAKE3 and truncates to 8 bytes (16 hex chars).
func KeyFingerprint(k domain.SecretKey) string {
	sum := blake3.Sum256(k[:])
	return hex.EncodeToString(sum[:8])
}
