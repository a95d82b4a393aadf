package transport

import (
	"encoding/binary"
	"hash"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
)

// Crypto implements the key rotation engine and the tag codec on top of a
// KeyDeriver.
type Crypto struct {
	kdf    domain.KeyDeriver
	newPRF func(key []byte) (hash.Hash, error)
}

// Option configures a Crypto.
type Option func(*Crypto)

// WithTagPRF replaces the keyed PRF used by EncodeTag.
func WithTagPRF(newPRF func(key []byte) (hash.Hash, error)) Option {
	return func(c *Crypto) { c.newPRF = newPRF }
}

// New returns a Crypto deriving keys with kdf.
func New(kdf domain.KeyDeriver, opts ...Option) *Crypto {
	c := &Crypto{kdf: kdf, newPRF: crypto.NewTagPRF}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Crypto) rotateKey(k domain.SecretKey, timePeriod int64) domain.SecretKey {
	return c.kdf.DeriveKey(RotateLabel, k, uint64Bytes(timePeriod))
}

func (c *Crypto) deriveTagKey(rootKey domain.SecretKey, t domain.TransportID, alice bool) domain.SecretKey {
	label := BobTagLabel
	if alice {
		label = AliceTagLabel
	}
	return c.kdf.DeriveKey(label, rootKey, t.Bytes())
}

func (c *Crypto) deriveHeaderKey(rootKey domain.SecretKey, t domain.TransportID, alice bool) domain.SecretKey {
	label := BobHeaderLabel
	if alice {
		label = AliceHeaderLabel
	}
	return c.kdf.DeriveKey(label, rootKey, t.Bytes())
}

func (c *Crypto) deriveStaticTagKey(rootKey domain.SecretKey, t domain.TransportID, alice bool, timePeriod int64) domain.SecretKey {
	label := BobStaticTagLabel
	if alice {
		label = AliceStaticTagLabel
	}
	return c.kdf.DeriveKey(label, rootKey, t.Bytes(), uint64Bytes(timePeriod))
}

func (c *Crypto) deriveStaticHeaderKey(rootKey domain.SecretKey, t domain.TransportID, alice bool, timePeriod int64) domain.SecretKey {
	label := BobStaticHeaderLabel
	if alice {
		label = AliceStaticHeaderLabel
	}
	return c.kdf.DeriveKey(label, rootKey, t.Bytes(), uint64Bytes(timePeriod))
}

// uint64Bytes encodes v as an unsigned 64-bit big-endian integer.
func uint64Bytes(v int64) []byte {
	b := make([]byte, int64Bytes)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}
