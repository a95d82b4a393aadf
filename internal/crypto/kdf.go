package crypto

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"

	"transportkeys/internal/domain"
)

// Blake2bDeriver implements domain.KeyDeriver with keyed BLAKE2b-256.
//
// The label and each input are absorbed in order, each preceded by its
// length as a big-endian uint32.
type Blake2bDeriver struct{}

// DeriveKey derives a new key from key, label and inputs.
func (Blake2bDeriver) DeriveKey(label string, key domain.SecretKey, inputs ...[]byte) domain.SecretKey {
	h, err := blake2b.New256(key[:])
	if err != nil {
		// Only returned for keys longer than 64 bytes.
		panic(err)
	}
	writeLengthPrefixed(h, []byte(label))
	for _, in := range inputs {
		writeLengthPrefixed(h, in)
	}
	var out domain.SecretKey
	h.Sum(out[:0])
	return out
}

// NewTagPRF returns the keyed PRF used for connection tags.
func NewTagPRF(key []byte) (hash.Hash, error) {
	return blake2b.New256(key)
}

func writeLengthPrefixed(h hash.Hash, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// Compile-time assertion that Blake2bDeriver implements domain.KeyDeriver.
var _ domain.KeyDeriver = Blake2bDeriver{}
