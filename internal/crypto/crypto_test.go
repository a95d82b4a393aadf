package crypto_test

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transportkeys/internal/crypto"
	"transportkeys/internal/domain"
)

func testKey(b byte) domain.SecretKey {
	var k domain.SecretKey
	copy(k[:], bytes.Repeat([]byte{b}, domain.SecretKeyLength))
	return k
}

func TestDeriveKey_Deterministic(t *testing.T) {
	var kdf crypto.Blake2bDeriver
	k := testKey(0x42)

	a := kdf.DeriveKey("label", k, []byte("in"))
	b := kdf.DeriveKey("label", k, []byte("in"))
	assert.Equal(t, a, b)
	assert.False(t, a.IsZero())
}

func TestDeriveKey_DomainSeparation(t *testing.T) {
	var kdf crypto.Blake2bDeriver
	k := testKey(0x42)

	base := kdf.DeriveKey("label", k, []byte("in"))
	assert.NotEqual(t, base, kdf.DeriveKey("other", k, []byte("in")), "label must matter")
	assert.NotEqual(t, base, kdf.DeriveKey("label", testKey(0x43), []byte("in")), "key must matter")
	assert.NotEqual(t, base, kdf.DeriveKey("label", k, []byte("in2")), "input must matter")

	// Length prefixes keep input boundaries unambiguous.
	split := kdf.DeriveKey("label", k, []byte("ab"), []byte("c"))
	joined := kdf.DeriveKey("label", k, []byte("a"), []byte("bc"))
	assert.NotEqual(t, split, joined)
	assert.NotEqual(t, kdf.DeriveKey("labelin", k), kdf.DeriveKey("label", k, []byte("in")))
}

func TestNewTagPRF_DigestSize(t *testing.T) {
	k := testKey(1)
	prf, err := crypto.NewTagPRF(k[:])
	require.NoError(t, err)
	assert.Equal(t, 32, prf.Size())
}

func TestNewSecretKey_Random(t *testing.T) {
	a, err := crypto.NewSecretKey()
	require.NoError(t, err)
	b, err := crypto.NewSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestParseSecretKey(t *testing.T) {
	k := testKey(0x5a)

	got, err := crypto.ParseSecretKey(hex.EncodeToString(k[:]))
	require.NoError(t, err)
	assert.Equal(t, k, got)

	got, err = crypto.ParseSecretKey(" " + base64.StdEncoding.EncodeToString(k[:]) + "\n")
	require.NoError(t, err)
	assert.Equal(t, k, got)

	_, err = crypto.ParseSecretKey("abcd")
	assert.ErrorIs(t, err, crypto.ErrBadKeyEncoding)

	_, err = crypto.ParseSecretKey("not a key!")
	assert.ErrorIs(t, err, crypto.ErrBadKeyEncoding)
}

func TestKeyFingerprint(t *testing.T) {
	a := crypto.KeyFingerprint(testKey(1))
	assert.Len(t, a, 16)
	assert.Equal(t, a, crypto.KeyFingerprint(testKey(1)))
	assert.NotEqual(t, a, crypto.KeyFingerprint(testKey(2)))
}
