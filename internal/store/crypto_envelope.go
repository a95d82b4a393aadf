package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"transportkeys/internal/util/memzero"
)

// envelopeFormatVersion is the supported version of the sealed file format.
const envelopeFormatVersion = 1

// envelope is the on-disk JSON structure holding the ciphertext and KDF parameters.
type envelope struct {
	V      int    `json:"v"`
	Salt   []byte `json:"salt"`
	N      int    `json:"scrypt_N"`
	R      int    `json:"scrypt_r"`
	P      int    `json:"scrypt_p"`
	Cipher []byte `json:"cipher"`
}

// scryptParams are the scrypt cost parameters used for new envelopes.
type scryptParams struct{ N, R, P int }

// defaultScryptParams are the tunables for scrypt key derivation.
var defaultScryptParams = scryptParams{N: 1 << 15, R: 8, P: 1}

// envelopeLabel prefixes the associated data of every envelope.
const envelopeLabel = "transportkeys/keysets/v1"

// associatedData binds an envelope to the file it was written as, so a
// sealed file copied over another store file does not open.
func associatedData(name string, salt []byte) []byte {
	ad := make([]byte, 0, len(envelopeLabel)+1+len(name)+1+len(salt))
	ad = append(ad, envelopeLabel...)
	ad = append(ad, 0)
	ad = append(ad, name...)
	ad = append(ad, 0)
	return append(ad, salt...)
}

// seal derives a key from passphrase and seals raw into a JSON envelope
// bound to name.
func seal(passphrase, name string, raw []byte, params scryptParams) ([]byte, error) {
	var salt [16]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return nil, err
	}
	key, err := scrypt.Key([]byte(passphrase), salt[:], params.N, params.R, params.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	// Zero nonce: every seal uses a fresh salt and therefore a fresh key.
	var nonce [chacha20poly1305.NonceSize]byte
	ct := aead.Seal(nil, nonce[:], raw, associatedData(name, salt[:]))

	return json.Marshal(envelope{
		V:      envelopeFormatVersion,
		Salt:   salt[:],
		N:      params.N,
		R:      params.R,
		P:      params.P,
		Cipher: ct,
	})
}

// open decrypts an envelope sealed for name using a key derived from
// passphrase.
func open(passphrase, name string, b []byte) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	if env.V > envelopeFormatVersion {
		return nil, fmt.Errorf("unsupported key store version %d", env.V)
	}

	key, err := scrypt.Key([]byte(passphrase), env.Salt, env.N, env.R, env.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], env.Cipher, associatedData(name, env.Salt))
	if err != nil {
		return nil, errWrongPassphrase
	}
	return pt, nil
}
