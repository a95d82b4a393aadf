// Package crypto is the cryptography provider for transport key derivation.
//
// Contents
//
//   - Keyed BLAKE2b-256 key derivation with length-prefixed label and inputs
//     (Blake2bDeriver)
//   - The keyed PRF used to compute connection tags (NewTagPRF)
//   - Secret key generation and parsing (NewSecretKey, ParseSecretKey)
//   - Short BLAKE3 fingerprints of keys for logs and CLI output (KeyFingerprint)
//
// # Notes
//
// Derivation is deterministic: both peers must compute identical keys from
// identical inputs, so the input encoding in DeriveKey is part of the wire
// format and must not change.
package crypto
