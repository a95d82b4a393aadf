// Package store provides persistence for transport key sets.
//
// It contains two implementations of domain.KeySetStore:
//   - KeySetFileStore keeps all key sets in one JSON file, written atomically
//     and, when a passphrase is configured, sealed with scrypt and
//     ChaCha20-Poly1305.
//   - KeySetBoltStore keeps one JSON value per key set in a Bolt bucket.
//
// All methods are safe for concurrent use.
package store
