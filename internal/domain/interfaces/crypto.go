package interfaces

import domaintypes "transportkeys/internal/domain/types"

// KeyDeriver is the keyed pseudorandom function used for every key
// derivation. Outputs for distinct labels or inputs must be independent.
type KeyDeriver interface {
	DeriveKey(label string, key domaintypes.SecretKey, inputs ...[]byte) domaintypes.SecretKey
}
