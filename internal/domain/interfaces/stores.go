package interfaces

import domaintypes "transportkeys/internal/domain/types"

// KeySetStore persists key sets for all contacts and transports.
type KeySetStore interface {
	SaveKeySet(ks domaintypes.KeySet) error
	LoadKeySet(id domaintypes.KeySetID) (domaintypes.KeySet, bool, error)
	LoadKeySets() ([]domaintypes.KeySet, error)
	RemoveKeySet(id domaintypes.KeySetID) error
}
