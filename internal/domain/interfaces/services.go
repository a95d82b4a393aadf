package interfaces

import domaintypes "transportkeys/internal/domain/types"

// KeyManager owns the live key sets and hands out stream contexts.
type KeyManager interface {
	AddContact(
		contact domaintypes.ContactID,
		transport domaintypes.TransportID,
		rootKey domaintypes.SecretKey,
		alice bool,
		active bool,
	) (domaintypes.KeySetID, error)
	AddStaticContact(
		contact domaintypes.ContactID,
		transport domaintypes.TransportID,
		rootKey domaintypes.SecretKey,
		alice bool,
	) (domaintypes.KeySetID, error)
	ActivateKeys(id domaintypes.KeySetID) error
	RemoveContact(contact domaintypes.ContactID) error

	GetStreamContext(
		contact domaintypes.ContactID,
		transport domaintypes.TransportID,
	) (domaintypes.StreamContext, error)
	RecognizeTag(
		transport domaintypes.TransportID,
		tag []byte,
	) (domaintypes.StreamContext, bool, error)

	RotateAll() error
	KeySets() []domaintypes.KeySet
}
