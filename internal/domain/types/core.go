package types

// TransportID names a transport type, e.g. "lan" or "tor". Its UTF-8 bytes
// are fed into key derivation, so the value must be stable across releases.
type TransportID string

// String returns the string form of the transport identifier.
func (id TransportID) String() string { return string(id) }

// Bytes returns the UTF-8 encoding used as derivation input.
func (id TransportID) Bytes() []byte { return []byte(id) }

// ContactID identifies the peer a key set is shared with.
type ContactID string

// String returns the string form of the contact identifier.
func (id ContactID) String() string { return string(id) }

// KeySetID uniquely identifies a persisted key set.
type KeySetID string

// String returns the string form of the key set identifier.
func (id KeySetID) String() string { return string(id) }
