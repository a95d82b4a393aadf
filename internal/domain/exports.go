package domain

import (
	interfaces "transportkeys/internal/domain/interfaces"
	types "transportkeys/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SecretKey           = types.SecretKey
	TransportID         = types.TransportID
	ContactID           = types.ContactID
	KeySetID            = types.KeySetID
	IncomingKeys        = types.IncomingKeys
	OutgoingKeys        = types.OutgoingKeys
	TransportKeys       = types.TransportKeys
	StaticTransportKeys = types.StaticTransportKeys
	ReorderingWindow    = types.ReorderingWindow
	KeySet              = types.KeySet
	StreamContext       = types.StreamContext
	StreamHeader        = types.StreamHeader
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyDeriver  = interfaces.KeyDeriver
	KeySetStore = interfaces.KeySetStore
	KeyManager  = interfaces.KeyManager
)

// Constants re-exported from the types subpackage.
const (
	SecretKeyLength      = types.SecretKeyLength
	ReorderingWindowSize = types.ReorderingWindowSize
)
