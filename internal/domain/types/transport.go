package types

// IncomingKeys are used to recognise and decrypt streams from the peer
// during TimePeriod.
type IncomingKeys struct {
	TagKey     SecretKey `json:"tag_key"`
	HeaderKey  SecretKey `json:"header_key"`
	TimePeriod int64     `json:"time_period"`
}

// OutgoingKeys are used to tag and encrypt streams sent during TimePeriod.
// Active is set once the keys may be used on the wire.
type OutgoingKeys struct {
	TagKey     SecretKey `json:"tag_key"`
	HeaderKey  SecretKey `json:"header_key"`
	TimePeriod int64     `json:"time_period"`
	Active     bool      `json:"active"`
}

// TransportKeys is the windowed key set of one transport: three consecutive
// incoming periods and the current outgoing period.
//
// PreviousIncoming.TimePeriod == CurrentIncoming.TimePeriod-1 and
// NextIncoming.TimePeriod == CurrentIncoming.TimePeriod+1 always hold.
type TransportKeys struct {
	TransportID      TransportID  `json:"transport_id"`
	PreviousIncoming IncomingKeys `json:"previous_incoming"`
	CurrentIncoming  IncomingKeys `json:"current_incoming"`
	NextIncoming     IncomingKeys `json:"next_incoming"`
	CurrentOutgoing  OutgoingKeys `json:"current_outgoing"`
}

// TimePeriod returns the period of the current outgoing keys.
func (k TransportKeys) TimePeriod() int64 { return k.CurrentOutgoing.TimePeriod }

// Incoming returns the three incoming key sets, oldest first.
func (k TransportKeys) Incoming() [3]IncomingKeys {
	return [3]IncomingKeys{k.PreviousIncoming, k.CurrentIncoming, k.NextIncoming}
}

// StaticTransportKeys has the same window shape as TransportKeys but every
// key can be recomputed from RootKey and a period number.
type StaticTransportKeys struct {
	TransportKeys
	RootKey SecretKey `json:"root_key"`
	Alice   bool      `json:"alice"`
}
