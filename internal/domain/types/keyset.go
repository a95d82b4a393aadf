package types

// ReorderingWindowSize is the number of incoming stream numbers tracked per
// period.
const ReorderingWindowSize = 32

// ReorderingWindow tracks which incoming streams of one period have been
// seen. Bit i of Seen refers to stream Base+i.
type ReorderingWindow struct {
	Base uint64 `json:"base"`
	Seen uint32 `json:"seen"`
}

// KeySet is the persisted state for one contact and transport. Exactly one
// of Keys and StaticKeys is set, selected by Static.
type KeySet struct {
	ID          KeySetID    `json:"id"`
	ContactID   ContactID   `json:"contact_id"`
	TransportID TransportID `json:"transport_id"`
	Static      bool        `json:"static"`

	Keys       *TransportKeys       `json:"keys,omitempty"`
	StaticKeys *StaticTransportKeys `json:"static_keys,omitempty"`

	// OutgoingStreamCounter is the next stream number to send in the
	// current outgoing period.
	OutgoingStreamCounter uint64 `json:"outgoing_stream_counter"`

	// Windows is keyed by incoming time period.
	Windows map[int64]ReorderingWindow `json:"windows"`

	UpdatedUTC int64 `json:"updated_utc"`
}

// Window returns the windowed key set regardless of variant.
func (ks KeySet) Window() TransportKeys {
	if ks.Static {
		if ks.StaticKeys == nil {
			return TransportKeys{}
		}
		return ks.StaticKeys.TransportKeys
	}
	if ks.Keys == nil {
		return TransportKeys{}
	}
	return *ks.Keys
}

// StreamContext carries what the transport layer needs to read or write one
// stream.
type StreamContext struct {
	KeySetID     KeySetID    `json:"key_set_id"`
	ContactID    ContactID   `json:"contact_id"`
	TransportID  TransportID `json:"transport_id"`
	TagKey       SecretKey   `json:"tag_key"`
	HeaderKey    SecretKey   `json:"header_key"`
	StreamNumber uint64      `json:"stream_number"`
	TimePeriod   int64       `json:"time_period"`
	Tag          []byte      `json:"tag"`
}

// StreamHeader is the decrypted content of a stream header.
type StreamHeader struct {
	ProtocolVersion int
	StreamNumber    int64
	FrameKey        SecretKey
}
