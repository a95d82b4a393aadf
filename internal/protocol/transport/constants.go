package transport

// Labels for key derivation. They are part of the wire format.
const (
	AliceTagLabel    = "transportkeys/ALICE_TAG_KEY"
	BobTagLabel      = "transportkeys/BOB_TAG_KEY"
	AliceHeaderLabel = "transportkeys/ALICE_HEADER_KEY"
	BobHeaderLabel   = "transportkeys/BOB_HEADER_KEY"

	AliceStaticTagLabel    = "transportkeys/ALICE_STATIC_TAG_KEY"
	BobStaticTagLabel      = "transportkeys/BOB_STATIC_TAG_KEY"
	AliceStaticHeaderLabel = "transportkeys/ALICE_STATIC_HEADER_KEY"
	BobStaticHeaderLabel   = "transportkeys/BOB_STATIC_HEADER_KEY"

	RotateLabel = "transportkeys/ROTATE"
)

const (
	// TagLength is the length in bytes of a connection tag.
	TagLength = 16

	// ProtocolVersion is the current transport protocol version.
	ProtocolVersion = 4

	// MaxProtocolVersion is the largest version that fits the 16-bit field.
	MaxProtocolVersion = 1<<16 - 1

	// MaxStreamNumber is the largest stream number accepted. Stream numbers
	// are encoded in a 64-bit field but limited to 32 bits.
	MaxStreamNumber = 1<<32 - 1

	int16Bytes = 2
	int64Bytes = 8
)
