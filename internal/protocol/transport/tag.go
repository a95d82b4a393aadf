package transport

import (
	"encoding/binary"
	"fmt"

	"transportkeys/internal/domain"
)

// EncodeTag writes the connection tag for (tagKey, protocolVersion,
// streamNumber) into the first TagLength bytes of tag.
//
// The PRF input is the version as a big-endian uint16 followed by the stream
// number as a big-endian uint64; the tag is the first TagLength bytes of the
// PRF output.
func (c *Crypto) EncodeTag(tag []byte, tagKey domain.SecretKey, protocolVersion int, streamNumber int64) error {
	if len(tag) < TagLength {
		return fmt.Errorf("%w: tag buffer is %d bytes, need %d", ErrInvalidArgument, len(tag), TagLength)
	}
	if err := checkVersionAndStream(protocolVersion, streamNumber); err != nil {
		return err
	}
	prf, err := c.newPRF(tagKey[:])
	if err != nil {
		return fmt.Errorf("%w: tag prf: %v", ErrInvalidState, err)
	}
	macLength := prf.Size()
	if macLength < TagLength {
		return fmt.Errorf("%w: prf output is %d bytes, need %d", ErrInvalidState, macLength, TagLength)
	}

	var in [int16Bytes + int64Bytes]byte
	binary.BigEndian.PutUint16(in[:int16Bytes], uint16(protocolVersion))
	binary.BigEndian.PutUint64(in[int16Bytes:], uint64(streamNumber))
	prf.Write(in[:])

	mac := prf.Sum(make([]byte, 0, macLength))
	copy(tag, mac[:TagLength])
	return nil
}

func checkVersionAndStream(protocolVersion int, streamNumber int64) error {
	if protocolVersion < 0 || protocolVersion > MaxProtocolVersion {
		return fmt.Errorf("%w: protocol version %d out of range", ErrInvalidArgument, protocolVersion)
	}
	if streamNumber < 0 || streamNumber > MaxStreamNumber {
		return fmt.Errorf("%w: stream number %d out of range", ErrInvalidArgument, streamNumber)
	}
	return nil
}
