package transport

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"transportkeys/internal/domain"
	"transportkeys/internal/util/memzero"
)

const (
	// StreamHeaderPlaintextLength is version (2) + stream number (8) + frame key.
	StreamHeaderPlaintextLength = int16Bytes + int64Bytes + domain.SecretKeyLength

	// StreamHeaderLength is the sealed header: nonce, ciphertext and auth tag.
	StreamHeaderLength = chacha20poly1305.NonceSizeX + StreamHeaderPlaintextLength + chacha20poly1305.Overhead
)

// EncodeStreamHeader seals a stream header under headerKey with
// XChaCha20-Poly1305. The random nonce is prepended to the ciphertext.
func EncodeStreamHeader(headerKey domain.SecretKey, protocolVersion int, streamNumber int64, frameKey domain.SecretKey) ([]byte, error) {
	if err := checkVersionAndStream(protocolVersion, streamNumber); err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(headerKey[:])
	if err != nil {
		return nil, err
	}

	var plain [StreamHeaderPlaintextLength]byte
	defer memzero.Zero(plain[:])
	binary.BigEndian.PutUint16(plain[:int16Bytes], uint16(protocolVersion))
	binary.BigEndian.PutUint64(plain[int16Bytes:int16Bytes+int64Bytes], uint64(streamNumber))
	copy(plain[int16Bytes+int64Bytes:], frameKey[:])

	out := make([]byte, chacha20poly1305.NonceSizeX, StreamHeaderLength)
	if _, err := rand.Read(out); err != nil {
		return nil, err
	}
	return aead.Seal(out, out, plain[:], nil), nil
}

// DecodeStreamHeader opens a header produced by EncodeStreamHeader.
func DecodeStreamHeader(headerKey domain.SecretKey, header []byte) (domain.StreamHeader, error) {
	if len(header) != StreamHeaderLength {
		return domain.StreamHeader{}, fmt.Errorf("%w: header is %d bytes, want %d", ErrInvalidArgument, len(header), StreamHeaderLength)
	}
	aead, err := chacha20poly1305.NewX(headerKey[:])
	if err != nil {
		return domain.StreamHeader{}, err
	}
	nonce, ct := header[:chacha20poly1305.NonceSizeX], header[chacha20poly1305.NonceSizeX:]
	plain, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		return domain.StreamHeader{}, ErrInvalidHeader
	}
	defer memzero.Zero(plain)

	h := domain.StreamHeader{
		ProtocolVersion: int(binary.BigEndian.Uint16(plain[:int16Bytes])),
		StreamNumber:    int64(binary.BigEndian.Uint64(plain[int16Bytes : int16Bytes+int64Bytes])),
	}
	copy(h.FrameKey[:], plain[int16Bytes+int64Bytes:])
	if err := checkVersionAndStream(h.ProtocolVersion, h.StreamNumber); err != nil {
		return domain.StreamHeader{}, fmt.Errorf("%w: %v", ErrInvalidHeader, err)
	}
	return h, nil
}
