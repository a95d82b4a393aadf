package transport

import "errors"

var (
	// ErrInvalidArgument reports a caller bug: out-of-range period, version
	// or stream number, or an undersized buffer.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState reports a misconfigured PRF whose output is shorter
	// than a tag.
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidHeader is returned when a stream header fails to decrypt.
	ErrInvalidHeader = errors.New("invalid stream header")
)
