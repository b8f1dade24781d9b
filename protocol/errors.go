package protocol

import "errors"

var (
	// ErrBadLength means the unstuffed packet is shorter than a header plus
	// CRC, or its length does not match the header's payload_len (spec.md
	// §4.1, §7). Accumulator overflow and invalid COBS are reported by the
	// Decoder directly as ErrCodeBadLen, without this error.
	ErrBadLength = errors.New("protocol: bad frame length")
	// ErrCRCFail means the trailing CRC-16 did not match the computed one.
	ErrCRCFail = errors.New("protocol: crc mismatch")
	// ErrUnsupportedVersion means the version byte was not ProtocolVersion.
	ErrUnsupportedVersion = errors.New("protocol: unsupported version")
	// ErrPayloadTooLarge is returned by Encode when the caller-supplied
	// payload would not fit in MaxPayloadSize.
	ErrPayloadTooLarge = errors.New("protocol: payload too large")
)
