// Package protocol implements the length-prefixed, CRC-protected,
// byte-stuffed binary framing layer and the device/host message catalogue
// that rides on top of it.
package protocol

// ProtocolVersion is the only version this codec understands. Frames
// carrying any other value are rejected with ErrUnsupportedVersion.
const ProtocolVersion = 1

// Host -> device command IDs.
const (
	CmdSetHeadMoving = 0x01
	CmdSetFocus      = 0x02
	CmdSetBioPeriod  = 0x03
	CmdSetTargetsMs  = 0x04
	CmdPing          = 0x05
)

// Device -> host event IDs.
const (
	EvtAck     = 0x81
	EvtErr     = 0x82
	EvtPong    = 0x83
	EvtHello   = 0x90
	EvtState   = 0x91
	EvtTargets = 0x92
	EvtBio     = 0x93
	EvtLight   = 0x94
)

// EVT_ERR error codes.
const (
	ErrCodeUnknownCmd         = 1
	ErrCodeBadLen             = 2
	ErrCodeBadValue           = 3
	ErrCodeCRCFail            = 4
	ErrCodeUnsupportedVersion = 5
)

// EVT_ACK status codes.
const (
	AckStatusOK      = 0
	AckStatusClamped = 1
	AckStatusIgnored = 2
)

// Sizing constants for the framing layer (§4.1 / §9: no dynamic allocation).
const (
	// HeaderSize is version(1)+msg_type(1)+seq(2)+payload_len(2).
	HeaderSize = 6
	// CRCSize is the trailing CRC-16 field.
	CRCSize = 2
	// MaxPayloadSize bounds every command/event payload so the largest
	// wire packet (EVT_TARGETS with 8 entries) fits comfortably inside
	// the recommended buffer sizes below.
	MaxPayloadSize = 256

	// MaxPacketSize is the largest unstuffed packet this codec will ever
	// build or accept: header + payload + crc.
	MaxPacketSize = HeaderSize + MaxPayloadSize + CRCSize

	// RecommendedInboundStuffedCap is the minimum inbound accumulator
	// capacity recommended by spec.md §4.1.
	RecommendedInboundStuffedCap = 384
	// RecommendedOutboundPacketCap is the minimum outbound (unstuffed)
	// packet buffer capacity recommended by spec.md §4.1.
	RecommendedOutboundPacketCap = 512
	// RecommendedOutboundStuffedCap is the minimum outbound stuffed
	// buffer capacity recommended by spec.md §4.1.
	RecommendedOutboundStuffedCap = 640

	// FrameDelimiter terminates every COBS-stuffed frame on the wire.
	FrameDelimiter = 0x00

	// MaxWireTargets caps the number of per-frame target entries carried
	// in a single EVT_TARGETS frame; excess targets set FlagTargetsTruncated.
	MaxWireTargets = 8
)

// EVT_TARGETS flag bits.
const (
	FlagFocusValid       = 1 << 0
	FlagTargetsTruncated = 1 << 1
)

// MissingU16 is the wire sentinel for "no value" in unsigned 16-bit fields.
const MissingU16 = 0xFFFF

// MissingFocusCluster is the wire sentinel for "focus invalid" in the
// signed focus-cluster field.
const MissingFocusCluster int16 = -1
