package protocol

// FrameError describes a framing-layer failure that must be reported to the
// host as EVT_ERR (spec.md §4.1/§7). CmdID is 0 when the offending
// message type could not even be read (too few bytes, invalid COBS).
type FrameError struct {
	CmdID byte
	Code  byte
}

// Decoder is the stateful byte feeder described in spec.md §4.1: it
// accumulates bytes into a fixed-size buffer until it sees the frame
// delimiter, then COBS-decodes, validates, and yields a Packet or a
// FrameError. It holds no heap-allocated state after construction, matching
// the "no allocation after boot" lifecycle rule (spec.md §3).
type Decoder struct {
	buf      [RecommendedInboundStuffedCap]byte
	len      int
	overflow bool
}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed consumes one inbound byte. It returns a non-nil Packet on a
// successfully decoded frame, a non-nil FrameError on a malformed one, or
// both nil while still accumulating (or on a spurious empty delimiter).
func (d *Decoder) Feed(b byte) (*Packet, *FrameError) {
	if b != FrameDelimiter {
		if d.len >= len(d.buf) {
			d.overflow = true
			return nil, nil
		}
		d.buf[d.len] = b
		d.len++
		return nil, nil
	}

	n := d.len
	overflowed := d.overflow
	d.len = 0
	d.overflow = false

	if overflowed {
		return nil, &FrameError{CmdID: 0, Code: ErrCodeBadLen}
	}
	if n == 0 {
		return nil, nil
	}

	stuffed := make([]byte, n)
	copy(stuffed, d.buf[:n])

	packet, err := cobsDecode(stuffed)
	if err != nil {
		return nil, &FrameError{CmdID: 0, Code: ErrCodeBadLen}
	}

	var msgType byte
	if len(packet) >= 2 {
		msgType = packet[1]
	}

	pkt, derr := decodePacket(packet)
	if derr == nil {
		return pkt, nil
	}

	code := byte(ErrCodeBadLen)
	switch derr {
	case ErrUnsupportedVersion:
		code = ErrCodeUnsupportedVersion
	case ErrCRCFail:
		code = ErrCodeCRCFail
	}
	return nil, &FrameError{CmdID: msgType, Code: code}
}
