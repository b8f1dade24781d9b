package protocol

import "encoding/binary"

// Packet is a single decoded frame: the message type and its payload. Seq is
// populated on decode for inbound frames; Encode takes the outbound sequence
// number as an explicit argument instead (serialio.FrameWriter owns tx_seq,
// not this package — spec.md §3 Engine State / §5 ordering guarantees).
type Packet struct {
	MsgType byte
	Seq     uint16
	Payload []byte
}

// Encode builds one wire frame: header, payload, CRC-16/CCITT-FALSE over
// header+payload, COBS-stuffed, delimiter-terminated. Pure and allocation-
// bounded by len(payload) (spec.md §4.1 Encoder).
func Encode(seq uint16, msgType byte, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayloadSize {
		return nil, ErrPayloadTooLarge
	}

	body := make([]byte, HeaderSize+len(payload))
	body[0] = ProtocolVersion
	body[1] = msgType
	binary.LittleEndian.PutUint16(body[2:4], seq)
	binary.LittleEndian.PutUint16(body[4:6], uint16(len(payload)))
	copy(body[HeaderSize:], payload)

	crc := crc16CCITTFalse(body)
	packet := make([]byte, len(body)+CRCSize)
	copy(packet, body)
	binary.LittleEndian.PutUint16(packet[len(body):], crc)

	stuffed := cobsEncode(packet)
	out := make([]byte, len(stuffed)+1)
	copy(out, stuffed)
	out[len(out)-1] = FrameDelimiter
	return out, nil
}

// decodePacket validates and parses one COBS-unstuffed packet (without the
// trailing delimiter). It returns the specific framing error so the caller
// can pick the right EVT_ERR code, per spec.md §4.1's validation order:
// length, then version, then CRC.
func decodePacket(packet []byte) (*Packet, error) {
	if len(packet) < HeaderSize+CRCSize {
		return nil, ErrBadLength
	}

	payloadLen := int(binary.LittleEndian.Uint16(packet[4:6]))
	wantLen := HeaderSize + payloadLen + CRCSize
	if len(packet) != wantLen {
		return nil, ErrBadLength
	}

	if packet[0] != ProtocolVersion {
		return nil, ErrUnsupportedVersion
	}

	body := packet[:HeaderSize+payloadLen]
	wantCRC := binary.LittleEndian.Uint16(packet[HeaderSize+payloadLen:])
	gotCRC := crc16CCITTFalse(body)
	if wantCRC != gotCRC {
		return nil, ErrCRCFail
	}

	payload := make([]byte, payloadLen)
	copy(payload, packet[HeaderSize:HeaderSize+payloadLen])

	return &Packet{
		MsgType: packet[1],
		Seq:     binary.LittleEndian.Uint16(packet[2:4]),
		Payload: payload,
	}, nil
}
