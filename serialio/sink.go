package serialio

import "github.com/presence-vitals/fw-core/protocol"

// FrameWriter owns the outbound frame sequence counter and serializes
// frames onto a Driver (spec.md §4.1: "tx_seq is a u16 that increments per
// emitted frame"). Grounded on the teacher's Transmitter.SendFrame, which
// pairs a private seq field with its own encode-then-transmit call.
type FrameWriter struct {
	driver Driver
	seq    uint16
}

// NewFrameWriter returns a FrameWriter with tx_seq starting at 0.
func NewFrameWriter(d Driver) *FrameWriter {
	return &FrameWriter{driver: d}
}

// Send encodes one frame and writes it to the driver, returning the seq it
// was sent with (wraparound at 2^16 is allowed and expected, spec.md §4.1).
func (w *FrameWriter) Send(msgType byte, payload []byte) (uint16, error) {
	seq := w.seq
	w.seq++

	frame, err := protocol.Encode(seq, msgType, payload)
	if err != nil {
		return seq, err
	}
	_, err = w.driver.Write(frame)
	return seq, err
}
