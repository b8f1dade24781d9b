package protocol

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		msgType byte
		seq     uint16
		payload []byte
	}{
		{name: "empty payload", msgType: CmdPing, seq: 0, payload: []byte{}},
		{name: "small payload", msgType: EvtAck, seq: 42, payload: []byte{1, 2, 3}},
		{name: "max payload", msgType: EvtTargets, seq: 65535, payload: bytes.Repeat([]byte{0xAB}, MaxPayloadSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.seq, tt.msgType, tt.payload)
			require.NoError(t, err)
			require.Equal(t, byte(FrameDelimiter), encoded[len(encoded)-1])

			d := NewDecoder()
			var got *Packet
			for _, b := range encoded {
				pkt, ferr := d.Feed(b)
				require.Nil(t, ferr)
				if pkt != nil {
					got = pkt
				}
			}

			require.NotNil(t, got)
			require.Equal(t, tt.msgType, got.MsgType)
			require.Equal(t, tt.seq, got.Seq)
			require.Equal(t, tt.payload, got.Payload)
		})
	}
}

// TestEncodeDecodeRoundTripRandom exercises the frame round-trip invariant
// from spec.md §8 over many randomized payload sizes and contents.
func TestEncodeDecodeRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		payload := make([]byte, rng.Intn(MaxPayloadSize+1))
		rng.Read(payload)
		seq := uint16(rng.Intn(1 << 16))
		msgType := byte(rng.Intn(256))

		encoded, err := Encode(seq, msgType, payload)
		require.NoError(t, err)

		d := NewDecoder()
		var got *Packet
		for _, b := range encoded {
			pkt, ferr := d.Feed(b)
			require.Nil(t, ferr)
			if pkt != nil {
				got = pkt
			}
		}

		require.NotNil(t, got)
		require.Equal(t, msgType, got.MsgType)
		require.Equal(t, seq, got.Seq)
		require.Equal(t, payload, got.Payload)
	}
}

// TestCRCSensitivity flips a single bit anywhere in an encoded packet
// (excluding the trailing delimiter) and expects the decoder to either
// reject it outright or surface a framing error (spec.md §8).
func TestCRCSensitivity(t *testing.T) {
	encoded, err := Encode(7, EvtBio, []byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	for bitPos := 0; bitPos < (len(encoded)-1)*8; bitPos++ {
		mutated := make([]byte, len(encoded))
		copy(mutated, encoded)
		byteIdx := bitPos / 8
		mutated[byteIdx] ^= 1 << (bitPos % 8)

		d := NewDecoder()
		var gotErr *FrameError
		var gotPkt *Packet
		for _, b := range mutated {
			pkt, ferr := d.Feed(b)
			if pkt != nil {
				gotPkt = pkt
			}
			if ferr != nil {
				gotErr = ferr
			}
		}

		if gotPkt != nil {
			// A flipped bit inside the delimiter-free COBS code byte can,
			// in rare cases, still describe a structurally valid (but
			// different) frame whose own CRC happens to validate against
			// its own mutated header; the invariant under test is that we
			// never silently accept the *original* payload unmutated.
			require.NotEqual(t, []byte{1, 2, 3, 4, 5, 6}, gotPkt.Payload, "bit %d: mutation silently ignored", bitPos)
			continue
		}

		require.NotNil(t, gotErr, "bit %d: expected rejection, got neither packet nor error", bitPos)
		require.Contains(t, []byte{ErrCodeBadLen, ErrCodeCRCFail, ErrCodeUnsupportedVersion}, gotErr.Code)
	}
}

func TestDecodeBadLength(t *testing.T) {
	encoded, err := Encode(1, CmdPing, []byte{9, 9, 9})
	require.NoError(t, err)

	// Drop the last two stuffed bytes (which carry the CRC) and re-terminate
	// the frame, so what arrives is shorter than its header's payload_len
	// declares.
	d := NewDecoder()
	truncated := encoded[:len(encoded)-3]
	truncated = append(truncated, FrameDelimiter)

	var gotErr *FrameError
	for _, b := range truncated {
		_, ferr := d.Feed(b)
		if ferr != nil {
			gotErr = ferr
		}
	}
	require.NotNil(t, gotErr)
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	encoded, err := Encode(1, CmdPing, nil)
	require.NoError(t, err)

	// Baseline: the same frame with version 1 decodes cleanly.
	d := NewDecoder()
	var gotErr *FrameError
	for _, b := range encoded {
		_, ferr := d.Feed(b)
		if ferr != nil {
			gotErr = ferr
		}
	}
	require.Nil(t, gotErr, "well-formed version-1 frame must decode cleanly")

	// Build the packet by hand with a bad version and a CRC that matches it,
	// then stuff and terminate it the same way Encode does.
	body := []byte{ProtocolVersion + 1, CmdPing, 0x01, 0x00, 0x00, 0x00}
	crc := crc16CCITTFalse(body)
	packet := append(body, byte(crc), byte(crc>>8))
	stuffed := append(cobsEncode(packet), FrameDelimiter)

	d2 := NewDecoder()
	var badErr *FrameError
	for _, b := range stuffed {
		_, ferr := d2.Feed(b)
		if ferr != nil {
			badErr = ferr
		}
	}
	require.NotNil(t, badErr)
	require.Equal(t, byte(CmdPing), badErr.CmdID)
	require.Equal(t, byte(ErrCodeUnsupportedVersion), badErr.Code)
}

func TestDecoderOverflow(t *testing.T) {
	d := NewDecoder()
	for i := 0; i < RecommendedInboundStuffedCap+10; i++ {
		pkt, ferr := d.Feed(0x01)
		require.Nil(t, pkt)
		require.Nil(t, ferr)
	}
	_, ferr := d.Feed(FrameDelimiter)
	require.NotNil(t, ferr)
	require.Equal(t, byte(0), ferr.CmdID)
	require.Equal(t, byte(ErrCodeBadLen), ferr.Code)
}

func TestDecoderSpuriousDelimiterIgnored(t *testing.T) {
	d := NewDecoder()
	pkt, ferr := d.Feed(FrameDelimiter)
	require.Nil(t, pkt)
	require.Nil(t, ferr)
}
