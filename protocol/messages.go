package protocol

import "encoding/binary"

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// AckFrame is the EVT_ACK payload: u8 cmd_id, u8 status, i32 value.
type AckFrame struct {
	CmdID  byte
	Status byte
	Value  int32
}

// Encode serialises the EVT_ACK payload.
func (f AckFrame) Encode() []byte {
	b := make([]byte, 6)
	b[0] = f.CmdID
	b[1] = f.Status
	binary.LittleEndian.PutUint32(b[2:], uint32(f.Value))
	return b
}

// ErrFrame is the EVT_ERR payload: u8 cmd_id, u8 err_code.
type ErrFrame struct {
	CmdID byte
	Code  byte
}

// Encode serialises the EVT_ERR payload.
func (f ErrFrame) Encode() []byte {
	return []byte{f.CmdID, f.Code}
}

// PongFrame is the EVT_PONG payload: u32 t_ms.
type PongFrame struct {
	TMs uint32
}

// Encode serialises the EVT_PONG payload.
func (f PongFrame) Encode() []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, f.TMs)
	return b
}

// HelloFrame is the EVT_HELLO payload: u8 proto_version, u16 feature_bits.
// Emitted once at boot before any other frame (spec.md §6).
type HelloFrame struct {
	FeatureBits uint16
}

// Encode serialises the EVT_HELLO payload.
func (f HelloFrame) Encode() []byte {
	b := make([]byte, 3)
	b[0] = ProtocolVersion
	binary.LittleEndian.PutUint16(b[1:], f.FeatureBits)
	return b
}

// StateFrame is the EVT_STATE payload.
type StateFrame struct {
	TMs        uint32
	State      byte // 0..5
	Pose       byte // 0..2
	HeadMoving bool
	Human      bool
	NTargets   byte
	DistValid  bool
	DistCm     float64
}

// Encode serialises the EVT_STATE payload: u32 t_ms, u8 state_enum,
// u8 pose_enum, u8 head_moving, u8 human, u8 n_targets, u8 dist_new,
// u16 dist_mm (0xFFFF sentinel).
func (f StateFrame) Encode() []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:], f.TMs)
	b[4] = f.State
	b[5] = f.Pose
	b[6] = boolByte(f.HeadMoving)
	b[7] = boolByte(f.Human)
	b[8] = f.NTargets
	b[9] = boolByte(f.DistValid)

	distMm := uint16(MissingU16)
	if f.DistValid {
		distMm = RoundSaturateU16(f.DistCm * 10)
	}
	binary.LittleEndian.PutUint16(b[10:], distMm)
	return b
}

// TargetEntry is one wire target entry inside EVT_TARGETS.
type TargetEntry struct {
	Cluster     int16
	XMm, YMm    int16
	RMm         uint16
	BearingCdeg int16
	VCmsX10     int16
}

func (e TargetEntry) encode(b []byte) {
	binary.LittleEndian.PutUint16(b[0:], uint16(e.Cluster))
	binary.LittleEndian.PutUint16(b[2:], uint16(e.XMm))
	binary.LittleEndian.PutUint16(b[4:], uint16(e.YMm))
	binary.LittleEndian.PutUint16(b[6:], e.RMm)
	binary.LittleEndian.PutUint16(b[8:], uint16(e.BearingCdeg))
	binary.LittleEndian.PutUint16(b[10:], uint16(e.VCmsX10))
}

const targetEntrySize = 12

// TargetsFrame is the EVT_TARGETS payload: a fixed header plus up to
// MaxWireTargets entries. Encode writes only the first MaxWireTargets
// entries and drops the rest; the caller sets Truncated to record that fact
// in the flags byte.
type TargetsFrame struct {
	TMs                uint32
	ForcedFocusCluster int16
	FocusValid         bool
	FocusCluster       int16
	FocusXMm, FocusYMm int16
	FocusRMm           uint16
	FocusBearingCdeg   int16
	FocusVCmsX10       int16
	Truncated          bool
	Targets            []TargetEntry
}

// Encode serialises the EVT_TARGETS payload.
func (f TargetsFrame) Encode() []byte {
	n := len(f.Targets)
	if n > MaxWireTargets {
		n = MaxWireTargets
	}

	const headerSize = 4 + 2 + 2 + 2 + 2 + 2 + 2 + 2 + 1 + 1
	b := make([]byte, headerSize+n*targetEntrySize)

	binary.LittleEndian.PutUint32(b[0:], f.TMs)
	binary.LittleEndian.PutUint16(b[4:], uint16(f.ForcedFocusCluster))

	focusCluster := int16(-1)
	var focusX, focusY, focusBearing, focusV int16
	var focusR uint16
	if f.FocusValid {
		focusCluster = f.FocusCluster
		focusX, focusY, focusR = f.FocusXMm, f.FocusYMm, f.FocusRMm
		focusBearing, focusV = f.FocusBearingCdeg, f.FocusVCmsX10
	}
	binary.LittleEndian.PutUint16(b[6:], uint16(focusCluster))
	binary.LittleEndian.PutUint16(b[8:], uint16(focusX))
	binary.LittleEndian.PutUint16(b[10:], uint16(focusY))
	binary.LittleEndian.PutUint16(b[12:], focusR)
	binary.LittleEndian.PutUint16(b[14:], uint16(focusBearing))
	binary.LittleEndian.PutUint16(b[16:], uint16(focusV))

	var flags byte
	if f.FocusValid {
		flags |= FlagFocusValid
	}
	if f.Truncated {
		flags |= FlagTargetsTruncated
	}
	b[18] = flags
	b[19] = byte(n)

	for i := 0; i < n; i++ {
		f.Targets[i].encode(b[headerSize+i*targetEntrySize:])
	}
	return b
}

// BioFrame is the EVT_BIO payload.
type BioFrame struct {
	TMs        uint32
	Allowed    bool
	Valid      bool
	BrNew      bool
	HrNew      bool
	BrCentiBpm uint16
	HrCentiBpm uint16
}

// Encode serialises the EVT_BIO payload: u32 t_ms, u8 allowed, u8 valid,
// u8 br_new, u8 hr_new, u16 br_centi_bpm, u16 hr_centi_bpm.
func (f BioFrame) Encode() []byte {
	b := make([]byte, 12)
	binary.LittleEndian.PutUint32(b[0:], f.TMs)
	b[4] = boolByte(f.Allowed)
	b[5] = boolByte(f.Valid)
	b[6] = boolByte(f.BrNew)
	b[7] = boolByte(f.HrNew)
	binary.LittleEndian.PutUint16(b[8:], f.BrCentiBpm)
	binary.LittleEndian.PutUint16(b[10:], f.HrCentiBpm)
	return b
}

// LightFrame is the EVT_LIGHT payload (SPEC_FULL.md §3): u32 t_ms, u8 valid,
// u16 lux (0xFFFF sentinel). The ambient-light reading never feeds engine
// state (spec.md §9); this is purely a wire encode for an independently
// cadenced, unrelated telemetry stream.
type LightFrame struct {
	TMs   uint32
	Valid bool
	Lux   uint16
}

// Encode serialises the EVT_LIGHT payload.
func (f LightFrame) Encode() []byte {
	b := make([]byte, 7)
	binary.LittleEndian.PutUint32(b[0:], f.TMs)
	b[4] = boolByte(f.Valid)
	lux := uint16(MissingU16)
	if f.Valid {
		lux = f.Lux
	}
	binary.LittleEndian.PutUint16(b[5:], lux)
	return b
}

// DecodeSetHeadMoving parses the SET_HM payload (u8 hm).
func DecodeSetHeadMoving(payload []byte) byte {
	return payload[0]
}

// DecodeSetFocus parses the SET_FOCUS payload (i16 cluster).
func DecodeSetFocus(payload []byte) int16 {
	return int16(binary.LittleEndian.Uint16(payload))
}

// DecodeSetPeriodMs parses the SET_BIO_MS / SET_TARGETS_MS payload (u16 ms).
func DecodeSetPeriodMs(payload []byte) uint16 {
	return binary.LittleEndian.Uint16(payload)
}
