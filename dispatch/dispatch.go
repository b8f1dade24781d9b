// Package dispatch implements the Command Dispatcher (spec.md §2 item 2,
// §4.2): it consumes decoded inbound packets, validates them in
// length-then-range-then-apply order, mutates the shared Configuration, and
// emits the resulting ack or error frame synchronously, grounded on the
// teacher's Receiver.ProcessFrame switch-on-type dispatch with an inline
// immediate ack.
package dispatch

import (
	"github.com/presence-vitals/fw-core/engine"
	"github.com/presence-vitals/fw-core/protocol"
)

// Sender is the outbound half of the framing layer the Dispatcher needs:
// just enough to emit one frame immediately, without depending on the
// serial transport directly (spec.md §5: "an ack is emitted immediately
// inside the dispatcher, before returning to the loop").
type Sender interface {
	Send(msgType byte, payload []byte) (seq uint16, err error)
}

// Dispatcher mutates cfg in response to validated commands and reports the
// outcome via sender.
type Dispatcher struct {
	cfg    *engine.Configuration
	sender Sender
	nowMs  func() uint32
}

// New returns a Dispatcher that mutates cfg and replies through sender.
// nowMs supplies the monotonic clock EVT_PONG reports.
func New(cfg *engine.Configuration, sender Sender, nowMs func() uint32) *Dispatcher {
	return &Dispatcher{cfg: cfg, sender: sender, nowMs: nowMs}
}

// HandleFrameError reports a framing-layer failure as EVT_ERR (spec.md §7:
// "discard the offending frame, emit a single EVT_ERR, resume").
func (d *Dispatcher) HandleFrameError(ferr *protocol.FrameError) {
	d.emitErr(ferr.CmdID, ferr.Code)
}

// HandlePacket validates and applies one decoded command packet, emitting
// exactly one ack or error frame.
func (d *Dispatcher) HandlePacket(pkt *protocol.Packet) {
	switch pkt.MsgType {
	case protocol.CmdSetHeadMoving:
		d.handleSetHeadMoving(pkt.Payload)
	case protocol.CmdSetFocus:
		d.handleSetFocus(pkt.Payload)
	case protocol.CmdSetBioPeriod:
		d.handleSetPeriod(pkt.Payload, protocol.CmdSetBioPeriod, &d.cfg.BioPeriodMs)
	case protocol.CmdSetTargetsMs:
		d.handleSetPeriod(pkt.Payload, protocol.CmdSetTargetsMs, &d.cfg.TargetsPeriodMs)
	case protocol.CmdPing:
		d.handlePing(pkt.Payload)
	default:
		d.emitErr(pkt.MsgType, protocol.ErrCodeUnknownCmd)
	}
}

func (d *Dispatcher) handleSetHeadMoving(payload []byte) {
	if len(payload) != 1 {
		d.emitErr(protocol.CmdSetHeadMoving, protocol.ErrCodeBadLen)
		return
	}
	hm := protocol.DecodeSetHeadMoving(payload)
	if hm != 0 && hm != 1 {
		d.emitErr(protocol.CmdSetHeadMoving, protocol.ErrCodeBadValue)
		return
	}
	d.cfg.HeadMoving = hm == 1
	d.emitAck(protocol.CmdSetHeadMoving, protocol.AckStatusOK, int32(hm))
}

func (d *Dispatcher) handleSetFocus(payload []byte) {
	if len(payload) != 2 {
		d.emitErr(protocol.CmdSetFocus, protocol.ErrCodeBadLen)
		return
	}
	cluster := protocol.DecodeSetFocus(payload)
	d.cfg.ForcedFocusCluster = cluster
	d.emitAck(protocol.CmdSetFocus, protocol.AckStatusOK, int32(cluster))
}

func (d *Dispatcher) handleSetPeriod(payload []byte, cmdID byte, field *uint16) {
	if len(payload) != 2 {
		d.emitErr(cmdID, protocol.ErrCodeBadLen)
		return
	}
	requested := protocol.DecodeSetPeriodMs(payload)
	applied, clamped := engine.ClampPeriodMs(requested)
	*field = applied

	status := byte(protocol.AckStatusOK)
	if clamped {
		status = protocol.AckStatusClamped
	}
	d.emitAck(cmdID, status, int32(applied))
}

func (d *Dispatcher) handlePing(payload []byte) {
	if len(payload) != 0 {
		d.emitErr(protocol.CmdPing, protocol.ErrCodeBadLen)
		return
	}
	d.emit(protocol.EvtPong, protocol.PongFrame{TMs: d.nowMs()}.Encode())
}

func (d *Dispatcher) emitAck(cmdID, status byte, value int32) {
	d.emit(protocol.EvtAck, protocol.AckFrame{CmdID: cmdID, Status: status, Value: value}.Encode())
}

func (d *Dispatcher) emitErr(cmdID, code byte) {
	d.emit(protocol.EvtErr, protocol.ErrFrame{CmdID: cmdID, Code: code}.Encode())
}

func (d *Dispatcher) emit(msgType byte, payload []byte) {
	_, _ = d.sender.Send(msgType, payload)
}
