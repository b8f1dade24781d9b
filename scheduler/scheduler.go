// Package scheduler implements the Telemetry Scheduler (spec.md §2 item 5,
// §4.5): after each Fusion pass it decides which of {targets, state, bio,
// light} frames to emit, based on independent cadences and state-change
// triggers, grounded on the teacher's Transmitter's periodic-send/seq
// pattern for the shape of "decide to send, then hand off to the framing
// layer".
package scheduler

import (
	"github.com/presence-vitals/fw-core/engine"
	"github.com/presence-vitals/fw-core/protocol"
	"github.com/presence-vitals/fw-core/sensor"
)

// Sender is the outbound half of the framing layer the Scheduler needs to
// emit telemetry frames.
type Sender interface {
	Send(msgType byte, payload []byte) (seq uint16, err error)
}

// LightPeriodMs is the ambient-light telemetry cadence (SPEC_FULL.md §3).
// EVT_LIGHT has no SET_*_MS command of its own, so this is a compile-time
// constant rather than a Configuration field.
const LightPeriodMs = 1000

// StateHoldMs is the maximum gap the Scheduler tolerates between EVT_STATE
// frames even with no material change (spec.md §4.5).
const StateHoldMs = 1000

// Scheduler decides, each loop iteration, which telemetry frames to emit.
// It shares engine.State with the Fusion engine so both halves of the loop
// see one cadence/snapshot record (spec.md §3).
type Scheduler struct {
	state  *engine.State
	sender Sender
	light  sensor.LightSource
}

// New returns a Scheduler writing through sender. light may be nil, in
// which case EVT_LIGHT is never emitted.
func New(state *engine.State, sender Sender, light sensor.LightSource) *Scheduler {
	return &Scheduler{state: state, sender: sender, light: light}
}

// Tick runs one scheduling pass after Fusion has produced res, in the
// order spec.md §4.5 specifies: targets, then state, then bio.
func (sch *Scheduler) Tick(cfg engine.Configuration, res engine.Result, nowMs uint32) {
	sch.maybeEmitTargets(cfg, res, nowMs)
	sch.maybeEmitState(res, nowMs)
	sch.maybeEmitBio(cfg, res, nowMs)
	sch.maybeEmitLight(nowMs)
}

func (sch *Scheduler) maybeEmitTargets(cfg engine.Configuration, res engine.Result, nowMs uint32) {
	if res.NTargets == 0 {
		return
	}
	if elapsed(nowMs, sch.state.LastTargetsEmitMs) < uint32(cfg.TargetsPeriodMs) {
		return
	}
	sch.state.LastTargetsEmitMs = nowMs

	frame := protocol.TargetsFrame{
		TMs:                nowMs,
		ForcedFocusCluster: cfg.ForcedFocusCluster,
		Truncated:          res.NTargets > protocol.MaxWireTargets,
	}
	if res.Focus.Valid {
		frame.FocusValid = true
		frame.FocusCluster = res.Focus.Target.Cluster
		frame.FocusXMm = protocol.RoundSaturateI16(res.Focus.Target.X * 1000)
		frame.FocusYMm = protocol.RoundSaturateI16(res.Focus.Target.Y * 1000)
		frame.FocusRMm = protocol.RoundSaturateU16(res.Focus.Target.R() * 1000)
		frame.FocusBearingCdeg = protocol.RoundSaturateI16(res.Focus.Target.BearingDeg() * 100)
		frame.FocusVCmsX10 = protocol.RoundSaturateI16(res.Focus.Target.SpeedCmS(engine.RangeStep) * 10)
	}
	for _, t := range res.Targets {
		frame.Targets = append(frame.Targets, toWireTarget(t))
	}

	sch.send(protocol.EvtTargets, frame.Encode())
}

func (sch *Scheduler) maybeEmitState(res engine.Result, nowMs uint32) {
	changed := !sch.state.HavePrevEmit ||
		sch.state.PrevState != res.State ||
		sch.state.PrevPose != res.Pose ||
		sch.state.PrevHeadMoving != res.HeadMoving ||
		sch.state.PrevNTargets != res.NTargets

	stale := elapsed(nowMs, sch.state.LastStateEmitMs) > StateHoldMs
	if !changed && !stale {
		return
	}

	sch.state.LastStateEmitMs = nowMs
	sch.state.HavePrevEmit = true
	sch.state.PrevState = res.State
	sch.state.PrevPose = res.Pose
	sch.state.PrevHeadMoving = res.HeadMoving
	sch.state.PrevNTargets = res.NTargets

	frame := protocol.StateFrame{
		TMs:        nowMs,
		State:      byte(res.State),
		Pose:       byte(res.Pose),
		HeadMoving: res.HeadMoving,
		Human:      res.Human,
		NTargets:   byte(clampByte(res.NTargets)),
		DistValid:  res.DistValid,
		DistCm:     res.DistCm,
	}
	sch.send(protocol.EvtState, frame.Encode())
}

func (sch *Scheduler) maybeEmitBio(cfg engine.Configuration, res engine.Result, nowMs uint32) {
	if elapsed(nowMs, sch.state.LastBioEmitMs) < uint32(cfg.BioPeriodMs) {
		return
	}
	sch.state.LastBioEmitMs = nowMs

	frame := protocol.BioFrame{
		TMs:        nowMs,
		Allowed:    res.VitalsAllowed,
		Valid:      res.VitalsValid,
		BrNew:      res.BrFresh,
		HrNew:      res.HrFresh,
		BrCentiBpm: bioScale(res.BrBpm),
		HrCentiBpm: bioScale(res.HrBpm),
	}
	sch.send(protocol.EvtBio, frame.Encode())
}

func (sch *Scheduler) maybeEmitLight(nowMs uint32) {
	if sch.light == nil {
		return
	}
	if elapsed(nowMs, sch.state.LastLightEmitMs) < LightPeriodMs {
		return
	}
	sch.state.LastLightEmitMs = nowMs

	lux, valid := sch.light.NextReading()
	frame := protocol.LightFrame{TMs: nowMs, Valid: valid, Lux: lux}
	sch.send(protocol.EvtLight, frame.Encode())
}

func (sch *Scheduler) send(msgType byte, payload []byte) {
	_, _ = sch.sender.Send(msgType, payload)
}

func toWireTarget(t sensor.Target) protocol.TargetEntry {
	return protocol.TargetEntry{
		Cluster:     t.Cluster,
		XMm:         protocol.RoundSaturateI16(t.X * 1000),
		YMm:         protocol.RoundSaturateI16(t.Y * 1000),
		RMm:         protocol.RoundSaturateU16(t.R() * 1000),
		BearingCdeg: protocol.RoundSaturateI16(t.BearingDeg() * 100),
		VCmsX10:     protocol.RoundSaturateI16(t.SpeedCmS(engine.RangeStep) * 10),
	}
}

func bioScale(bpm float64) uint16 {
	if bpm <= 0 {
		return protocol.MissingU16
	}
	return protocol.RoundSaturateU16(bpm * 100)
}

func clampByte(n int) int {
	if n > 255 {
		return 255
	}
	return n
}

// elapsed computes now-then under uint32 wraparound (engine.elapsedMs's
// sibling; duplicated rather than exported to keep engine's internals
// private).
func elapsed(now, then uint32) uint32 {
	return now - then
}
