package engine

import (
	"math"

	"github.com/presence-vitals/fw-core/sensor"
)

// Engine owns the Fusion & State Engine's mutable state (spec.md §4.4) and
// exposes Update as the single per-frame entry point the Main Loop calls.
type Engine struct {
	state *State
}

// New returns an Engine with its boot-time initial state.
func New() *Engine {
	return &Engine{state: NewState()}
}

// State exposes the live, process-wide engine state. The Telemetry
// Scheduler reads and writes the cadence/snapshot fields on the same
// record Fusion updates (spec.md §3: one Engine State, not two).
func (e *Engine) State() *State {
	return e.state
}

// Update runs one Fusion pass (spec.md §4.4 steps 1-11) and returns the
// resolved per-frame Result. cfg is read, never mutated; nowMs is the
// caller's monotonic milliseconds-since-boot clock.
func (e *Engine) Update(cfg Configuration, frame sensor.Frame, nowMs uint32) Result {
	s := e.state
	nTargets := len(frame.Targets)

	// Step 2: focus.
	focus := PickFocus(frame.Targets, cfg.ForcedFocusCluster)

	// Step 3: last-good values.
	distCm, distOk := resolveLastGood(&s.lastDistCm, &s.haveDist, frame.DistOk, frame.DistCm)
	brBpm, _ := resolveLastGood(&s.lastBrBpm, &s.haveBr, frame.BrOk, frame.Br)
	hrBpm, _ := resolveLastGood(&s.lastHrBpm, &s.haveHr, frame.HrOk, frame.Hr)

	// Step 4: presence + absence streak. Judged against this frame's own
	// readings, never the last-good fallback, or a latched have* flag would
	// make presence permanent and NO_TARGET unreachable.
	presentNow := frame.Human || nTargets > 0 ||
		(frame.DistOk && frame.DistCm > 0) || (frame.BrOk && frame.Br > 0) || (frame.HrOk && frame.Hr > 0)
	if presentNow {
		s.LastPresenceMs = nowMs
		s.AbsentStreak = 0
	} else {
		s.AbsentStreak = satInc8(s.AbsentStreak)
	}

	// Step 5: presence recency.
	presenceRecent := elapsedMs(nowMs, s.LastPresenceMs) < AbsentHoldMs

	// Step 6: movement.
	targetMoving := focus.Valid && math.Abs(focus.Target.SpeedCmS(RangeStep)) >= MovingCmS
	moving := cfg.HeadMoving || targetMoving

	// Step 7: near band.
	near := distOk && distCm >= NearMinDistCm && distCm <= NearMaxDistCm

	// Step 8: single-target tracking and fallback lock.
	singleTarget := nTargets == 1
	if singleTarget {
		s.SeenSingleTarget = true
		s.LastSingleTargetMs = nowMs
	}
	if frame.Human && !cfg.HeadMoving {
		s.HumanStableStreak = satInc8(s.HumanStableStreak)
	} else {
		s.HumanStableStreak = 0
	}
	singleTargetRecent := s.SeenSingleTarget && elapsedMs(nowMs, s.LastSingleTargetMs) <= TargetLossGraceMs
	fallbackTargetLock := !singleTarget && nTargets == 0 &&
		singleTargetRecent && s.HumanStableStreak >= HumanStableFallbackConfirm

	// Step 9: vitals gating. Validity is judged against this frame's own
	// reading, never the last-good fallback, or a stuck stale reading could
	// look perpetually valid.
	brValid := frame.BrOk && isFiniteInRange(frame.Br, BrMin, BrMax)
	hrValid := frame.HrOk && isFiniteInRange(frame.Hr, HrMin, HrMax)

	vitalsAllowed := !cfg.HeadMoving && (singleTarget || fallbackTargetLock)
	vitalsValid := vitalsAllowed && brValid && hrValid

	if vitalsValid {
		s.VitalsStreak = satInc8(s.VitalsStreak)
	} else {
		s.VitalsStreak = 0
	}
	// Defensive restatement of the data-model invariant: n_targets>1 or
	// head_moving always forces the streak to 0 before the state decision,
	// even though vitalsValid above already implies it in every case.
	if nTargets > 1 || cfg.HeadMoving {
		s.VitalsStreak = 0
	}

	// Step 10: state decision, first matching rule wins.
	var state PersonState
	switch {
	case !presenceRecent && s.AbsentStreak >= AbsentConfirm:
		state = StateNoTarget
		s.VitalsStreak = 0
	case nTargets > 1:
		state = StateMultiTarget
		s.VitalsStreak = 0
	case moving:
		state = StateMoving
		s.VitalsStreak = 0
	case near && s.VitalsStreak >= VitalsConfirm:
		state = StateRestingVitals
	case near:
		state = StateStillNear
	default:
		state = StatePresentFar
	}

	// Step 11: pose.
	pose := PoseUnknown
	if state != StateNoTarget && distOk && distCm > 0 {
		if distCm < SitStandThresholdCm {
			pose = PoseSitting
		} else {
			pose = PoseStanding
		}
	}

	s.Current = state
	s.Pose = pose

	return Result{
		TMs:           nowMs,
		NTargets:      nTargets,
		Targets:       frame.Targets,
		Focus:         focus,
		DistValid:     distOk,
		DistCm:        distCm,
		VitalsAllowed: vitalsAllowed,
		VitalsValid:   vitalsValid,
		BrFresh:       brValid,
		HrFresh:       hrValid,
		BrBpm:         brBpm,
		HrBpm:         hrBpm,
		State:         state,
		Pose:          pose,
		HeadMoving:    cfg.HeadMoving,
		Human:         frame.Human,
	}
}

// resolveLastGood implements spec.md §4.4 step 3: a fresh finite, positive
// reading updates and returns the stored value; otherwise it reads back
// whatever was last stored (available reports whether any value, fresh or
// stored, exists at all).
func resolveLastGood(stored *float64, have *bool, ok bool, value float64) (v float64, available bool) {
	if ok && isFiniteInRange(value, 0, math.MaxFloat64) && value > 0 {
		*stored = value
		*have = true
		return value, true
	}
	if *have {
		return *stored, true
	}
	return 0, false
}

func isFiniteInRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}

// elapsedMs computes now-then under uint32 wraparound, which stays correct
// as long as the gap being measured stays below 2^32 ms (about 49.7 days).
func elapsedMs(now, then uint32) uint32 {
	return now - then
}
