package engine

import "github.com/presence-vitals/fw-core/sensor"

// Result is Fusion's per-frame output: everything the Telemetry Scheduler
// and the wire encoders need, already resolved against last-good values and
// the vitals gate (spec.md §4.4).
type Result struct {
	TMs uint32

	NTargets int
	Targets  []sensor.Target
	Focus    FocusTarget

	DistValid bool
	DistCm    float64

	// VitalsAllowed is the gate from spec.md §4.4 step 9: ¬head_moving ∧
	// (single_target ∨ fallback_target_lock). VitalsValid additionally
	// requires both br and hr to individually validate.
	VitalsAllowed bool
	VitalsValid   bool

	// BrFresh/HrFresh report whether this frame carried a live, in-range
	// reading for that vitals channel, as opposed to a republished
	// last-good value; they back the wire's br_new/hr_new flags.
	BrFresh, HrFresh bool
	BrBpm, HrBpm     float64

	State PersonState
	Pose  PoseGuess

	HeadMoving bool
	Human      bool
}
