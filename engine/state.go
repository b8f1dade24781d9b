// Package engine implements the Focus Picker and the Fusion & State Engine:
// the per-frame classifier that turns raw radar/vitals readings into the
// 6-state presence/vitals model, plus the Configuration record the Command
// Dispatcher writes and Fusion/Scheduler read (spec.md §2 items 3-4, §3, §9
// "single-threaded model makes locking unnecessary").
package engine

// PersonState is the 6-way presence/vitals classification. Values match
// the wire's state_enum (spec.md §6 EVT_STATE) so encoding is a direct cast.
type PersonState byte

const (
	StateNoTarget PersonState = iota
	StateMultiTarget
	StatePresentFar
	StateMoving
	StateStillNear
	StateRestingVitals
)

// PoseGuess is derived each frame from (PersonState, distance); it is never
// retained as state (spec.md §3). Values match the wire's pose_enum.
type PoseGuess byte

const (
	PoseUnknown PoseGuess = iota
	PoseSitting
	PoseStanding
)

// State is the process-wide engine state: created once at boot with its
// initial values, mutated only on the main loop's frame cadence (spec.md §3
// Lifecycle). Fusion owns the last-good values and hysteresis counters; the
// Telemetry Scheduler owns the cadence bookkeeping and previous-emitted
// snapshot fields below it, both halves sharing one record per spec.md §3's
// single "Engine State".
type State struct {
	Current PersonState
	Pose    PoseGuess

	lastDistCm float64
	haveDist   bool
	lastBrBpm  float64
	haveBr     bool
	lastHrBpm  float64
	haveHr     bool

	LastPresenceMs uint32
	AbsentStreak   uint8
	VitalsStreak   uint8

	HumanStableStreak  uint8
	LastSingleTargetMs uint32
	SeenSingleTarget   bool

	// Cadence bookkeeping and previous-emitted snapshot: owned by the
	// Telemetry Scheduler, stored here per spec.md §3's Engine State.
	LastTargetsEmitMs uint32
	LastStateEmitMs   uint32
	LastBioEmitMs     uint32
	LastLightEmitMs   uint32

	HavePrevEmit   bool
	PrevState      PersonState
	PrevPose       PoseGuess
	PrevHeadMoving bool
	PrevNTargets   int
}

// NewState returns the engine's boot-time initial state: PersonState is
// NO_TARGET, all streaks and timestamps are zero (spec.md §3).
func NewState() *State {
	return &State{Current: StateNoTarget, Pose: PoseUnknown}
}

func satInc8(v uint8) uint8 {
	if v == 255 {
		return 255
	}
	return v + 1
}
