package engine

// Tuning constants for the Fusion & State Engine (spec.md §4.4). Kept as
// compile-time constants per the spec's own framing of RANGE_STEP as
// "driver-specific... treated as a compile-time constant" (§9); the same
// reasoning applies to the rest of the hysteresis thresholds, which are not
// exposed over the wire.
const (
	NearMinDistCm       = 35.0
	NearMaxDistCm       = 150.0
	SitStandThresholdCm = 55.0

	MovingCmS = 8.0

	BrMin = 4.0
	BrMax = 30.0
	HrMin = 35.0
	HrMax = 200.0

	AbsentHoldMs  = 1200
	AbsentConfirm = 8

	VitalsConfirm              = 5
	HumanStableFallbackConfirm = 3
	TargetLossGraceMs          = 1200

	// RangeStep converts a target's raw doppler index to cm/s. Calibrated
	// for the reference 60GHz module; a different radar module requires a
	// different constant (spec.md §9 Open Questions).
	RangeStep = 1.0
)
