package engine

// Configuration is the flat mutable record written only by the Command
// Dispatcher and read by Fusion and the Telemetry Scheduler (spec.md §3,
// §9: a single-threaded model makes locking unnecessary, so this needs no
// mutex despite being shared).
type Configuration struct {
	HeadMoving         bool
	ForcedFocusCluster int16
	BioPeriodMs        uint16
	TargetsPeriodMs    uint16
}

// MinPeriodMs is the floor both SET_BIO_MS and SET_TARGETS_MS clamp to
// (spec.md §4.2).
const MinPeriodMs = 50

// DefaultConfiguration returns the configuration's boot-time defaults
// (spec.md §3).
func DefaultConfiguration() Configuration {
	return Configuration{
		HeadMoving:         false,
		ForcedFocusCluster: -1,
		BioPeriodMs:        1000,
		TargetsPeriodMs:    250,
	}
}

// ClampPeriodMs enforces the ≥50ms floor shared by SET_BIO_MS and
// SET_TARGETS_MS, reporting whether clamping occurred so the dispatcher can
// pick the right ack status (spec.md §4.2: CLAMPED iff below 50).
func ClampPeriodMs(ms uint16) (clamped uint16, wasClamped bool) {
	if ms < MinPeriodMs {
		return MinPeriodMs, true
	}
	return ms, false
}
