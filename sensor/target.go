// Package sensor defines the data model and driver interfaces for the two
// external collaborators the core never implements: the radar module and
// the ambient-light sensor (spec.md §1 Out of scope). Everything here is a
// boundary the Fusion & State Engine reads from, never mutates.
package sensor

import "math"

// Target is one per-frame radar detection. It is immutable for the lifetime
// of the frame that produced it (spec.md §3).
type Target struct {
	Cluster      int16
	X, Y         float64 // meters
	DopplerIndex float64 // raw radar units; scaled to cm/s by the caller
}

// R returns the target's distance from the sensor origin.
func (t Target) R() float64 {
	return math.Hypot(t.X, t.Y)
}

// BearingDeg returns the target's bearing in degrees, atan2(x, y) convention
// (spec.md §3: bearing measured from the boresight axis Y, not from X).
func (t Target) BearingDeg() float64 {
	return math.Atan2(t.X, t.Y) * 180 / math.Pi
}

// SpeedCmS converts DopplerIndex to cm/s using the driver-specific scale
// factor (spec.md §4.4 RANGE_STEP, §9 Open Questions).
func (t Target) SpeedCmS(rangeStep float64) float64 {
	return t.DopplerIndex * rangeStep
}
