package sensor

import "time"

// Frame is one radar sample as handed to Fusion (spec.md §4.4 step 1): a
// presence flag, the per-frame target list, and the three scalar vitals
// readings, each paired with its own validity flag so a driver can report
// "no reading this frame" without lying about the value.
type Frame struct {
	Human   bool
	Targets []Target

	DistOk bool
	DistCm float64

	BrOk bool
	Br   float64

	HrOk bool
	Hr   float64
}

// Source is the radar collaborator (spec.md §1 Out of scope): it is assumed
// to expose, per frame, a presence flag, clustered targets with Cartesian
// position and doppler index, distance, breath rate, and heart rate.
//
// NextFrame blocks for at most timeout waiting for a new sample. ok is false
// if no frame arrived within timeout; the Main Loop treats that as a no-op
// (spec.md §4.4 "Failure semantics") rather than an error.
type Source interface {
	NextFrame(timeout time.Duration) (frame Frame, ok bool)
}

// LightSource is the optional ambient-light collaborator (spec.md §1, §9):
// it periodically yields a lux reading with a validity flag, independent of
// and never feeding the state engine.
type LightSource interface {
	NextReading() (lux uint16, valid bool)
}
