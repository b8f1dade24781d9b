package engine

import (
	"math"

	"github.com/presence-vitals/fw-core/sensor"
)

// FocusTarget is the Focus Picker's selection (spec.md §3/§4.3): at most one
// target, carrying its index within the frame's target list so callers can
// correlate it back to the wire target array.
type FocusTarget struct {
	Valid  bool
	Target sensor.Target
	Index  int
}

// PickFocus selects the single target the engine treats as "the person"
// this frame (spec.md §4.3). If forcedFocusCluster is non-negative, the
// first target with a matching cluster id wins; if none match this frame,
// PickFocus falls back to the nearest target rather than returning no
// focus. With no forced cluster, the nearest target by R() wins; ties break
// by list order. An empty list yields an invalid FocusTarget.
func PickFocus(targets []sensor.Target, forcedFocusCluster int16) FocusTarget {
	if forcedFocusCluster >= 0 {
		for i, t := range targets {
			if t.Cluster == forcedFocusCluster {
				return FocusTarget{Valid: true, Target: t, Index: i}
			}
		}
	}
	return nearest(targets)
}

func nearest(targets []sensor.Target) FocusTarget {
	best := -1
	bestR := 0.0
	for i, t := range targets {
		r := t.R()
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		if best == -1 || r < bestR {
			best, bestR = i, r
		}
	}
	if best == -1 {
		return FocusTarget{}
	}
	return FocusTarget{Valid: true, Target: targets[best], Index: best}
}
