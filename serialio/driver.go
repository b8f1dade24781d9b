// Package serialio abstracts the physical serial transport (spec.md §1 Out
// of scope: "The physical serial transport... assumed byte-oriented,
// reliable within a frame, 115200 baud") and owns the outbound frame
// sequence counter that rides on top of it.
package serialio

// Driver is the byte-stream transport the Main Loop pumps bytes through.
// Write sends outbound bytes; ReadAvailable drains whatever inbound bytes
// are ready right now without blocking past its own short I/O timeout —
// the bounded wait itself belongs to the radar's sensor.Source, not here.
type Driver interface {
	Write(data []byte) (int, error)
	ReadAvailable(buf []byte) (int, error)
}
