// Package realserial backs serialio.Driver with an actual UART/USB-CDC
// port via go.bug.st/serial, grounded on the pack's own radar-over-serial
// consumer (banshee-data-velocity.report's radar.NewRadarPort), which opens
// the same library with the same 115200/8/N/1 mode.
package realserial

import (
	"time"

	"go.bug.st/serial"
)

// Driver wraps a go.bug.st/serial port to satisfy serialio.Driver.
type Driver struct {
	port serial.Port
}

// Open opens portName at 115200 baud, 8 data bits, no parity, 1 stop bit
// (spec.md §6: "USB CDC or equivalent byte-oriented link at 115200 baud,
// 8N1"), with a short read timeout so ReadAvailable never blocks the Main
// Loop's inbound byte pump.
func Open(portName string) (*Driver, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, err
	}
	if err := port.SetReadTimeout(5 * time.Millisecond); err != nil {
		_ = port.Close()
		return nil, err
	}

	return &Driver{port: port}, nil
}

// Write implements serialio.Driver.
func (d *Driver) Write(data []byte) (int, error) {
	return d.port.Write(data)
}

// ReadAvailable implements serialio.Driver: a single short-timeout Read
// call, returning 0 bytes rather than blocking when nothing has arrived.
func (d *Driver) ReadAvailable(buf []byte) (int, error) {
	return d.port.Read(buf)
}

// Close closes the underlying port.
func (d *Driver) Close() error {
	return d.port.Close()
}
