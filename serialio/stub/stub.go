// Package stub provides a mock serialio.Driver for host-side testing,
// grounded on the teacher's host-side mock radio driver
// (driver/stub in the source repo): in-memory byte slices standing in
// for the physical UART, with InjectRx/TxLog test hooks instead of real
// I/O.
package stub

import "sync"

// Driver is a mock serialio.Driver backed by plain byte slices guarded by
// a mutex, the same shape as the teacher's ring-buffer mock radio driver.
type Driver struct {
	mu    sync.Mutex
	rx    []byte
	txLog [][]byte
}

// New returns an empty mock driver.
func New() *Driver {
	return &Driver{}
}

// Write implements serialio.Driver, recording the outbound frame for
// inspection by TxLog.
func (d *Driver) Write(data []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	frame := make([]byte, len(data))
	copy(frame, data)
	d.txLog = append(d.txLog, frame)
	return len(data), nil
}

// ReadAvailable implements serialio.Driver, draining whatever bytes have
// been queued by InjectRx.
func (d *Driver) ReadAvailable(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := copy(buf, d.rx)
	d.rx = d.rx[n:]
	return n, nil
}

// InjectRx queues bytes as if they had just arrived over the wire.
func (d *Driver) InjectRx(data []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rx = append(d.rx, data...)
}

// TxLog returns a snapshot of every frame written so far, oldest first.
func (d *Driver) TxLog() [][]byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([][]byte, len(d.txLog))
	copy(out, d.txLog)
	return out
}
