// Package mainloop implements the Main Loop (spec.md §2 item 6, §4.6): one
// iteration always drains whatever inbound bytes are currently available
// through the Framing Codec and Command Dispatcher first, then makes one
// bounded attempt to read the next radar frame, and only runs Fusion and
// the Telemetry Scheduler when that attempt succeeds. Grounded on
// examples/receiver/main.go and examples/transmitter/main.go, which
// interleave a blocking receive with periodic send bookkeeping inside one
// for-loop, and on transport/receiver.go's Listen/ProcessFrame split
// between "pull bytes" and "dispatch a decoded frame".
package mainloop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/presence-vitals/fw-core/dispatch"
	"github.com/presence-vitals/fw-core/engine"
	"github.com/presence-vitals/fw-core/protocol"
	"github.com/presence-vitals/fw-core/scheduler"
	"github.com/presence-vitals/fw-core/sensor"
	"github.com/presence-vitals/fw-core/serialio"
)

// RadarTimeout bounds step 2 of spec.md §4.6 ("bounded wait, ~100 ms") so a
// quiet radar can never stall the inbound byte pump behind it.
const RadarTimeout = 100 * time.Millisecond

// inboundChunk bounds a single ReadAvailable call; pumpInbound keeps
// calling it until a short read signals the driver's buffer is drained.
const inboundChunk = 256

// Clock reports milliseconds elapsed since boot. The real implementation
// wraps time.Since(bootTime); tests supply a fixed or stepped function.
type Clock func() uint32

// Loop owns every collaborator one iteration touches: the transport, the
// decoder sitting in front of it, the Dispatcher that reacts to commands,
// the Fusion engine, the Telemetry Scheduler, and the radar itself.
type Loop struct {
	driver     serialio.Driver
	decoder    *protocol.Decoder
	dispatcher *dispatch.Dispatcher
	engine     *engine.Engine
	scheduler  *scheduler.Scheduler
	cfg        *engine.Configuration
	radar      sensor.Source
	clock      Clock
	log        *zap.Logger

	inbuf [inboundChunk]byte
}

// New wires one Main Loop instance. cfg is shared with the Dispatcher that
// mutates it and with Fusion/the Scheduler that only read it — one record,
// per spec.md §3.
func New(
	driver serialio.Driver,
	dispatcher *dispatch.Dispatcher,
	eng *engine.Engine,
	sched *scheduler.Scheduler,
	cfg *engine.Configuration,
	radar sensor.Source,
	clock Clock,
	log *zap.Logger,
) *Loop {
	return &Loop{
		driver:     driver,
		decoder:    protocol.NewDecoder(),
		dispatcher: dispatcher,
		engine:     eng,
		scheduler:  sched,
		cfg:        cfg,
		radar:      radar,
		clock:      clock,
		log:        log,
	}
}

// RunOnce executes a single loop iteration. It never blocks past
// RadarTimeout: the inbound pump only drains bytes the driver already has
// buffered, and the radar read is itself bounded.
func (l *Loop) RunOnce() {
	l.pumpInbound()

	frame, ok := l.radar.NextFrame(RadarTimeout)
	if !ok {
		return
	}

	nowMs := l.clock()
	res := l.engine.Update(*l.cfg, frame, nowMs)
	l.scheduler.Tick(*l.cfg, res, nowMs)
}

// Run calls RunOnce until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		l.RunOnce()
	}
}

// pumpInbound drains every byte the driver currently has ready, feeding
// each one through the Decoder and handing the result to the Dispatcher as
// soon as a frame (or framing error) completes — spec.md §4.6 step 1:
// "pump all currently available inbound bytes... dispatching each decoded
// packet synchronously".
func (l *Loop) pumpInbound() {
	for {
		n, err := l.driver.ReadAvailable(l.inbuf[:])
		if err != nil && l.log != nil {
			l.log.Debug("serial read error", zap.Error(err))
		}
		if n == 0 {
			return
		}
		for _, b := range l.inbuf[:n] {
			pkt, ferr := l.decoder.Feed(b)
			switch {
			case ferr != nil:
				l.dispatcher.HandleFrameError(ferr)
			case pkt != nil:
				l.dispatcher.HandlePacket(pkt)
			}
		}
		if n < len(l.inbuf) {
			return
		}
	}
}
