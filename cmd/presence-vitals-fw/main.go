// Command presence-vitals-fw runs the Presence-Vitals State Engine's host
// loop. Without -dev it opens the real serial port but has no radar driver
// to construct, so it logs that and exits; in dev mode it replays a fixture
// file (or a small built-in scenario) through
// the same sensor.Source interface so the whole engine/dispatch/scheduler
// stack can be exercised without hardware. Grounded on
// examples/receiver/main.go's setup-then-loop shape and
// banshee-data-velocity.report/main.go's -dev flag driving a mock-vs-real
// choice of collaborator.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/presence-vitals/fw-core/dispatch"
	"github.com/presence-vitals/fw-core/engine"
	"github.com/presence-vitals/fw-core/mainloop"
	"github.com/presence-vitals/fw-core/obslog"
	"github.com/presence-vitals/fw-core/protocol"
	"github.com/presence-vitals/fw-core/scheduler"
	"github.com/presence-vitals/fw-core/sensor"
	"github.com/presence-vitals/fw-core/sensor/fake"
	"github.com/presence-vitals/fw-core/serialio"
	"github.com/presence-vitals/fw-core/serialio/realserial"
	"github.com/presence-vitals/fw-core/serialio/stub"
)

// fixtureReplayPeriod is the cadence dev mode pushes synthetic radar
// frames at; it has no bearing on any protocol timer.
const fixtureReplayPeriod = 100 * time.Millisecond

func main() {
	dev := flag.Bool("dev", false, "run against a fixture-replay radar instead of a real serial port")
	port := flag.String("port", "/dev/ttyACM0", "serial port device path")
	fixtures := flag.String("fixtures", "", "JSON-lines radar fixture file (dev mode only; built-in scenario if unset)")
	level := flag.String("log-level", "info", "log level: debug, info, warn, error")
	console := flag.Bool("console", true, "human-readable console log encoding instead of JSON")
	flag.Parse()

	runID := uuid.NewString()
	logger, err := obslog.New(obslog.Level(*level), *console, runID)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("booting", zap.Bool("dev_mode", *dev), zap.String("run_id", runID))

	driver, closeDriver, err := openDriver(*dev, *port)
	if err != nil {
		logger.Fatal("open serial driver", zap.Error(err))
	}
	defer closeDriver()

	writer := serialio.NewFrameWriter(driver)

	boot := time.Now()
	clock := func() uint32 { return uint32(time.Since(boot).Milliseconds()) }

	cfg := engine.DefaultConfiguration()
	dispatcher := dispatch.New(&cfg, writer, clock)
	eng := engine.New()

	radar, light, stopReplay := openRadar(*dev, *fixtures, logger)
	if stopReplay != nil {
		defer close(stopReplay)
	}

	sched := scheduler.New(eng.State(), writer, light)
	loop := mainloop.New(driver, dispatcher, eng, sched, &cfg, radar, clock, logger)

	if _, err := writer.Send(protocol.EvtHello, protocol.HelloFrame{FeatureBits: 0}.Encode()); err != nil {
		logger.Error("send hello frame", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("entering main loop")
	loop.Run(ctx)
	logger.Info("shut down")
}

// openDriver picks the real go.bug.st/serial driver in production, or an
// in-memory stub in dev mode (nothing outbound needs inspecting there; the
// stub just absorbs writes harmlessly).
func openDriver(dev bool, port string) (serialio.Driver, func(), error) {
	if dev {
		return stub.New(), func() {}, nil
	}
	d, err := realserial.Open(port)
	if err != nil {
		return nil, nil, err
	}
	return d, func() { _ = d.Close() }, nil
}

// openRadar wires a fixture-replay fake.Source feeding on a background
// goroutine in dev mode. Outside dev mode it exits via logger.Fatal:
// spec.md §1 scopes the physical radar module itself out, so there is no
// "real" sensor.Source for this package to construct.
func openRadar(dev bool, fixturePath string, logger *zap.Logger) (sensor.Source, sensor.LightSource, chan struct{}) {
	if !dev {
		logger.Fatal("a real radar driver must be wired in at build time; pass -dev to run the fixture-replay simulator")
		return nil, nil, nil
	}

	frames := defaultFixtures()
	if fixturePath != "" {
		loaded, err := loadFixtures(fixturePath)
		if err != nil {
			logger.Fatal("load fixture file", zap.Error(err), zap.String("path", fixturePath))
		}
		frames = loaded
	}

	src := fake.New()
	light := fake.NewLightSource()
	light.Set(150, true)

	stop := make(chan struct{})
	go replayFixtures(src, frames, fixtureReplayPeriod, stop)

	return src, light, stop
}
