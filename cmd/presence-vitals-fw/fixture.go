package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/presence-vitals/fw-core/sensor"
	"github.com/presence-vitals/fw-core/sensor/fake"
)

// fixtureFrame is the on-disk shape of one replayed radar reading: plain
// JSON, one object per line, matching the field names of sensor.Frame
// directly so a recorded session can be edited by hand. Grounded on
// banshee-data-velocity.report/main.go's fixtures.txt + os.ReadFile
// dev-mode replay, adapted from that repo's comma-separated line format to
// JSON since sensor.Frame's target list needs real structure.
type fixtureFrame struct {
	Human   bool            `json:"human"`
	Targets []sensor.Target `json:"targets"`
	DistOk  bool            `json:"dist_ok"`
	DistCm  float64         `json:"dist_cm"`
	BrOk    bool            `json:"br_ok"`
	Br      float64         `json:"br"`
	HrOk    bool            `json:"hr_ok"`
	Hr      float64         `json:"hr"`
}

func (f fixtureFrame) toSensorFrame() sensor.Frame {
	return sensor.Frame{
		Human:   f.Human,
		Targets: f.Targets,
		DistOk:  f.DistOk,
		DistCm:  f.DistCm,
		BrOk:    f.BrOk,
		Br:      f.Br,
		HrOk:    f.HrOk,
		Hr:      f.Hr,
	}
}

// loadFixtures reads a JSON-lines fixture file into a slice of sensor
// frames, skipping blank lines.
func loadFixtures(path string) ([]sensor.Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture file: %w", err)
	}
	defer file.Close()

	var frames []sensor.Frame
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var ff fixtureFrame
		if err := json.Unmarshal(line, &ff); err != nil {
			return nil, fmt.Errorf("parse fixture line: %w", err)
		}
		frames = append(frames, ff.toSensorFrame())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan fixture file: %w", err)
	}
	return frames, nil
}

// defaultFixtures is the built-in replay sequence used when -fixtures is
// unset in dev mode: an empty room settling into a seated, resting-vitals
// read, the same scenario spec.md §8's "reach RESTING_VITALS" walkthrough
// exercises.
func defaultFixtures() []sensor.Frame {
	seated := sensor.Target{Cluster: 1, X: 0.3, Y: 0.2, DopplerIndex: 0}
	return []sensor.Frame{
		{},
		{Human: true, Targets: []sensor.Target{seated}, DistOk: true, DistCm: 50, BrOk: true, Br: 16, HrOk: true, Hr: 70},
		{Human: true, Targets: []sensor.Target{seated}, DistOk: true, DistCm: 50, BrOk: true, Br: 16, HrOk: true, Hr: 71},
		{Human: true, Targets: []sensor.Target{seated}, DistOk: true, DistCm: 49, BrOk: true, Br: 15, HrOk: true, Hr: 70},
		{Human: true, Targets: []sensor.Target{seated}, DistOk: true, DistCm: 50, BrOk: true, Br: 16, HrOk: true, Hr: 69},
		{Human: true, Targets: []sensor.Target{seated}, DistOk: true, DistCm: 50, BrOk: true, Br: 16, HrOk: true, Hr: 70},
	}
}

// replayFixtures feeds frames into src on a fixed cadence, looping forever,
// until stop is closed. It runs in its own goroutine; the Main Loop only
// ever touches src through sensor.Source.
func replayFixtures(src *fake.Source, frames []sensor.Frame, period time.Duration, stop <-chan struct{}) {
	if len(frames) == 0 {
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	i := 0
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			src.Push(frames[i%len(frames)])
			i++
		}
	}
}
