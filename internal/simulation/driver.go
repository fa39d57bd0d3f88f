package simulation

import (
	"sync"
	"time"

	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/logger"
)

// Driver owns the authoritative state of one simulated unit: the control
// state, the current sample and the rolling history. It is the only writer;
// every mutation happens under the same mutex, so ticks never overlap and
// control changes are never observed half-applied by a tick.
type Driver struct {
	mu         sync.Mutex
	stepper    *Stepper
	history    *Buffer
	current    Sample
	targetLoad int
	running    bool
}

// DriverConfig configures a simulation driver
type DriverConfig struct {
	HistorySize int
	InitialLoad int
	Noise       NoiseSource
}

// NewDriver builds a driver seeded with the steady-state sample for the
// initial load. The simulation starts running.
func NewDriver(cfg DriverConfig) (*Driver, error) {
	seed, err := SteadySample(cfg.InitialLoad, time.Now())
	if err != nil {
		return nil, err
	}

	history, err := NewBuffer(cfg.HistorySize, seed)
	if err != nil {
		return nil, err
	}

	return &Driver{
		stepper:    NewStepper(cfg.Noise),
		history:    history,
		current:    seed,
		targetLoad: cfg.InitialLoad,
		running:    true,
	}, nil
}

// Start resumes the simulation. Idempotent.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = true
}

// Stop freezes the simulation before the next tick. The current sample and
// history stay visible unchanged. Idempotent.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.running = false
}

// Running reports whether ticks currently advance the simulation
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.running
}

// SetTargetLoad updates the control input. Values outside the valid range
// are rejected and leave the prior state untouched.
func (d *Driver) SetTargetLoad(percent int) error {
	if percent < MinTargetLoad || percent > MaxTargetLoad {
		return errors.New().WithData(ErrInvalidControlInput, percent)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.targetLoad = percent

	return nil
}

// TargetLoad returns the current control input
func (d *Driver) TargetLoad() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.targetLoad
}

// Advance executes one tick. While running it produces the next sample,
// appends it to the history and returns it with true; while stopped it is a
// no-op and returns the unchanged current sample with false.
func (d *Driver) Advance() (Sample, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return d.current, false
	}

	next, err := d.stepper.Step(d.current, d.targetLoad)
	if err != nil {
		// Unreachable with a validated target load; skip the tick rather
		// than store a corrupted sample.
		logger.ErrorWithCode(err).Msg("Simulation step failed, skipping tick")
		return d.current, false
	}

	d.history.Append(next)
	d.current = next

	return next, true
}

// Current returns the most recent sample
func (d *Driver) Current() Sample {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.current
}

// History returns an independent snapshot of the rolling history, oldest
// first. Length always equals the configured history size.
func (d *Driver) History() []Sample {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.history.Snapshot()
}

// HistorySize returns the fixed history capacity
func (d *Driver) HistorySize() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.history.Capacity()
}
