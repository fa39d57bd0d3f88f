package simulation

import (
	"math"
	"math/rand"
	"time"

	"github.com/santhosh1815/hmi/internal/errors"
)

// Noise scaling per derived quantity
const (
	voltageNoiseScale    = 1.5
	currentNoiseScale    = 0.2
	tempNoiseScale       = 0.1
	efficiencyNoiseScale = 0.5
	frequencyNoiseScale  = 0.1

	voltageLoadDrop    = 5.0
	peakEfficiency     = 95.0
	efficiencyLoadCost = 10.0
	maxEfficiency      = 100.0
)

// NoiseSource yields one scalar uniformly distributed in [-0.5, 0.5).
// A single draw is shared across every derived quantity within one step so
// the metrics stay correlated the way real electrical readings are.
type NoiseSource func() float64

// DefaultNoiseSource returns a time-seeded uniform noise source
func DefaultNoiseSource() NoiseSource {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return func() float64 {
		return rng.Float64() - 0.5
	}
}

// Stepper computes successive telemetry samples for the simulated unit
type Stepper struct {
	noise NoiseSource
	now   func() time.Time
}

func NewStepper(noise NoiseSource) *Stepper {
	if noise == nil {
		noise = DefaultNoiseSource()
	}

	return &Stepper{
		noise: noise,
		now:   time.Now,
	}
}

// Step derives the next sample from the previous one and the target load.
// The previous sample is never mutated. Temperature is the only recursive
// field: it closes a fixed fraction of the gap toward its load-dependent
// steady state each tick, giving the simulation thermal inertia.
func (s *Stepper) Step(previous Sample, targetLoad int) (Sample, error) {
	errFactory := errors.New()

	if targetLoad < MinTargetLoad || targetLoad > MaxTargetLoad {
		return Sample{}, errFactory.WithData(ErrInvalidControlInput, targetLoad)
	}

	n := s.noise()
	loadFactor := float64(targetLoad) / 100

	voltage := math.Max(0, NominalVoltage-loadFactor*voltageLoadDrop+n*voltageNoiseScale)
	current := math.Max(0, MaxCurrent*loadFactor+n*currentNoiseScale)
	power := math.Max(0, voltage*current)

	targetTemp := AmbientTemperature + loadFactor*FullLoadTempRise
	temperature := previous.Temperature + (targetTemp-previous.Temperature)*TempApproachRate + n*tempNoiseScale

	// Capped above only; the unclamped lower bound is intentional
	efficiency := math.Min(maxEfficiency, peakEfficiency-math.Abs(loadFactor-0.5)*efficiencyLoadCost+n*efficiencyNoiseScale)
	frequency := NominalFrequency + n*frequencyNoiseScale

	status, err := Classify(power, temperature)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Timestamp:   s.now(),
		Voltage:     voltage,
		Current:     current,
		Power:       power,
		Temperature: temperature,
		Frequency:   frequency,
		Efficiency:  efficiency,
		Status:      status,
	}, nil
}

// SteadySample builds the noise-free steady-state sample for a target load.
// Used to seed the driver and pre-fill the history ring.
func SteadySample(targetLoad int, at time.Time) (Sample, error) {
	errFactory := errors.New()

	if targetLoad < MinTargetLoad || targetLoad > MaxTargetLoad {
		return Sample{}, errFactory.WithData(ErrInvalidControlInput, targetLoad)
	}

	loadFactor := float64(targetLoad) / 100

	voltage := NominalVoltage - loadFactor*voltageLoadDrop
	current := MaxCurrent * loadFactor
	power := voltage * current
	temperature := AmbientTemperature + loadFactor*FullLoadTempRise
	efficiency := math.Min(maxEfficiency, peakEfficiency-math.Abs(loadFactor-0.5)*efficiencyLoadCost)

	status, err := Classify(power, temperature)
	if err != nil {
		return Sample{}, err
	}

	return Sample{
		Timestamp:   at,
		Voltage:     voltage,
		Current:     current,
		Power:       power,
		Temperature: temperature,
		Frequency:   NominalFrequency,
		Efficiency:  efficiency,
		Status:      status,
	}, nil
}
