package simulation

import (
	"math"

	"github.com/santhosh1815/hmi/internal/errors"
)

// Status is the operating classification of the unit
type Status string

const (
	StatusNominal  Status = "NOMINAL"
	StatusWarning  Status = "WARNING"
	StatusCritical Status = "CRITICAL"
)

// Classification thresholds
const (
	PowerWarning  = 3600.0
	PowerCritical = 6000.0
	TempWarning   = 60.0
	TempCritical  = 85.0
)

// Advisory display bands. These color gauges on the dashboard and are
// deliberately kept out of Classify.
const (
	VoltageBandLow  = 220.0
	VoltageBandHigh = 260.0
	CurrentElevated = 15.0
)

// Classify maps power and temperature to an operating status. Critical
// conditions win over warnings; non-finite readings are rejected rather than
// defaulting to nominal.
func Classify(power, temperature float64) (Status, error) {
	errFactory := errors.New()

	if !isFinite(power) || !isFinite(temperature) {
		return "", errFactory.WithData(ErrNonFiniteReading, struct {
			Power       float64
			Temperature float64
		}{power, temperature})
	}

	switch {
	case power > PowerCritical || temperature > TempCritical:
		return StatusCritical, nil
	case power > PowerWarning || temperature > TempWarning:
		return StatusWarning, nil
	default:
		return StatusNominal, nil
	}
}

// IsVoltageOutOfBand reports whether voltage left the advisory display band
func IsVoltageOutOfBand(voltage float64) bool {
	return voltage < VoltageBandLow || voltage > VoltageBandHigh
}

// IsCurrentElevated reports whether current exceeds the advisory display
// threshold
func IsCurrentElevated(current float64) bool {
	return current > CurrentElevated
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
