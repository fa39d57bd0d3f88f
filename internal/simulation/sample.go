package simulation

import "time"

// Rated electrical characteristics of the simulated distribution unit
const (
	NominalVoltage   = 240.0
	NominalFrequency = 60.0
	MaxCurrent       = 30.0

	// Target load domain; values above 100 represent intentional overload
	MinTargetLoad = 0
	MaxTargetLoad = 120
)

// Thermal model constants. Temperature approaches a load-dependent
// steady state at a fixed fraction of the remaining gap per tick.
const (
	AmbientTemperature = 25.0
	FullLoadTempRise   = 60.0
	TempApproachRate   = 0.05
)

// Sample is one immutable telemetry reading produced by a tick. Status is
// always derived from Power and Temperature via Classify, never set
// independently.
type Sample struct {
	Timestamp   time.Time `json:"timestamp"`
	Voltage     float64   `json:"voltage"`
	Current     float64   `json:"current"`
	Power       float64   `json:"power"`
	Temperature float64   `json:"temperature"`
	Frequency   float64   `json:"frequency"`
	Efficiency  float64   `json:"efficiency"`
	Status      Status    `json:"status"`
}
