package simulation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/simulation"
)

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		power       float64
		temperature float64
		want        simulation.Status
	}{
		{"critical power wins", 7000, 10, simulation.StatusCritical},
		{"warning power", 4000, 10, simulation.StatusWarning},
		{"nominal", 1000, 10, simulation.StatusNominal},
		{"critical temperature alone", 1000, 90, simulation.StatusCritical},
		{"warning temperature alone", 1000, 65, simulation.StatusWarning},
		{"power at warning threshold stays nominal", 3600, 10, simulation.StatusNominal},
		{"power at critical threshold stays warning", 6000, 10, simulation.StatusWarning},
		{"temperature at critical threshold stays warning", 1000, 85, simulation.StatusWarning},
		{"both critical", 7000, 90, simulation.StatusCritical},
		{"negative noise values", -5, -2, simulation.StatusNominal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := simulation.Classify(tt.power, tt.temperature)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyRejectsNonFinite(t *testing.T) {
	tests := []struct {
		name        string
		power       float64
		temperature float64
	}{
		{"nan power", math.NaN(), 10},
		{"nan temperature", 1000, math.NaN()},
		{"positive infinity", math.Inf(1), 10},
		{"negative infinity", 1000, math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := simulation.Classify(tt.power, tt.temperature)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, simulation.ErrNonFiniteReading))
		})
	}
}

func TestAdvisoryBands(t *testing.T) {
	assert.True(t, simulation.IsVoltageOutOfBand(219.9))
	assert.False(t, simulation.IsVoltageOutOfBand(220))
	assert.False(t, simulation.IsVoltageOutOfBand(240))
	assert.False(t, simulation.IsVoltageOutOfBand(260))
	assert.True(t, simulation.IsVoltageOutOfBand(260.1))

	assert.False(t, simulation.IsCurrentElevated(15))
	assert.True(t, simulation.IsCurrentElevated(15.1))
}
