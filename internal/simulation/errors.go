package simulation

import "github.com/santhosh1815/hmi/internal/errors"

const (
	// Control errors
	ErrInvalidControlInput = errors.ErrorCode("simulation_invalid_control_input")

	// Classification errors
	ErrNonFiniteReading = errors.ErrorCode("simulation_non_finite_reading")

	// Initialization errors
	ErrInvalidHistorySize = errors.ErrorCode("simulation_invalid_history_size")
)
