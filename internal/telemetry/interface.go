package telemetry

import (
	"context"

	"github.com/santhosh1815/hmi/internal/simulation"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, sample *simulation.Sample) error
	Close() error
}

// Repository defines the interface for sample storage
type Repository interface {
	Record(sample *simulation.Sample) error
	Close() error
}
