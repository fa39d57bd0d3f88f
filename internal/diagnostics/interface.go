package diagnostics

import (
	"context"

	"github.com/santhosh1815/hmi/internal/simulation"
)

// Report is the natural-language diagnostic summary produced by the external
// analysis service. EstimatedTimeUntilFailure is free text; "N/A" and
// "Unknown" act as no-estimate sentinels.
type Report struct {
	Status                    string `json:"status"`
	Analysis                  string `json:"analysis"`
	Recommendation            string `json:"recommendation"`
	EstimatedTimeUntilFailure string `json:"estimated_time_until_failure"`
}

// Analyzer produces a diagnostic report for one telemetry sample
type Analyzer interface {
	Analyze(ctx context.Context, sample simulation.Sample) (*Report, error)
}
