package diagnostics

import (
	"context"
	"sync"

	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/logger"
	"github.com/santhosh1815/hmi/internal/simulation"
)

// Service guards the analyzer with a single-flight policy and guarantees a
// report is always produced: any analyzer failure is replaced by the fixed
// fallback report. A request arriving while one is in flight is rejected,
// never queued, so two requests can never race on the report slot.
type Service struct {
	mu       sync.Mutex
	analyzer Analyzer
	inFlight bool
	latest   *Report
}

func NewService(analyzer Analyzer) *Service {
	return &Service{analyzer: analyzer}
}

// Run requests a diagnostic report for the given sample. The only possible
// error is the busy rejection; collaborator failures degrade to the fallback
// report instead of propagating.
func (s *Service) Run(ctx context.Context, sample simulation.Sample) (*Report, error) {
	errFactory := errors.New()

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return nil, errFactory.New(ErrBusy)
	}
	s.inFlight = true
	s.mu.Unlock()

	report, err := s.analyzer.Analyze(ctx, sample)
	if err != nil {
		logger.ErrorWithCode(err).Msg("Diagnostics request failed, substituting fallback report")
		report = FallbackReport()
	}

	s.mu.Lock()
	s.latest = report
	s.inFlight = false
	s.mu.Unlock()

	return report, nil
}

// Latest returns a copy of the most recent report, or nil before the first
// request completes
func (s *Service) Latest() *Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest == nil {
		return nil
	}

	report := *s.latest

	return &report
}

// FallbackReport is the degraded report substituted when the analysis
// service cannot be reached or answers with garbage
func FallbackReport() *Report {
	return &Report{
		Status:                    string(simulation.StatusWarning),
		Analysis:                  "Automated diagnostics failed. Connection error.",
		Recommendation:            "Check network connection and retry.",
		EstimatedTimeUntilFailure: "Unknown",
	}
}
