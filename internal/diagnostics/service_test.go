package diagnostics_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh1815/hmi/internal/diagnostics"
	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/simulation"
)

type stubAnalyzer struct {
	report *diagnostics.Report
	err    error
	block  chan struct{}
	calls  int
	mu     sync.Mutex
}

func (a *stubAnalyzer) Analyze(_ context.Context, _ simulation.Sample) (*diagnostics.Report, error) {
	a.mu.Lock()
	a.calls++
	a.mu.Unlock()

	if a.block != nil {
		<-a.block
	}

	return a.report, a.err
}

func testSample(t *testing.T) simulation.Sample {
	t.Helper()

	sample, err := simulation.SteadySample(50, time.Now())
	require.NoError(t, err)

	return sample
}

func TestRunReturnsAnalyzerReport(t *testing.T) {
	want := &diagnostics.Report{
		Status:                    "NOMINAL",
		Analysis:                  "All readings within expected ranges.",
		Recommendation:            "No action required.",
		EstimatedTimeUntilFailure: "N/A",
	}
	service := diagnostics.NewService(&stubAnalyzer{report: want})

	report, err := service.Run(context.Background(), testSample(t))
	require.NoError(t, err)
	assert.Equal(t, want, report)
	assert.Equal(t, want, service.Latest())
}

func TestRunSubstitutesFallbackOnFailure(t *testing.T) {
	service := diagnostics.NewService(&stubAnalyzer{err: fmt.Errorf("connection refused")})

	// Always the exact fallback text, never an error
	for i := 0; i < 3; i++ {
		report, err := service.Run(context.Background(), testSample(t))
		require.NoError(t, err)
		assert.Equal(t, "WARNING", report.Status)
		assert.Equal(t, "Automated diagnostics failed. Connection error.", report.Analysis)
		assert.Equal(t, "Check network connection and retry.", report.Recommendation)
		assert.Equal(t, "Unknown", report.EstimatedTimeUntilFailure)
	}
}

func TestRunRejectsConcurrentRequest(t *testing.T) {
	block := make(chan struct{})
	stub := &stubAnalyzer{
		report: &diagnostics.Report{Status: "NOMINAL", Analysis: "ok"},
		block:  block,
	}
	service := diagnostics.NewService(stub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := service.Run(context.Background(), testSample(t))
		assert.NoError(t, err)
	}()

	// Wait for the first request to enter the analyzer
	require.Eventually(t, func() bool {
		stub.mu.Lock()
		defer stub.mu.Unlock()
		return stub.calls == 1
	}, time.Second, time.Millisecond)

	_, err := service.Run(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrBusy))

	close(block)
	<-done

	assert.NotNil(t, service.Latest())
}

func TestLatestBeforeFirstRequest(t *testing.T) {
	service := diagnostics.NewService(&stubAnalyzer{})
	assert.Nil(t, service.Latest())
}

func TestLatestReturnsCopy(t *testing.T) {
	service := diagnostics.NewService(&stubAnalyzer{
		report: &diagnostics.Report{Status: "NOMINAL", Analysis: "ok"},
	})

	_, err := service.Run(context.Background(), testSample(t))
	require.NoError(t, err)

	first := service.Latest()
	first.Analysis = "mutated"

	assert.Equal(t, "ok", service.Latest().Analysis)
}
