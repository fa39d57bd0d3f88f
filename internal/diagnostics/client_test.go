package diagnostics_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santhosh1815/hmi/internal/diagnostics"
	"github.com/santhosh1815/hmi/internal/errors"
)

func TestClientAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Telemetry struct {
				Power  float64 `json:"power"`
				Status string  `json:"status"`
			} `json:"telemetry"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "NOMINAL", body.Telemetry.Status)

		json.NewEncoder(w).Encode(diagnostics.Report{
			Status:         "NOMINAL",
			Analysis:       "Unit operating normally.",
			Recommendation: "Continue monitoring.",
		})
	}))
	defer server.Close()

	client := diagnostics.NewClient(diagnostics.ClientConfig{
		URL:    server.URL,
		APIKey: "test-key",
	})

	report, err := client.Analyze(context.Background(), testSample(t))
	require.NoError(t, err)
	assert.Equal(t, "NOMINAL", report.Status)
	assert.Equal(t, "Unit operating normally.", report.Analysis)
	assert.Equal(t, "N/A", report.EstimatedTimeUntilFailure, "missing estimate defaults to the sentinel")
}

func TestClientMissingEndpoint(t *testing.T) {
	client := diagnostics.NewClient(diagnostics.ClientConfig{APIKey: "test-key"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrMissingEndpoint))
}

func TestClientMissingCredential(t *testing.T) {
	client := diagnostics.NewClient(diagnostics.ClientConfig{URL: "http://localhost:1"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrMissingCredential))
}

func TestClientNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := diagnostics.NewClient(diagnostics.ClientConfig{URL: server.URL, APIKey: "k"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrRequestFailed))
}

func TestClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := diagnostics.NewClient(diagnostics.ClientConfig{URL: server.URL, APIKey: "k"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrBadResponse))
}

func TestClientEmptyReport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := diagnostics.NewClient(diagnostics.ClientConfig{URL: server.URL, APIKey: "k"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrBadResponse))
}

func TestClientUnreachableEndpoint(t *testing.T) {
	client := diagnostics.NewClient(diagnostics.ClientConfig{URL: "http://127.0.0.1:1", APIKey: "k"})

	_, err := client.Analyze(context.Background(), testSample(t))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, diagnostics.ErrRequestFailed))
}
