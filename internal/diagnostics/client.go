package diagnostics

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/santhosh1815/hmi/internal/errors"
	"github.com/santhosh1815/hmi/internal/simulation"
)

const defaultTimeout = 15 * time.Second

// ClientConfig configures the HTTP analyzer
type ClientConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

type client struct {
	cfg  ClientConfig
	http *http.Client
}

// NewClient builds an Analyzer backed by the external analysis endpoint.
// Missing endpoint or credential surface as errors at request time so the
// caller's fallback path handles them like any other collaborator failure.
func NewClient(cfg ClientConfig) Analyzer {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type analysisRequest struct {
	Telemetry simulation.Sample `json:"telemetry"`
}

func (c *client) Analyze(ctx context.Context, sample simulation.Sample) (*Report, error) {
	errFactory := errors.New()

	if c.cfg.URL == "" {
		return nil, errFactory.New(ErrMissingEndpoint)
	}
	if c.cfg.APIKey == "" {
		return nil, errFactory.New(ErrMissingCredential)
	}

	payload, err := json.Marshal(analysisRequest{Telemetry: sample})
	if err != nil {
		return nil, errFactory.Wrap(ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, errFactory.Wrap(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errFactory.Wrap(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		return nil, errFactory.WithData(ErrRequestFailed, struct {
			Status int
			Body   string
		}{resp.StatusCode, string(body)})
	}

	var report Report
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return nil, errFactory.Wrap(ErrBadResponse, err)
	}

	if report.Status == "" || report.Analysis == "" {
		return nil, errFactory.WithMessage(ErrBadResponse, "analysis response missing required fields")
	}

	if report.EstimatedTimeUntilFailure == "" {
		report.EstimatedTimeUntilFailure = "N/A"
	}

	return &report, nil
}
