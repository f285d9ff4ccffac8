// Package executor calls the external assignment execution service. The
// backend compiles the payload and interprets the results; the actual
// assignment search runs remotely.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/config"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.Engine.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Engine.RequestTimeout) * time.Second,
		},
	}
}

// GenerateResponse is what the execution service returns. Newer service
// versions send assignments plus a validation block; older ones send a
// bare results array. Both decode into the same shape here.
type GenerateResponse struct {
	Results    []domain.AssignmentResult `json:"results"`
	Validation *serviceValidation        `json:"validation,omitempty"`
}

type serviceValidation struct {
	GroupCoverage *domain.GroupCoverageReport `json:"groupCoverage,omitempty"`
}

type rawResponse struct {
	Results     []domain.AssignmentResult `json:"results"`
	Assignments []domain.AssignmentResult `json:"assignments"`
	Validation  *serviceValidation        `json:"validation"`
}

// Generate posts a compiled batch and waits for the full result set. No
// retries: the caller holds the generate lock and a duplicate submit is
// worse than a surfaced failure.
func (c *Client) Generate(ctx context.Context, batch engine.BatchPayload) (*GenerateResponse, error) {
	body, err := json.Marshal(batch)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/assignments/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execution service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("execution service returned %d: %s", resp.StatusCode, msg)
	}

	var raw rawResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode execution service response: %w", err)
	}

	out := &GenerateResponse{Results: raw.Results, Validation: raw.Validation}
	if len(out.Results) == 0 {
		out.Results = raw.Assignments
	}
	if out.Results == nil {
		// an empty result set is a valid outcome, the analyzer produces
		// an empty report for it
		out.Results = []domain.AssignmentResult{}
	}
	return out, nil
}

// GroupCoverage returns the service-side coverage report if one came
// back, nil otherwise. The analyzer recomputes coverage locally either
// way; the service report is only attached for comparison.
func (r *GenerateResponse) GroupCoverage() *domain.GroupCoverageReport {
	if r.Validation == nil {
		return nil
	}
	return r.Validation.GroupCoverage
}
