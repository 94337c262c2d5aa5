package simapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gridcare-data/coverage.report/internal/httputil"
)

// maxErrorBodyBytes caps how much of an error body we read when looking for
// a detail message.
const maxErrorBodyBytes = 64 * 1024

// APIError is a non-2xx response from the computation service. Message
// carries the service's `detail` string when one was present, otherwise a
// generic description.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Client calls the remote k-means computation service over HTTP/JSON.
type Client struct {
	baseURL string
	http    httputil.Client
}

// NewClient creates a client for the service at baseURL. A nil httputil
// client falls back to the standard one.
func NewClient(baseURL string, hc httputil.Client) *Client {
	if hc == nil {
		hc = httputil.NewStandardClient(nil)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Run submits simulation parameters and returns the finished clustering
// result. A non-2xx response becomes an *APIError carrying the service's
// detail message when one was provided.
func (c *Client) Run(ctx context.Context, params SimulationParams) (*SimulationResponse, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode simulation params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/kmeans/run", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("computation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "simulation request failed"); err != nil {
		return nil, err
	}

	var result SimulationResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode simulation response: %w", err)
	}
	return &result, nil
}

// Pretrained fetches the service's pretrained hospital placement, if any.
func (c *Client) Pretrained(ctx context.Context) (*PretrainedModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/kmeans/pretrained", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pretrained request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("computation service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, "no pretrained model available"); err != nil {
		return nil, err
	}

	var model PretrainedModel
	if err := json.NewDecoder(resp.Body).Decode(&model); err != nil {
		return nil, fmt.Errorf("failed to decode pretrained model: %w", err)
	}
	return &model, nil
}

// checkStatus converts a non-2xx response into an *APIError. The body is
// probed for a JSON `detail` string; absent that, generic is used.
func checkStatus(resp *http.Response, generic string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := generic
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err == nil && len(body) > 0 {
		var payload struct {
			Detail string `json:"detail"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Detail != "" {
			msg = payload.Detail
		}
	}

	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
