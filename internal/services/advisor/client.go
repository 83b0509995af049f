// Package advisor is the HTTP client for the external AI advisory
// service: price fairness evaluation and meetup location ranking. Both
// calls are consumed as opaque request/response pairs.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "handshake/internal/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// EvaluatePrice requests a fairness evaluation for a proposed price.
// The description must be non-empty and the price non-negative; the
// evaluation is advisory, so callers log failures and continue.
func (c *Client) EvaluatePrice(ctx context.Context, req EvaluatePriceRequest) (*PriceEvaluation, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("evaluate price: listing description is required")
	}
	if req.Price < 0 {
		return nil, fmt.Errorf("evaluate price: price must be non-negative")
	}

	var eval PriceEvaluation
	if err := c.post(ctx, "/evaluate-price", req, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}

// GenerateLocations requests a ranked list of candidate meeting places
// between the two coordinate pairs.
func (c *Client) GenerateLocations(ctx context.Context, req LocationRequest) ([]LocationSuggestion, error) {
	var body struct {
		Data []LocationSuggestion `json:"data"`
	}
	if err := c.post(ctx, "/generate-location", req, &body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// post sends a JSON request and decodes a JSON response. The response
// body is read as text first: upstream error pages are not always JSON,
// and those surface as ErrInvalidServerResponse rather than a decode
// panic deep in a handler.
func (c *Client) post(ctx context.Context, path string, payload, dest interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		// A structured rejection is still a failed external call; keep
		// the upstream message but surface the typed error so callers
		// can match on it.
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(text, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: %s", domain.ErrInvalidServerResponse, apiErr.Error)
		}
		return fmt.Errorf("%w: status %d", domain.ErrInvalidServerResponse, resp.StatusCode)
	}

	if err := json.Unmarshal(text, dest); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidServerResponse, err)
	}
	return nil
}
