package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"realty/internal/config"
	"realty/internal/model"
)

// RemoteModelClient calls a model server over HTTP
type RemoteModelClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteModelClient creates a new model server client
func NewRemoteModelClient(cfg *config.ModelConfig) *RemoteModelClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30
	}
	return &RemoteModelClient{
		baseURL: strings.TrimRight(cfg.RemoteURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// ModelRequest is the model server's input: a table of rows
type ModelRequest struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ModelResponse holds one prediction per row
type ModelResponse struct {
	Predictions []float64 `json:"predictions"`
	Error       string    `json:"error,omitempty"`
}

// Predict sends the record as a one-row table
func (c *RemoteModelClient) Predict(ctx context.Context, rec model.FeatureRecord) (float64, error) {
	reqBody, err := json.Marshal(ModelRequest{Columns: rec.Columns, Rows: [][]any{rec.Values}})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	var result ModelResponse
	if resp.StatusCode != http.StatusOK {
		if json.Unmarshal(body, &result) == nil && result.Error != "" {
			return 0, fmt.Errorf("model server returned %d: %s", resp.StatusCode, result.Error)
		}
		return 0, fmt.Errorf("model server returned %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return 0, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Predictions) != 1 {
		return 0, fmt.Errorf("expected 1 prediction, got %d", len(result.Predictions))
	}
	return result.Predictions[0], nil
}

var _ Predictor = (*RemoteModelClient)(nil)
