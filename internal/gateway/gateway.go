package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/demeco/devis-console/internal/models"
)

// fallbackMessage is surfaced when the backend returns no usable message
const fallbackMessage = "une erreur est survenue"

// Gateway handles communication with the backend devis API. Every operation
// is a single request/response round trip: no retries, no caching, no
// batching. Non-success responses surface the server's message verbatim as
// a *models.RemoteError.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new Gateway for the given backend base URL
func New(baseURL string, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// errorBody is the JSON error envelope returned by the backend
type errorBody struct {
	Message string `json:"message"`
}

// do executes one round trip against the backend. body (when non-nil) is
// marshaled as JSON; on a 2xx response the payload is decoded into out
// (when non-nil). Any other outcome is a *models.RemoteError.
func (g *Gateway) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := g.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return models.NewRemoteError(0, "failed to encode request payload", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return models.NewRemoteError(0, "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return models.NewRemoteError(0, "network error", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.NewRemoteError(resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || len(bodyBytes) == 0 {
			return nil
		}
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return models.NewRemoteError(resp.StatusCode, "failed to decode response body", err)
		}
		return nil
	}

	// Carry the server message verbatim when the error envelope parses,
	// fall back to a generic message otherwise
	message := fallbackMessage
	var envelope errorBody
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil && envelope.Message != "" {
		message = envelope.Message
	}

	return models.NewRemoteError(resp.StatusCode, message, nil)
}

// get is a convenience wrapper for GET round trips
func (g *Gateway) get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, nil, out)
}

// idPath builds a resource path with a numeric identifier segment
func idPath(resource string, id int64, suffix string) string {
	return fmt.Sprintf("%s/%d%s", resource, id, suffix)
}
