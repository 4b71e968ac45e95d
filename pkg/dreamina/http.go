package dreamina

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kaptinlin/jsonrepair"
)

// maxResponseBytes caps how much of a generation response is read.
var maxResponseBytes int64 = 8 << 20

// httpClient handles HTTP communication with the gateway.
type httpClient struct {
	client  *http.Client
	baseURL string
	token   string
	logger  *slog.Logger
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:  cfg.httpClient,
		baseURL: cfg.baseURL,
		token:   cfg.token,
		logger:  cfg.logger,
	}
}

// request sends one JSON request and returns the body of a 2xx response.
// There is no retry: the caller decides what a failure means.
func (h *httpClient) request(ctx context.Context, method, path, requestID string, body any) ([]byte, error) {
	bodyData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, bytes.NewReader(bodyData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	h.setHeaders(req, requestID)
	req.Header.Set("Content-Type", "application/json")

	h.logger.Debug("dreamina: sending request", "method", method, "url", req.URL.String(), "request_id", requestID)
	start := time.Now()

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if int64(len(respBody)) > maxResponseBytes {
		return nil, fmt.Errorf("read response body: exceeds %d bytes", maxResponseBytes)
	}

	h.logger.Debug("dreamina: received response",
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(respBody),
		"latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newError(resp.StatusCode, respBody, requestID)
	}

	return respBody, nil
}

// setHeaders sets common headers for API requests.
func (h *httpClient) setHeaders(req *http.Request, requestID string) {
	req.Header.Set("Authorization", "Bearer "+h.token)
	req.Header.Set("User-Agent", userAgent)
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}
}

// decodeJSON unmarshals data into v. On a syntax error the body is run
// through jsonrepair once before giving up.
func decodeJSON(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	if _, ok := err.(*json.SyntaxError); ok {
		fixed, rerr := jsonrepair.JSONRepair(string(data))
		if rerr != nil {
			return err
		}
		return json.Unmarshal([]byte(fixed), v)
	}
	return err
}
