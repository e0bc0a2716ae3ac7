package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/canteen-system/canteen-console/internal/core/domain"
	"github.com/canteen-system/canteen-console/internal/metrics"
)

// do performs one JSON round trip. Request and response are logged at
// debug level only; disabling that output changes nothing about behavior.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Bool("authenticated", c.token != "").
		Msg("api request")

	start := time.Now()
	res, err := c.httpc.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("api transport failure")
		return fmt.Errorf("gateway: %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(method, "error").Inc()
		return fmt.Errorf("gateway: read %s %s: %w", method, path, err)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(method, strconv.Itoa(res.StatusCode)).Inc()
	c.log.Debug().
		Int("status", res.StatusCode).
		Str("method", method).
		Str("path", path).
		Int("bytes", len(data)).
		Msg("api response")

	if res.StatusCode >= http.StatusBadRequest {
		return decodeError(res.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("gateway: decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

// decodeError maps an error response onto domain.RemoteError, extracting
// the backend's {"message": ...} envelope when one is present.
func decodeError(status int, data []byte) error {
	var envelope struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(data, &envelope)
	return &domain.RemoteError{Status: status, Message: envelope.Message}
}
